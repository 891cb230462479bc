package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/domain/models"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/security"
	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	log      *slog.Logger
	userRepo storage.UserStorage
	issuer   *security.TokenIssuer
}

func NewAuthService(log *slog.Logger, userRepo storage.UserStorage, issuer *security.TokenIssuer) *AuthService {
	return &AuthService{
		log:      log,
		userRepo: userRepo,
		issuer:   issuer,
	}
}

type AuthServiceInterface interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Login осуществляет аутентификацию пользователя.
// Если пользователь не найден, он создаётся с ролью USER (пароль хэшируется
// через bcrypt, который автоматически добавляет соль). Если найден —
// введённый пароль сравнивается с сохранённым хэшем.
// После успешной проверки подписывается JWT-токен.
func (a *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	const op = "auth.Login"
	logger := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)
	logger.Info("checking user")

	user, err := a.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Info("user not found, creating new user")
			passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				logger.Error("failed to hash password", slog.Any("error", err))
				return "", fmt.Errorf("%s: failed to hash password: %w", op, err)
			}
			newUser := &models.User{
				Email:    email,
				PassHash: passHash,
				Role:     "USER",
			}
			user, err = a.userRepo.CreateUser(ctx, newUser)
			if err != nil {
				logger.Error("failed to create user", slog.Any("error", err))
				return "", fmt.Errorf("%s: failed to create user: %w", op, err)
			}
		} else {
			logger.Error("failed to get user", slog.Any("error", err))
			return "", fmt.Errorf("%s: failed to get user: %w", op, err)
		}
	} else {
		if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
			logger.Warn("invalid password")
			return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
	}

	token, err := a.issuer.NewToken(user)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return "", fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("user logged in successfully", slog.Int64("userID", user.ID))
	return token, nil
}
