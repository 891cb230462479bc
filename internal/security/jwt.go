package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Ecommerce-PrograWeb/Ecommerce-PrograWeb/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName — имя httpOnly-cookie, в которой витрина хранит токен.
const CookieName = "access_token"

var ErrInvalidToken = errors.New("invalid token")

// Identity — проверенная личность запроса, извлечённая из токена.
type Identity struct {
	UserID int64
	Email  string
	Role   string
}

// TokenIssuer подписывает и проверяет JWT. Секрет передаётся при создании,
// а не читается из окружения внутри пакета.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// TTL возвращает срок жизни выдаваемых токенов (нужен для maxAge cookie).
func (t *TokenIssuer) TTL() time.Duration {
	return t.ttl
}

// NewToken генерирует JWT-токен для указанного пользователя.
func (t *TokenIssuer) NewToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   fmt.Sprintf("%d", user.ID),
		"email": user.Email,
		"role":  user.Role,
		"jti":   uuid.NewString(),
		"exp":   time.Now().Add(t.ttl).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// ParseToken проверяет подпись и срок токена и возвращает личность.
func (t *TokenIssuer) ParseToken(tokenStr string) (*Identity, error) {
	token, err := jwt.Parse(tokenStr, func(tk *jwt.Token) (interface{}, error) {
		// Проверка алгоритма
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	ident := &Identity{UserID: userID}
	if email, ok := claims["email"].(string); ok {
		ident.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		ident.Role = role
	}
	return ident, nil
}
