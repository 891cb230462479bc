package models

// User представляет пользователя витрины
type User struct {
	ID       int64
	Email    string
	PassHash []byte
	Role     string // "USER" или "ADMIN"
}
