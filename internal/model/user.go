package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// Роли пользователей
const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)

type User struct {
	ID       int
	Name     string
	Login    string
	Password string
	Balance  int64
	Role     string
}

type UserClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type AuthData struct {
	AccessToken  string
	RefreshToken string
	SessionID    string
}
