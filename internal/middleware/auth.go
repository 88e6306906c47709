package middleware

import (
	"gachapon_backend/internal/config"
	"gachapon_backend/pkg/token"
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

type ctxKey string

const (
	userIDKey ctxKey = "user_id"
	roleKey   ctxKey = "role"
)

// ErrForbidden Вызывающий не имеет требуемой роли
var ErrForbidden = errors.New("caller does not have the required role")

// Auth - middleware проверки access токена.
// Кладет ID пользователя и роль в контекст запроса
func Auth(jwtCfg config.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "missing access token", http.StatusUnauthorized)
				return
			}

			claims, err := token.VerifyToken(strings.TrimPrefix(header, "Bearer "), jwtCfg.AccessTokenSecretKey())
			if err != nil {
				http.Error(w, "invalid access token", http.StatusUnauthorized)
				return
			}

			userID, err := strconv.Atoi(claims.ID)
			if err != nil {
				http.Error(w, "invalid access token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, roleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext - достает ID пользователя из контекста
func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

// RoleFromContext - достает роль пользователя из контекста
func RoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	return role, ok
}

// RequireRole - единая проверка роли для закрытых операций.
// Вызывается один раз на входе в операцию вместо разрозненных проверок
func RequireRole(ctx context.Context, required string) error {
	role, ok := RoleFromContext(ctx)
	if !ok || role != required {
		return ErrForbidden
	}
	return nil
}

// WithUser - контекст с заданным пользователем. Используется в тестах и фоновых задачах
func WithUser(ctx context.Context, userID int, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}
