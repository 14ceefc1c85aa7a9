// Package common — authctx.go хранит claims авторизованного пользователя
// в контексте запроса. Живёт в common, чтобы feature-пакеты могли читать
// user_id без импорта auth (и без циклов импорта).
package common

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// Claims — полезная нагрузка токена.
type Claims struct {
	UserID   int    `json:"uid"`
	Username string `json:"name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type ctxKey struct{}

// WithClaims кладёт claims в контекст запроса (делает auth-middleware).
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, claims)
}

// FromContext достаёт claims из контекста.
func FromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ctxKey{}).(*Claims)
	return claims, ok
}

// UserID возвращает user_id из контекста. Второе значение false,
// если запрос не прошёл auth-middleware.
func UserID(ctx context.Context) (int, bool) {
	claims, ok := FromContext(ctx)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}
