// Package auth — token.go выпускает и проверяет JWT-токены сессий.
// Токен подписывается HS256, живёт 7 дней (настраивается) и несёт
// user_id, username и роль — этого достаточно для авторизации маршрутов.
package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"serotonyl.ru/oasis-backend/internal/common"
	"serotonyl.ru/oasis-backend/internal/config"
)

// Claims — полезная нагрузка токена. Сам тип и контекстные помощники
// живут в internal/common, чтобы feature-пакеты не импортировали auth.
type Claims = common.Claims

// TokenManager выпускает и разбирает токены.
type TokenManager struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewTokenManager создаёт менеджер токенов из конфигурации.
func NewTokenManager(cfg *config.Config) *TokenManager {
	return &TokenManager{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.JWTIssuer,
		audience: cfg.JWTAudience,
		ttl:      cfg.JWTTTL,
	}
}

// Issue выпускает подписанный токен для пользователя.
func (tm *TokenManager) Issue(userID int, username, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			Issuer:    tm.issuer,
			Audience:  jwt.ClaimStrings{tm.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}
	return signed, nil
}

// Parse проверяет подпись, срок действия, issuer и audience токена.
func (tm *TokenManager) Parse(tokenString string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(t *jwt.Token) (any, error) { return tm.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tm.issuer),
		jwt.WithAudience(tm.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("недействительный токен: %w", err)
	}
	return &claims, nil
}
