package middleware

import (
	"net/http"
	"strings"

	"serotonyl.ru/oasis-backend/internal/common"
	"serotonyl.ru/oasis-backend/internal/features/auth"
)

// Authenticate извлекает bearer-токен, проверяет подпись и кладёт
// claims в контекст запроса. Без валидного токена — 401.
func Authenticate(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				common.Message(w, http.StatusUnauthorized, "требуется авторизация")
				return
			}

			claims, err := tokens.Parse(token)
			if err != nil {
				common.Message(w, http.StatusUnauthorized, "недействительный токен")
				return
			}

			next.ServeHTTP(w, r.WithContext(common.WithClaims(r.Context(), claims)))
		})
	}
}

// RequireRoles пропускает только пользователей с одной из перечисленных
// ролей. Вешается после Authenticate.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := common.FromContext(r.Context())
			if !ok {
				common.Message(w, http.StatusUnauthorized, "требуется авторизация")
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			common.Message(w, http.StatusForbidden, "недостаточно прав")
		})
	}
}
