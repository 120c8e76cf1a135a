package middleware

import (
	"net/http"

	"github.com/keyvisit/KV-ViewingService/internal/api/handlers"
)

const msgUnauthorized = "требуется аутентификация"

// Auth проверяет наличие корректного заголовка X-User-ID.
// Сам заголовок проставляет API gateway после проверки токена,
// сервис доверяет значению как есть.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := handlers.UserID(r); err != nil {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
