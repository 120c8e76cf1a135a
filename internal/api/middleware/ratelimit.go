package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/keyvisit/KV-ViewingService/internal/api/handlers"
)

const msgTooManyReveals = "слишком много запросов кода доступа, попробуйте позже"

// RateLimiterLogger интерфейс для логирования
type RateLimiterLogger interface {
	Warn(format string, v ...interface{})
}

// RevealRateLimiter ограничивает частоту запросов кода доступа по фиксированному
// окну: не больше limit запросов за window на пару (viewing, user).
// Защита от перебора чужих кодов. При недоступном Redis лимитер пропускает
// запрос: доступность важнее строгости лимита.
func RevealRateLimiter(client *redis.Client, limit int64, window time.Duration, logger RateLimiterLogger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if client == nil {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := handlers.UserID(r)
			if err != nil {
				// Аутентификацию проверяет middleware.Auth
				next.ServeHTTP(w, r)
				return
			}

			key := fmt.Sprintf("reveal:%s:%d", mux.Vars(r)["viewingId"], userID)

			count, err := client.Incr(r.Context(), key).Result()
			if err != nil {
				logger.Warn("RevealRateLimiter: redis unavailable, skipping limit: %v", err)
				next.ServeHTTP(w, r)
				return
			}

			if count == 1 {
				if err := client.Expire(r.Context(), key, window).Err(); err != nil {
					logger.Warn("RevealRateLimiter: failed to set ttl for %s: %v", key, err)
				}
			}

			if count > limit {
				handlers.RespondTooManyRequests(w, msgTooManyReveals)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
