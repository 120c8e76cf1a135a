package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyvisit/KV-ViewingService/internal/api/handlers"
)

type nopRateLimiterLogger struct{}

func (nopRateLimiterLogger) Warn(string, ...interface{}) {}

func newRateLimitedRouter(client *redis.Client, limit int64, window time.Duration) *mux.Router {
	router := mux.NewRouter()
	router.Use(RevealRateLimiter(client, limit, window, nopRateLimiterLogger{}))
	router.HandleFunc("/viewings/{viewingId}/access-code", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	return router
}

func doRevealRequest(t *testing.T, router *mux.Router, viewingID, userID int64) int {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/viewings/"+strconv.FormatInt(viewingID, 10)+"/access-code", nil)
	req.Header.Set(handlers.HeaderUserID, strconv.FormatInt(userID, 10))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec.Code
}

func TestRevealRateLimiter(t *testing.T) {
	t.Run("BlocksAboveLimit", func(t *testing.T) {
		s := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: s.Addr()})
		router := newRateLimitedRouter(client, 3, time.Minute)

		for i := 0; i < 3; i++ {
			assert.Equal(t, http.StatusOK, doRevealRequest(t, router, 1, 100))
		}
		assert.Equal(t, http.StatusTooManyRequests, doRevealRequest(t, router, 1, 100))
	})

	t.Run("WindowResets", func(t *testing.T) {
		s := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: s.Addr()})
		router := newRateLimitedRouter(client, 1, time.Minute)

		require.Equal(t, http.StatusOK, doRevealRequest(t, router, 1, 100))
		require.Equal(t, http.StatusTooManyRequests, doRevealRequest(t, router, 1, 100))

		s.FastForward(time.Minute + time.Second)

		assert.Equal(t, http.StatusOK, doRevealRequest(t, router, 1, 100))
	})

	t.Run("LimitIsPerViewingAndUser", func(t *testing.T) {
		s := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: s.Addr()})
		router := newRateLimitedRouter(client, 1, time.Minute)

		require.Equal(t, http.StatusOK, doRevealRequest(t, router, 1, 100))
		require.Equal(t, http.StatusTooManyRequests, doRevealRequest(t, router, 1, 100))

		assert.Equal(t, http.StatusOK, doRevealRequest(t, router, 2, 100))
		assert.Equal(t, http.StatusOK, doRevealRequest(t, router, 1, 200))
	})

	t.Run("NilClientBypasses", func(t *testing.T) {
		router := newRateLimitedRouter(nil, 1, time.Minute)

		for i := 0; i < 5; i++ {
			assert.Equal(t, http.StatusOK, doRevealRequest(t, router, 1, 100))
		}
	})

	t.Run("RedisDownBypasses", func(t *testing.T) {
		s := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: s.Addr()})
		router := newRateLimitedRouter(client, 1, time.Minute)

		s.Close()

		for i := 0; i < 3; i++ {
			assert.Equal(t, http.StatusOK, doRevealRequest(t, router, 1, 100))
		}
	})
}
