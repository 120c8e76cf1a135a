package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyvisit/KV-ViewingService/pkg/metrics"
)

// Счетчик с лейблами из default registry; 0 если семейство не найдено
func counterValue(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
	metric:
		for _, m := range fam.GetMetric() {
			seen := make(map[string]string)
			for _, l := range m.GetLabel() {
				seen[l.GetName()] = l.GetValue()
			}
			for k, v := range labels {
				if seen[k] != v {
					continue metric
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New("viewingservice-test")

	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m, "viewingservice-test"))
	router.HandleFunc("/things/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/things/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Лейбл path - шаблон роута, а не сырой URL
	got := counterValue(t, "http_requests_total", map[string]string{
		"service": "viewingservice-test",
		"method":  http.MethodGet,
		"path":    "/things/{id}",
		"status":  "404",
	})
	assert.Equal(t, float64(1), got)
}
