package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/api/styles", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", Handler())
	return r
}

func TestMiddleware(t *testing.T) {
	r := newEngine()

	t.Run("uses route template", func(t *testing.T) {
		before := testutil.ToFloat64(RequestsTotal.WithLabelValues("GET", "/api/styles", "200"))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/styles", nil))

		after := testutil.ToFloat64(RequestsTotal.WithLabelValues("GET", "/api/styles", "200"))
		if after != before+1 {
			t.Errorf("counter: got %f, want %f", after, before+1)
		}
	})

	t.Run("unmatched path", func(t *testing.T) {
		before := testutil.ToFloat64(RequestsTotal.WithLabelValues("GET", "unmatched", "404"))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope/123", nil))

		after := testutil.ToFloat64(RequestsTotal.WithLabelValues("GET", "unmatched", "404"))
		if after != before+1 {
			t.Errorf("counter: got %f, want %f", after, before+1)
		}
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := newEngine()
	RephraseTotal.WithLabelValues("plain", OutcomeSuccess).Inc()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "rephraser_rephrase_total") {
		t.Error("rephraser_rephrase_total not exposed")
	}
}
