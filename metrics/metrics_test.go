package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cocktail-bar-api/models"
)

func TestSetOrderCounts(t *testing.T) {
	m := New()
	statuses := []models.OrderStatus{models.StatusPending, models.StatusServed}

	m.SetOrderCounts(statuses, map[models.OrderStatus]int64{models.StatusPending: 4})
	assert.Equal(t, 4.0, testutil.ToFloat64(m.ordersGauge.WithLabelValues("Pending")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ordersGauge.WithLabelValues("Served")))

	m.SetOrderCounts(statuses, map[models.OrderStatus]int64{})
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ordersGauge.WithLabelValues("Pending")))

	m.RecordRefreshError()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.refreshErrors))
}

func TestInstrument(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Instrument())
	r.GET("/api/v1/orders/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for _, path := range []string{"/api/v1/orders/1", "/api/v1/orders/2", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/orders/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "404")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cocktail_bar_http_requests_total")
}
