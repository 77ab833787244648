package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware())
	router.GET("/spots/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/spots/:id", "418"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/spots/7", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/spots/:id", "418")))
}

func TestRecordSweep(t *testing.T) {
	runs := testutil.ToFloat64(sweepRuns)
	freed := testutil.ToFloat64(sweepFreed)
	failures := testutil.ToFloat64(sweepErrors)

	RecordSweep(3, nil)
	RecordSweep(0, errors.New("db down"))

	assert.Equal(t, runs+2, testutil.ToFloat64(sweepRuns))
	assert.Equal(t, freed+3, testutil.ToFloat64(sweepFreed))
	assert.Equal(t, failures+1, testutil.ToFloat64(sweepErrors))
}

func TestHandlerExposesRegistry(t *testing.T) {
	RecordReservation(ResultOK)
	RecordCredit()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `parking_reservations_attempts_total{result="ok"}`))
	assert.True(t, strings.Contains(body, "parking_accounts_credits_total"))
}
