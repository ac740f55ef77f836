package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()

	c.GeocodeObserved("ok")
	c.GeocodeObserved("ok")
	c.RouteObserved("rejected")
	c.CalculationObserved("ok", 250*time.Millisecond)
	c.StopsSet(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.GeocodeRequests.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.RouteRequests.WithLabelValues("rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Calculations.WithLabelValues("ok")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.Stops))

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "roadtrip_calculation_duration_seconds"))
}
