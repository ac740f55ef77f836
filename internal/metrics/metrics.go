package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	GeocodeRequests *prometheus.CounterVec // outcome label: ok|not_found|error|cache_hit
	RouteRequests   *prometheus.CounterVec // outcome label: ok|rejected|error
	Calculations    *prometheus.CounterVec // outcome label: ok|insufficient|busy|routing_error|error

	CalculationDuration prometheus.Histogram
	Stops               prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roadtrip_geocode_requests_total",
			Help: "Geocode lookups by outcome.",
		}, []string{"outcome"}),
		RouteRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roadtrip_route_requests_total",
			Help: "Segment routing requests by outcome.",
		}, []string{"outcome"}),
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roadtrip_calculations_total",
			Help: "Trip calculations by outcome.",
		}, []string{"outcome"}),
		CalculationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "roadtrip_calculation_duration_seconds",
			Help:    "Wall time of a full multi-leg calculation.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		Stops: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "roadtrip_stops",
			Help: "Number of stops in the session itinerary.",
		}),
	}

	reg.MustRegister(
		c.GeocodeRequests, c.RouteRequests, c.Calculations,
		c.CalculationDuration, c.Stops,
	)

	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

func (c *Collector) GeocodeObserved(outcome string) { c.GeocodeRequests.WithLabelValues(outcome).Inc() }

func (c *Collector) RouteObserved(outcome string) { c.RouteRequests.WithLabelValues(outcome).Inc() }

func (c *Collector) CalculationObserved(outcome string, d time.Duration) {
	c.Calculations.WithLabelValues(outcome).Inc()
	c.CalculationDuration.Observe(d.Seconds())
}

func (c *Collector) StopsSet(n int) { c.Stops.Set(float64(n)) }
