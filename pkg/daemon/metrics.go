package daemon

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides observability for the daemon.
// Each instance owns its registry so several daemons (or tests) can coexist.
type Metrics struct {
	Registry           *prometheus.Registry
	Conversions        *prometheus.CounterVec
	ConversionDuration prometheus.Histogram
	Requests           *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance with all daemon metrics registered.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		Conversions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "uconv_conversions_total",
			Help: "Total number of conversion requests by category and outcome",
		}, []string{"category", "outcome"}),
		ConversionDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "uconv_conversion_duration_seconds",
			Help:    "Duration of conversion requests, including input parsing",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}),
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "uconv_http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		}, []string{"route", "code"}),
	}
}

// observeConversion records a conversion request.
// Call with time.Now() at the start of the request.
func (m *Metrics) observeConversion(category, outcome string, start time.Time) {
	m.Conversions.WithLabelValues(category, outcome).Inc()
	m.ConversionDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		// unmatched routes share one label value
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.Requests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

func (m *Metrics) handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}
