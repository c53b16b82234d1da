package restapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus metrics for outgoing Task API requests.
var (
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskpad_api_requests_total",
			Help: "Total number of Task API requests",
		},
		[]string{"method", "route", "status"},
	)

	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taskpad_api_request_duration_seconds",
			Help:    "Histogram of Task API request durations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Register metrics with Prometheus's default registry
func init() {
	prometheus.MustRegister(apiRequestsTotal, apiRequestDuration)
}

// metricsTransport records a counter and a latency histogram per request.
// Transport failures are recorded with status "error".
type metricsTransport struct {
	base http.RoundTripper
}

func (t *metricsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)

	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	labels := prometheus.Labels{
		"method": req.Method,
		"route":  routeOf(req.URL.Path),
		"status": status,
	}
	apiRequestsTotal.With(labels).Inc()
	apiRequestDuration.With(labels).Observe(time.Since(start).Seconds())
	return resp, err
}

// routeOf collapses task IDs so label cardinality stays bounded.
func routeOf(path string) string {
	i := strings.Index(path, tasksPath)
	if i < 0 {
		return "other"
	}
	rest := strings.Trim(path[i+len(tasksPath):], "/")
	if rest == "" {
		return tasksPath
	}
	return tasksPath + "/{id}"
}
