package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wfirexctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wfirexctl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	applianceSends = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wfirexctl",
			Subsystem: "appliance",
			Name:      "sends_total",
			Help:      "IR transmit exchanges with the appliance by outcome.",
		},
		[]string{"device", "button", "result"},
	)
	applianceDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wfirexctl",
			Subsystem: "appliance",
			Name:      "send_duration_seconds",
			Help:      "Connect, write and acknowledge duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"result"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, applianceSends, applianceDuration)
	})
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

// RecordApplianceSend counts one send. result is "ok" or a failure kind.
func RecordApplianceSend(device, button, result string, duration time.Duration) {
	RegisterMetrics()
	applianceSends.WithLabelValues(device, button, result).Inc()
	applianceDuration.WithLabelValues(result).Observe(duration.Seconds())
}
