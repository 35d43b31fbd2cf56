package probe

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics the probe exposes.
type Metrics struct {
	ProbesTotal   *prometheus.CounterVec
	ProbeDuration prometheus.Histogram
	RPCDuration   *prometheus.HistogramVec
}

var (
	metrics     *Metrics
	metricsOnce sync.Once
)

// GetMetrics returns the process-wide Metrics instance.
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = newMetrics(prometheus.DefaultRegisterer)
	})
	return metrics
}

func newMetrics(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		ProbesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "chainprobe_probes_total",
			Help: "Probe runs by provider and outcome",
		}, []string{"provider", "outcome"}),
		ProbeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "chainprobe_probe_duration_seconds",
			Help:    "End-to-end duration of a probe run",
			Buckets: prometheus.DefBuckets,
		}),
		RPCDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chainprobe_rpc_request_duration_seconds",
			Help:    "Outbound JSON-RPC request duration by method",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

func outcomeLabel(err error) string {
	var transportErr *TransportError
	var rpcErr *RPCError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnknownProvider):
		return "unknown_provider"
	case errors.As(err, &transportErr):
		return "transport_error"
	case errors.As(err, &rpcErr):
		return "rpc_error"
	case errors.Is(err, ErrNoHeight):
		return "no_height"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	default:
		return "error"
	}
}
