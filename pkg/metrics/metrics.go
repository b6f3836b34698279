package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	MutationsTotal     *prometheus.CounterVec
	MutationsRejected  *prometheus.CounterVec
	NotificationsTotal *prometheus.CounterVec
	NotifyDuration     *prometheus.HistogramVec

	EntityCount         *prometheus.GaugeVec
	ObserversRegistered prometheus.Gauge

	CascadeRemovedTotal *prometheus.CounterVec
}

// NewCollector registers the registry metrics under the given namespace.
// A nil registerer falls back to the process-wide default; tests pass
// their own prometheus.NewRegistry() to avoid duplicate registration.
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		MutationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "mutations_total",
			Help:      "Total applied mutations by entity and operation.",
		}, []string{"entity", "op"}),

		MutationsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "mutations_rejected_total",
			Help:      "Mutations rejected by entity and reason (duplicate_id, not_found).",
		}, []string{"entity", "reason"}),

		NotificationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "notifications_total",
			Help:      "Observer notifications emitted by change kind.",
		}, []string{"kind"}),

		NotifyDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "notify_duration_seconds",
			Help:      "Observer fan-out latency distribution by change kind.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"kind"}),

		EntityCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "entities",
			Help:      "Current number of records held, by entity.",
		}, []string{"entity"}),

		ObserversRegistered: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "observers_registered",
			Help:      "Number of registered change observers.",
		}),

		CascadeRemovedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "cascade_removed_total",
			Help:      "Appointments removed by cascading deletes, by owner entity.",
		}, []string{"owner"}),
	}
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
