package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/KrX3D/TizenTube2/internal/application/port/output"
)

var _ output.MetricsPort = (*Prometheus)(nil)

// Prometheus exports filter counters under the tvfilter namespace.
type Prometheus struct {
	responses      *prometheus.CounterVec
	itemsRemoved   *prometheus.CounterVec
	shelvesRemoved *prometheus.CounterVec
	helpersKept    prometheus.Counter
	itemErrors     prometheus.Counter
}

func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tvfilter",
			Name:      "responses_total",
			Help:      "Responses seen by the interceptor, by matched shape.",
		}, []string{"shape"}),
		itemsRemoved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tvfilter",
			Name:      "items_removed_total",
			Help:      "Video items removed, by reason.",
		}, []string{"reason"}),
		shelvesRemoved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tvfilter",
			Name:      "shelves_removed_total",
			Help:      "Shelves removed, by reason.",
		}, []string{"reason"}),
		helpersKept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tvfilter",
			Name:      "helper_items_total",
			Help:      "Helper items kept to preserve playlist pagination.",
		}),
		itemErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tvfilter",
			Name:      "item_errors_total",
			Help:      "Items kept because their evaluation failed.",
		}),
	}
	if reg != nil {
		reg.MustRegister(p.responses, p.itemsRemoved, p.shelvesRemoved, p.helpersKept, p.itemErrors)
	}
	return p
}

func (p *Prometheus) ResponseSeen(shape string) {
	p.responses.WithLabelValues(shape).Inc()
}

func (p *Prometheus) ItemRemoved(reason string) {
	p.itemsRemoved.WithLabelValues(reason).Inc()
}

func (p *Prometheus) ShelfRemoved(reason string) {
	p.shelvesRemoved.WithLabelValues(reason).Inc()
}

func (p *Prometheus) HelperKept() {
	p.helpersKept.Inc()
}

func (p *Prometheus) ItemError() {
	p.itemErrors.Inc()
}
