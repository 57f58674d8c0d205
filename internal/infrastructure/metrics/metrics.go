package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the registry's counters. Use New with a dedicated registry in tests.
type Metrics struct {
	TransfersTotal   *prometheus.CounterVec
	FarTransferred   prometheus.Counter
	MutationsTotal   *prometheus.CounterVec
	EventsPublished  prometheus.Counter
	EventPublishErrs prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TransfersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tdr_transfers_total",
			Help: "Transfer attempts by outcome.",
		}, []string{"outcome"}),
		FarTransferred: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tdr_far_transferred_total",
			Help: "FAR moved from source DRCs into derived DRCs.",
		}),
		MutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tdr_mutations_total",
			Help: "Committed mutations by operation.",
		}, []string{"operation"}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tdr_outbox_events_published_total",
			Help: "Outbox events delivered to the stream.",
		}),
		EventPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tdr_outbox_publish_errors_total",
			Help: "Failed outbox deliveries (retried on the next tick).",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.TransfersTotal, m.FarTransferred, m.MutationsTotal, m.EventsPublished, m.EventPublishErrs)
	}
	return m
}

// Nop returns unregistered counters.
func Nop() *Metrics { return New(nil) }
