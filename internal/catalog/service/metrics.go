package service

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	Created            prometheus.Counter
	Deleted            prometheus.Counter
	Contacts           prometheus.Counter
	Views              prometheus.Counter
	ValidationFailures *prometheus.CounterVec
}

// NewMetrics creates the marketplace counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "listings_created_total",
			Help: "Total number of listings created",
		}),
		Deleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "listings_deleted_total",
			Help: "Total number of listings deleted",
		}),
		Contacts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contacts_initiated_total",
			Help: "Total number of vendor contacts initiated by buyers",
		}),
		Views: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "listing_views_total",
			Help: "Total number of listing views recorded",
		}),
		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "validation_failures_total",
			Help: "Total number of rejected form submissions",
		}, []string{"form"}),
	}
	reg.MustRegister(m.Created, m.Deleted, m.Contacts, m.Views, m.ValidationFailures)
	return m
}
