// Package metrics holds the domain counters of the admission workflow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Notification results.
const (
	ResultSent   = "sent"
	ResultFailed = "failed"
)

// Domain counts application transitions, recorded payments and notification outcomes.
// A nil *Domain is valid and records nothing.
type Domain struct {
	transitions   *prometheus.CounterVec
	payments      *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// NewDomain creates the counters and registers them on reg.
func NewDomain(reg prometheus.Registerer) (*Domain, error) {
	d := &Domain{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "application_transitions_total",
				Help: "Application status transitions by target status.",
			},
			[]string{"to"},
		),
		payments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_recorded_total",
				Help: "Payments recorded by method and status.",
			},
			[]string{"method", "status"},
		),
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifications_total",
				Help: "Notification deliveries by kind and result.",
			},
			[]string{"kind", "result"},
		),
	}
	for _, c := range []prometheus.Collector{d.transitions, d.payments, d.notifications} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Transition counts an application moving into status to.
func (d *Domain) Transition(to string) {
	if d == nil {
		return
	}
	d.transitions.WithLabelValues(to).Inc()
}

// PaymentRecorded counts a new payment row.
func (d *Domain) PaymentRecorded(method, status string) {
	if d == nil {
		return
	}
	d.payments.WithLabelValues(method, status).Inc()
}

// Notification counts one delivery attempt.
func (d *Domain) Notification(kind, result string) {
	if d == nil {
		return
	}
	d.notifications.WithLabelValues(kind, result).Inc()
}
