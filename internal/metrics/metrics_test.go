package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	d, err := NewDomain(reg)
	require.NoError(t, err)

	d.Transition("submitted")
	d.Transition("submitted")
	d.PaymentRecorded("cash", "completed")
	d.Notification("application_approved", ResultFailed)

	assert.Equal(t, float64(2), testutil.ToFloat64(d.transitions.WithLabelValues("submitted")))
	assert.Equal(t, float64(1), testutil.ToFloat64(d.payments.WithLabelValues("cash", "completed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(d.notifications.WithLabelValues("application_approved", ResultFailed)))
}

func TestDomainDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewDomain(reg)
	require.NoError(t, err)

	_, err = NewDomain(reg)
	assert.Error(t, err)
}

func TestNilDomainIsNoop(t *testing.T) {
	var d *Domain
	assert.NotPanics(t, func() {
		d.Transition("approved")
		d.PaymentRecorded("online", "pending")
		d.Notification("x", ResultSent)
	})
}
