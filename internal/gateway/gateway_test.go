package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerify(t *testing.T) {
	sig := Sign("gw-secret", "order_1", "pay_1")

	tests := []struct {
		name      string
		secret    string
		orderID   string
		paymentID string
		signature string
		want      bool
	}{
		{"valid", "gw-secret", "order_1", "pay_1", sig, true},
		{"wrong payment", "gw-secret", "order_1", "pay_2", sig, false},
		{"wrong secret", "other", "order_1", "pay_1", sig, false},
		{"not hex", "gw-secret", "order_1", "pay_1", "zz", false},
		{"empty signature", "gw-secret", "order_1", "pay_1", "", false},
		{"empty secret", "", "order_1", "pay_1", Sign("", "order_1", "pay_1"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Verify(tt.secret, tt.orderID, tt.paymentID, tt.signature))
		})
	}
}

func TestSign_Deterministic(t *testing.T) {
	assert.Len(t, Sign("key", "a", "b"), 64)
	assert.Equal(t, Sign("key", "a", "b"), Sign("key", "a", "b"))
}
