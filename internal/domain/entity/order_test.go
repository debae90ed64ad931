package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		isAdmin bool
		want    bool
	}{
		{"forward one step", OrderStatusPending, OrderStatusConfirmed, false, true},
		{"skip steps forward", OrderStatusPending, OrderStatusShipped, false, true},
		{"backwards", OrderStatusShipped, OrderStatusConfirmed, false, false},
		{"same status", OrderStatusPending, OrderStatusPending, false, false},
		{"supplier cancel", OrderStatusPending, OrderStatusCancelled, false, false},
		{"admin cancel", OrderStatusPending, OrderStatusCancelled, true, true},
		{"admin cancel delivered", OrderStatusDelivered, OrderStatusCancelled, true, false},
		{"admin refund delivered", OrderStatusDelivered, OrderStatusRefunded, true, true},
		{"admin refund pending", OrderStatusPending, OrderStatusRefunded, true, false},
		{"from cancelled", OrderStatusCancelled, OrderStatusConfirmed, true, false},
		{"from refunded", OrderStatusRefunded, OrderStatusPending, true, false},
		{"unknown status", "lost", OrderStatusConfirmed, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to, tt.isAdmin))
		})
	}
}

func TestFormatOrderNumber(t *testing.T) {
	assert.Equal(t, "CMD000001", FormatOrderNumber(1))
	assert.Equal(t, "CMD000042", FormatOrderNumber(42))
	assert.Equal(t, "CMD123456", FormatOrderNumber(123456))
	assert.Equal(t, "CMD1234567", FormatOrderNumber(1234567))
}

func TestInvolvesSupplier(t *testing.T) {
	order := &Order{
		Items: []OrderItem{
			{ProductID: "p1", SupplierID: "s1"},
			{ProductID: "p2", SupplierID: "s2"},
		},
	}

	assert.True(t, order.InvolvesSupplier("s1"))
	assert.True(t, order.InvolvesSupplier("s2"))
	assert.False(t, order.InvolvesSupplier("s3"))
}
