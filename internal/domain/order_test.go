package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, StatusUnconfirmed.Valid())
	assert.True(t, StatusCooking.Valid())
	assert.True(t, StatusDelivering.Valid())
	assert.True(t, StatusArrived.Valid())
	assert.False(t, OrderStatus("cancelled").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestOrderStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{StatusUnconfirmed, StatusCooking, true},
		{StatusCooking, StatusDelivering, true},
		{StatusDelivering, StatusArrived, true},
		{StatusUnconfirmed, StatusDelivering, false},
		{StatusUnconfirmed, StatusArrived, false},
		{StatusCooking, StatusUnconfirmed, false},
		{StatusArrived, StatusDelivering, false},
		{StatusArrived, StatusArrived, false},
		{StatusCooking, StatusCooking, false},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestOrderTotal(t *testing.T) {
	order := Order{
		Lines: []OrderLine{
			{Quantity: 2, UnitPrice: 8000},
			{Quantity: 1, UnitPrice: 3500},
		},
	}

	assert.InDelta(t, 19500, order.Total(), 0.001)
	assert.InDelta(t, 16000, order.Lines[0].Subtotal(), 0.001)
}

func TestOrderTotalEmpty(t *testing.T) {
	assert.Zero(t, Order{}.Total())
}
