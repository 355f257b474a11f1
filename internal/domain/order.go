package domain

import "time"

type OrderStatus string

const (
	StatusUnconfirmed OrderStatus = "unconfirmed"
	StatusCooking     OrderStatus = "cooking"
	StatusDelivering  OrderStatus = "delivering"
	StatusArrived     OrderStatus = "arrived"
)

// allowedTransitions is the guarded lifecycle. The status may only move
// forward one step at a time; anything else is rejected.
var allowedTransitions = map[OrderStatus]OrderStatus{
	StatusUnconfirmed: StatusCooking,
	StatusCooking:     StatusDelivering,
	StatusDelivering:  StatusArrived,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusUnconfirmed, StatusCooking, StatusDelivering, StatusArrived:
		return true
	}

	return false
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return allowedTransitions[s] == next
}

type Order struct {
	ID            uint        `json:"id"`
	StudentID     uint        `json:"student_id"`
	StudentName   string      `json:"student_name,omitempty"`
	StudentNumber string      `json:"student_number,omitempty"`
	StallID       uint        `json:"stall_id"`
	StallName     string      `json:"stall_name,omitempty"`
	Status        OrderStatus `json:"status"`
	OrderedAt     time.Time   `json:"ordered_at"`
	Lines         []OrderLine `json:"lines,omitempty"`
}

// OrderLine carries the unit price frozen at checkout/edit time, with any
// discount already applied. It is never recomputed afterwards.
type OrderLine struct {
	ID        uint    `json:"id"`
	MenuID    uint    `json:"menu_id"`
	MenuName  string  `json:"menu_name,omitempty"`
	MenuPhoto string  `json:"menu_photo,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

func (l OrderLine) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// Total is always derived from the frozen lines, never stored.
func (o Order) Total() float64 {
	var total float64
	for _, l := range o.Lines {
		total += l.Subtotal()
	}

	return total
}
