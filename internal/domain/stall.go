package domain

import "time"

// Stall is a canteen vendor booth. It owns menu items and staff, and may
// only be deleted while no order has ever referenced it.
type Stall struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Staff     []Staff   `json:"staff,omitempty"`
	MenuCount int       `json:"menu_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
