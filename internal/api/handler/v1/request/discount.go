package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateDiscountRequest struct {
	Name       string    `json:"name"`
	Percentage float64   `json:"percentage"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
}

func (req *CreateDiscountRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Percentage, validation.Required, validation.Min(1.0), validation.Max(100.0)),
		validation.Field(&req.StartsAt, validation.Required),
		validation.Field(&req.EndsAt, validation.Required),
	)
}

// UpdateDiscountRequest is partial, omitted fields keep stored values.
type UpdateDiscountRequest struct {
	Name       string    `json:"name"`
	Percentage float64   `json:"percentage"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
}

func (req *UpdateDiscountRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Percentage, validation.Min(1.0), validation.Max(100.0)),
	)
}

type AssignDiscountRequest struct {
	MenuIDs []uint `json:"menu_ids"`
}

func (req *AssignDiscountRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.MenuIDs, validation.Required, validation.Length(1, 0)),
	)
}
