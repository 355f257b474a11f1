package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type OrderLineRequest struct {
	MenuID   uint `json:"menu_id"`
	Quantity int  `json:"quantity"`
}

func (req OrderLineRequest) Validate() error {
	return validation.ValidateStruct(
		&req,
		validation.Field(&req.MenuID, validation.Required),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
	)
}

type CheckoutRequest struct {
	StallID uint               `json:"stall_id"`
	Lines   []OrderLineRequest `json:"lines"`
}

func (req *CheckoutRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StallID, validation.Required),
		validation.Field(&req.Lines, validation.Required, validation.Length(1, 0)),
	)
}

type EditOrderRequest struct {
	Lines []OrderLineRequest `json:"lines"`
}

func (req *EditOrderRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Lines, validation.Required, validation.Length(1, 0)),
	)
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (req *UpdateOrderStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required),
	)
}
