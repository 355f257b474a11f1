package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateStallRequest struct {
	Name string `json:"name"`
}

func (req *CreateStallRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
	)
}

type UpdateStallRequest struct {
	Name string `json:"name"`
}

func (req *UpdateStallRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
	)
}
