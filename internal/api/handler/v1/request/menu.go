package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/hanifz/kantin-api/internal/domain"
)

// CreateMenuRequest is bound from multipart form data, the photo file
// is read separately by the handler.
type CreateMenuRequest struct {
	Name        string  `form:"name" json:"name"`
	Price       float64 `form:"price" json:"price"`
	Category    string  `form:"category" json:"category"`
	Description string  `form:"description" json:"description"`
	StallID     uint    `form:"stall_id" json:"stall_id"`
}

func (req *CreateMenuRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Price, validation.Required, validation.Min(0.0)),
		validation.Field(&req.Category, validation.Required, validation.In(domain.CategoryFood, domain.CategoryDrink)),
		validation.Field(&req.Description, validation.Length(0, 500)),
	)
}

type UpdateMenuRequest struct {
	Name        string  `form:"name" json:"name"`
	Price       float64 `form:"price" json:"price"`
	Category    string  `form:"category" json:"category"`
	Description string  `form:"description" json:"description"`
	StallID     uint    `form:"stall_id" json:"stall_id"`
}

func (req *UpdateMenuRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Price, validation.Required, validation.Min(0.0)),
		validation.Field(&req.Category, validation.Required, validation.In(domain.CategoryFood, domain.CategoryDrink)),
		validation.Field(&req.Description, validation.Length(0, 500)),
	)
}
