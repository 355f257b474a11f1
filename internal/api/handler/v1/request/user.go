package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// UpdateStudentRequest is bound from multipart form data so the profile
// photo can ride along. Every field is optional.
type UpdateStudentRequest struct {
	StudentNumber string `form:"student_number" json:"student_number"`
	Name          string `form:"name" json:"name"`
	Username      string `form:"username" json:"username"`
	Email         string `form:"email" json:"email"`
	Password      string `form:"password" json:"password"`
	Address       string `form:"address" json:"address"`
	Phone         string `form:"phone" json:"phone"`
}

func (req *UpdateStudentRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.StudentNumber, validation.Length(4, 20)),
		validation.Field(&req.Name, validation.Length(2, 100)),
		validation.Field(&req.Username, validation.Length(3, 50)),
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.Phone, validation.Length(0, 20)),
	)
	if err != nil {
		return err
	}

	if req.Password != "" {
		return validatePassword(req.Password, req.Password)
	}

	return nil
}

type UpdateStaffRequest struct {
	Name     string `form:"name" json:"name"`
	Username string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	Address  string `form:"address" json:"address"`
	Phone    string `form:"phone" json:"phone"`
	StallID  uint   `form:"stall_id" json:"stall_id"`
}

func (req *UpdateStaffRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Length(2, 100)),
		validation.Field(&req.Username, validation.Length(3, 50)),
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.Phone, validation.Length(0, 20)),
	)
	if err != nil {
		return err
	}

	if req.Password != "" {
		return validatePassword(req.Password, req.Password)
	}

	return nil
}
