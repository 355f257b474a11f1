package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`
)

var (
	errInvalidPassword         = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
	errConfirmPasswordMismatch = errors.New("confirm password doesn't match the password")
)

// passwordExp needs lookahead groups, which the stdlib engine rejects.
var passwordExp = regexp2.MustCompile(passwordRegexPattern, regexp2.None)

func validatePassword(password, confirm string) error {
	ok, err := passwordExp.MatchString(password)
	if err != nil || !ok {
		return errInvalidPassword
	}

	if password != confirm {
		return errConfirmPasswordMismatch
	}

	return nil
}

// StudentSignupRequest binds from multipart form data so the profile photo
// can ride along, or from plain JSON when there is none.
type StudentSignupRequest struct {
	StudentNumber   string `form:"student_number" json:"student_number"`
	Name            string `form:"name" json:"name"`
	Username        string `form:"username" json:"username"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
	Address         string `form:"address" json:"address"`
	Phone           string `form:"phone" json:"phone"`
}

func (req *StudentSignupRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.StudentNumber, validation.Required, validation.Length(4, 20)),
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.ConfirmPassword, validation.Required),
		validation.Field(&req.Phone, validation.Length(0, 20)),
	)
	if err != nil {
		return err
	}

	return validatePassword(req.Password, req.ConfirmPassword)
}

type StaffSignupRequest struct {
	Name            string `form:"name" json:"name"`
	Username        string `form:"username" json:"username"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
	Address         string `form:"address" json:"address"`
	Phone           string `form:"phone" json:"phone"`
	StallID         uint   `form:"stall_id" json:"stall_id"`
}

func (req *StaffSignupRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.ConfirmPassword, validation.Required),
		validation.Field(&req.StallID, validation.Required),
	)
	if err != nil {
		return err
	}

	return validatePassword(req.Password, req.ConfirmPassword)
}

type StudentLoginRequest struct {
	StudentNumber string `json:"student_number"`
	Password      string `json:"password"`
	RememberMe    bool   `json:"remember_me"`
}

func (req *StudentLoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StudentNumber, validation.Required),
		validation.Field(&req.Password, validation.Required),
	)
}

type StaffLoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

func (req *StaffLoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}
