package response

import (
	"github.com/hanifz/kantin-api/internal/domain"
)

type StudentLoginResponse struct {
	Token   string         `json:"token"`
	Student domain.Student `json:"student"`
}

type StaffLoginResponse struct {
	Token string        `json:"token"`
	User  domain.User   `json:"user"`
	Staff *domain.Staff `json:"staff,omitempty"`
}
