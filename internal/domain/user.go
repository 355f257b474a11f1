package domain

import "time"

const (
	RoleAdmin   = "admin"
	RoleStaff   = "staff"
	RoleStudent = "student"
)

type User struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Student is the role-specific profile owned by a student account.
// Login happens via the unique student number, not the email.
type Student struct {
	ID            uint   `json:"id"`
	StudentNumber string `json:"student_number"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Photo         string `json:"photo"`
	User          User   `json:"user"`
}

type Staff struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Photo     string `json:"photo"`
	StallID   uint   `json:"stall_id"`
	StallName string `json:"stall_name,omitempty"`
	User      User   `json:"user"`
}
