package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hanifz/kantin-api/internal/domain"
	"github.com/hanifz/kantin-api/internal/repository"
)

var (
	ErrUserNotFound    = repository.ErrUserNotFound
	ErrStaffNotFound   = repository.ErrStaffNotFound
	ErrNotProfileOwner = errors.New("profile belongs to another account")
)

type UserRepository interface {
	FindStudentByID(ctx context.Context, id uint) (domain.Student, error)
	FindActiveStudents(ctx context.Context) ([]domain.Student, error)
	FindStaffByID(ctx context.Context, id uint) (domain.Staff, error)
	FindAllStaff(ctx context.Context) ([]domain.Staff, error)
	UpdateStudent(ctx context.Context, student domain.Student) (domain.Student, error)
	UpdateStaff(ctx context.Context, staff domain.Staff) (domain.Staff, error)
	Deactivate(ctx context.Context, userID uint) error
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) ListStudents(ctx context.Context) ([]domain.Student, error) {
	students, err := s.repo.FindActiveStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindActiveStudents -> %w", err)
	}

	return students, nil
}

// GetStudent hides deactivated students, matching the public listing.
func (s *UserService) GetStudent(ctx context.Context, id uint) (domain.Student, error) {
	student, err := s.repo.FindStudentByID(ctx, id)
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.FindStudentByID -> %w", err)
	}

	if !student.User.IsActive {
		return domain.Student{}, ErrStudentNotFound
	}

	return student, nil
}

// UpdateStudent lets an admin edit anyone; a student may only edit their
// own profile. A supplied password is re-hashed before storage.
func (s *UserService) UpdateStudent(ctx context.Context, student domain.Student, actorRole string, actorStudentID uint) (domain.Student, error) {
	if actorRole == domain.RoleStudent && actorStudentID != student.ID {
		return domain.Student{}, ErrNotProfileOwner
	}

	if student.User.Password != "" {
		hashed, err := hashPassword(student.User.Password)
		if err != nil {
			return domain.Student{}, err
		}
		student.User.Password = hashed
	}

	updated, err := s.repo.UpdateStudent(ctx, student)
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.UpdateStudent -> %w", err)
	}

	return updated, nil
}

// DeactivateStudent soft-deletes the owning account. Historical orders
// keep referencing the student row and stay queryable by staff.
func (s *UserService) DeactivateStudent(ctx context.Context, studentID uint) error {
	student, err := s.repo.FindStudentByID(ctx, studentID)
	if err != nil {
		return fmt.Errorf("s.repo.FindStudentByID -> %w", err)
	}

	if err = s.repo.Deactivate(ctx, student.User.ID); err != nil {
		return fmt.Errorf("s.repo.Deactivate -> %w", err)
	}

	return nil
}

func (s *UserService) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	staff, err := s.repo.FindAllStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllStaff -> %w", err)
	}

	return staff, nil
}

func (s *UserService) UpdateStaff(ctx context.Context, staff domain.Staff, actorRole string, actorUserID uint) (domain.Staff, error) {
	current, err := s.repo.FindStaffByID(ctx, staff.ID)
	if err != nil {
		return domain.Staff{}, fmt.Errorf("s.repo.FindStaffByID -> %w", err)
	}

	if actorRole == domain.RoleStaff && current.User.ID != actorUserID {
		return domain.Staff{}, ErrNotProfileOwner
	}
	// Reassignment to another stall is an admin decision.
	if actorRole != domain.RoleAdmin {
		staff.StallID = 0
	}

	if staff.User.Password != "" {
		hashed, err := hashPassword(staff.User.Password)
		if err != nil {
			return domain.Staff{}, err
		}
		staff.User.Password = hashed
	}

	updated, err := s.repo.UpdateStaff(ctx, staff)
	if err != nil {
		return domain.Staff{}, fmt.Errorf("s.repo.UpdateStaff -> %w", err)
	}

	return updated, nil
}

func (s *UserService) DeactivateStaff(ctx context.Context, staffID uint) error {
	staff, err := s.repo.FindStaffByID(ctx, staffID)
	if err != nil {
		return fmt.Errorf("s.repo.FindStaffByID -> %w", err)
	}

	if err = s.repo.Deactivate(ctx, staff.User.ID); err != nil {
		return fmt.Errorf("s.repo.Deactivate -> %w", err)
	}

	return nil
}
