package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/hanifz/kantin-api/internal/domain"
	"github.com/hanifz/kantin-api/internal/repository"
)

var (
	ErrUserEmailExists     = repository.ErrUserEmailExists
	ErrStudentNumberExists = repository.ErrStudentNumberExists
	ErrStudentNotFound     = repository.ErrStudentNotFound
	ErrWrongPassword       = errors.New("wrong password")
	ErrAccountInactive     = errors.New("account has been deactivated")
	ErrNotStaffAccount     = errors.New("account is not a staff or admin account")
)

type AuthUserRepository interface {
	CreateStudent(ctx context.Context, student domain.Student) (domain.Student, error)
	CreateStaff(ctx context.Context, staff domain.Staff) (domain.Staff, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindStudentByNumber(ctx context.Context, studentNumber string) (domain.Student, error)
	FindStaffByUserID(ctx context.Context, userID uint) (domain.Staff, error)
}

type AuthStallRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Stall, error)
}

type AuthService struct {
	repo      AuthUserRepository
	stallRepo AuthStallRepository
}

func NewAuthService(repo AuthUserRepository, stallRepo AuthStallRepository) *AuthService {
	return &AuthService{
		repo:      repo,
		stallRepo: stallRepo,
	}
}

// SignupStudent creates the account plus the student profile. Uniqueness
// of email and student number is enforced by the store; the insert and
// the profile share one transaction in the repository.
func (s *AuthService) SignupStudent(ctx context.Context, student domain.Student) (domain.Student, error) {
	hashed, err := hashPassword(student.User.Password)
	if err != nil {
		return domain.Student{}, err
	}
	student.User.Password = hashed

	created, err := s.repo.CreateStudent(ctx, student)
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.CreateStudent -> %w", err)
	}

	return created, nil
}

// SignupStaff requires the target stall to exist before creating anything.
func (s *AuthService) SignupStaff(ctx context.Context, staff domain.Staff) (domain.Staff, error) {
	if _, err := s.stallRepo.FindByID(ctx, staff.StallID); err != nil {
		if errors.Is(err, repository.ErrStallNotFound) {
			return domain.Staff{}, ErrStallNotFound
		}

		return domain.Staff{}, fmt.Errorf("s.stallRepo.FindByID -> %w", err)
	}

	hashed, err := hashPassword(staff.User.Password)
	if err != nil {
		return domain.Staff{}, err
	}
	staff.User.Password = hashed

	created, err := s.repo.CreateStaff(ctx, staff)
	if err != nil {
		return domain.Staff{}, fmt.Errorf("s.repo.CreateStaff -> %w", err)
	}

	return created, nil
}

// LoginStudent authenticates via the unique student number. A soft-deleted
// account fails exactly like an unknown number.
func (s *AuthService) LoginStudent(ctx context.Context, studentNumber, password string) (domain.Student, error) {
	student, err := s.repo.FindStudentByNumber(ctx, studentNumber)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return domain.Student{}, ErrStudentNotFound
		}

		return domain.Student{}, fmt.Errorf("s.repo.FindStudentByNumber -> %w", err)
	}

	if !student.User.IsActive {
		return domain.Student{}, ErrAccountInactive
	}

	if err = bcrypt.CompareHashAndPassword([]byte(student.User.Password), []byte(password)); err != nil {
		return domain.Student{}, ErrWrongPassword
	}

	return student, nil
}

// LoginStaff authenticates admin and staff accounts via email. For a
// staff account the owning stall scope is returned alongside.
func (s *AuthService) LoginStaff(ctx context.Context, email, password string) (domain.User, *domain.Staff, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, nil, ErrUserNotFound
		}

		return domain.User{}, nil, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if user.Role != domain.RoleAdmin && user.Role != domain.RoleStaff {
		return domain.User{}, nil, ErrNotStaffAccount
	}
	if !user.IsActive {
		return domain.User{}, nil, ErrAccountInactive
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, nil, ErrWrongPassword
	}

	if user.Role == domain.RoleStaff {
		staff, err := s.repo.FindStaffByUserID(ctx, user.ID)
		if err != nil {
			return domain.User{}, nil, fmt.Errorf("s.repo.FindStaffByUserID -> %w", err)
		}

		return user, &staff, nil
	}

	return user, nil, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	return string(hash), nil
}
