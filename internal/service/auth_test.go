package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hanifz/kantin-api/internal/domain"
	"github.com/hanifz/kantin-api/internal/repository"
)

type fakeAuthUserRepo struct {
	students map[string]domain.Student
	users    map[string]domain.User
	staff    map[uint]domain.Staff
}

func newFakeAuthUserRepo() *fakeAuthUserRepo {
	return &fakeAuthUserRepo{
		students: make(map[string]domain.Student),
		users:    make(map[string]domain.User),
		staff:    make(map[uint]domain.Staff),
	}
}

func (f *fakeAuthUserRepo) CreateStudent(_ context.Context, student domain.Student) (domain.Student, error) {
	if _, exists := f.students[student.StudentNumber]; exists {
		return domain.Student{}, repository.ErrStudentNumberExists
	}
	if _, exists := f.users[student.User.Email]; exists {
		return domain.Student{}, repository.ErrUserEmailExists
	}

	student.ID = uint(len(f.students) + 1)
	student.User.ID = uint(len(f.users) + 1)
	student.User.Role = domain.RoleStudent
	student.User.IsActive = true
	f.students[student.StudentNumber] = student
	f.users[student.User.Email] = student.User

	return student, nil
}

func (f *fakeAuthUserRepo) CreateStaff(_ context.Context, staff domain.Staff) (domain.Staff, error) {
	if _, exists := f.users[staff.User.Email]; exists {
		return domain.Staff{}, repository.ErrUserEmailExists
	}

	staff.ID = uint(len(f.staff) + 1)
	staff.User.ID = uint(len(f.users) + 1)
	staff.User.Role = domain.RoleStaff
	staff.User.IsActive = true
	f.users[staff.User.Email] = staff.User
	f.staff[staff.User.ID] = staff

	return staff, nil
}

func (f *fakeAuthUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := f.users[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeAuthUserRepo) FindStudentByNumber(_ context.Context, number string) (domain.Student, error) {
	student, ok := f.students[number]
	if !ok {
		return domain.Student{}, repository.ErrStudentNotFound
	}

	return student, nil
}

func (f *fakeAuthUserRepo) FindStaffByUserID(_ context.Context, userID uint) (domain.Staff, error) {
	staff, ok := f.staff[userID]
	if !ok {
		return domain.Staff{}, repository.ErrStaffNotFound
	}

	return staff, nil
}

type fakeStallRepo struct {
	stalls map[uint]domain.Stall
}

func (f *fakeStallRepo) FindByID(_ context.Context, id uint) (domain.Stall, error) {
	stall, ok := f.stalls[id]
	if !ok {
		return domain.Stall{}, repository.ErrStallNotFound
	}

	return stall, nil
}

func newTestAuthService() (*AuthService, *fakeAuthUserRepo) {
	users := newFakeAuthUserRepo()
	stalls := &fakeStallRepo{stalls: map[uint]domain.Stall{1: {ID: 1, Name: "Warung Bu Sri"}}}

	return NewAuthService(users, stalls), users
}

func TestAuthServiceSignupStudent(t *testing.T) {
	svc, users := newTestAuthService()

	student, err := svc.SignupStudent(context.Background(), domain.Student{
		StudentNumber: "2024001",
		Name:          "Budi",
		User: domain.User{
			Email:    "budi@example.com",
			Password: "rahasia123",
		},
	})
	require.NoError(t, err)

	stored := users.students["2024001"]
	assert.NotEqual(t, "rahasia123", stored.User.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.User.Password), []byte("rahasia123")))
	assert.Equal(t, domain.RoleStudent, student.User.Role)

	_, err = svc.SignupStudent(context.Background(), domain.Student{
		StudentNumber: "2024001",
		User:          domain.User{Email: "other@example.com", Password: "rahasia123"},
	})
	assert.ErrorIs(t, err, ErrStudentNumberExists)
}

func TestAuthServiceSignupStaff(t *testing.T) {
	svc, _ := newTestAuthService()

	t.Run("requires an existing stall", func(t *testing.T) {
		_, err := svc.SignupStaff(context.Background(), domain.Staff{
			StallID: 99,
			User:    domain.User{Email: "siti@example.com", Password: "rahasia123"},
		})
		assert.ErrorIs(t, err, ErrStallNotFound)
	})

	t.Run("creates the account", func(t *testing.T) {
		staff, err := svc.SignupStaff(context.Background(), domain.Staff{
			Name:    "Siti",
			StallID: 1,
			User:    domain.User{Email: "siti@example.com", Password: "rahasia123"},
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleStaff, staff.User.Role)
	})
}

func TestAuthServiceLoginStudent(t *testing.T) {
	svc, users := newTestAuthService()

	_, err := svc.SignupStudent(context.Background(), domain.Student{
		StudentNumber: "2024001",
		User:          domain.User{Email: "budi@example.com", Password: "rahasia123"},
	})
	require.NoError(t, err)

	t.Run("succeeds with the right password", func(t *testing.T) {
		student, err := svc.LoginStudent(context.Background(), "2024001", "rahasia123")
		require.NoError(t, err)
		assert.Equal(t, "2024001", student.StudentNumber)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.LoginStudent(context.Background(), "2024001", "salah")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("unknown number", func(t *testing.T) {
		_, err := svc.LoginStudent(context.Background(), "0000000", "rahasia123")
		assert.ErrorIs(t, err, ErrStudentNotFound)
	})

	t.Run("deactivated account", func(t *testing.T) {
		student := users.students["2024001"]
		student.User.IsActive = false
		users.students["2024001"] = student

		_, err := svc.LoginStudent(context.Background(), "2024001", "rahasia123")
		assert.ErrorIs(t, err, ErrAccountInactive)
	})
}

func TestAuthServiceLoginStaff(t *testing.T) {
	svc, users := newTestAuthService()

	_, err := svc.SignupStaff(context.Background(), domain.Staff{
		StallID: 1,
		User:    domain.User{Email: "siti@example.com", Password: "rahasia123"},
	})
	require.NoError(t, err)

	t.Run("returns the stall scope for staff", func(t *testing.T) {
		user, staff, err := svc.LoginStaff(context.Background(), "siti@example.com", "rahasia123")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleStaff, user.Role)
		require.NotNil(t, staff)
		assert.Equal(t, uint(1), staff.StallID)
	})

	t.Run("rejects a student account", func(t *testing.T) {
		_, err := svc.SignupStudent(context.Background(), domain.Student{
			StudentNumber: "2024002",
			User:          domain.User{Email: "andi@example.com", Password: "rahasia123"},
		})
		require.NoError(t, err)

		_, _, err = svc.LoginStaff(context.Background(), "andi@example.com", "rahasia123")
		assert.ErrorIs(t, err, ErrNotStaffAccount)
	})

	t.Run("no stall scope for admin", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("adminpass1"), bcrypt.DefaultCost)
		require.NoError(t, err)
		users.users["admin@example.com"] = domain.User{
			ID:       100,
			Email:    "admin@example.com",
			Password: string(hash),
			Role:     domain.RoleAdmin,
			IsActive: true,
		}

		user, staff, err := svc.LoginStaff(context.Background(), "admin@example.com", "adminpass1")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, user.Role)
		assert.Nil(t, staff)
	})
}
