package repository

import (
	"context"
	"fmt"

	"github.com/hanifz/kantin-api/internal/domain"
	"github.com/hanifz/kantin-api/internal/repository/dao"
)

var (
	ErrUserEmailExists     = dao.ErrUserEmailExists
	ErrStudentNumberExists = dao.ErrStudentNumberExists
	ErrUserNotFound        = dao.ErrUserNotFound
	ErrStudentNotFound     = dao.ErrStudentNotFound
	ErrStaffNotFound       = dao.ErrStaffNotFound
)

type UserDAO interface {
	InsertStudent(ctx context.Context, user dao.User, student dao.Student) (dao.Student, error)
	InsertStaff(ctx context.Context, user dao.User, staff dao.Staff) (dao.Staff, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindStudentByID(ctx context.Context, id uint) (dao.Student, error)
	FindStudentByNumber(ctx context.Context, studentNumber string) (dao.Student, error)
	FindActiveStudents(ctx context.Context) ([]dao.Student, error)
	FindStaffByID(ctx context.Context, id uint) (dao.Staff, error)
	FindStaffByUserID(ctx context.Context, userID uint) (dao.Staff, error)
	FindAllStaff(ctx context.Context) ([]dao.Staff, error)
	UpdateStudent(ctx context.Context, student dao.Student, user dao.User) (dao.Student, error)
	UpdateStaff(ctx context.Context, staff dao.Staff, user dao.User) (dao.Staff, error)
	Deactivate(ctx context.Context, userID uint) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) CreateStudent(ctx context.Context, student domain.Student) (domain.Student, error) {
	daoUser := dao.User{
		Username: student.User.Username,
		Email:    student.User.Email,
		Password: student.User.Password,
		Role:     domain.RoleStudent,
		IsActive: true,
	}

	daoStudent := dao.Student{
		StudentNumber: student.StudentNumber,
		Name:          student.Name,
		Address:       student.Address,
		Phone:         student.Phone,
		Photo:         student.Photo,
	}

	created, err := r.dao.InsertStudent(ctx, daoUser, daoStudent)
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.InsertStudent -> %w", err)
	}

	return r.studentDaoToDomain(created), nil
}

func (r *UserRepository) CreateStaff(ctx context.Context, staff domain.Staff) (domain.Staff, error) {
	daoUser := dao.User{
		Username: staff.User.Username,
		Email:    staff.User.Email,
		Password: staff.User.Password,
		Role:     domain.RoleStaff,
		IsActive: true,
	}

	daoStaff := dao.Staff{
		Name:    staff.Name,
		Address: staff.Address,
		Phone:   staff.Phone,
		Photo:   staff.Photo,
		StallID: staff.StallID,
	}

	created, err := r.dao.InsertStaff(ctx, daoUser, daoStaff)
	if err != nil {
		return domain.Staff{}, fmt.Errorf("r.dao.InsertStaff -> %w", err)
	}

	return r.staffDaoToDomain(created), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindStudentByID(ctx context.Context, id uint) (domain.Student, error) {
	found, err := r.dao.FindStudentByID(ctx, id)
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.FindStudentByID -> %w", err)
	}

	return r.studentDaoToDomain(found), nil
}

func (r *UserRepository) FindStudentByNumber(ctx context.Context, studentNumber string) (domain.Student, error) {
	found, err := r.dao.FindStudentByNumber(ctx, studentNumber)
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.FindStudentByNumber -> %w", err)
	}

	return r.studentDaoToDomain(found), nil
}

func (r *UserRepository) FindActiveStudents(ctx context.Context) ([]domain.Student, error) {
	found, err := r.dao.FindActiveStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActiveStudents -> %w", err)
	}

	students := make([]domain.Student, len(found))
	for i, s := range found {
		students[i] = r.studentDaoToDomain(s)
	}

	return students, nil
}

func (r *UserRepository) FindStaffByID(ctx context.Context, id uint) (domain.Staff, error) {
	found, err := r.dao.FindStaffByID(ctx, id)
	if err != nil {
		return domain.Staff{}, fmt.Errorf("r.dao.FindStaffByID -> %w", err)
	}

	return r.staffDaoToDomain(found), nil
}

func (r *UserRepository) FindStaffByUserID(ctx context.Context, userID uint) (domain.Staff, error) {
	found, err := r.dao.FindStaffByUserID(ctx, userID)
	if err != nil {
		return domain.Staff{}, fmt.Errorf("r.dao.FindStaffByUserID -> %w", err)
	}

	return r.staffDaoToDomain(found), nil
}

func (r *UserRepository) FindAllStaff(ctx context.Context) ([]domain.Staff, error) {
	found, err := r.dao.FindAllStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllStaff -> %w", err)
	}

	staff := make([]domain.Staff, len(found))
	for i, s := range found {
		staff[i] = r.staffDaoToDomain(s)
	}

	return staff, nil
}

func (r *UserRepository) UpdateStudent(ctx context.Context, student domain.Student) (domain.Student, error) {
	daoStudent := dao.Student{
		ID:            student.ID,
		StudentNumber: student.StudentNumber,
		Name:          student.Name,
		Address:       student.Address,
		Phone:         student.Phone,
		Photo:         student.Photo,
	}
	daoUser := dao.User{
		Username: student.User.Username,
		Email:    student.User.Email,
		Password: student.User.Password,
	}

	updated, err := r.dao.UpdateStudent(ctx, daoStudent, daoUser)
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.UpdateStudent -> %w", err)
	}

	return r.studentDaoToDomain(updated), nil
}

func (r *UserRepository) UpdateStaff(ctx context.Context, staff domain.Staff) (domain.Staff, error) {
	daoStaff := dao.Staff{
		ID:      staff.ID,
		Name:    staff.Name,
		Address: staff.Address,
		Phone:   staff.Phone,
		Photo:   staff.Photo,
		StallID: staff.StallID,
	}
	daoUser := dao.User{
		Username: staff.User.Username,
		Email:    staff.User.Email,
		Password: staff.User.Password,
	}

	updated, err := r.dao.UpdateStaff(ctx, daoStaff, daoUser)
	if err != nil {
		return domain.Staff{}, fmt.Errorf("r.dao.UpdateStaff -> %w", err)
	}

	return r.staffDaoToDomain(updated), nil
}

func (r *UserRepository) Deactivate(ctx context.Context, userID uint) error {
	if err := r.dao.Deactivate(ctx, userID); err != nil {
		return fmt.Errorf("r.dao.Deactivate -> %w", err)
	}

	return nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *UserRepository) studentDaoToDomain(s dao.Student) domain.Student {
	return domain.Student{
		ID:            s.ID,
		StudentNumber: s.StudentNumber,
		Name:          s.Name,
		Address:       s.Address,
		Phone:         s.Phone,
		Photo:         s.Photo,
		User:          r.daoToDomain(s.User),
	}
}

func (r *UserRepository) staffDaoToDomain(s dao.Staff) domain.Staff {
	return domain.Staff{
		ID:        s.ID,
		Name:      s.Name,
		Address:   s.Address,
		Phone:     s.Phone,
		Photo:     s.Photo,
		StallID:   s.StallID,
		StallName: s.Stall.Name,
		User:      r.daoToDomain(s.User),
	}
}
