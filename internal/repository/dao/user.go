package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrUserEmailExists     = errors.New("email already in use")
	ErrStudentNumberExists = errors.New("student number already in use")
	ErrUserNotFound        = errors.New("user not found")
	ErrStudentNotFound     = errors.New("student not found")
	ErrStaffNotFound       = errors.New("staff not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Username string `gorm:"not null"`
	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	Role     string `gorm:"not null"` // "admin", "staff" or "student"
	IsActive bool   `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Student struct {
	ID uint `gorm:"primaryKey"`

	StudentNumber string `gorm:"unique;not null"`
	Name          string `gorm:"not null"`
	Address       string
	Phone         string
	Photo         string

	UserID uint `gorm:"not null;uniqueIndex"`
	User   User `gorm:"foreignKey:UserID"`
}

type Staff struct {
	ID uint `gorm:"primaryKey"`

	Name    string `gorm:"not null"`
	Address string
	Phone   string
	Photo   string

	UserID  uint  `gorm:"not null;uniqueIndex"`
	User    User  `gorm:"foreignKey:UserID"`
	StallID uint  `gorm:"not null"`
	Stall   Stall `gorm:"foreignKey:StallID"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

// InsertStudent creates the account and the student profile in one
// transaction so a uniqueness failure leaves nothing behind.
func (d *UserDAO) InsertStudent(ctx context.Context, user User, student Student) (Student, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(&user); result.Error != nil {
			return mapUniqueViolation(result.Error)
		}

		student.UserID = user.ID
		if result := tx.Create(&student); result.Error != nil {
			return mapUniqueViolation(result.Error)
		}

		return nil
	})
	if err != nil {
		return Student{}, err
	}

	student.User = user

	return student, nil
}

func (d *UserDAO) InsertStaff(ctx context.Context, user User, staff Staff) (Staff, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(&user); result.Error != nil {
			return mapUniqueViolation(result.Error)
		}

		staff.UserID = user.ID
		if result := tx.Create(&staff); result.Error != nil {
			return mapUniqueViolation(result.Error)
		}

		return nil
	})
	if err != nil {
		return Staff{}, err
	}

	staff.User = user

	return staff, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindStudentByID(ctx context.Context, id uint) (Student, error) {
	var student Student

	result := d.db.WithContext(ctx).Preload("User").First(&student, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Student{}, ErrStudentNotFound
		}

		return Student{}, result.Error
	}

	return student, nil
}

func (d *UserDAO) FindStudentByNumber(ctx context.Context, studentNumber string) (Student, error) {
	var student Student

	result := d.db.WithContext(ctx).Preload("User").First(&student, "student_number = ?", studentNumber)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Student{}, ErrStudentNotFound
		}

		return Student{}, result.Error
	}

	return student, nil
}

func (d *UserDAO) FindActiveStudents(ctx context.Context) ([]Student, error) {
	var students []Student

	result := d.db.WithContext(ctx).
		Joins("JOIN users ON users.id = students.user_id").
		Where("users.is_active = ?", true).
		Preload("User").
		Find(&students)
	if result.Error != nil {
		return nil, result.Error
	}

	return students, nil
}

func (d *UserDAO) FindStaffByID(ctx context.Context, id uint) (Staff, error) {
	var staff Staff

	result := d.db.WithContext(ctx).Preload("User").Preload("Stall").First(&staff, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Staff{}, ErrStaffNotFound
		}

		return Staff{}, result.Error
	}

	return staff, nil
}

func (d *UserDAO) FindStaffByUserID(ctx context.Context, userID uint) (Staff, error) {
	var staff Staff

	result := d.db.WithContext(ctx).Preload("User").Preload("Stall").First(&staff, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Staff{}, ErrStaffNotFound
		}

		return Staff{}, result.Error
	}

	return staff, nil
}

func (d *UserDAO) FindAllStaff(ctx context.Context) ([]Staff, error) {
	var staff []Staff

	result := d.db.WithContext(ctx).Preload("User").Preload("Stall").Find(&staff)
	if result.Error != nil {
		return nil, result.Error
	}

	return staff, nil
}

// UpdateStudent rewrites the profile and the mutable account fields in one
// transaction. The update is partial: empty fields are left untouched, so a
// password-only request never wipes the student number or name.
func (d *UserDAO) UpdateStudent(ctx context.Context, student Student, user User) (Student, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current Student
		if result := tx.First(&current, student.ID); result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}

			return result.Error
		}

		updates := map[string]interface{}{}
		if student.StudentNumber != "" {
			updates["student_number"] = student.StudentNumber
		}
		if student.Name != "" {
			updates["name"] = student.Name
		}
		if student.Address != "" {
			updates["address"] = student.Address
		}
		if student.Phone != "" {
			updates["phone"] = student.Phone
		}
		if student.Photo != "" {
			updates["photo"] = student.Photo
		}
		if len(updates) > 0 {
			if result := tx.Model(&Student{}).Where("id = ?", student.ID).Updates(updates); result.Error != nil {
				return mapUniqueViolation(result.Error)
			}
		}

		userUpdates := map[string]interface{}{}
		if user.Username != "" {
			userUpdates["username"] = user.Username
		}
		if user.Email != "" {
			userUpdates["email"] = user.Email
		}
		if user.Password != "" {
			userUpdates["password"] = user.Password
		}
		if len(userUpdates) > 0 {
			if result := tx.Model(&User{}).Where("id = ?", current.UserID).Updates(userUpdates); result.Error != nil {
				return mapUniqueViolation(result.Error)
			}
		}

		return nil
	})
	if err != nil {
		return Student{}, err
	}

	return d.FindStudentByID(ctx, student.ID)
}

func (d *UserDAO) UpdateStaff(ctx context.Context, staff Staff, user User) (Staff, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current Staff
		if result := tx.First(&current, staff.ID); result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrStaffNotFound
			}

			return result.Error
		}

		updates := map[string]interface{}{}
		if staff.Name != "" {
			updates["name"] = staff.Name
		}
		if staff.Address != "" {
			updates["address"] = staff.Address
		}
		if staff.Phone != "" {
			updates["phone"] = staff.Phone
		}
		if staff.Photo != "" {
			updates["photo"] = staff.Photo
		}
		if staff.StallID != 0 {
			updates["stall_id"] = staff.StallID
		}
		if len(updates) > 0 {
			if result := tx.Model(&Staff{}).Where("id = ?", staff.ID).Updates(updates); result.Error != nil {
				return result.Error
			}
		}

		userUpdates := map[string]interface{}{}
		if user.Username != "" {
			userUpdates["username"] = user.Username
		}
		if user.Email != "" {
			userUpdates["email"] = user.Email
		}
		if user.Password != "" {
			userUpdates["password"] = user.Password
		}
		if len(userUpdates) > 0 {
			if result := tx.Model(&User{}).Where("id = ?", current.UserID).Updates(userUpdates); result.Error != nil {
				return mapUniqueViolation(result.Error)
			}
		}

		return nil
	})
	if err != nil {
		return Staff{}, err
	}

	return d.FindStaffByID(ctx, staff.ID)
}

// Deactivate soft-deletes the account. Rows are never physically removed
// once an account exists, so historical orders keep resolving.
func (d *UserDAO) Deactivate(ctx context.Context, userID uint) error {
	result := d.db.WithContext(ctx).Model(&User{}).Where("id = ?", userID).Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		switch {
		case strings.Contains(pgErr.Message, `unique constraint "uni_users_email"`):
			return ErrUserEmailExists
		case strings.Contains(pgErr.Message, `unique constraint "uni_students_student_number"`):
			return ErrStudentNumberExists
		}
	}

	return err
}
