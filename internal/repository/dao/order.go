package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrNotOrderOwner = errors.New("order belongs to another student")
	ErrOrderLocked   = errors.New("order has already been processed by the stall")
)

type Order struct {
	ID uint `gorm:"primaryKey"`

	StudentID uint    `gorm:"not null;index"`
	Student   Student `gorm:"foreignKey:StudentID"`
	StallID   uint    `gorm:"not null;index"`
	Stall     Stall   `gorm:"foreignKey:StallID"`

	Status    string    `gorm:"not null"`
	OrderedAt time.Time `gorm:"not null"`

	Lines []OrderLine `gorm:"foreignKey:OrderID"`
}

type OrderLine struct {
	ID uint `gorm:"primaryKey"`

	OrderID uint `gorm:"not null;index"`
	MenuID  uint `gorm:"not null"`
	Menu    Menu `gorm:"foreignKey:MenuID"`

	Quantity  int     `gorm:"not null"`
	UnitPrice float64 `gorm:"not null"` // frozen at checkout, discount applied
}

type OrderDAO struct {
	db *gorm.DB
}

func NewOrderDAO(db *gorm.DB) *OrderDAO {
	return &OrderDAO{
		db: db,
	}
}

// Insert writes the order header and all its lines in one transaction.
// Either the whole order lands or nothing does.
func (d *OrderDAO) Insert(ctx context.Context, order Order, lines []OrderLine) (Order, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(&order); result.Error != nil {
			return result.Error
		}

		for i := range lines {
			lines[i].OrderID = order.ID
		}

		return tx.Create(&lines).Error
	})
	if err != nil {
		return Order{}, err
	}

	order.Lines = lines

	return order, nil
}

// ReplaceLines wipes and rewrites the order's lines. Ownership and status
// are re-read inside the transaction so a concurrent confirmation cannot
// slip in between the check and the write.
func (d *OrderDAO) ReplaceLines(ctx context.Context, orderID, studentID uint, lines []OrderLine) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := lockUnconfirmed(tx, orderID, studentID)
		if err != nil {
			return err
		}

		if result := tx.Where("order_id = ?", order.ID).Delete(&OrderLine{}); result.Error != nil {
			return result.Error
		}

		for i := range lines {
			lines[i].OrderID = order.ID
		}

		return tx.Create(&lines).Error
	})
}

// Delete cancels an order: lines first, then the header, same transaction.
func (d *OrderDAO) Delete(ctx context.Context, orderID, studentID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := lockUnconfirmed(tx, orderID, studentID)
		if err != nil {
			return err
		}

		if result := tx.Where("order_id = ?", order.ID).Delete(&OrderLine{}); result.Error != nil {
			return result.Error
		}

		return tx.Delete(&Order{}, order.ID).Error
	})
}

func lockUnconfirmed(tx *gorm.DB, orderID, studentID uint) (Order, error) {
	var order Order
	if result := tx.First(&order, orderID); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Order{}, ErrOrderNotFound
		}

		return Order{}, result.Error
	}

	if order.StudentID != studentID {
		return Order{}, ErrNotOrderOwner
	}
	if order.Status != "unconfirmed" {
		return Order{}, ErrOrderLocked
	}

	return order, nil
}

func (d *OrderDAO) FindByID(ctx context.Context, id uint) (Order, error) {
	var order Order

	result := d.db.WithContext(ctx).
		Preload("Student").
		Preload("Stall").
		Preload("Lines.Menu").
		First(&order, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Order{}, ErrOrderNotFound
		}

		return Order{}, result.Error
	}

	return order, nil
}

func (d *OrderDAO) UpdateStatus(ctx context.Context, id uint, status string) (Order, error) {
	result := d.db.WithContext(ctx).Model(&Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return Order{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Order{}, ErrOrderNotFound
	}

	return d.FindByID(ctx, id)
}

// FindByStudent returns a student's orders, newest first, optionally
// bounded to a time window.
func (d *OrderDAO) FindByStudent(ctx context.Context, studentID uint, from, to *time.Time) ([]Order, error) {
	return d.findOrders(ctx, "student_id = ?", studentID, from, to)
}

func (d *OrderDAO) FindByStall(ctx context.Context, stallID uint, from, to *time.Time) ([]Order, error) {
	return d.findOrders(ctx, "stall_id = ?", stallID, from, to)
}

func (d *OrderDAO) findOrders(ctx context.Context, cond string, id uint, from, to *time.Time) ([]Order, error) {
	query := d.db.WithContext(ctx).
		Where(cond, id).
		Preload("Student").
		Preload("Stall").
		Preload("Lines.Menu").
		Order("ordered_at DESC")

	if from != nil && to != nil {
		query = query.Where("ordered_at BETWEEN ? AND ?", *from, *to)
	}

	var orders []Order
	if result := query.Find(&orders); result.Error != nil {
		return nil, result.Error
	}

	return orders, nil
}
