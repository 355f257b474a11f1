package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrStallNotFound  = errors.New("stall not found")
	ErrStallHasOrders = errors.New("stall has historical orders and cannot be deleted")
)

type Stall struct {
	ID uint `gorm:"primaryKey"`

	Name string `gorm:"not null"`

	Staff []Staff `gorm:"foreignKey:StallID"`
	Menus []Menu  `gorm:"foreignKey:StallID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type StallDAO struct {
	db *gorm.DB
}

func NewStallDAO(db *gorm.DB) *StallDAO {
	return &StallDAO{
		db: db,
	}
}

func (d *StallDAO) Insert(ctx context.Context, stall Stall) (Stall, error) {
	result := d.db.WithContext(ctx).Create(&stall)
	if result.Error != nil {
		return Stall{}, result.Error
	}

	return stall, nil
}

func (d *StallDAO) FindByID(ctx context.Context, id uint) (Stall, error) {
	var stall Stall

	result := d.db.WithContext(ctx).First(&stall, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Stall{}, ErrStallNotFound
		}

		return Stall{}, result.Error
	}

	return stall, nil
}

func (d *StallDAO) FindAll(ctx context.Context) ([]Stall, error) {
	var stalls []Stall

	result := d.db.WithContext(ctx).Preload("Staff").Preload("Menus").Find(&stalls)
	if result.Error != nil {
		return nil, result.Error
	}

	return stalls, nil
}

func (d *StallDAO) Update(ctx context.Context, stall Stall) (Stall, error) {
	result := d.db.WithContext(ctx).Model(&Stall{}).Where("id = ?", stall.ID).Update("name", stall.Name)
	if result.Error != nil {
		return Stall{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Stall{}, ErrStallNotFound
	}

	return d.FindByID(ctx, stall.ID)
}

// Delete removes a stall, guarded by the referential check against
// historical orders. The check and the delete share a transaction.
func (d *StallDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stall Stall
		if result := tx.First(&stall, id); result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrStallNotFound
			}

			return result.Error
		}

		var orderCount int64
		if result := tx.Model(&Order{}).Where("stall_id = ?", id).Count(&orderCount); result.Error != nil {
			return result.Error
		}
		if orderCount > 0 {
			return ErrStallHasOrders
		}

		return tx.Delete(&Stall{}, id).Error
	})
}
