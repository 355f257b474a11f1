package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrDiscountNotFound = errors.New("discount not found")

type Discount struct {
	ID uint `gorm:"primaryKey"`

	Name       string    `gorm:"not null"`
	Percentage float64   `gorm:"not null"`
	StartsAt   time.Time `gorm:"not null"`
	EndsAt     time.Time `gorm:"not null"`
}

// MenuDiscount is the many-to-many join between catalog items and
// discounts. A (menu, discount) pair appears at most once.
type MenuDiscount struct {
	ID uint `gorm:"primaryKey"`

	MenuID     uint     `gorm:"not null;uniqueIndex:idx_menu_discount"`
	Menu       Menu     `gorm:"foreignKey:MenuID"`
	DiscountID uint     `gorm:"not null;uniqueIndex:idx_menu_discount"`
	Discount   Discount `gorm:"foreignKey:DiscountID"`
}

type DiscountDAO struct {
	db *gorm.DB
}

func NewDiscountDAO(db *gorm.DB) *DiscountDAO {
	return &DiscountDAO{
		db: db,
	}
}

func (d *DiscountDAO) Insert(ctx context.Context, discount Discount) (Discount, error) {
	result := d.db.WithContext(ctx).Create(&discount)
	if result.Error != nil {
		return Discount{}, result.Error
	}

	return discount, nil
}

func (d *DiscountDAO) FindByID(ctx context.Context, id uint) (Discount, error) {
	var discount Discount

	result := d.db.WithContext(ctx).First(&discount, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Discount{}, ErrDiscountNotFound
		}

		return Discount{}, result.Error
	}

	return discount, nil
}

func (d *DiscountDAO) Update(ctx context.Context, discount Discount) (Discount, error) {
	result := d.db.WithContext(ctx).Model(&Discount{}).Where("id = ?", discount.ID).Updates(map[string]interface{}{
		"name":       discount.Name,
		"percentage": discount.Percentage,
		"starts_at":  discount.StartsAt,
		"ends_at":    discount.EndsAt,
	})
	if result.Error != nil {
		return Discount{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Discount{}, ErrDiscountNotFound
	}

	return d.FindByID(ctx, discount.ID)
}

// Delete removes the discount after detaching it from every menu item,
// both steps in one transaction.
func (d *DiscountDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var discount Discount
		if result := tx.First(&discount, id); result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrDiscountNotFound
			}

			return result.Error
		}

		if result := tx.Where("discount_id = ?", id).Delete(&MenuDiscount{}); result.Error != nil {
			return result.Error
		}

		return tx.Delete(&Discount{}, id).Error
	})
}

// Assign attaches a discount to the given menu items. Pairs that already
// exist are silently skipped.
func (d *DiscountDAO) Assign(ctx context.Context, discountID uint, menuIDs []uint) error {
	joins := make([]MenuDiscount, 0, len(menuIDs))
	for _, menuID := range menuIDs {
		joins = append(joins, MenuDiscount{
			MenuID:     menuID,
			DiscountID: discountID,
		})
	}

	return d.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&joins).Error
}

func (d *DiscountDAO) Unassign(ctx context.Context, discountID, menuID uint) error {
	return d.db.WithContext(ctx).
		Where("discount_id = ? AND menu_id = ?", discountID, menuID).
		Delete(&MenuDiscount{}).Error
}

// FindActiveAssignments returns every (menu, discount) pair whose window
// contains now. Ordered so the result is stable across calls.
func (d *DiscountDAO) FindActiveAssignments(ctx context.Context, now time.Time) ([]MenuDiscount, error) {
	var joins []MenuDiscount

	result := d.db.WithContext(ctx).
		Joins("JOIN discounts ON discounts.id = menu_discounts.discount_id").
		Where("discounts.starts_at <= ? AND discounts.ends_at >= ?", now, now).
		Order("menu_discounts.menu_id, menu_discounts.discount_id").
		Preload("Menu").
		Preload("Discount").
		Find(&joins)
	if result.Error != nil {
		return nil, result.Error
	}

	return joins, nil
}

// FindActiveForMenu returns the discounts applying to one item right now.
func (d *DiscountDAO) FindActiveForMenu(ctx context.Context, menuID uint, now time.Time) ([]Discount, error) {
	var discounts []Discount

	result := d.db.WithContext(ctx).
		Joins("JOIN menu_discounts ON menu_discounts.discount_id = discounts.id").
		Where("menu_discounts.menu_id = ?", menuID).
		Where("discounts.starts_at <= ? AND discounts.ends_at >= ?", now, now).
		Find(&discounts)
	if result.Error != nil {
		return nil, result.Error
	}

	return discounts, nil
}
