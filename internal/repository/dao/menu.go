package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrMenuNotFound = errors.New("menu not found")

type Menu struct {
	ID uint `gorm:"primaryKey"`

	Name        string  `gorm:"not null"`
	Price       float64 `gorm:"not null"`
	Category    string  `gorm:"not null"` // "food" or "drink"
	Description string
	Photo       string
	IsAvailable bool `gorm:"not null;default:true"`

	StallID uint  `gorm:"not null;index"`
	Stall   Stall `gorm:"foreignKey:StallID"`
}

type MenuDAO struct {
	db *gorm.DB
}

func NewMenuDAO(db *gorm.DB) *MenuDAO {
	return &MenuDAO{
		db: db,
	}
}

func (d *MenuDAO) Insert(ctx context.Context, menu Menu) (Menu, error) {
	result := d.db.WithContext(ctx).Create(&menu)
	if result.Error != nil {
		return Menu{}, result.Error
	}

	return menu, nil
}

func (d *MenuDAO) FindByID(ctx context.Context, id uint) (Menu, error) {
	var menu Menu

	result := d.db.WithContext(ctx).Preload("Stall").First(&menu, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Menu{}, ErrMenuNotFound
		}

		return Menu{}, result.Error
	}

	return menu, nil
}

// FindAvailable lists items still on sale, optionally scoped to one stall.
func (d *MenuDAO) FindAvailable(ctx context.Context, stallID *uint) ([]Menu, error) {
	var menus []Menu

	query := d.db.WithContext(ctx).Preload("Stall").Where("is_available = ?", true)
	if stallID != nil {
		query = query.Where("stall_id = ?", *stallID)
	}

	result := query.Find(&menus)
	if result.Error != nil {
		return nil, result.Error
	}

	return menus, nil
}

func (d *MenuDAO) Update(ctx context.Context, menu Menu) (Menu, error) {
	updates := map[string]interface{}{
		"name":        menu.Name,
		"price":       menu.Price,
		"category":    menu.Category,
		"description": menu.Description,
		"stall_id":    menu.StallID,
	}
	if menu.Photo != "" {
		updates["photo"] = menu.Photo
	}

	result := d.db.WithContext(ctx).Model(&Menu{}).Where("id = ?", menu.ID).Updates(updates)
	if result.Error != nil {
		return Menu{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Menu{}, ErrMenuNotFound
	}

	return d.FindByID(ctx, menu.ID)
}

// Deactivate is the only deletion mechanism for menu items. The row stays
// so order lines pointing at it remain valid forever.
func (d *MenuDAO) Deactivate(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Model(&Menu{}).Where("id = ?", id).Update("is_available", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMenuNotFound
	}

	return nil
}
