package repository

import (
	"context"
	"fmt"

	"github.com/hanifz/kantin-api/internal/domain"
	"github.com/hanifz/kantin-api/internal/repository/dao"
)

var ErrMenuNotFound = dao.ErrMenuNotFound

type MenuDAO interface {
	Insert(ctx context.Context, menu dao.Menu) (dao.Menu, error)
	FindByID(ctx context.Context, id uint) (dao.Menu, error)
	FindAvailable(ctx context.Context, stallID *uint) ([]dao.Menu, error)
	Update(ctx context.Context, menu dao.Menu) (dao.Menu, error)
	Deactivate(ctx context.Context, id uint) error
}

type MenuRepository struct {
	dao MenuDAO
}

func NewMenuRepository(dao MenuDAO) *MenuRepository {
	return &MenuRepository{
		dao: dao,
	}
}

func (r *MenuRepository) Create(ctx context.Context, menu domain.Menu) (domain.Menu, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(menu))
	if err != nil {
		return domain.Menu{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *MenuRepository) FindByID(ctx context.Context, id uint) (domain.Menu, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Menu{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *MenuRepository) FindAvailable(ctx context.Context, stallID *uint) ([]domain.Menu, error) {
	found, err := r.dao.FindAvailable(ctx, stallID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAvailable -> %w", err)
	}

	menus := make([]domain.Menu, len(found))
	for i, m := range found {
		menus[i] = r.daoToDomain(m)
	}

	return menus, nil
}

func (r *MenuRepository) Update(ctx context.Context, menu domain.Menu) (domain.Menu, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(menu))
	if err != nil {
		return domain.Menu{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *MenuRepository) Deactivate(ctx context.Context, id uint) error {
	if err := r.dao.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Deactivate -> %w", err)
	}

	return nil
}

func (r *MenuRepository) domainToDao(m domain.Menu) dao.Menu {
	return dao.Menu{
		ID:          m.ID,
		Name:        m.Name,
		Price:       m.Price,
		Category:    m.Category,
		Description: m.Description,
		Photo:       m.Photo,
		IsAvailable: m.IsAvailable,
		StallID:     m.StallID,
	}
}

func (r *MenuRepository) daoToDomain(m dao.Menu) domain.Menu {
	return domain.Menu{
		ID:          m.ID,
		Name:        m.Name,
		Price:       m.Price,
		Category:    m.Category,
		Description: m.Description,
		Photo:       m.Photo,
		IsAvailable: m.IsAvailable,
		StallID:     m.StallID,
		StallName:   m.Stall.Name,
	}
}
