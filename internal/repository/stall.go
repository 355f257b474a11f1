package repository

import (
	"context"
	"fmt"

	"github.com/hanifz/kantin-api/internal/domain"
	"github.com/hanifz/kantin-api/internal/repository/dao"
)

var (
	ErrStallNotFound  = dao.ErrStallNotFound
	ErrStallHasOrders = dao.ErrStallHasOrders
)

type StallDAO interface {
	Insert(ctx context.Context, stall dao.Stall) (dao.Stall, error)
	FindByID(ctx context.Context, id uint) (dao.Stall, error)
	FindAll(ctx context.Context) ([]dao.Stall, error)
	Update(ctx context.Context, stall dao.Stall) (dao.Stall, error)
	Delete(ctx context.Context, id uint) error
}

type StallRepository struct {
	dao StallDAO
}

func NewStallRepository(dao StallDAO) *StallRepository {
	return &StallRepository{
		dao: dao,
	}
}

func (r *StallRepository) Create(ctx context.Context, stall domain.Stall) (domain.Stall, error) {
	created, err := r.dao.Insert(ctx, dao.Stall{Name: stall.Name})
	if err != nil {
		return domain.Stall{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *StallRepository) FindByID(ctx context.Context, id uint) (domain.Stall, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Stall{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *StallRepository) FindAll(ctx context.Context) ([]domain.Stall, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	stalls := make([]domain.Stall, len(found))
	for i, s := range found {
		stalls[i] = r.daoToDomain(s)
	}

	return stalls, nil
}

func (r *StallRepository) Update(ctx context.Context, stall domain.Stall) (domain.Stall, error) {
	updated, err := r.dao.Update(ctx, dao.Stall{ID: stall.ID, Name: stall.Name})
	if err != nil {
		return domain.Stall{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *StallRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *StallRepository) daoToDomain(s dao.Stall) domain.Stall {
	stall := domain.Stall{
		ID:        s.ID,
		Name:      s.Name,
		MenuCount: len(s.Menus),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}

	for _, staff := range s.Staff {
		stall.Staff = append(stall.Staff, domain.Staff{
			ID:      staff.ID,
			Name:    staff.Name,
			Phone:   staff.Phone,
			StallID: staff.StallID,
		})
	}

	return stall
}
