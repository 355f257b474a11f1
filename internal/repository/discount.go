package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/hanifz/kantin-api/internal/domain"
	"github.com/hanifz/kantin-api/internal/repository/dao"
)

var ErrDiscountNotFound = dao.ErrDiscountNotFound

type DiscountDAO interface {
	Insert(ctx context.Context, discount dao.Discount) (dao.Discount, error)
	FindByID(ctx context.Context, id uint) (dao.Discount, error)
	Update(ctx context.Context, discount dao.Discount) (dao.Discount, error)
	Delete(ctx context.Context, id uint) error
	Assign(ctx context.Context, discountID uint, menuIDs []uint) error
	Unassign(ctx context.Context, discountID, menuID uint) error
	FindActiveAssignments(ctx context.Context, now time.Time) ([]dao.MenuDiscount, error)
	FindActiveForMenu(ctx context.Context, menuID uint, now time.Time) ([]dao.Discount, error)
}

// ActiveAssignment pairs a catalog item with one of its currently active
// discounts, for the public "what is discounted today" listing.
type ActiveAssignment struct {
	Menu     domain.Menu
	Discount domain.Discount
}

type DiscountRepository struct {
	dao DiscountDAO
}

func NewDiscountRepository(dao DiscountDAO) *DiscountRepository {
	return &DiscountRepository{
		dao: dao,
	}
}

func (r *DiscountRepository) Create(ctx context.Context, discount domain.Discount) (domain.Discount, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(discount))
	if err != nil {
		return domain.Discount{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *DiscountRepository) FindByID(ctx context.Context, id uint) (domain.Discount, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Discount{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *DiscountRepository) Update(ctx context.Context, discount domain.Discount) (domain.Discount, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(discount))
	if err != nil {
		return domain.Discount{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *DiscountRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *DiscountRepository) Assign(ctx context.Context, discountID uint, menuIDs []uint) error {
	if err := r.dao.Assign(ctx, discountID, menuIDs); err != nil {
		return fmt.Errorf("r.dao.Assign -> %w", err)
	}

	return nil
}

func (r *DiscountRepository) Unassign(ctx context.Context, discountID, menuID uint) error {
	if err := r.dao.Unassign(ctx, discountID, menuID); err != nil {
		return fmt.Errorf("r.dao.Unassign -> %w", err)
	}

	return nil
}

func (r *DiscountRepository) FindActiveAssignments(ctx context.Context, now time.Time) ([]ActiveAssignment, error) {
	joins, err := r.dao.FindActiveAssignments(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActiveAssignments -> %w", err)
	}

	assignments := make([]ActiveAssignment, len(joins))
	for i, j := range joins {
		assignments[i] = ActiveAssignment{
			Menu: domain.Menu{
				ID:          j.Menu.ID,
				Name:        j.Menu.Name,
				Price:       j.Menu.Price,
				Category:    j.Menu.Category,
				Photo:       j.Menu.Photo,
				IsAvailable: j.Menu.IsAvailable,
				StallID:     j.Menu.StallID,
			},
			Discount: r.daoToDomain(j.Discount),
		}
	}

	return assignments, nil
}

func (r *DiscountRepository) FindActiveForMenu(ctx context.Context, menuID uint, now time.Time) ([]domain.Discount, error) {
	found, err := r.dao.FindActiveForMenu(ctx, menuID, now)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActiveForMenu -> %w", err)
	}

	discounts := make([]domain.Discount, len(found))
	for i, d := range found {
		discounts[i] = r.daoToDomain(d)
	}

	return discounts, nil
}

func (r *DiscountRepository) domainToDao(d domain.Discount) dao.Discount {
	return dao.Discount{
		ID:         d.ID,
		Name:       d.Name,
		Percentage: d.Percentage,
		StartsAt:   d.StartsAt,
		EndsAt:     d.EndsAt,
	}
}

func (r *DiscountRepository) daoToDomain(d dao.Discount) domain.Discount {
	return domain.Discount{
		ID:         d.ID,
		Name:       d.Name,
		Percentage: d.Percentage,
		StartsAt:   d.StartsAt,
		EndsAt:     d.EndsAt,
	}
}
