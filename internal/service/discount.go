package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hanifz/kantin-api/internal/domain"
	"github.com/hanifz/kantin-api/internal/repository"
)

var (
	ErrDiscountNotFound = repository.ErrDiscountNotFound
	ErrInvalidDateRange = errors.New("end date must not be before start date")
)

type DiscountRepository interface {
	Create(ctx context.Context, discount domain.Discount) (domain.Discount, error)
	FindByID(ctx context.Context, id uint) (domain.Discount, error)
	Update(ctx context.Context, discount domain.Discount) (domain.Discount, error)
	Delete(ctx context.Context, id uint) error
	Assign(ctx context.Context, discountID uint, menuIDs []uint) error
	Unassign(ctx context.Context, discountID, menuID uint) error
	FindActiveAssignments(ctx context.Context, now time.Time) ([]repository.ActiveAssignment, error)
}

// DiscountedMenu is the read model for the public "discounted today"
// listing, with the final price already computed.
type DiscountedMenu struct {
	MenuID        uint    `json:"menu_id"`
	MenuName      string  `json:"menu_name"`
	OriginalPrice float64 `json:"original_price"`
	DiscountName  string  `json:"discount_name"`
	Percentage    float64 `json:"percentage"`
	FinalPrice    float64 `json:"final_price"`
}

type DiscountService struct {
	repo DiscountRepository
	now  func() time.Time
}

func NewDiscountService(repo DiscountRepository) *DiscountService {
	return &DiscountService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *DiscountService) Create(ctx context.Context, discount domain.Discount) (domain.Discount, error) {
	if discount.EndsAt.Before(discount.StartsAt) {
		return domain.Discount{}, ErrInvalidDateRange
	}

	created, err := s.repo.Create(ctx, discount)
	if err != nil {
		return domain.Discount{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Update is partial: zero fields keep their stored values, and the
// effective window is validated after merging.
func (s *DiscountService) Update(ctx context.Context, discount domain.Discount) (domain.Discount, error) {
	current, err := s.repo.FindByID(ctx, discount.ID)
	if err != nil {
		return domain.Discount{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if discount.Name == "" {
		discount.Name = current.Name
	}
	if discount.Percentage == 0 {
		discount.Percentage = current.Percentage
	}
	if discount.StartsAt.IsZero() {
		discount.StartsAt = current.StartsAt
	}
	if discount.EndsAt.IsZero() {
		discount.EndsAt = current.EndsAt
	}

	if discount.EndsAt.Before(discount.StartsAt) {
		return domain.Discount{}, ErrInvalidDateRange
	}

	updated, err := s.repo.Update(ctx, discount)
	if err != nil {
		return domain.Discount{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *DiscountService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *DiscountService) AssignMenus(ctx context.Context, discountID uint, menuIDs []uint) error {
	if _, err := s.repo.FindByID(ctx, discountID); err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := s.repo.Assign(ctx, discountID, menuIDs); err != nil {
		return fmt.Errorf("s.repo.Assign -> %w", err)
	}

	return nil
}

func (s *DiscountService) UnassignMenu(ctx context.Context, discountID, menuID uint) error {
	if err := s.repo.Unassign(ctx, discountID, menuID); err != nil {
		return fmt.Errorf("s.repo.Unassign -> %w", err)
	}

	return nil
}

func (s *DiscountService) ListActive(ctx context.Context) ([]DiscountedMenu, error) {
	assignments, err := s.repo.FindActiveAssignments(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindActiveAssignments -> %w", err)
	}

	discounted := make([]DiscountedMenu, len(assignments))
	for i, a := range assignments {
		discounted[i] = DiscountedMenu{
			MenuID:        a.Menu.ID,
			MenuName:      a.Menu.Name,
			OriginalPrice: a.Menu.Price,
			DiscountName:  a.Discount.Name,
			Percentage:    a.Discount.Percentage,
			FinalPrice:    a.Discount.Apply(a.Menu.Price),
		}
	}

	return discounted, nil
}
