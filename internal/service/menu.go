package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hanifz/kantin-api/internal/domain"
	"github.com/hanifz/kantin-api/internal/repository"
)

var (
	ErrMenuNotFound  = repository.ErrMenuNotFound
	ErrNotMenuOwner  = errors.New("menu belongs to another stall")
	ErrStallRequired = errors.New("an admin must specify the target stall")
)

type MenuRepository interface {
	Create(ctx context.Context, menu domain.Menu) (domain.Menu, error)
	FindByID(ctx context.Context, id uint) (domain.Menu, error)
	FindAvailable(ctx context.Context, stallID *uint) ([]domain.Menu, error)
	Update(ctx context.Context, menu domain.Menu) (domain.Menu, error)
	Deactivate(ctx context.Context, id uint) error
}

type MenuService struct {
	repo MenuRepository
}

func NewMenuService(repo MenuRepository) *MenuService {
	return &MenuService{
		repo: repo,
	}
}

func (s *MenuService) ListAvailable(ctx context.Context, stallID *uint) ([]domain.Menu, error) {
	menus, err := s.repo.FindAvailable(ctx, stallID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAvailable -> %w", err)
	}

	return menus, nil
}

// Create pins a staff actor to their own stall; an admin must name one.
func (s *MenuService) Create(ctx context.Context, menu domain.Menu, actorRole string, actorStallID uint) (domain.Menu, error) {
	switch actorRole {
	case domain.RoleStaff:
		menu.StallID = actorStallID
	case domain.RoleAdmin:
		if menu.StallID == 0 {
			return domain.Menu{}, ErrStallRequired
		}
	}
	menu.IsAvailable = true

	created, err := s.repo.Create(ctx, menu)
	if err != nil {
		return domain.Menu{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Update enforces stall ownership for staff. Only an admin may move an
// item to a different stall.
func (s *MenuService) Update(ctx context.Context, menu domain.Menu, actorRole string, actorStallID uint) (domain.Menu, error) {
	current, err := s.repo.FindByID(ctx, menu.ID)
	if err != nil {
		return domain.Menu{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if actorRole == domain.RoleStaff && current.StallID != actorStallID {
		return domain.Menu{}, ErrNotMenuOwner
	}

	if actorRole != domain.RoleAdmin || menu.StallID == 0 {
		menu.StallID = current.StallID
	}
	menu.IsAvailable = current.IsAvailable

	updated, err := s.repo.Update(ctx, menu)
	if err != nil {
		return domain.Menu{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// Deactivate is the soft delete: the item disappears from the catalog but
// historical order lines keep pointing at it.
func (s *MenuService) Deactivate(ctx context.Context, id uint, actorRole string, actorStallID uint) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if actorRole == domain.RoleStaff && current.StallID != actorStallID {
		return ErrNotMenuOwner
	}

	if err = s.repo.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Deactivate -> %w", err)
	}

	return nil
}
