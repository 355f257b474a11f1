package service

import (
	"context"
	"fmt"

	"github.com/hanifz/kantin-api/internal/domain"
	"github.com/hanifz/kantin-api/internal/repository"
)

var (
	ErrStallNotFound  = repository.ErrStallNotFound
	ErrStallHasOrders = repository.ErrStallHasOrders
)

type StallRepository interface {
	Create(ctx context.Context, stall domain.Stall) (domain.Stall, error)
	FindByID(ctx context.Context, id uint) (domain.Stall, error)
	FindAll(ctx context.Context) ([]domain.Stall, error)
	Update(ctx context.Context, stall domain.Stall) (domain.Stall, error)
	Delete(ctx context.Context, id uint) error
}

type StallService struct {
	repo StallRepository
}

func NewStallService(repo StallRepository) *StallService {
	return &StallService{
		repo: repo,
	}
}

func (s *StallService) Create(ctx context.Context, stall domain.Stall) (domain.Stall, error) {
	created, err := s.repo.Create(ctx, stall)
	if err != nil {
		return domain.Stall{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *StallService) List(ctx context.Context) ([]domain.Stall, error) {
	stalls, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return stalls, nil
}

func (s *StallService) Update(ctx context.Context, stall domain.Stall) (domain.Stall, error) {
	updated, err := s.repo.Update(ctx, stall)
	if err != nil {
		return domain.Stall{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// Delete refuses to remove a stall with any historical order. Staff
// accounts should be deactivated instead in that case.
func (s *StallService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
