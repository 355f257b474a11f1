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
	ErrOrderNotFound           = repository.ErrOrderNotFound
	ErrNotOrderOwner           = repository.ErrNotOrderOwner
	ErrOrderLocked             = repository.ErrOrderLocked
	ErrMenuWrongStall          = errors.New("menu item belongs to another stall")
	ErrNotStallStaff           = errors.New("order belongs to another stall")
	ErrInvalidStatus           = errors.New("unknown order status")
	ErrInvalidStatusTransition = errors.New("status transition not allowed")
)

// RequestedLine is one cart entry at checkout time. Pricing is resolved
// server-side from the current menu price and the best active discount.
type RequestedLine struct {
	MenuID   uint
	Quantity int
}

type OrderRepository interface {
	CreateWithLines(ctx context.Context, order domain.Order) (domain.Order, error)
	ReplaceLines(ctx context.Context, orderID, studentID uint, lines []domain.OrderLine) error
	Delete(ctx context.Context, orderID, studentID uint) error
	FindByID(ctx context.Context, id uint) (domain.Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status domain.OrderStatus) (domain.Order, error)
	FindByStudent(ctx context.Context, studentID uint, from, to *time.Time) ([]domain.Order, error)
	FindByStall(ctx context.Context, stallID uint, from, to *time.Time) ([]domain.Order, error)
}

type OrderMenuCatalog interface {
	FindByID(ctx context.Context, id uint) (domain.Menu, error)
}

type OrderDiscountCatalog interface {
	FindActiveForMenu(ctx context.Context, menuID uint, now time.Time) ([]domain.Discount, error)
}

// StallRevenue summarizes a stall's order history for one period.
type StallRevenue struct {
	OrderCount int     `json:"order_count"`
	Revenue    float64 `json:"revenue"`
}

type OrderService struct {
	repo      OrderRepository
	menus     OrderMenuCatalog
	discounts OrderDiscountCatalog
	now       func() time.Time
}

func NewOrderService(repo OrderRepository, menus OrderMenuCatalog, discounts OrderDiscountCatalog) *OrderService {
	return &OrderService{
		repo:      repo,
		menus:     menus,
		discounts: discounts,
		now:       time.Now,
	}
}

// priceLines resolves every requested line against the catalog: the item
// must exist, must be sold by the given stall, and its unit price is
// frozen after applying the best discount active right now.
func (s *OrderService) priceLines(ctx context.Context, stallID uint, requested []RequestedLine) ([]domain.OrderLine, error) {
	now := s.now()

	lines := make([]domain.OrderLine, len(requested))
	for i, req := range requested {
		menu, err := s.menus.FindByID(ctx, req.MenuID)
		if err != nil {
			return nil, fmt.Errorf("s.menus.FindByID -> %w", err)
		}
		if menu.StallID != stallID {
			return nil, ErrMenuWrongStall
		}

		price := menu.Price
		discounts, err := s.discounts.FindActiveForMenu(ctx, menu.ID, now)
		if err != nil {
			return nil, fmt.Errorf("s.discounts.FindActiveForMenu -> %w", err)
		}
		if best, ok := domain.BestActiveDiscount(discounts, now); ok {
			price = best.Apply(price)
		}

		lines[i] = domain.OrderLine{
			MenuID:    menu.ID,
			Quantity:  req.Quantity,
			UnitPrice: price,
		}
	}

	return lines, nil
}

// Checkout creates an order in the "unconfirmed" state. Every line is
// priced at checkout time; later price or discount changes never touch
// an existing order.
func (s *OrderService) Checkout(ctx context.Context, studentID, stallID uint, requested []RequestedLine) (domain.Order, error) {
	lines, err := s.priceLines(ctx, stallID, requested)
	if err != nil {
		return domain.Order{}, err
	}

	order := domain.Order{
		StudentID: studentID,
		StallID:   stallID,
		Status:    domain.StatusUnconfirmed,
		OrderedAt: s.now(),
		Lines:     lines,
	}

	created, err := s.repo.CreateWithLines(ctx, order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.CreateWithLines -> %w", err)
	}

	return created, nil
}

// ReplaceItems swaps the full cart of an unconfirmed order. New lines are
// re-priced at edit time against the order's original stall. Ownership and
// status are validated before pricing so a non-owner gets the ownership
// error, not a pricing one, and re-checked inside the store transaction.
func (s *OrderService) ReplaceItems(ctx context.Context, orderID, studentID uint, requested []RequestedLine) (domain.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if order.StudentID != studentID {
		return domain.Order{}, ErrNotOrderOwner
	}
	if order.Status != domain.StatusUnconfirmed {
		return domain.Order{}, ErrOrderLocked
	}

	lines, err := s.priceLines(ctx, order.StallID, requested)
	if err != nil {
		return domain.Order{}, err
	}

	if err = s.repo.ReplaceLines(ctx, orderID, studentID, lines); err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.ReplaceLines -> %w", err)
	}

	updated, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return updated, nil
}

// Cancel removes an unconfirmed order entirely. Once a stall starts
// cooking, the order can no longer be withdrawn.
func (s *OrderService) Cancel(ctx context.Context, orderID, studentID uint) error {
	if err := s.repo.Delete(ctx, orderID, studentID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *OrderService) Get(ctx context.Context, id uint) (domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return order, nil
}

// AdvanceStatus moves an order one step along
// unconfirmed -> cooking -> delivering -> arrived. Staff may only touch
// orders of their own stall; an admin is unrestricted.
func (s *OrderService) AdvanceStatus(ctx context.Context, orderID uint, next domain.OrderStatus, actorRole string, actorStallID uint) (domain.Order, error) {
	if !next.Valid() {
		return domain.Order{}, ErrInvalidStatus
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if actorRole == domain.RoleStaff && order.StallID != actorStallID {
		return domain.Order{}, ErrNotStallStaff
	}

	if !order.Status.CanTransitionTo(next) {
		return domain.Order{}, ErrInvalidStatusTransition
	}

	updated, err := s.repo.UpdateStatus(ctx, orderID, next)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return updated, nil
}

// monthWindow returns the first and last instant of the given month. A
// nil month means no window; a nil year defaults to the current year.
func (s *OrderService) monthWindow(month, year *int) (*time.Time, *time.Time) {
	if month == nil {
		return nil, nil
	}

	y := s.now().Year()
	if year != nil {
		y = *year
	}

	from := time.Date(y, time.Month(*month), 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	return &from, &to
}

// StudentHistory lists a student's own orders, newest first, optionally
// narrowed to one calendar month.
func (s *OrderService) StudentHistory(ctx context.Context, studentID uint, month, year *int) ([]domain.Order, error) {
	from, to := s.monthWindow(month, year)

	orders, err := s.repo.FindByStudent(ctx, studentID, from, to)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByStudent -> %w", err)
	}

	return orders, nil
}

// StallHistory lists a stall's incoming orders with a revenue summary.
// Revenue counts every order regardless of status.
func (s *OrderService) StallHistory(ctx context.Context, stallID uint, month, year *int) ([]domain.Order, StallRevenue, error) {
	from, to := s.monthWindow(month, year)

	orders, err := s.repo.FindByStall(ctx, stallID, from, to)
	if err != nil {
		return nil, StallRevenue{}, fmt.Errorf("s.repo.FindByStall -> %w", err)
	}

	summary := StallRevenue{OrderCount: len(orders)}
	for _, o := range orders {
		summary.Revenue += o.Total()
	}

	return orders, summary, nil
}
