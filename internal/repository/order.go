package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/hanifz/kantin-api/internal/domain"
	"github.com/hanifz/kantin-api/internal/repository/dao"
)

var (
	ErrOrderNotFound = dao.ErrOrderNotFound
	ErrNotOrderOwner = dao.ErrNotOrderOwner
	ErrOrderLocked   = dao.ErrOrderLocked
)

type OrderDAO interface {
	Insert(ctx context.Context, order dao.Order, lines []dao.OrderLine) (dao.Order, error)
	ReplaceLines(ctx context.Context, orderID, studentID uint, lines []dao.OrderLine) error
	Delete(ctx context.Context, orderID, studentID uint) error
	FindByID(ctx context.Context, id uint) (dao.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) (dao.Order, error)
	FindByStudent(ctx context.Context, studentID uint, from, to *time.Time) ([]dao.Order, error)
	FindByStall(ctx context.Context, stallID uint, from, to *time.Time) ([]dao.Order, error)
}

type OrderRepository struct {
	dao OrderDAO
}

func NewOrderRepository(dao OrderDAO) *OrderRepository {
	return &OrderRepository{
		dao: dao,
	}
}

// CreateWithLines persists the header and the priced lines atomically.
func (r *OrderRepository) CreateWithLines(ctx context.Context, order domain.Order) (domain.Order, error) {
	daoOrder := dao.Order{
		StudentID: order.StudentID,
		StallID:   order.StallID,
		Status:    string(order.Status),
		OrderedAt: order.OrderedAt,
	}

	created, err := r.dao.Insert(ctx, daoOrder, r.linesDomainToDao(order.Lines))
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *OrderRepository) ReplaceLines(ctx context.Context, orderID, studentID uint, lines []domain.OrderLine) error {
	if err := r.dao.ReplaceLines(ctx, orderID, studentID, r.linesDomainToDao(lines)); err != nil {
		return fmt.Errorf("r.dao.ReplaceLines -> %w", err)
	}

	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, orderID, studentID uint) error {
	if err := r.dao.Delete(ctx, orderID, studentID); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (domain.Order, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) (domain.Order, error) {
	updated, err := r.dao.UpdateStatus(ctx, id, string(status))
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *OrderRepository) FindByStudent(ctx context.Context, studentID uint, from, to *time.Time) ([]domain.Order, error) {
	found, err := r.dao.FindByStudent(ctx, studentID, from, to)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStudent -> %w", err)
	}

	return r.ordersDaoToDomain(found), nil
}

func (r *OrderRepository) FindByStall(ctx context.Context, stallID uint, from, to *time.Time) ([]domain.Order, error) {
	found, err := r.dao.FindByStall(ctx, stallID, from, to)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStall -> %w", err)
	}

	return r.ordersDaoToDomain(found), nil
}

func (r *OrderRepository) linesDomainToDao(lines []domain.OrderLine) []dao.OrderLine {
	daoLines := make([]dao.OrderLine, len(lines))
	for i, l := range lines {
		daoLines[i] = dao.OrderLine{
			MenuID:    l.MenuID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
	}

	return daoLines
}

func (r *OrderRepository) ordersDaoToDomain(orders []dao.Order) []domain.Order {
	domainOrders := make([]domain.Order, len(orders))
	for i, o := range orders {
		domainOrders[i] = r.daoToDomain(o)
	}

	return domainOrders
}

func (r *OrderRepository) daoToDomain(o dao.Order) domain.Order {
	order := domain.Order{
		ID:            o.ID,
		StudentID:     o.StudentID,
		StudentName:   o.Student.Name,
		StudentNumber: o.Student.StudentNumber,
		StallID:       o.StallID,
		StallName:     o.Stall.Name,
		Status:        domain.OrderStatus(o.Status),
		OrderedAt:     o.OrderedAt,
	}

	for _, l := range o.Lines {
		order.Lines = append(order.Lines, domain.OrderLine{
			ID:        l.ID,
			MenuID:    l.MenuID,
			MenuName:  l.Menu.Name,
			MenuPhoto: l.Menu.Photo,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}

	return order
}
