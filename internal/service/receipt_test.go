package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanifz/kantin-api/internal/domain"
)

func seedReceiptOrder(repo *fakeOrderRepo) domain.Order {
	order := domain.Order{
		ID:            1,
		StudentID:     5,
		StudentName:   "Budi",
		StudentNumber: "2024001",
		StallID:       1,
		StallName:     "Warung Bu Sri",
		Status:        domain.StatusArrived,
		OrderedAt:     time.Date(2024, 3, 15, 11, 30, 0, 0, time.Local),
		Lines: []domain.OrderLine{
			{MenuID: 1, MenuName: "Nasi Goreng", Quantity: 2, UnitPrice: 8000},
			{MenuID: 2, MenuName: "Es Teh", Quantity: 1, UnitPrice: 3000},
		},
	}
	repo.orders[order.ID] = order
	repo.nextID = order.ID

	return order
}

func TestReceiptServiceRender(t *testing.T) {
	repo := newFakeOrderRepo()
	order := seedReceiptOrder(repo)
	svc := NewReceiptService(repo)

	pdf, filename, err := svc.Render(context.Background(), order.ID, domain.RoleStudent, order.StudentID)
	require.NoError(t, err)

	assert.Equal(t, "nota-pesanan-1.pdf", filename)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestReceiptServiceRenderOwnerOnly(t *testing.T) {
	repo := newFakeOrderRepo()
	order := seedReceiptOrder(repo)
	svc := NewReceiptService(repo)

	_, _, err := svc.Render(context.Background(), order.ID, domain.RoleStudent, 99)
	assert.ErrorIs(t, err, ErrNotOrderOwner)

	// Staff and admin can always fetch.
	_, _, err = svc.Render(context.Background(), order.ID, domain.RoleStaff, 0)
	assert.NoError(t, err)
}

func TestReceiptServiceRenderUnknownOrder(t *testing.T) {
	svc := NewReceiptService(newFakeOrderRepo())

	_, _, err := svc.Render(context.Background(), 42, domain.RoleAdmin, 0)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestReceiptServiceRenderLongOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	order := seedReceiptOrder(repo)
	for i := 0; i < 40; i++ {
		order.Lines = append(order.Lines, domain.OrderLine{
			MenuID: 3, MenuName: "Bakso", Quantity: 1, UnitPrice: 12000,
		})
	}
	repo.orders[order.ID] = order
	svc := NewReceiptService(repo)

	pdf, _, err := svc.Render(context.Background(), order.ID, domain.RoleAdmin, 0)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
