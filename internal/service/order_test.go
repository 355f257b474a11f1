package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanifz/kantin-api/internal/domain"
	"github.com/hanifz/kantin-api/internal/repository"
)

type fakeOrderRepo struct {
	orders map[uint]domain.Order
	nextID uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint]domain.Order)}
}

func (f *fakeOrderRepo) CreateWithLines(_ context.Context, order domain.Order) (domain.Order, error) {
	f.nextID++
	order.ID = f.nextID
	f.orders[order.ID] = order

	return order, nil
}

func (f *fakeOrderRepo) guard(orderID, studentID uint) (domain.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return domain.Order{}, repository.ErrOrderNotFound
	}
	if order.StudentID != studentID {
		return domain.Order{}, repository.ErrNotOrderOwner
	}
	if order.Status != domain.StatusUnconfirmed {
		return domain.Order{}, repository.ErrOrderLocked
	}

	return order, nil
}

func (f *fakeOrderRepo) ReplaceLines(_ context.Context, orderID, studentID uint, lines []domain.OrderLine) error {
	order, err := f.guard(orderID, studentID)
	if err != nil {
		return err
	}

	order.Lines = lines
	f.orders[orderID] = order

	return nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, orderID, studentID uint) error {
	if _, err := f.guard(orderID, studentID); err != nil {
		return err
	}

	delete(f.orders, orderID)

	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uint) (domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return domain.Order{}, repository.ErrOrderNotFound
	}

	return order, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, orderID uint, status domain.OrderStatus) (domain.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return domain.Order{}, repository.ErrOrderNotFound
	}

	order.Status = status
	f.orders[orderID] = order

	return order, nil
}

func (f *fakeOrderRepo) forceStatus(orderID uint, status domain.OrderStatus) {
	order := f.orders[orderID]
	order.Status = status
	f.orders[orderID] = order
}

func (f *fakeOrderRepo) findAll(match func(domain.Order) bool, from, to *time.Time) []domain.Order {
	var orders []domain.Order
	for _, o := range f.orders {
		if !match(o) {
			continue
		}
		if from != nil && o.OrderedAt.Before(*from) {
			continue
		}
		if to != nil && o.OrderedAt.After(*to) {
			continue
		}
		orders = append(orders, o)
	}

	return orders
}

func (f *fakeOrderRepo) FindByStudent(_ context.Context, studentID uint, from, to *time.Time) ([]domain.Order, error) {
	return f.findAll(func(o domain.Order) bool { return o.StudentID == studentID }, from, to), nil
}

func (f *fakeOrderRepo) FindByStall(_ context.Context, stallID uint, from, to *time.Time) ([]domain.Order, error) {
	return f.findAll(func(o domain.Order) bool { return o.StallID == stallID }, from, to), nil
}

type fakeMenuCatalog struct {
	menus map[uint]domain.Menu
}

func (f *fakeMenuCatalog) FindByID(_ context.Context, id uint) (domain.Menu, error) {
	menu, ok := f.menus[id]
	if !ok {
		return domain.Menu{}, repository.ErrMenuNotFound
	}

	return menu, nil
}

type fakeDiscountCatalog struct {
	byMenu map[uint][]domain.Discount
}

func (f *fakeDiscountCatalog) FindActiveForMenu(_ context.Context, menuID uint, now time.Time) ([]domain.Discount, error) {
	var active []domain.Discount
	for _, d := range f.byMenu[menuID] {
		if d.ActiveAt(now) {
			active = append(active, d)
		}
	}

	return active, nil
}

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestOrderService() (*OrderService, *fakeOrderRepo, *fakeMenuCatalog, *fakeDiscountCatalog) {
	repo := newFakeOrderRepo()
	menus := &fakeMenuCatalog{menus: map[uint]domain.Menu{
		1: {ID: 1, Name: "Nasi Goreng", Price: 10000, StallID: 1},
		2: {ID: 2, Name: "Es Teh", Price: 3000, StallID: 1},
		3: {ID: 3, Name: "Bakso", Price: 12000, StallID: 2},
	}}
	discounts := &fakeDiscountCatalog{byMenu: map[uint][]domain.Discount{}}

	svc := NewOrderService(repo, menus, discounts)
	svc.now = func() time.Time { return testNow }

	return svc, repo, menus, discounts
}

func TestOrderServiceCheckout(t *testing.T) {
	t.Run("freezes the discounted price per line", func(t *testing.T) {
		svc, _, _, discounts := newTestOrderService()
		discounts.byMenu[1] = []domain.Discount{
			{ID: 1, Percentage: 20, StartsAt: testNow.AddDate(0, 0, -1), EndsAt: testNow.AddDate(0, 0, 1)},
		}

		order, err := svc.Checkout(context.Background(), 5, 1, []RequestedLine{
			{MenuID: 1, Quantity: 2},
			{MenuID: 2, Quantity: 1},
		})
		require.NoError(t, err)

		require.Len(t, order.Lines, 2)
		assert.InDelta(t, 8000, order.Lines[0].UnitPrice, 0.001)
		assert.InDelta(t, 3000, order.Lines[1].UnitPrice, 0.001)
		assert.InDelta(t, 19000, order.Total(), 0.001)
		assert.Equal(t, domain.StatusUnconfirmed, order.Status)
		assert.Equal(t, testNow, order.OrderedAt)
	})

	t.Run("picks the best of several active discounts", func(t *testing.T) {
		svc, _, _, discounts := newTestOrderService()
		discounts.byMenu[1] = []domain.Discount{
			{ID: 1, Percentage: 10, StartsAt: testNow.AddDate(0, 0, -1), EndsAt: testNow.AddDate(0, 0, 1)},
			{ID: 2, Percentage: 30, StartsAt: testNow.AddDate(0, 0, -1), EndsAt: testNow.AddDate(0, 0, 1)},
			{ID: 3, Percentage: 50, StartsAt: testNow.AddDate(0, 0, -30), EndsAt: testNow.AddDate(0, 0, -20)},
		}

		order, err := svc.Checkout(context.Background(), 5, 1, []RequestedLine{{MenuID: 1, Quantity: 1}})
		require.NoError(t, err)
		assert.InDelta(t, 7000, order.Lines[0].UnitPrice, 0.001)
	})

	t.Run("rejects an item from another stall", func(t *testing.T) {
		svc, _, _, _ := newTestOrderService()

		_, err := svc.Checkout(context.Background(), 5, 1, []RequestedLine{{MenuID: 3, Quantity: 1}})
		assert.ErrorIs(t, err, ErrMenuWrongStall)
	})

	t.Run("rejects an unknown item", func(t *testing.T) {
		svc, _, _, _ := newTestOrderService()

		_, err := svc.Checkout(context.Background(), 5, 1, []RequestedLine{{MenuID: 99, Quantity: 1}})
		assert.ErrorIs(t, err, ErrMenuNotFound)
	})
}

func TestOrderServiceReplaceItems(t *testing.T) {
	t.Run("re-prices the cart at edit time", func(t *testing.T) {
		svc, _, menus, _ := newTestOrderService()

		order, err := svc.Checkout(context.Background(), 5, 1, []RequestedLine{{MenuID: 1, Quantity: 1}})
		require.NoError(t, err)

		// Price change after checkout must not touch the old line but
		// applies to the replacement.
		menu := menus.menus[1]
		menu.Price = 15000
		menus.menus[1] = menu

		updated, err := svc.ReplaceItems(context.Background(), order.ID, 5, []RequestedLine{{MenuID: 1, Quantity: 3}})
		require.NoError(t, err)

		require.Len(t, updated.Lines, 1)
		assert.InDelta(t, 15000, updated.Lines[0].UnitPrice, 0.001)
		assert.Equal(t, 3, updated.Lines[0].Quantity)
	})

	t.Run("refuses items outside the order's stall", func(t *testing.T) {
		svc, _, _, _ := newTestOrderService()

		order, err := svc.Checkout(context.Background(), 5, 1, []RequestedLine{{MenuID: 1, Quantity: 1}})
		require.NoError(t, err)

		_, err = svc.ReplaceItems(context.Background(), order.ID, 5, []RequestedLine{{MenuID: 3, Quantity: 1}})
		assert.ErrorIs(t, err, ErrMenuWrongStall)
	})

	t.Run("refuses once cooking started", func(t *testing.T) {
		svc, repo, _, _ := newTestOrderService()

		order, err := svc.Checkout(context.Background(), 5, 1, []RequestedLine{{MenuID: 1, Quantity: 1}})
		require.NoError(t, err)
		repo.forceStatus(order.ID, domain.StatusCooking)

		_, err = svc.ReplaceItems(context.Background(), order.ID, 5, []RequestedLine{{MenuID: 2, Quantity: 1}})
		assert.ErrorIs(t, err, ErrOrderLocked)
	})

	t.Run("refuses another student's order", func(t *testing.T) {
		svc, _, _, _ := newTestOrderService()

		order, err := svc.Checkout(context.Background(), 5, 1, []RequestedLine{{MenuID: 1, Quantity: 1}})
		require.NoError(t, err)

		_, err = svc.ReplaceItems(context.Background(), order.ID, 6, []RequestedLine{{MenuID: 2, Quantity: 1}})
		assert.ErrorIs(t, err, ErrNotOrderOwner)
	})

	t.Run("ownership is checked before the cart is priced", func(t *testing.T) {
		svc, _, _, _ := newTestOrderService()

		order, err := svc.Checkout(context.Background(), 5, 1, []RequestedLine{{MenuID: 1, Quantity: 1}})
		require.NoError(t, err)

		// The replacement cart carries a stall-2 item, but a non-owner
		// must still hit the ownership error, not the pricing one.
		_, err = svc.ReplaceItems(context.Background(), order.ID, 6, []RequestedLine{{MenuID: 3, Quantity: 1}})
		assert.ErrorIs(t, err, ErrNotOrderOwner)
	})

	t.Run("status is checked before the cart is priced", func(t *testing.T) {
		svc, repo, _, _ := newTestOrderService()

		order, err := svc.Checkout(context.Background(), 5, 1, []RequestedLine{{MenuID: 1, Quantity: 1}})
		require.NoError(t, err)
		repo.forceStatus(order.ID, domain.StatusCooking)

		_, err = svc.ReplaceItems(context.Background(), order.ID, 5, []RequestedLine{{MenuID: 3, Quantity: 1}})
		assert.ErrorIs(t, err, ErrOrderLocked)
	})
}

func TestOrderServiceCancel(t *testing.T) {
	t.Run("removes an unconfirmed order", func(t *testing.T) {
		svc, _, _, _ := newTestOrderService()

		order, err := svc.Checkout(context.Background(), 5, 1, []RequestedLine{{MenuID: 1, Quantity: 1}})
		require.NoError(t, err)

		require.NoError(t, svc.Cancel(context.Background(), order.ID, 5))

		_, err = svc.Get(context.Background(), order.ID)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("refuses once cooking started", func(t *testing.T) {
		svc, repo, _, _ := newTestOrderService()

		order, err := svc.Checkout(context.Background(), 5, 1, []RequestedLine{{MenuID: 1, Quantity: 1}})
		require.NoError(t, err)
		repo.forceStatus(order.ID, domain.StatusCooking)

		err = svc.Cancel(context.Background(), order.ID, 5)
		assert.ErrorIs(t, err, ErrOrderLocked)
	})
}

func TestOrderServiceAdvanceStatus(t *testing.T) {
	newOrder := func(t *testing.T, svc *OrderService) domain.Order {
		t.Helper()
		order, err := svc.Checkout(context.Background(), 5, 1, []RequestedLine{{MenuID: 1, Quantity: 1}})
		require.NoError(t, err)

		return order
	}

	t.Run("walks the full lifecycle", func(t *testing.T) {
		svc, _, _, _ := newTestOrderService()
		order := newOrder(t, svc)

		for _, next := range []domain.OrderStatus{domain.StatusCooking, domain.StatusDelivering, domain.StatusArrived} {
			updated, err := svc.AdvanceStatus(context.Background(), order.ID, next, domain.RoleStaff, 1)
			require.NoError(t, err)
			assert.Equal(t, next, updated.Status)
		}
	})

	t.Run("rejects skipping a step", func(t *testing.T) {
		svc, _, _, _ := newTestOrderService()
		order := newOrder(t, svc)

		_, err := svc.AdvanceStatus(context.Background(), order.ID, domain.StatusArrived, domain.RoleStaff, 1)
		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	})

	t.Run("rejects moving backwards", func(t *testing.T) {
		svc, repo, _, _ := newTestOrderService()
		order := newOrder(t, svc)
		repo.forceStatus(order.ID, domain.StatusDelivering)

		_, err := svc.AdvanceStatus(context.Background(), order.ID, domain.StatusCooking, domain.RoleStaff, 1)
		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		svc, _, _, _ := newTestOrderService()
		order := newOrder(t, svc)

		_, err := svc.AdvanceStatus(context.Background(), order.ID, "cancelled", domain.RoleStaff, 1)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("staff cannot touch another stall's order", func(t *testing.T) {
		svc, _, _, _ := newTestOrderService()
		order := newOrder(t, svc)

		_, err := svc.AdvanceStatus(context.Background(), order.ID, domain.StatusCooking, domain.RoleStaff, 2)
		assert.ErrorIs(t, err, ErrNotStallStaff)
	})

	t.Run("admin may advance any stall's order", func(t *testing.T) {
		svc, _, _, _ := newTestOrderService()
		order := newOrder(t, svc)

		updated, err := svc.AdvanceStatus(context.Background(), order.ID, domain.StatusCooking, domain.RoleAdmin, 0)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCooking, updated.Status)
	})
}

func TestOrderServiceHistory(t *testing.T) {
	seed := func(repo *fakeOrderRepo, studentID, stallID uint, at time.Time, status domain.OrderStatus, total float64) {
		repo.nextID++
		repo.orders[repo.nextID] = domain.Order{
			ID:        repo.nextID,
			StudentID: studentID,
			StallID:   stallID,
			Status:    status,
			OrderedAt: at,
			Lines:     []domain.OrderLine{{Quantity: 1, UnitPrice: total}},
		}
	}

	t.Run("month window filters the student's orders", func(t *testing.T) {
		svc, repo, _, _ := newTestOrderService()
		seed(repo, 5, 1, time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local), domain.StatusArrived, 5000)
		seed(repo, 5, 1, time.Date(2024, 3, 31, 20, 0, 0, 0, time.Local), domain.StatusArrived, 7000)
		seed(repo, 5, 1, time.Date(2024, 4, 1, 0, 0, 0, 0, time.Local), domain.StatusArrived, 9000)
		seed(repo, 6, 1, time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local), domain.StatusArrived, 1000)

		month, year := 3, 2024
		orders, err := svc.StudentHistory(context.Background(), 5, &month, &year)
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("no window returns everything", func(t *testing.T) {
		svc, repo, _, _ := newTestOrderService()
		seed(repo, 5, 1, time.Date(2023, 1, 1, 8, 0, 0, 0, time.Local), domain.StatusArrived, 5000)
		seed(repo, 5, 1, time.Date(2024, 6, 1, 8, 0, 0, 0, time.Local), domain.StatusArrived, 5000)

		orders, err := svc.StudentHistory(context.Background(), 5, nil, nil)
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("stall revenue counts every status", func(t *testing.T) {
		svc, repo, _, _ := newTestOrderService()
		seed(repo, 5, 1, time.Date(2024, 3, 5, 8, 0, 0, 0, time.Local), domain.StatusUnconfirmed, 4000)
		seed(repo, 6, 1, time.Date(2024, 3, 6, 8, 0, 0, 0, time.Local), domain.StatusArrived, 6000)
		seed(repo, 6, 2, time.Date(2024, 3, 7, 8, 0, 0, 0, time.Local), domain.StatusArrived, 9999)

		month, year := 3, 2024
		orders, summary, err := svc.StallHistory(context.Background(), 1, &month, &year)
		require.NoError(t, err)
		assert.Len(t, orders, 2)
		assert.Equal(t, 2, summary.OrderCount)
		assert.InDelta(t, 10000, summary.Revenue, 0.001)
	})
}
