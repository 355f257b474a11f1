package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanifz/kantin-api/internal/api/middleware"
	"github.com/hanifz/kantin-api/internal/domain"
	"github.com/hanifz/kantin-api/internal/pkg/jwthelper"
	"github.com/hanifz/kantin-api/internal/service"
)

type stubOrderService struct {
	checkoutOrder domain.Order
	checkoutErr   error
	advanceErr    error

	gotStudentID uint
	gotStallID   uint
	gotLines     []service.RequestedLine
	gotStatus    domain.OrderStatus
}

func (s *stubOrderService) Checkout(_ context.Context, studentID, stallID uint, requested []service.RequestedLine) (domain.Order, error) {
	s.gotStudentID = studentID
	s.gotStallID = stallID
	s.gotLines = requested

	return s.checkoutOrder, s.checkoutErr
}

func (s *stubOrderService) ReplaceItems(_ context.Context, _, _ uint, _ []service.RequestedLine) (domain.Order, error) {
	return domain.Order{}, nil
}

func (s *stubOrderService) Cancel(_ context.Context, _, _ uint) error {
	return nil
}

func (s *stubOrderService) Get(_ context.Context, _ uint) (domain.Order, error) {
	return s.checkoutOrder, nil
}

func (s *stubOrderService) AdvanceStatus(_ context.Context, _ uint, next domain.OrderStatus, _ string, _ uint) (domain.Order, error) {
	s.gotStatus = next

	return s.checkoutOrder, s.advanceErr
}

func (s *stubOrderService) StudentHistory(_ context.Context, _ uint, _, _ *int) ([]domain.Order, error) {
	return []domain.Order{s.checkoutOrder}, nil
}

func (s *stubOrderService) StallHistory(_ context.Context, _ uint, _, _ *int) ([]domain.Order, service.StallRevenue, error) {
	return []domain.Order{s.checkoutOrder}, service.StallRevenue{OrderCount: 1, Revenue: s.checkoutOrder.Total()}, nil
}

type stubReceiptService struct{}

func (s *stubReceiptService) Render(_ context.Context, _ uint, _ string, _ uint) ([]byte, string, error) {
	return []byte("%PDF-1.4 stub"), "nota-pesanan-1.pdf", nil
}

func withClaims(claims jwthelper.Claims) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(middleware.ClaimsKey, &claims)
	}
}

func newOrderRouter(svc *stubOrderService, claims jwthelper.Claims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewOrderHandler(svc, &stubReceiptService{})
	group := router.Group("/api/v1", withClaims(claims))
	group.POST("/orders", handler.HandleCheckout)
	group.PATCH("/orders/:orderID/status", handler.HandleUpdateOrderStatus)
	group.GET("/orders/:orderID/receipt", handler.HandleDownloadReceipt)

	return router
}

func TestHandleCheckout(t *testing.T) {
	order := domain.Order{
		ID:        1,
		StudentID: 5,
		StallID:   2,
		Status:    domain.StatusUnconfirmed,
		OrderedAt: time.Now(),
		Lines:     []domain.OrderLine{{MenuID: 1, Quantity: 2, UnitPrice: 8000}},
	}

	t.Run("places the order for the authenticated student", func(t *testing.T) {
		svc := &stubOrderService{checkoutOrder: order}
		router := newOrderRouter(svc, jwthelper.Claims{UserID: 10, Role: "student", StudentID: 5})

		body, _ := json.Marshal(gin.H{
			"stall_id": 2,
			"lines":    []gin.H{{"menu_id": 1, "quantity": 2}},
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, uint(5), svc.gotStudentID)
		assert.Equal(t, uint(2), svc.gotStallID)
		require.Len(t, svc.gotLines, 1)
		assert.Equal(t, 2, svc.gotLines[0].Quantity)
		assert.Contains(t, w.Body.String(), `"total":16000`)
	})

	t.Run("rejects an empty cart", func(t *testing.T) {
		svc := &stubOrderService{checkoutOrder: order}
		router := newOrderRouter(svc, jwthelper.Claims{UserID: 10, Role: "student", StudentID: 5})

		body, _ := json.Marshal(gin.H{"stall_id": 2, "lines": []gin.H{}})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("maps a wrong-stall item to 400", func(t *testing.T) {
		svc := &stubOrderService{checkoutErr: service.ErrMenuWrongStall}
		router := newOrderRouter(svc, jwthelper.Claims{UserID: 10, Role: "student", StudentID: 5})

		body, _ := json.Marshal(gin.H{
			"stall_id": 2,
			"lines":    []gin.H{{"menu_id": 3, "quantity": 1}},
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleUpdateOrderStatus(t *testing.T) {
	t.Run("passes the requested status through", func(t *testing.T) {
		svc := &stubOrderService{checkoutOrder: domain.Order{ID: 1, Status: domain.StatusCooking}}
		router := newOrderRouter(svc, jwthelper.Claims{UserID: 3, Role: "staff", StallID: 2})

		body, _ := json.Marshal(gin.H{"status": "cooking"})
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/1/status", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.StatusCooking, svc.gotStatus)
	})

	t.Run("maps an illegal transition to 400", func(t *testing.T) {
		svc := &stubOrderService{advanceErr: service.ErrInvalidStatusTransition}
		router := newOrderRouter(svc, jwthelper.Claims{UserID: 3, Role: "staff", StallID: 2})

		body, _ := json.Marshal(gin.H{"status": "arrived"})
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/1/status", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleDownloadReceipt(t *testing.T) {
	svc := &stubOrderService{}
	router := newOrderRouter(svc, jwthelper.Claims{UserID: 10, Role: "student", StudentID: 5})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/1/receipt", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "nota-pesanan-1.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}
