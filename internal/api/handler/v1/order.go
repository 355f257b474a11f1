package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hanifz/kantin-api/internal/api/handler/v1/request"
	"github.com/hanifz/kantin-api/internal/api/handler/v1/response"
	"github.com/hanifz/kantin-api/internal/domain"
	"github.com/hanifz/kantin-api/internal/service"
)

type OrderService interface {
	Checkout(ctx context.Context, studentID, stallID uint, requested []service.RequestedLine) (domain.Order, error)
	ReplaceItems(ctx context.Context, orderID, studentID uint, requested []service.RequestedLine) (domain.Order, error)
	Cancel(ctx context.Context, orderID, studentID uint) error
	Get(ctx context.Context, id uint) (domain.Order, error)
	AdvanceStatus(ctx context.Context, orderID uint, next domain.OrderStatus, actorRole string, actorStallID uint) (domain.Order, error)
	StudentHistory(ctx context.Context, studentID uint, month, year *int) ([]domain.Order, error)
	StallHistory(ctx context.Context, stallID uint, month, year *int) ([]domain.Order, service.StallRevenue, error)
}

type ReceiptService interface {
	Render(ctx context.Context, orderID uint, actorRole string, actorStudentID uint) ([]byte, string, error)
}

type OrderHandler struct {
	svc      OrderService
	receipts ReceiptService
}

func NewOrderHandler(svc OrderService, receipts ReceiptService) *OrderHandler {
	return &OrderHandler{
		svc:      svc,
		receipts: receipts,
	}
}

func toRequestedLines(lines []request.OrderLineRequest) []service.RequestedLine {
	requested := make([]service.RequestedLine, len(lines))
	for i, l := range lines {
		requested[i] = service.RequestedLine{
			MenuID:   l.MenuID,
			Quantity: l.Quantity,
		}
	}

	return requested
}

// HandleCheckout godoc
// @Summary      Place an order at one stall
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        request  body       request.CheckoutRequest true "request body"
// @Success      201      {object}   response.OrderResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders [post]
func (h *OrderHandler) HandleCheckout(ctx *gin.Context) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	var req request.CheckoutRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	order, err := h.svc.Checkout(ctx.Request.Context(), claims.StudentID, req.StallID, toRequestedLines(req.Lines))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMenuNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrMenuWrongStall):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleCheckout -> h.svc.Checkout -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, response.NewOrderResponse(order))
}

// HandleGetOrder godoc
// @Summary      Get one order with its lines
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        orderID  path       int true "order ID"
// @Success      200      {object}   response.OrderResponse
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders/{orderID} [get]
func (h *OrderHandler) HandleGetOrder(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "orderID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	claims, err := claimsFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	order, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleGetOrder -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	switch claims.Role {
	case domain.RoleStudent:
		if order.StudentID != claims.StudentID {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotOrderOwner))

			return
		}
	case domain.RoleStaff:
		if order.StallID != claims.StallID {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotStallStaff))

			return
		}
	}

	ctx.JSON(http.StatusOK, response.NewOrderResponse(order))
}

// HandleEditOrder godoc
// @Summary      Replace the items of an unconfirmed order
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        orderID  path       int true "order ID"
// @Param        request  body       request.EditOrderRequest true "request body"
// @Success      200      {object}   response.OrderResponse
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders/{orderID} [put]
func (h *OrderHandler) HandleEditOrder(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "orderID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	claims, err := claimsFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	var req request.EditOrderRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	order, err := h.svc.ReplaceItems(ctx.Request.Context(), id, claims.StudentID, toRequestedLines(req.Lines))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound), errors.Is(err, service.ErrMenuNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrNotOrderOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrOrderLocked), errors.Is(err, service.ErrMenuWrongStall):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleEditOrder -> h.svc.ReplaceItems -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.NewOrderResponse(order))
}

// HandleCancelOrder godoc
// @Summary      Cancel an unconfirmed order
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        orderID  path       int true "order ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders/{orderID} [delete]
func (h *OrderHandler) HandleCancelOrder(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "orderID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	claims, err := claimsFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	if err = h.svc.Cancel(ctx.Request.Context(), id, claims.StudentID); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrNotOrderOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrOrderLocked):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleCancelOrder -> h.svc.Cancel -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleUpdateOrderStatus godoc
// @Summary      Advance an order's preparation status
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        orderID  path       int true "order ID"
// @Param        request  body       request.UpdateOrderStatusRequest true "request body"
// @Success      200      {object}   response.OrderResponse
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders/{orderID}/status [patch]
func (h *OrderHandler) HandleUpdateOrderStatus(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "orderID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	claims, err := claimsFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	var req request.UpdateOrderStatusRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	order, err := h.svc.AdvanceStatus(ctx.Request.Context(), id, domain.OrderStatus(req.Status), claims.Role, claims.StallID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrNotStallStaff):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrInvalidStatus), errors.Is(err, service.ErrInvalidStatusTransition):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateOrderStatus -> h.svc.AdvanceStatus -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.NewOrderResponse(order))
}

// HandleStudentHistory godoc
// @Summary      List the authenticated student's orders
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        month  query      int false "calendar month 1-12"
// @Param        year   query      int false "year, defaults to the current one"
// @Success      200    {object}   response.OrderListResponse
// @Failure      400    {object}   response.Err
// @Failure      500    {object}   response.Err
// @Router       /orders/history [get]
func (h *OrderHandler) HandleStudentHistory(ctx *gin.Context) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	month, year, err := parseHistoryWindow(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	orders, err := h.svc.StudentHistory(ctx.Request.Context(), claims.StudentID, month, year)
	if err != nil {
		err = fmt.Errorf("v1.HandleStudentHistory -> h.svc.StudentHistory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewOrderListResponse(orders))
}

// HandleStallHistory godoc
// @Summary      List a stall's incoming orders with a revenue summary
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        month    query      int false "calendar month 1-12"
// @Param        year     query      int false "year, defaults to the current one"
// @Param        stall_id query      int false "stall to inspect, admin only"
// @Success      200      {object}   response.StallHistoryResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders/stall-history [get]
func (h *OrderHandler) HandleStallHistory(ctx *gin.Context) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	month, year, err := parseHistoryWindow(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	stallID := claims.StallID
	if claims.Role == domain.RoleAdmin {
		id, err := parseOptionalInt(ctx, "stall_id")
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}
		if id == nil || *id <= 0 {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("stall_id is required for admin accounts")))

			return
		}

		stallID = uint(*id)
	}

	orders, summary, err := h.svc.StallHistory(ctx.Request.Context(), stallID, month, year)
	if err != nil {
		err = fmt.Errorf("v1.HandleStallHistory -> h.svc.StallHistory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.StallHistoryResponse{
		Orders:  response.NewOrderListResponse(orders).Orders,
		Summary: summary,
	})
}

// HandleDownloadReceipt godoc
// @Summary      Download the PDF receipt of an order
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        orderID  path       int true "order ID"
// @Success      200
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders/{orderID}/receipt [get]
func (h *OrderHandler) HandleDownloadReceipt(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "orderID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	claims, err := claimsFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	pdf, filename, err := h.receipts.Render(ctx.Request.Context(), id, claims.Role, claims.StudentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrNotOrderOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleDownloadReceipt -> h.receipts.Render -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}

func parseHistoryWindow(ctx *gin.Context) (month, year *int, err error) {
	month, err = parseOptionalInt(ctx, "month")
	if err != nil {
		return nil, nil, err
	}
	if month != nil && (*month < 1 || *month > 12) {
		return nil, nil, errors.New("month must be between 1 and 12")
	}

	year, err = parseOptionalInt(ctx, "year")
	if err != nil {
		return nil, nil, err
	}

	return month, year, nil
}
