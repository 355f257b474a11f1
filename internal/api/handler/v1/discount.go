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

type DiscountService interface {
	Create(ctx context.Context, discount domain.Discount) (domain.Discount, error)
	Update(ctx context.Context, discount domain.Discount) (domain.Discount, error)
	Delete(ctx context.Context, id uint) error
	AssignMenus(ctx context.Context, discountID uint, menuIDs []uint) error
	UnassignMenu(ctx context.Context, discountID, menuID uint) error
	ListActive(ctx context.Context) ([]service.DiscountedMenu, error)
}

type DiscountHandler struct {
	svc DiscountService
}

func NewDiscountHandler(svc DiscountService) *DiscountHandler {
	return &DiscountHandler{
		svc: svc,
	}
}

// HandleCreateDiscount godoc
// @Summary      Create a time-windowed discount
// @Tags         discounts
// @Security     Bearer
// @Produce      json
// @Param        request  body       request.CreateDiscountRequest true "request body"
// @Success      201      {object}   domain.Discount
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /discounts [post]
func (h *DiscountHandler) HandleCreateDiscount(ctx *gin.Context) {
	var req request.CreateDiscountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	discount, err := h.svc.Create(ctx.Request.Context(), domain.Discount{
		Name:       req.Name,
		Percentage: req.Percentage,
		StartsAt:   req.StartsAt,
		EndsAt:     req.EndsAt,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateDiscount -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, discount)
}

// HandleUpdateDiscount godoc
// @Summary      Update a discount, omitted fields keep stored values
// @Tags         discounts
// @Security     Bearer
// @Produce      json
// @Param        discountID path     int true "discount ID"
// @Param        request  body       request.UpdateDiscountRequest true "request body"
// @Success      200      {object}   domain.Discount
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /discounts/{discountID} [put]
func (h *DiscountHandler) HandleUpdateDiscount(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "discountID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateDiscountRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	discount, err := h.svc.Update(ctx.Request.Context(), domain.Discount{
		ID:         id,
		Name:       req.Name,
		Percentage: req.Percentage,
		StartsAt:   req.StartsAt,
		EndsAt:     req.EndsAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDiscountNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrInvalidDateRange):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateDiscount -> h.svc.Update -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, discount)
}

// HandleDeleteDiscount godoc
// @Summary      Delete a discount and its menu assignments
// @Tags         discounts
// @Security     Bearer
// @Produce      json
// @Param        discountID path     int true "discount ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /discounts/{discountID} [delete]
func (h *DiscountHandler) HandleDeleteDiscount(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "discountID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrDiscountNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteDiscount -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleAssignMenus godoc
// @Summary      Attach menu items to a discount
// @Tags         discounts
// @Security     Bearer
// @Produce      json
// @Param        discountID path     int true "discount ID"
// @Param        request  body       request.AssignDiscountRequest true "request body"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /discounts/{discountID}/menus [post]
func (h *DiscountHandler) HandleAssignMenus(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "discountID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.AssignDiscountRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.AssignMenus(ctx.Request.Context(), id, req.MenuIDs); err != nil {
		if errors.Is(err, service.ErrDiscountNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleAssignMenus -> h.svc.AssignMenus -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleUnassignMenu godoc
// @Summary      Detach one menu item from a discount
// @Tags         discounts
// @Security     Bearer
// @Produce      json
// @Param        discountID path     int true "discount ID"
// @Param        menuID     path     int true "menu ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /discounts/{discountID}/menus/{menuID} [delete]
func (h *DiscountHandler) HandleUnassignMenu(ctx *gin.Context) {
	discountID, err := parseIDParam(ctx, "discountID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	menuID, err := parseIDParam(ctx, "menuID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.UnassignMenu(ctx.Request.Context(), discountID, menuID); err != nil {
		err = fmt.Errorf("v1.HandleUnassignMenu -> h.svc.UnassignMenu -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListActiveDiscounts godoc
// @Summary      List menu items discounted right now
// @Tags         discounts
// @Security     Bearer
// @Produce      json
// @Success      200 {array}  service.DiscountedMenu
// @Failure      500 {object} response.Err
// @Router       /discounts/active [get]
func (h *DiscountHandler) HandleListActiveDiscounts(ctx *gin.Context) {
	discounted, err := h.svc.ListActive(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListActiveDiscounts -> h.svc.ListActive -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, discounted)
}
