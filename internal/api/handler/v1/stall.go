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

type StallService interface {
	Create(ctx context.Context, stall domain.Stall) (domain.Stall, error)
	List(ctx context.Context) ([]domain.Stall, error)
	Update(ctx context.Context, stall domain.Stall) (domain.Stall, error)
	Delete(ctx context.Context, id uint) error
}

type StallHandler struct {
	svc StallService
}

func NewStallHandler(svc StallService) *StallHandler {
	return &StallHandler{
		svc: svc,
	}
}

// HandleCreateStall godoc
// @Summary      Create a stall
// @Tags         stalls
// @Security     Bearer
// @Produce      json
// @Param        request  body       request.CreateStallRequest true "request body"
// @Success      201      {object}   domain.Stall
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /stalls [post]
func (h *StallHandler) HandleCreateStall(ctx *gin.Context) {
	var req request.CreateStallRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	stall, err := h.svc.Create(ctx.Request.Context(), domain.Stall{Name: req.Name})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateStall -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, stall)
}

// HandleListStalls godoc
// @Summary      List all stalls
// @Tags         stalls
// @Security     Bearer
// @Produce      json
// @Success      200 {array}  domain.Stall
// @Failure      500 {object} response.Err
// @Router       /stalls [get]
func (h *StallHandler) HandleListStalls(ctx *gin.Context) {
	stalls, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListStalls -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, stalls)
}

// HandleUpdateStall godoc
// @Summary      Rename a stall
// @Tags         stalls
// @Security     Bearer
// @Produce      json
// @Param        stallID  path       int true "stall ID"
// @Param        request  body       request.UpdateStallRequest true "request body"
// @Success      200      {object}   domain.Stall
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /stalls/{stallID} [put]
func (h *StallHandler) HandleUpdateStall(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "stallID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateStallRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	stall, err := h.svc.Update(ctx.Request.Context(), domain.Stall{ID: id, Name: req.Name})
	if err != nil {
		if errors.Is(err, service.ErrStallNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateStall -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, stall)
}

// HandleDeleteStall godoc
// @Summary      Delete a stall without order history
// @Tags         stalls
// @Security     Bearer
// @Produce      json
// @Param        stallID  path       int true "stall ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /stalls/{stallID} [delete]
func (h *StallHandler) HandleDeleteStall(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "stallID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.Delete(ctx.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrStallNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrStallHasOrders):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleDeleteStall -> h.svc.Delete -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.Status(http.StatusNoContent)
}
