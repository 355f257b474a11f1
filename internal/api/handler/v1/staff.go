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
	"github.com/hanifz/kantin-api/internal/pkg/upload"
	"github.com/hanifz/kantin-api/internal/service"
)

type StaffService interface {
	ListStaff(ctx context.Context) ([]domain.Staff, error)
	UpdateStaff(ctx context.Context, staff domain.Staff, actorRole string, actorUserID uint) (domain.Staff, error)
	DeactivateStaff(ctx context.Context, staffID uint) error
}

type StaffHandler struct {
	svc       StaffService
	uploadDir string
}

func NewStaffHandler(svc StaffService, uploadDir string) *StaffHandler {
	return &StaffHandler{
		svc:       svc,
		uploadDir: uploadDir,
	}
}

// HandleListStaff godoc
// @Summary      List all staff accounts
// @Tags         staff
// @Security     Bearer
// @Produce      json
// @Success      200 {array}  domain.Staff
// @Failure      500 {object} response.Err
// @Router       /staff [get]
func (h *StaffHandler) HandleListStaff(ctx *gin.Context) {
	staff, err := h.svc.ListStaff(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListStaff -> h.svc.ListStaff -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, staff)
}

// HandleUpdateStaff godoc
// @Summary      Update a staff profile
// @Tags         staff
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        staffID  path       int true "staff ID"
// @Success      200      {object}   domain.Staff
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /staff/{staffID} [put]
func (h *StaffHandler) HandleUpdateStaff(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "staffID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	claims, err := claimsFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	var req request.UpdateStaffRequest
	if err = ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	photo, err := upload.SavePhoto(ctx, "photo", h.uploadDir)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	staff, err := h.svc.UpdateStaff(ctx.Request.Context(), domain.Staff{
		ID:      id,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Photo:   photo,
		StallID: req.StallID,
		User: domain.User{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		},
	}, claims.Role, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotProfileOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrStaffNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrUserEmailExists):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateStaff -> h.svc.UpdateStaff -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, staff)
}

// HandleDeleteStaff godoc
// @Summary      Deactivate a staff account
// @Tags         staff
// @Security     Bearer
// @Produce      json
// @Param        staffID  path       int true "staff ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /staff/{staffID} [delete]
func (h *StaffHandler) HandleDeleteStaff(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "staffID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeactivateStaff(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrStaffNotFound) || errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteStaff -> h.svc.DeactivateStaff -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
