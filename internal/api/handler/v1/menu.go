package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hanifz/kantin-api/internal/api/handler/v1/request"
	"github.com/hanifz/kantin-api/internal/api/handler/v1/response"
	"github.com/hanifz/kantin-api/internal/domain"
	"github.com/hanifz/kantin-api/internal/pkg/upload"
	"github.com/hanifz/kantin-api/internal/service"
)

type MenuService interface {
	ListAvailable(ctx context.Context, stallID *uint) ([]domain.Menu, error)
	Create(ctx context.Context, menu domain.Menu, actorRole string, actorStallID uint) (domain.Menu, error)
	Update(ctx context.Context, menu domain.Menu, actorRole string, actorStallID uint) (domain.Menu, error)
	Deactivate(ctx context.Context, id uint, actorRole string, actorStallID uint) error
}

type MenuHandler struct {
	svc       MenuService
	uploadDir string
}

func NewMenuHandler(svc MenuService, uploadDir string) *MenuHandler {
	return &MenuHandler{
		svc:       svc,
		uploadDir: uploadDir,
	}
}

// HandleListMenus godoc
// @Summary      List available menu items, optionally for one stall
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Param        stall_id query      int false "filter by stall"
// @Success      200     {array}    domain.Menu
// @Failure      400     {object}   response.Err
// @Failure      500     {object}   response.Err
// @Router       /menus [get]
func (h *MenuHandler) HandleListMenus(ctx *gin.Context) {
	var stallID *uint
	if raw := ctx.Query("stall_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("stall_id must be a positive integer")))

			return
		}

		val := uint(id)
		stallID = &val
	}

	menus, err := h.svc.ListAvailable(ctx.Request.Context(), stallID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMenus -> h.svc.ListAvailable -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, menus)
}

// HandleCreateMenu godoc
// @Summary      Add a menu item to a stall
// @Tags         menus
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Success      201      {object}   domain.Menu
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /menus [post]
func (h *MenuHandler) HandleCreateMenu(ctx *gin.Context) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	var req request.CreateMenuRequest
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

	menu, err := h.svc.Create(ctx.Request.Context(), domain.Menu{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Description: req.Description,
		Photo:       photo,
		StallID:     req.StallID,
	}, claims.Role, claims.StallID)
	if err != nil {
		if errors.Is(err, service.ErrStallRequired) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateMenu -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, menu)
}

// HandleUpdateMenu godoc
// @Summary      Update a menu item
// @Tags         menus
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        menuID   path       int true "menu ID"
// @Success      200      {object}   domain.Menu
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /menus/{menuID} [put]
func (h *MenuHandler) HandleUpdateMenu(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "menuID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	claims, err := claimsFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	var req request.UpdateMenuRequest
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

	menu, err := h.svc.Update(ctx.Request.Context(), domain.Menu{
		ID:          id,
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Description: req.Description,
		Photo:       photo,
		StallID:     req.StallID,
	}, claims.Role, claims.StallID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMenuNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrNotMenuOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateMenu -> h.svc.Update -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, menu)
}

// HandleDeleteMenu godoc
// @Summary      Remove a menu item from the catalog
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Param        menuID   path       int true "menu ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /menus/{menuID} [delete]
func (h *MenuHandler) HandleDeleteMenu(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "menuID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	claims, err := claimsFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	if err = h.svc.Deactivate(ctx.Request.Context(), id, claims.Role, claims.StallID); err != nil {
		switch {
		case errors.Is(err, service.ErrMenuNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrNotMenuOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleDeleteMenu -> h.svc.Deactivate -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.Status(http.StatusNoContent)
}
