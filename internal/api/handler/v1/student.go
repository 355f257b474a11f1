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

type StudentService interface {
	ListStudents(ctx context.Context) ([]domain.Student, error)
	GetStudent(ctx context.Context, id uint) (domain.Student, error)
	UpdateStudent(ctx context.Context, student domain.Student, actorRole string, actorStudentID uint) (domain.Student, error)
	DeactivateStudent(ctx context.Context, studentID uint) error
}

type StudentHandler struct {
	svc       StudentService
	uploadDir string
}

func NewStudentHandler(svc StudentService, uploadDir string) *StudentHandler {
	return &StudentHandler{
		svc:       svc,
		uploadDir: uploadDir,
	}
}

// HandleListStudents godoc
// @Summary      List all active students
// @Tags         students
// @Security     Bearer
// @Produce      json
// @Success      200 {array}  domain.Student
// @Failure      500 {object} response.Err
// @Router       /students [get]
func (h *StudentHandler) HandleListStudents(ctx *gin.Context) {
	students, err := h.svc.ListStudents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListStudents -> h.svc.ListStudents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, students)
}

// HandleGetStudent godoc
// @Summary      Get one student profile
// @Tags         students
// @Security     Bearer
// @Produce      json
// @Param        studentID path       int true "student ID"
// @Success      200      {object}   domain.Student
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /students/{studentID} [get]
func (h *StudentHandler) HandleGetStudent(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "studentID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	student, err := h.svc.GetStudent(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleGetStudent -> h.svc.GetStudent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, student)
}

// HandleUpdateStudent godoc
// @Summary      Update a student profile
// @Tags         students
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        studentID path       int true "student ID"
// @Success      200      {object}   domain.Student
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /students/{studentID} [put]
func (h *StudentHandler) HandleUpdateStudent(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "studentID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	claims, err := claimsFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	var req request.UpdateStudentRequest
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

	student, err := h.svc.UpdateStudent(ctx.Request.Context(), domain.Student{
		ID:            id,
		StudentNumber: req.StudentNumber,
		Name:          req.Name,
		Address:       req.Address,
		Phone:         req.Phone,
		Photo:         photo,
		User: domain.User{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		},
	}, claims.Role, claims.StudentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotProfileOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrStudentNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrUserEmailExists), errors.Is(err, service.ErrStudentNumberExists):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateStudent -> h.svc.UpdateStudent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, student)
}

// HandleDeleteStudent godoc
// @Summary      Deactivate a student account
// @Tags         students
// @Security     Bearer
// @Produce      json
// @Param        studentID path       int true "student ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /students/{studentID} [delete]
func (h *StudentHandler) HandleDeleteStudent(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "studentID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeactivateStudent(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrStudentNotFound) || errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteStudent -> h.svc.DeactivateStudent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
