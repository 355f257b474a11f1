package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hanifz/kantin-api/internal/api/handler/v1/request"
	"github.com/hanifz/kantin-api/internal/api/handler/v1/response"
	"github.com/hanifz/kantin-api/internal/config"
	"github.com/hanifz/kantin-api/internal/domain"
	"github.com/hanifz/kantin-api/internal/pkg/jwthelper"
	"github.com/hanifz/kantin-api/internal/pkg/upload"
	"github.com/hanifz/kantin-api/internal/service"
)

type AuthService interface {
	SignupStudent(ctx context.Context, student domain.Student) (domain.Student, error)
	SignupStaff(ctx context.Context, staff domain.Staff) (domain.Staff, error)
	LoginStudent(ctx context.Context, studentNumber, password string) (domain.Student, error)
	LoginStaff(ctx context.Context, email, password string) (domain.User, *domain.Staff, error)
}

type AuthHandler struct {
	conf      *config.APIConfig
	svc       AuthService
	uploadDir string
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService, uploadDir string) *AuthHandler {
	return &AuthHandler{
		conf:      conf,
		svc:       svc,
		uploadDir: uploadDir,
	}
}

func tokenTTL(rememberMe bool) time.Duration {
	if rememberMe {
		return jwthelper.ExtendedTokenTTL
	}

	return jwthelper.DefaultTokenTTL
}

// HandleStudentSignup godoc
// @Summary      Register a new student account
// @Tags         auth
// @Accept       mpfd
// @Produce      json
// @Success      201      {object}   domain.Student
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/student/signup [post]
func (h *AuthHandler) HandleStudentSignup(ctx *gin.Context) {
	var req request.StudentSignupRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	photo, err := upload.SavePhoto(ctx, "photo", h.uploadDir)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	student, err := h.svc.SignupStudent(ctx.Request.Context(), domain.Student{
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
	})
	if err != nil {
		if errors.Is(err, service.ErrUserEmailExists) || errors.Is(err, service.ErrStudentNumberExists) {
			response.RenderErr(ctx, response.ErrConflict(err))

			return
		}

		err = fmt.Errorf("v1.HandleStudentSignup -> h.svc.SignupStudent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, student)
}

// HandleStudentLogin godoc
// @Summary      Login with a student number
// @Tags         auth
// @Produce      json
// @Param        request   body      request.StudentLoginRequest true "request body"
// @Success      200      {object}   response.StudentLoginResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/student/login [post]
func (h *AuthHandler) HandleStudentLogin(ctx *gin.Context) {
	var req request.StudentLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	student, err := h.svc.LoginStudent(ctx.Request.Context(), req.StudentNumber, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) ||
			errors.Is(err, service.ErrWrongPassword) ||
			errors.Is(err, service.ErrAccountInactive) {
			response.RenderErr(ctx, response.ErrWrongCredentials(errors.New("wrong student number or password")))

			return
		}

		err = fmt.Errorf("v1.HandleStudentLogin -> h.svc.LoginStudent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), jwthelper.Claims{
		UserID:    student.User.ID,
		Role:      domain.RoleStudent,
		StudentID: student.ID,
	}, tokenTTL(req.RememberMe))
	if err != nil {
		err = fmt.Errorf("v1.HandleStudentLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.StudentLoginResponse{
		Token:   token,
		Student: student,
	})
}

// HandleStaffSignup godoc
// @Summary      Register a staff account for a stall
// @Tags         auth
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Success      201      {object}   domain.Staff
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/staff/signup [post]
func (h *AuthHandler) HandleStaffSignup(ctx *gin.Context) {
	var req request.StaffSignupRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	photo, err := upload.SavePhoto(ctx, "photo", h.uploadDir)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	staff, err := h.svc.SignupStaff(ctx.Request.Context(), domain.Staff{
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
	})
	if err != nil {
		if errors.Is(err, service.ErrStallNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}
		if errors.Is(err, service.ErrUserEmailExists) {
			response.RenderErr(ctx, response.ErrConflict(err))

			return
		}

		err = fmt.Errorf("v1.HandleStaffSignup -> h.svc.SignupStaff -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, staff)
}

// HandleStaffLogin godoc
// @Summary      Login a staff or admin account
// @Tags         auth
// @Produce      json
// @Param        request   body      request.StaffLoginRequest true "request body"
// @Success      200      {object}   response.StaffLoginResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/staff/login [post]
func (h *AuthHandler) HandleStaffLogin(ctx *gin.Context) {
	var req request.StaffLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, staff, err := h.svc.LoginStaff(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) ||
			errors.Is(err, service.ErrWrongPassword) ||
			errors.Is(err, service.ErrAccountInactive) ||
			errors.Is(err, service.ErrNotStaffAccount) {
			response.RenderErr(ctx, response.ErrWrongCredentials(errors.New("wrong email or password")))

			return
		}

		err = fmt.Errorf("v1.HandleStaffLogin -> h.svc.LoginStaff -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	claims := jwthelper.Claims{
		UserID: user.ID,
		Role:   user.Role,
	}
	if staff != nil {
		claims.StallID = staff.StallID
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), claims, tokenTTL(req.RememberMe))
	if err != nil {
		err = fmt.Errorf("v1.HandleStaffLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.StaffLoginResponse{
		Token: token,
		User:  user,
		Staff: staff,
	})
}
