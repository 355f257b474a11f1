package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the uniform error body every endpoint renders.
type Err struct {
	statusCode int

	Code string `json:"code"`
	Msg  string `json:"msg"`
}

func NewErr(statusCode int, code string, err error) *Err {
	return &Err{
		statusCode: statusCode,
		Code:       code,
		Msg:        err.Error(),
	}
}

func ErrBadRequest(err error) *Err {
	return NewErr(http.StatusBadRequest, "BAD_REQUEST", err)
}

func ErrWrongCredentials(err error) *Err {
	return NewErr(http.StatusUnauthorized, "WRONG_CREDENTIALS", err)
}

func ErrUnauthorized(err error) *Err {
	return NewErr(http.StatusUnauthorized, "UNAUTHORIZED", err)
}

func ErrPermissionDenied(err error) *Err {
	return NewErr(http.StatusForbidden, "PERMISSION_DENIED", err)
}

func ErrNotFound(err error) *Err {
	return NewErr(http.StatusNotFound, "NOT_FOUND", err)
}

func ErrConflict(err error) *Err {
	return NewErr(http.StatusConflict, "CONFLICT", err)
}

func ErrInternalServerError(err error) *Err {
	return NewErr(http.StatusInternalServerError, "INTERNAL_ERROR", err)
}

// RenderErr writes the error body. Server-side failures are logged with
// the request context; the client only sees a generic message for those.
func RenderErr(ctx *gin.Context, err *Err) {
	if err.statusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Int("status", err.statusCode),
			zap.String("error", err.Msg),
		)
		err.Msg = "internal server error"
	}

	ctx.AbortWithStatusJSON(err.statusCode, err)
}
