package v1

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hanifz/kantin-api/internal/api/middleware"
	"github.com/hanifz/kantin-api/internal/pkg/jwthelper"
)

var errNotAuthenticated = errors.New("request is not authenticated")

func claimsFromContext(ctx *gin.Context) (*jwthelper.Claims, error) {
	claims := middleware.GetClaims(ctx)
	if claims == nil {
		return nil, errNotAuthenticated
	}

	return claims, nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New(name + " must be a positive integer")
	}

	return uint(id), nil
}

// parseOptionalInt reads a query parameter, nil when absent.
func parseOptionalInt(ctx *gin.Context, name string) (*int, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.New(name + " must be an integer")
	}

	return &val, nil
}
