package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hanifz/kantin-api/internal/api/handler/v1/response"
	"github.com/hanifz/kantin-api/internal/pkg/jwthelper"
)

// ClaimsKey is where VerifyJWT stores the parsed token claims.
const ClaimsKey = "claims"

var (
	errMissingToken = errors.New("missing or malformed authorization header")
	errForbidden    = errors.New("insufficient role for this endpoint")
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))

			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(jwthelper.ErrInvalidToken))

			return
		}

		ctx.Set(ClaimsKey, claims)
		ctx.Next()
	}
}

// RequireRoles allows the request through only when the authenticated
// role is in the allow list. It must run after VerifyJWT.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims := GetClaims(ctx)
		if claims == nil {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))

			return
		}

		for _, role := range roles {
			if claims.Role == role {
				ctx.Next()

				return
			}
		}

		ctx.AbortWithStatusJSON(http.StatusForbidden, response.NewErr(http.StatusForbidden, "PERMISSION_DENIED", errForbidden))
	}
}

// GetClaims returns the parsed claims, or nil on an unauthenticated route.
func GetClaims(ctx *gin.Context) *jwthelper.Claims {
	val, exists := ctx.Get(ClaimsKey)
	if !exists {
		return nil
	}

	claims, ok := val.(*jwthelper.Claims)
	if !ok {
		return nil
	}

	return claims
}
