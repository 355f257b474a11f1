package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HandleHealthcheck godoc
// @Summary      Check the API's health
// @Tags         healthcheck
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "School Canteen Ordering API",
		"time":    time.Now().Format(time.RFC3339),
	})
}
