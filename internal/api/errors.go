package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/hearth/backend/internal/logging"
	"github.com/pageza/hearth/backend/internal/rota"
	"github.com/pageza/hearth/backend/internal/service"
)

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidRecipe),
		errors.Is(err, service.ErrInvalidItem),
		errors.Is(err, service.ErrInvalidSnapshot):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrSeedRecipeProtected):
		return http.StatusForbidden
	case errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrHistoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, rota.ErrNoFreeDay):
		return http.StatusConflict
	case errors.Is(err, service.ErrBackupDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": ...}. Internal errors are logged and not echoed.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		logging.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
}
