package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/hearth/backend/internal/middleware"
	"github.com/pageza/hearth/backend/internal/service"
)

// HealthFunc reports whether the backing store is reachable
type HealthFunc func(ctx context.Context) error

// Services are the dependencies of the HTTP API
type Services struct {
	Auth    service.IAuthService
	Planner service.IPlannerService
	Backup  service.IBackupService
	// LoginLimiter guards the login route when set
	LoginLimiter gin.HandlerFunc
	Health       HealthFunc
}

// RegisterRoutes mounts every handler under /api/v1
func RegisterRoutes(router *gin.Engine, svc Services) {
	v1 := router.Group("/api/v1")
	v1.GET("/health", healthHandler(svc.Health))
	NewAuthHandler(svc.Auth, svc.LoginLimiter).RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(svc.Auth))
	NewRecipeHandler(svc.Planner).RegisterRoutes(protected)
	NewPlannerHandler(svc.Planner).RegisterRoutes(protected)
	NewShoppingHandler(svc.Planner).RegisterRoutes(protected)
	NewStockHandler(svc.Planner).RegisterRoutes(protected)
	NewBackupHandler(svc.Backup).RegisterRoutes(protected)
}

func healthHandler(check HealthFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	}
}
