package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/hearth/backend/internal/service"
)

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// AuthHandler exchanges the household password for a token
type AuthHandler struct {
	authService service.IAuthService
	limiter     gin.HandlerFunc
}

// NewAuthHandler creates the handler. limiter may be nil.
func NewAuthHandler(authService service.IAuthService, limiter gin.HandlerFunc) *AuthHandler {
	return &AuthHandler{authService: authService, limiter: limiter}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	handlers := []gin.HandlerFunc{h.Login}
	if h.limiter != nil {
		handlers = append([]gin.HandlerFunc{h.limiter}, handlers...)
	}
	auth.POST("/login", handlers...)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	token, err := h.authService.Login(c.Request.Context(), req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, LoginResponse{Token: token})
}
