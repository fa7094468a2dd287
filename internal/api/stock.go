package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/hearth/backend/internal/models"
	"github.com/pageza/hearth/backend/internal/service"
)

// StockHandler serves the pantry and the fridge
type StockHandler struct {
	planner service.IPlannerService
}

func NewStockHandler(planner service.IPlannerService) *StockHandler {
	return &StockHandler{planner: planner}
}

func (h *StockHandler) RegisterRoutes(router *gin.RouterGroup) {
	pantry := router.Group("/pantry")
	{
		pantry.GET("", h.GetPantry)
		pantry.PUT("", h.UpsertPantryItem)
		pantry.DELETE("/:name", h.RemovePantryItem)
	}

	fridge := router.Group("/fridge")
	{
		fridge.GET("", h.GetFridge)
		fridge.POST("", h.AddFridgeItem)
		fridge.DELETE("/:name", h.RemoveFridgeItem)
	}
}

func (h *StockHandler) GetPantry(c *gin.Context) {
	items, err := h.planner.Pantry(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *StockHandler) UpsertPantryItem(c *gin.Context) {
	var req models.PantryItem
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	items, err := h.planner.UpsertPantryItem(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *StockHandler) RemovePantryItem(c *gin.Context) {
	if err := h.planner.RemovePantryItem(c.Request.Context(), c.Param("name")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *StockHandler) GetFridge(c *gin.Context) {
	items, err := h.planner.Fridge(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *StockHandler) AddFridgeItem(c *gin.Context) {
	var req models.FridgeItem
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	items, err := h.planner.AddFridgeItem(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"items": items})
}

func (h *StockHandler) RemoveFridgeItem(c *gin.Context) {
	if err := h.planner.RemoveFridgeItem(c.Request.Context(), c.Param("name")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
