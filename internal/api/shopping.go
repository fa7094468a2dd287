package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/hearth/backend/internal/models"
	"github.com/pageza/hearth/backend/internal/service"
)

type CheckedRequest struct {
	Checked bool `json:"checked"`
}

type ShoppingHandler struct {
	planner service.IPlannerService
}

func NewShoppingHandler(planner service.IPlannerService) *ShoppingHandler {
	return &ShoppingHandler{planner: planner}
}

func (h *ShoppingHandler) RegisterRoutes(router *gin.RouterGroup) {
	shopping := router.Group("/shopping")
	{
		shopping.GET("", h.GetList)
		shopping.POST("/custom", h.AddCustomItem)
		shopping.DELETE("/custom/:name", h.RemoveCustomItem)
		shopping.PUT("/checked/:name", h.SetChecked)
		shopping.GET("/history", h.ListHistory)
		shopping.GET("/history/:index", h.GetHistory)
	}
}

func (h *ShoppingHandler) GetList(c *gin.Context) {
	items, err := h.planner.ShoppingList(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *ShoppingHandler) AddCustomItem(c *gin.Context) {
	var req models.ShoppingItem
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	items, err := h.planner.AddCustomItem(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"customItems": items})
}

func (h *ShoppingHandler) RemoveCustomItem(c *gin.Context) {
	if err := h.planner.RemoveCustomItem(c.Request.Context(), c.Param("name")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ShoppingHandler) SetChecked(c *gin.Context) {
	var req CheckedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.planner.SetChecked(c.Request.Context(), c.Param("name"), req.Checked); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": c.Param("name"), "checked": req.Checked})
}

func (h *ShoppingHandler) ListHistory(c *gin.Context) {
	history, err := h.planner.History(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

func (h *ShoppingHandler) GetHistory(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "history index must be a number"})
		return
	}
	record, err := h.planner.HistoricalList(c.Request.Context(), index)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": record})
}
