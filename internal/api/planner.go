package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/hearth/backend/internal/service"
)

type AssignRequest struct {
	RecipeID string `json:"recipeId" binding:"required"`
	Serves   int    `json:"serves"`
}

// PlannerHandler serves the meal plan and the cooking rota
type PlannerHandler struct {
	planner service.IPlannerService
}

func NewPlannerHandler(planner service.IPlannerService) *PlannerHandler {
	return &PlannerHandler{planner: planner}
}

func (h *PlannerHandler) RegisterRoutes(router *gin.RouterGroup) {
	plan := router.Group("/mealplan")
	{
		plan.GET("", h.GetMealPlan)
		plan.PUT("/:date", h.AssignDay)
		plan.DELETE("/:date", h.ClearDay)
	}

	r := router.Group("/rota")
	{
		r.GET("/week", h.GetWeek)
		r.POST("/pause/:date", h.TogglePause)
		r.POST("/week-start", h.ToggleWeekStart)
		r.POST("/cooked/:date", h.ToggleCooked)
	}
}

func (h *PlannerHandler) GetMealPlan(c *gin.Context) {
	plan, err := h.planner.MealPlan(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mealPlan": plan})
}

func (h *PlannerHandler) AssignDay(c *gin.Context) {
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	entry, err := h.planner.AssignRecipe(c.Request.Context(), c.Param("date"), req.RecipeID, req.Serves)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

func (h *PlannerHandler) ClearDay(c *gin.Context) {
	if err := h.planner.UnassignDay(c.Request.Context(), c.Param("date")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PlannerHandler) GetWeek(c *gin.Context) {
	week, err := h.planner.Week(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, week)
}

func (h *PlannerHandler) TogglePause(c *gin.Context) {
	date := c.Param("date")
	paused, err := h.planner.TogglePause(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "paused": paused})
}

func (h *PlannerHandler) ToggleWeekStart(c *gin.Context) {
	weekStart, person, err := h.planner.ToggleWeekStart(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"weekStart": weekStart, "startPerson": person})
}

func (h *PlannerHandler) ToggleCooked(c *gin.Context) {
	date := c.Param("date")
	cooked, err := h.planner.ToggleCooked(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "cooked": cooked})
}
