package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/pageza/hearth/backend/internal/kvstore"
	"github.com/pageza/hearth/backend/internal/logging"
	"github.com/pageza/hearth/backend/internal/models"
	"github.com/pageza/hearth/backend/internal/pantry"
	"github.com/pageza/hearth/backend/internal/rota"
)

// MealPlan returns every planned day, date sorted
func (s *PlannerService) MealPlan(ctx context.Context) ([]models.MealPlanEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return h.state.MealPlan, nil
}

// AssignRecipe plans recipeID on date, replacing whatever was planned there
func (s *PlannerService) AssignRecipe(ctx context.Context, date, recipeID string, serves int) (models.MealPlanEntry, error) {
	if _, err := rota.ParseDate(date); err != nil {
		return models.MealPlanEntry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	h, err := s.load(ctx)
	if err != nil {
		return models.MealPlanEntry{}, err
	}
	recipe, ok := h.recipe(recipeID)
	if !ok {
		return models.MealPlanEntry{}, ErrRecipeNotFound
	}
	h.state, err = rota.Assign(h.state, date, recipe, serves)
	if err != nil {
		return models.MealPlanEntry{}, err
	}
	if err := s.commitPlan(ctx, h); err != nil {
		return models.MealPlanEntry{}, err
	}
	entry, _ := h.state.Entry(date)
	return entry, nil
}

// UnassignDay clears the plan for date. Clearing an empty day is not an error.
func (s *PlannerService) UnassignDay(ctx context.Context, date string) error {
	if _, err := rota.ParseDate(date); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	h, err := s.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := h.state.Entry(date); !ok {
		return nil
	}
	h.state = rota.Remove(h.state, date)
	return s.commitPlan(ctx, h)
}

// Week returns the rota view of the Monday-based week containing date
func (s *PlannerService) Week(ctx context.Context, date string) (rota.WeekView, error) {
	if date == "" {
		date = s.today()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	h, err := s.load(ctx)
	if err != nil {
		return rota.WeekView{}, err
	}
	return rota.Week(h.state, date)
}

// TogglePause pauses or unpauses date and reports whether it is now paused
func (s *PlannerService) TogglePause(ctx context.Context, date string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	next, paused, err := rota.TogglePause(h.state, date)
	if err != nil {
		return false, err
	}
	h.state = next
	if err := s.commitPlan(ctx, h); err != nil {
		return false, err
	}
	logging.Info("rota pause toggled", zap.String("date", date), zap.Bool("paused", paused))
	return paused, nil
}

// ToggleWeekStart swaps who opens the week containing date, or the current week when
// date is empty. It returns the Monday of that week and its new opening person.
func (s *PlannerService) ToggleWeekStart(ctx context.Context, date string) (string, models.Person, error) {
	if date == "" {
		date = s.today()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	h, err := s.load(ctx)
	if err != nil {
		return "", "", err
	}
	next, person, err := rota.ToggleWeekStart(h.state, date)
	if err != nil {
		return "", "", err
	}
	if err := kvstore.SaveJSON(ctx, s.store, models.KeyRotaWeekStartMap, next.WeekStarts); err != nil {
		return "", "", err
	}
	return rota.WeekStart(date), person, nil
}

// ToggleCooked flips the cooked flag of date. Marking a planned meal cooked
// takes its structured ingredients out of the pantry; unmarking leaves the pantry alone.
func (s *PlannerService) ToggleCooked(ctx context.Context, date string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	next, cooked, err := rota.ToggleCooked(h.state, date)
	if err != nil {
		return false, err
	}

	if cooked {
		if entry, ok := next.Entry(date); ok {
			if recipe, ok := h.recipe(entry.RecipeID); ok {
				items := kvstore.LoadJSON(ctx, s.store, models.KeyPantryItems, []models.PantryItem{})
				items = pantry.Consume(items, recipe, entry.ServesOrDefault(), s.aliasIndex(ctx), s.now())
				if err := kvstore.SaveJSON(ctx, s.store, models.KeyPantryItems, items); err != nil {
					return false, err
				}
			}
		}
	}
	if err := kvstore.SaveJSON(ctx, s.store, models.KeyCookedMeals, next.Cooked); err != nil {
		return false, err
	}
	return cooked, nil
}
