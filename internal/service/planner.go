package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/hearth/backend/internal/canonical"
	"github.com/pageza/hearth/backend/internal/kvstore"
	"github.com/pageza/hearth/backend/internal/logging"
	"github.com/pageza/hearth/backend/internal/models"
	"github.com/pageza/hearth/backend/internal/rota"
	"github.com/pageza/hearth/backend/internal/shopping"
)

// PlannerService loads household state, applies a pure transform and saves the result.
// Every public method holds mu for its whole load-transform-save sequence.
type PlannerService struct {
	store kvstore.Store
	mu    sync.Mutex
	now   func() time.Time
	loc   *time.Location

	// alias index cache, rebuilt when the seeded ingredients blob changes
	seededRaw string
	index     *canonical.AliasIndex
}

// PlannerOption configures a PlannerService
type PlannerOption func(*PlannerService)

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) PlannerOption {
	return func(s *PlannerService) { s.now = now }
}

// WithLocation sets the household time zone used to decide what "today" is
func WithLocation(loc *time.Location) PlannerOption {
	return func(s *PlannerService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// NewPlannerService creates a planner on top of store
func NewPlannerService(store kvstore.Store, opts ...PlannerOption) *PlannerService {
	s := &PlannerService{
		store: store,
		now:   time.Now,
		loc:   time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type household struct {
	recipes []models.Recipe
	state   rota.State
}

func (h household) known() map[string]bool {
	ids := make(map[string]bool, len(h.recipes))
	for _, r := range h.recipes {
		ids[r.ID] = true
	}
	return ids
}

func (h household) recipe(id string) (models.Recipe, bool) {
	for _, r := range h.recipes {
		if r.ID == id {
			return r, true
		}
	}
	return models.Recipe{}, false
}

func (s *PlannerService) today() string {
	return rota.FormatDate(s.now().In(s.loc))
}

func (s *PlannerService) loadRecipes(ctx context.Context) []models.Recipe {
	recipes := kvstore.LoadJSON(ctx, s.store, models.KeyRecipes, []models.Recipe{})
	for i := range recipes {
		if recipes[i].Serves <= 0 {
			recipes[i].Serves = models.DefaultServes
		}
		if recipes[i].Ingredients == nil {
			recipes[i].Ingredients = []models.Ingredient{}
		}
	}
	return recipes
}

// load reads recipes and the rota state, dropping plan entries whose recipe is gone
func (s *PlannerService) load(ctx context.Context) (household, error) {
	h := household{
		recipes: s.loadRecipes(ctx),
		state: rota.State{
			MealPlan:     kvstore.LoadJSON(ctx, s.store, models.KeyMealPlan, []models.MealPlanEntry{}),
			Paused:       kvstore.LoadJSON(ctx, s.store, models.KeyRotaPaused, map[string]bool{}),
			WeekStarts:   kvstore.LoadJSON(ctx, s.store, models.KeyRotaWeekStartMap, map[string]models.Person{}),
			PauseHistory: kvstore.LoadJSON(ctx, s.store, models.KeyPauseShiftHistory, map[string]models.PauseRecord{}),
			Cooked:       kvstore.LoadJSON(ctx, s.store, models.KeyCookedMeals, map[string]bool{}),
		},
	}

	pruned, dropped := rota.PruneOrphans(h.state, h.known())
	h.state = pruned
	if dropped > 0 {
		logging.Info("pruned meal plan entries for missing recipes", zap.Int("count", dropped))
		if err := kvstore.SaveJSON(ctx, s.store, models.KeyMealPlan, h.state.MealPlan); err != nil {
			return h, err
		}
		if err := s.snapshot(ctx, h); err != nil {
			return h, err
		}
	}
	return h, nil
}

func (s *PlannerService) saveState(ctx context.Context, st rota.State) error {
	values := []struct {
		key string
		v   any
	}{
		{models.KeyMealPlan, st.MealPlan},
		{models.KeyRotaPaused, st.Paused},
		{models.KeyRotaWeekStartMap, st.WeekStarts},
		{models.KeyPauseShiftHistory, st.PauseHistory},
		{models.KeyCookedMeals, st.Cooked},
	}
	for _, kv := range values {
		if err := kvstore.SaveJSON(ctx, s.store, kv.key, kv.v); err != nil {
			return err
		}
	}
	return nil
}

// commitPlan persists a changed rota state and archives the resulting shopping list
func (s *PlannerService) commitPlan(ctx context.Context, h household) error {
	if err := s.saveState(ctx, h.state); err != nil {
		return err
	}
	return s.snapshot(ctx, h)
}

func (s *PlannerService) snapshot(ctx context.Context, h household) error {
	list := s.generate(ctx, h)
	history := kvstore.LoadJSON(ctx, s.store, models.KeyShoppingHistory, []models.ShoppingListHistory{})
	history = shopping.SaveToHistory(history, list, h.state.MealPlan, s.now())
	if err := kvstore.SaveJSON(ctx, s.store, models.KeyShoppingHistory, history); err != nil {
		return fmt.Errorf("archive shopping list: %w", err)
	}
	return nil
}

func (s *PlannerService) generate(ctx context.Context, h household) []models.ShoppingItem {
	return shopping.Generate(shopping.Input{
		Recipes:     h.recipes,
		MealPlan:    h.state.MealPlan,
		Pantry:      kvstore.LoadJSON(ctx, s.store, models.KeyPantryItems, []models.PantryItem{}),
		Fridge:      kvstore.LoadJSON(ctx, s.store, models.KeyFridgeItems, []models.FridgeItem{}),
		CustomItems: kvstore.LoadJSON(ctx, s.store, models.KeyCustomShopping, []models.ShoppingItem{}),
		Checked:     kvstore.LoadJSON(ctx, s.store, models.KeyShoppingChecked, map[string]bool{}),
		Today:       s.today(),
		Index:       s.aliasIndex(ctx),
	})
}

// aliasIndex returns the canonicaliser for the current seeded ingredients
func (s *PlannerService) aliasIndex(ctx context.Context) *canonical.AliasIndex {
	raw, err := s.store.Get(ctx, models.KeySeededIngredients)
	if err != nil {
		raw = ""
	}
	if s.index != nil && raw == s.seededRaw {
		return s.index
	}

	seeded := kvstore.LoadJSON(ctx, s.store, models.KeySeededIngredients, []models.SeededIngredient{})
	entries := make([]canonical.Entry, 0, len(seeded))
	for _, si := range seeded {
		entries = append(entries, canonical.Entry{Name: si.Name, Aliases: si.Aliases})
	}
	s.index = canonical.Default(entries)
	s.seededRaw = raw
	logging.Debug("rebuilt ingredient alias index", zap.Int("seeded", len(entries)), zap.Int("size", s.index.Len()))
	return s.index
}
