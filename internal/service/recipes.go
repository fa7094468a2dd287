package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/hearth/backend/internal/kvstore"
	"github.com/pageza/hearth/backend/internal/logging"
	"github.com/pageza/hearth/backend/internal/models"
	"github.com/pageza/hearth/backend/internal/rota"
)

// SeedPrefix marks recipes installed by the seed loader
const SeedPrefix = "seed-"

// IsSeedRecipe reports whether id belongs to a seeded recipe
func IsSeedRecipe(id string) bool {
	return strings.HasPrefix(id, SeedPrefix)
}

func normalizeRecipe(r models.Recipe) (models.Recipe, error) {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return r, ErrInvalidRecipe
	}
	if r.Serves <= 0 {
		r.Serves = models.DefaultServes
	}
	ingredients := make([]models.Ingredient, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ing.Name = strings.TrimSpace(ing.Name)
		if ing.Name == "" {
			continue
		}
		ing.Amount = strings.TrimSpace(ing.Amount)
		if ing.ID == "" {
			ing.ID = uuid.NewString()
		}
		ingredients = append(ingredients, ing)
	}
	r.Ingredients = ingredients
	return r, nil
}

// ListRecipes returns all recipes in stored order
func (s *PlannerService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return h.recipes, nil
}

// GetRecipe returns the recipe with id or ErrRecipeNotFound
func (s *PlannerService) GetRecipe(ctx context.Context, id string) (models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := household{recipes: s.loadRecipes(ctx)}.recipe(id)
	if !ok {
		return models.Recipe{}, ErrRecipeNotFound
	}
	return r, nil
}

// CreateRecipe stores a new recipe under a fresh id
func (s *PlannerService) CreateRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error) {
	recipe, err := normalizeRecipe(recipe)
	if err != nil {
		return models.Recipe{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	recipes := s.loadRecipes(ctx)
	recipe.ID = uuid.NewString()
	recipe.DateCreated = s.now().UTC().Format(time.RFC3339)
	recipes = append(recipes, recipe)
	if err := kvstore.SaveJSON(ctx, s.store, models.KeyRecipes, recipes); err != nil {
		return models.Recipe{}, err
	}
	logging.Info("recipe created", zap.String("id", recipe.ID), zap.String("title", recipe.Title))
	return recipe, nil
}

// UpdateRecipe replaces the editable fields of an existing recipe and refreshes plan titles
func (s *PlannerService) UpdateRecipe(ctx context.Context, id string, recipe models.Recipe) (models.Recipe, error) {
	recipe, err := normalizeRecipe(recipe)
	if err != nil {
		return models.Recipe{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	h, err := s.load(ctx)
	if err != nil {
		return models.Recipe{}, err
	}
	idx := -1
	for i, r := range h.recipes {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Recipe{}, ErrRecipeNotFound
	}

	recipe.ID = id
	recipe.DateCreated = h.recipes[idx].DateCreated
	h.recipes[idx] = recipe
	if err := kvstore.SaveJSON(ctx, s.store, models.KeyRecipes, h.recipes); err != nil {
		return models.Recipe{}, err
	}
	h.state = rota.RenameRecipe(h.state, id, recipe.Title)
	if err := s.commitPlan(ctx, h); err != nil {
		return models.Recipe{}, err
	}
	return recipe, nil
}

// DeleteRecipe removes a user recipe and every plan entry pointing at it
func (s *PlannerService) DeleteRecipe(ctx context.Context, id string) error {
	if IsSeedRecipe(id) {
		return ErrSeedRecipeProtected
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	h, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := make([]models.Recipe, 0, len(h.recipes))
	for _, r := range h.recipes {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(h.recipes) {
		return ErrRecipeNotFound
	}
	h.recipes = kept
	if err := kvstore.SaveJSON(ctx, s.store, models.KeyRecipes, h.recipes); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}

	var dropped int
	h.state, dropped = rota.PruneOrphans(h.state, h.known())
	logging.Info("recipe deleted", zap.String("id", id), zap.Int("plan_entries_removed", dropped))
	if dropped == 0 {
		return nil
	}
	return s.commitPlan(ctx, h)
}
