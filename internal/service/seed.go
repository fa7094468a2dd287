package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/hearth/backend/internal/kvstore"
	"github.com/pageza/hearth/backend/internal/logging"
	"github.com/pageza/hearth/backend/internal/models"
)

// SeedData is the document read by the seed loader
type SeedData struct {
	Recipes     []models.Recipe           `json:"recipes"`
	Ingredients []models.SeededIngredient `json:"ingredients"`
}

// Seed installs or refreshes the seeded recipes and ingredient aliases.
// Seed ids get the seed- prefix; user recipes are never touched.
func (s *PlannerService) Seed(ctx context.Context, data SeedData) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes := s.loadRecipes(ctx)
	pos := make(map[string]int, len(recipes))
	for i, r := range recipes {
		pos[r.ID] = i
	}

	stamp := s.now().UTC().Format(time.RFC3339)
	seeded := 0
	for _, r := range data.Recipes {
		r, err := normalizeRecipe(r)
		if err != nil {
			logging.Warn("skipping seed recipe", zap.String("id", r.ID), zap.Error(err))
			continue
		}
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if !IsSeedRecipe(r.ID) {
			r.ID = SeedPrefix + r.ID
		}
		if i, ok := pos[r.ID]; ok {
			r.DateCreated = recipes[i].DateCreated
			recipes[i] = r
		} else {
			if r.DateCreated == "" {
				r.DateCreated = stamp
			}
			pos[r.ID] = len(recipes)
			recipes = append(recipes, r)
		}
		seeded++
	}

	if err := kvstore.SaveJSON(ctx, s.store, models.KeyRecipes, recipes); err != nil {
		return 0, err
	}
	if data.Ingredients != nil {
		if err := kvstore.SaveJSON(ctx, s.store, models.KeySeededIngredients, data.Ingredients); err != nil {
			return 0, err
		}
	}
	logging.Info("seed data loaded", zap.Int("recipes", seeded), zap.Int("ingredients", len(data.Ingredients)))
	return seeded, nil
}
