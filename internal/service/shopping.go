package service

import (
	"context"
	"strings"

	"github.com/pageza/hearth/backend/internal/kvstore"
	"github.com/pageza/hearth/backend/internal/models"
	"github.com/pageza/hearth/backend/internal/shopping"
)

// ShoppingList computes the live list for every meal planned from today on
func (s *PlannerService) ShoppingList(ctx context.Context) ([]models.ShoppingItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.generate(ctx, h), nil
}

// AddCustomItem adds or replaces a hand-written entry, matched by lowercased name
func (s *PlannerService) AddCustomItem(ctx context.Context, item models.ShoppingItem) ([]models.ShoppingItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return nil, ErrInvalidItem
	}
	item.IsCustom = true
	if item.Amounts == nil {
		item.Amounts = []string{}
	}
	if item.Recipes == nil {
		item.Recipes = []string{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	items := kvstore.LoadJSON(ctx, s.store, models.KeyCustomShopping, []models.ShoppingItem{})
	out := make([]models.ShoppingItem, 0, len(items)+1)
	for _, it := range items {
		if shopping.NameKey(it.Name) != shopping.NameKey(item.Name) {
			out = append(out, it)
		}
	}
	out = append(out, item)
	if err := kvstore.SaveJSON(ctx, s.store, models.KeyCustomShopping, out); err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveCustomItem drops a hand-written entry by lowercased name
func (s *PlannerService) RemoveCustomItem(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := kvstore.LoadJSON(ctx, s.store, models.KeyCustomShopping, []models.ShoppingItem{})
	out := make([]models.ShoppingItem, 0, len(items))
	for _, it := range items {
		if shopping.NameKey(it.Name) != shopping.NameKey(name) {
			out = append(out, it)
		}
	}
	return kvstore.SaveJSON(ctx, s.store, models.KeyCustomShopping, out)
}

// SetChecked ticks or unticks a list line by lowercased name
func (s *PlannerService) SetChecked(ctx context.Context, name string, checked bool) error {
	key := shopping.NameKey(name)
	if key == "" {
		return ErrInvalidItem
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	state := kvstore.LoadJSON(ctx, s.store, models.KeyShoppingChecked, map[string]bool{})
	// false is stored too so it overrides a custom item saved as checked
	state[key] = checked
	if err := kvstore.SaveJSON(ctx, s.store, models.KeyShoppingChecked, state); err != nil {
		return err
	}

	custom := kvstore.LoadJSON(ctx, s.store, models.KeyCustomShopping, []models.ShoppingItem{})
	changed := false
	for i := range custom {
		if shopping.NameKey(custom[i].Name) == key && custom[i].Checked != checked {
			custom[i].Checked = checked
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return kvstore.SaveJSON(ctx, s.store, models.KeyCustomShopping, custom)
}

// History returns archived lists, newest first
func (s *PlannerService) History(ctx context.Context) ([]models.ShoppingListHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return kvstore.LoadJSON(ctx, s.store, models.KeyShoppingHistory, []models.ShoppingListHistory{}), nil
}

// HistoricalList returns one archived list without touching the live plan
func (s *PlannerService) HistoricalList(ctx context.Context, index int) (models.ShoppingListHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := kvstore.LoadJSON(ctx, s.store, models.KeyShoppingHistory, []models.ShoppingListHistory{})
	record, ok := shopping.Historical(history, index)
	if !ok {
		return models.ShoppingListHistory{}, ErrHistoryNotFound
	}
	return record, nil
}
