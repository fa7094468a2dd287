package service

import (
	"context"
	"strings"
	"time"

	"github.com/pageza/hearth/backend/internal/kvstore"
	"github.com/pageza/hearth/backend/internal/models"
	"github.com/pageza/hearth/backend/internal/pantry"
	"github.com/pageza/hearth/backend/internal/shopping"
)

// Pantry returns the stocked cupboard items
func (s *PlannerService) Pantry(ctx context.Context) ([]models.PantryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return kvstore.LoadJSON(ctx, s.store, models.KeyPantryItems, []models.PantryItem{}), nil
}

// UpsertPantryItem sets the stock for a canonical name and unit. A quantity of zero or less removes the row.
func (s *PlannerService) UpsertPantryItem(ctx context.Context, item models.PantryItem) ([]models.PantryItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return nil, ErrInvalidItem
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	items := kvstore.LoadJSON(ctx, s.store, models.KeyPantryItems, []models.PantryItem{})
	items = pantry.Upsert(items, item, s.aliasIndex(ctx), s.now())
	if err := kvstore.SaveJSON(ctx, s.store, models.KeyPantryItems, items); err != nil {
		return nil, err
	}
	return items, nil
}

// RemovePantryItem drops every row for the ingredient, whatever the unit
func (s *PlannerService) RemovePantryItem(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := kvstore.LoadJSON(ctx, s.store, models.KeyPantryItems, []models.PantryItem{})
	items = pantry.Remove(items, name, s.aliasIndex(ctx))
	return kvstore.SaveJSON(ctx, s.store, models.KeyPantryItems, items)
}

// Fridge returns what is currently in the fridge
func (s *PlannerService) Fridge(ctx context.Context) ([]models.FridgeItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return kvstore.LoadJSON(ctx, s.store, models.KeyFridgeItems, []models.FridgeItem{}), nil
}

// AddFridgeItem records something in the fridge, replacing an item of the same name
func (s *PlannerService) AddFridgeItem(ctx context.Context, item models.FridgeItem) ([]models.FridgeItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return nil, ErrInvalidItem
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	item.AddedAt = s.now().UTC().Format(time.RFC3339)
	items := kvstore.LoadJSON(ctx, s.store, models.KeyFridgeItems, []models.FridgeItem{})
	out := make([]models.FridgeItem, 0, len(items)+1)
	for _, it := range items {
		if shopping.NameKey(it.Name) != shopping.NameKey(item.Name) {
			out = append(out, it)
		}
	}
	out = append(out, item)
	if err := kvstore.SaveJSON(ctx, s.store, models.KeyFridgeItems, out); err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveFridgeItem drops the fridge entry with the given name, ignoring case
func (s *PlannerService) RemoveFridgeItem(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := kvstore.LoadJSON(ctx, s.store, models.KeyFridgeItems, []models.FridgeItem{})
	out := make([]models.FridgeItem, 0, len(items))
	for _, it := range items {
		if shopping.NameKey(it.Name) != shopping.NameKey(name) {
			out = append(out, it)
		}
	}
	return kvstore.SaveJSON(ctx, s.store, models.KeyFridgeItems, out)
}
