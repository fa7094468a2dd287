package pantry

import (
	"strings"
	"time"

	"github.com/pageza/hearth/backend/internal/amount"
	"github.com/pageza/hearth/backend/internal/canonical"
	"github.com/pageza/hearth/backend/internal/models"
)

// NormalizeUnit stores known units by their canonical token and anything else lowercased
func NormalizeUnit(unit string) string {
	if u, ok := amount.NormalizeUnit(unit); ok {
		return u
	}
	return strings.ToLower(strings.TrimSpace(unit))
}

func matches(ix *canonical.AliasIndex, item models.PantryItem, name, unit string) bool {
	return ix.Canonicalize(item.Name) == name && NormalizeUnit(item.Unit) == unit
}

// Upsert sets the stock of an ingredient, merging rows with the same canonical name and unit
func Upsert(items []models.PantryItem, item models.PantryItem, ix *canonical.AliasIndex, now time.Time) []models.PantryItem {
	name := ix.Canonicalize(item.Name)
	unit := NormalizeUnit(item.Unit)
	stamp := now.UTC().Format(time.RFC3339)

	out := make([]models.PantryItem, 0, len(items)+1)
	replaced := false
	for _, it := range items {
		if matches(ix, it, name, unit) {
			if replaced {
				continue
			}
			replaced = true
			it.Quantity = item.Quantity
			it.UpdatedAt = stamp
		}
		out = append(out, it)
	}
	if !replaced {
		out = append(out, models.PantryItem{
			Name:      strings.TrimSpace(item.Name),
			Quantity:  item.Quantity,
			Unit:      unit,
			UpdatedAt: stamp,
		})
	}
	return dropEmpty(out)
}

// Remove deletes every row for an ingredient regardless of unit
func Remove(items []models.PantryItem, name string, ix *canonical.AliasIndex) []models.PantryItem {
	target := ix.Canonicalize(name)
	out := make([]models.PantryItem, 0, len(items))
	for _, it := range items {
		if ix.Canonicalize(it.Name) != target {
			out = append(out, it)
		}
	}
	return out
}

// Consume subtracts what cooking recipe for targetServes uses from the pantry.
// Only ingredients with a quantity and unit are deducted; rows at or below zero are removed.
func Consume(items []models.PantryItem, recipe models.Recipe, targetServes int, ix *canonical.AliasIndex, now time.Time) []models.PantryItem {
	if targetServes <= 0 {
		targetServes = models.DefaultServes
	}
	factor := float64(targetServes) / float64(recipe.ServesOrDefault())
	stamp := now.UTC().Format(time.RFC3339)

	out := make([]models.PantryItem, len(items))
	copy(out, items)

	for _, ing := range recipe.Ingredients {
		parsed := amount.Parse(ing.Amount)
		if !parsed.Structured() {
			continue
		}
		name := ix.Canonicalize(ing.Name)
		unit := parsed.UnitKey()
		for i := range out {
			if matches(ix, out[i], name, unit) {
				out[i].Quantity -= *parsed.Qty * factor
				out[i].UpdatedAt = stamp
				break
			}
		}
	}
	return dropEmpty(out)
}

func dropEmpty(items []models.PantryItem) []models.PantryItem {
	out := items[:0]
	for _, it := range items {
		if it.Quantity > 0 {
			out = append(out, it)
		}
	}
	return out
}
