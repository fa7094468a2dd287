package shopping

import (
	"sort"
	"strings"

	"github.com/pageza/hearth/backend/internal/amount"
	"github.com/pageza/hearth/backend/internal/canonical"
	"github.com/pageza/hearth/backend/internal/models"
)

// epsilon below which a deficit counts as covered by the pantry
const epsilon = 0.0001

// MultipleSource tags amounts that were aggregated across meals
const MultipleSource = "Multiple"

// Input is everything the shopping list is derived from
type Input struct {
	Recipes     []models.Recipe
	MealPlan    []models.MealPlanEntry
	Pantry      []models.PantryItem
	Fridge      []models.FridgeItem
	CustomItems []models.ShoppingItem
	Checked     map[string]bool
	// Today is a YYYY-MM-DD day; earlier meals are ignored. Empty includes every meal.
	Today string
	Index *canonical.AliasIndex
}

type structured struct {
	name string
	unit string
	qty  float64
}

type freeText struct {
	amounts []string
	recipes []string
}

// NameKey is the lookup key used for checked state and custom item overrides
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Generate builds the shopping list. It does not modify its input.
func Generate(in Input) []models.ShoppingItem {
	ix := in.Index
	if ix == nil {
		ix = canonical.Default(nil)
	}

	recipes := make(map[string]models.Recipe, len(in.Recipes))
	for _, r := range in.Recipes {
		recipes[r.ID] = r
	}

	inFridge := make(map[string]bool, len(in.Fridge))
	for _, f := range in.Fridge {
		if name := ix.Canonicalize(f.Name); name != "" {
			inFridge[name] = true
		}
	}

	needed := make(map[string]*structured)
	free := make(map[string]*freeText)
	var freeOrder []string

	for _, entry := range in.MealPlan {
		if in.Today != "" && entry.Date < in.Today {
			continue
		}
		recipe, ok := recipes[entry.RecipeID]
		if !ok {
			continue
		}
		factor := float64(entry.ServesOrDefault()) / float64(recipe.ServesOrDefault())

		for _, ing := range recipe.Ingredients {
			name := ix.Canonicalize(ing.Name)
			if name == "" || inFridge[name] {
				continue
			}

			parsed := amount.Parse(ing.Amount)
			if parsed.Structured() {
				unit := parsed.UnitKey()
				key := name + "::" + unit
				agg, ok := needed[key]
				if !ok {
					agg = &structured{name: name, unit: unit}
					needed[key] = agg
				}
				agg.qty += *parsed.Qty * factor
				continue
			}

			ft, ok := free[name]
			if !ok {
				ft = &freeText{}
				free[name] = ft
				freeOrder = append(freeOrder, name)
			}
			if a := strings.TrimSpace(ing.Amount); a != "" {
				ft.amounts = append(ft.amounts, a)
			}
			ft.recipes = appendUnique(ft.recipes, recipe.Title)
		}
	}

	stock := make(map[string]float64, len(in.Pantry))
	for _, p := range in.Pantry {
		stock[ix.Canonicalize(p.Name)+"::"+pantryUnit(p.Unit)] += p.Quantity
	}

	items := make(map[string]*models.ShoppingItem)
	var order []string
	itemFor := func(name string) *models.ShoppingItem {
		k := NameKey(name)
		it, ok := items[k]
		if !ok {
			it = &models.ShoppingItem{Name: name, Amounts: []string{}, Recipes: []string{}}
			items[k] = it
			order = append(order, k)
		}
		return it
	}

	keys := make([]string, 0, len(needed))
	for k := range needed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		agg := needed[k]
		deficit := agg.qty - stock[k]
		if deficit <= epsilon {
			continue
		}
		it := itemFor(agg.name)
		it.Amounts = append(it.Amounts, amount.Format(deficit)+" "+agg.unit)
		it.Recipes = appendUnique(it.Recipes, MultipleSource)
	}

	for _, name := range freeOrder {
		ft := free[name]
		it := itemFor(name)
		it.Amounts = append(it.Amounts, ft.amounts...)
		for _, r := range ft.recipes {
			it.Recipes = appendUnique(it.Recipes, r)
		}
	}

	for _, c := range in.CustomItems {
		k := NameKey(c.Name)
		if k == "" {
			continue
		}
		if _, ok := items[k]; !ok {
			order = append(order, k)
		}
		items[k] = &models.ShoppingItem{
			Name:     strings.TrimSpace(c.Name),
			Amounts:  append([]string{}, c.Amounts...),
			Recipes:  append([]string{}, c.Recipes...),
			Checked:  c.Checked,
			IsCustom: true,
		}
	}

	checkedState := make(map[string]bool, len(in.Checked))
	for k, v := range in.Checked {
		checkedState[NameKey(k)] = v
	}

	out := make([]models.ShoppingItem, 0, len(order))
	for _, k := range order {
		it := *items[k]
		if checked, ok := checkedState[k]; ok {
			it.Checked = checked
		}
		out = append(out, it)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsCustom != out[j].IsCustom {
			return out[i].IsCustom
		}
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// pantryUnit maps a stored pantry unit to the aggregation unit
func pantryUnit(unit string) string {
	if u, ok := amount.NormalizeUnit(unit); ok {
		return u
	}
	return strings.ToLower(strings.TrimSpace(unit))
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}
