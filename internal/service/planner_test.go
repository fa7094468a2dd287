package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/hearth/backend/internal/kvstore"
	"github.com/pageza/hearth/backend/internal/models"
	"github.com/pageza/hearth/backend/internal/service"
)

// Monday 6 May 2024
var fixedNow = time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)

func setupPlanner(t *testing.T) (*service.PlannerService, *kvstore.MemoryStore) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	svc := service.NewPlannerService(store, service.WithClock(func() time.Time { return fixedNow }))
	return svc, store
}

func createRecipe(t *testing.T, svc *service.PlannerService, title string, serves int, ings ...models.Ingredient) models.Recipe {
	t.Helper()
	r, err := svc.CreateRecipe(context.Background(), models.Recipe{Title: title, Serves: serves, Ingredients: ings})
	require.NoError(t, err)
	return r
}

func ing(name, amount string) models.Ingredient {
	return models.Ingredient{Name: name, Amount: amount}
}

func TestCreateRecipeDefaults(t *testing.T) {
	svc, _ := setupPlanner(t)
	ctx := context.Background()

	r := createRecipe(t, svc, "  Soup ", 0, ing("Carrot", "2"), ing("", "1 cup"))
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "Soup", r.Title)
	assert.Equal(t, models.DefaultServes, r.Serves)
	assert.Equal(t, fixedNow.Format(time.RFC3339), r.DateCreated)
	require.Len(t, r.Ingredients, 1)
	assert.NotEmpty(t, r.Ingredients[0].ID)

	got, err := svc.GetRecipe(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r, got)

	_, err = svc.CreateRecipe(ctx, models.Recipe{Title: " "})
	assert.ErrorIs(t, err, service.ErrInvalidRecipe)

	_, err = svc.GetRecipe(ctx, "missing")
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)
}

func TestUpdateRecipeRenamesPlanEntries(t *testing.T) {
	svc, _ := setupPlanner(t)
	ctx := context.Background()
	r := createRecipe(t, svc, "Stew", 4)
	_, err := svc.AssignRecipe(ctx, "2024-05-07", r.ID, 0)
	require.NoError(t, err)

	updated, err := svc.UpdateRecipe(ctx, r.ID, models.Recipe{Title: "Beef Stew", Serves: 6})
	require.NoError(t, err)
	assert.Equal(t, r.DateCreated, updated.DateCreated)

	plan, err := svc.MealPlan(ctx)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, "Beef Stew", plan[0].RecipeTitle)

	_, err = svc.UpdateRecipe(ctx, "missing", models.Recipe{Title: "x"})
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)
}

func TestDeleteRecipe(t *testing.T) {
	svc, _ := setupPlanner(t)
	ctx := context.Background()
	keep := createRecipe(t, svc, "Keep", 4)
	drop := createRecipe(t, svc, "Drop", 4)
	_, err := svc.AssignRecipe(ctx, "2024-05-07", keep.ID, 0)
	require.NoError(t, err)
	_, err = svc.AssignRecipe(ctx, "2024-05-08", drop.ID, 0)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRecipe(ctx, drop.ID))

	plan, err := svc.MealPlan(ctx)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, keep.ID, plan[0].RecipeID)

	assert.ErrorIs(t, svc.DeleteRecipe(ctx, drop.ID), service.ErrRecipeNotFound)
	assert.ErrorIs(t, svc.DeleteRecipe(ctx, "seed-curry"), service.ErrSeedRecipeProtected)
}

func TestLoadPrunesOrphanedEntries(t *testing.T) {
	svc, store := setupPlanner(t)
	ctx := context.Background()
	r := createRecipe(t, svc, "Pie", 4)
	require.NoError(t, kvstore.SaveJSON(ctx, store, models.KeyMealPlan, []models.MealPlanEntry{
		{Date: "2024-05-06", RecipeID: r.ID, RecipeTitle: "Pie"},
		{Date: "2024-05-07", RecipeID: "gone", RecipeTitle: "Ghost"},
	}))

	plan, err := svc.MealPlan(ctx)
	require.NoError(t, err)
	require.Len(t, plan, 1)

	stored := kvstore.LoadJSON(ctx, store, models.KeyMealPlan, []models.MealPlanEntry{})
	assert.Len(t, stored, 1)
}

func TestMalformedValuesLoadAsEmpty(t *testing.T) {
	svc, store := setupPlanner(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, models.KeyRecipes, "{broken"))
	require.NoError(t, store.Set(ctx, models.KeyMealPlan, "42"))
	require.NoError(t, store.Set(ctx, models.KeyPantryItems, "nope"))

	recipes, err := svc.ListRecipes(ctx)
	require.NoError(t, err)
	assert.Empty(t, recipes)

	list, err := svc.ShoppingList(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAssignRecipe(t *testing.T) {
	svc, _ := setupPlanner(t)
	ctx := context.Background()
	r := createRecipe(t, svc, "Tacos", 4)

	entry, err := svc.AssignRecipe(ctx, "2024-05-08", r.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, models.MealPlanEntry{Date: "2024-05-08", RecipeID: r.ID, RecipeTitle: "Tacos", Serves: 2}, entry)

	_, err = svc.AssignRecipe(ctx, "08/05/2024", r.ID, 2)
	assert.ErrorIs(t, err, service.ErrInvalidDate)
	_, err = svc.AssignRecipe(ctx, "2024-05-08", "missing", 2)
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)

	require.NoError(t, svc.UnassignDay(ctx, "2024-05-08"))
	require.NoError(t, svc.UnassignDay(ctx, "2024-05-08"))
	plan, err := svc.MealPlan(ctx)
	require.NoError(t, err)
	assert.Empty(t, plan)
}

func TestShoppingListAndHistorySnapshot(t *testing.T) {
	svc, _ := setupPlanner(t)
	ctx := context.Background()
	sauce := createRecipe(t, svc, "Pasta Sauce", 4, ing("tomatoes", "200 g"))
	salad := createRecipe(t, svc, "Salad", 4, ing("Tomato", "200g"))

	_, err := svc.AssignRecipe(ctx, "2024-05-06", sauce.ID, 4)
	require.NoError(t, err)
	_, err = svc.AssignRecipe(ctx, "2024-05-07", salad.ID, 4)
	require.NoError(t, err)

	list, err := svc.ShoppingList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Tomato", list[0].Name)
	assert.Equal(t, []string{"400 g"}, list[0].Amounts)

	history, err := svc.History(ctx)
	require.NoError(t, err)
	// the first assignment covered 06..06, the second 06..07
	require.Len(t, history, 2)
	assert.Equal(t, "2024-05-06", history[0].WeekStart)
	assert.Equal(t, "2024-05-07", history[0].WeekEnd)
	assert.Equal(t, list, history[0].Items)

	record, err := svc.HistoricalList(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, record.MealPlanSnapshot, 1)

	_, err = svc.HistoricalList(ctx, 5)
	assert.ErrorIs(t, err, service.ErrHistoryNotFound)

	// viewing history leaves the live plan alone
	plan, err := svc.MealPlan(ctx)
	require.NoError(t, err)
	assert.Len(t, plan, 2)
}

func TestPastMealsLeaveTheList(t *testing.T) {
	svc, _ := setupPlanner(t)
	ctx := context.Background()
	r := createRecipe(t, svc, "Roast", 4, ing("Potato", "1 kg"))
	_, err := svc.AssignRecipe(ctx, "2024-05-05", r.ID, 4)
	require.NoError(t, err)

	list, err := svc.ShoppingList(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPauseAndUnpause(t *testing.T) {
	svc, _ := setupPlanner(t)
	ctx := context.Background()
	a := createRecipe(t, svc, "A", 4)
	b := createRecipe(t, svc, "B", 4)
	_, err := svc.AssignRecipe(ctx, "2024-05-06", a.ID, 0)
	require.NoError(t, err)
	_, err = svc.AssignRecipe(ctx, "2024-05-07", b.ID, 0)
	require.NoError(t, err)

	paused, err := svc.TogglePause(ctx, "2024-05-06")
	require.NoError(t, err)
	assert.True(t, paused)

	plan, err := svc.MealPlan(ctx)
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, "2024-05-07", plan[0].Date)
	assert.Equal(t, a.ID, plan[0].RecipeID)
	assert.Equal(t, "2024-05-08", plan[1].Date)
	assert.Equal(t, b.ID, plan[1].RecipeID)

	week, err := svc.Week(ctx, "2024-05-09")
	require.NoError(t, err)
	assert.True(t, week.Days[0].Paused)
	assert.Equal(t, models.PersonA, week.Days[1].Cook)
	assert.Equal(t, models.PersonB, week.Days[2].Cook)

	paused, err = svc.TogglePause(ctx, "2024-05-06")
	require.NoError(t, err)
	assert.False(t, paused)

	plan, err = svc.MealPlan(ctx)
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, "2024-05-06", plan[0].Date)
	assert.Equal(t, "2024-05-07", plan[1].Date)

	_, err = svc.TogglePause(ctx, "not-a-date")
	assert.ErrorIs(t, err, service.ErrInvalidDate)
}

func TestToggleWeekStart(t *testing.T) {
	svc, _ := setupPlanner(t)
	ctx := context.Background()

	weekStart, person, err := svc.ToggleWeekStart(ctx, "2024-05-08")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-06", weekStart)
	assert.Equal(t, models.PersonB, person)

	week, err := svc.Week(ctx, "2024-05-06")
	require.NoError(t, err)
	assert.Equal(t, models.PersonB, week.StartPerson)

	next, err := svc.Week(ctx, "2024-05-13")
	require.NoError(t, err)
	assert.Equal(t, models.PersonA, next.StartPerson)
}

func TestToggleWeekStartDefaultsToCurrentWeek(t *testing.T) {
	svc, _ := setupPlanner(t)
	ctx := context.Background()

	weekStart, person, err := svc.ToggleWeekStart(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-06", weekStart)
	assert.Equal(t, models.PersonB, person)

	week, err := svc.Week(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, models.PersonB, week.StartPerson)
}

func TestWeekDefaultsToToday(t *testing.T) {
	svc, _ := setupPlanner(t)
	week, err := svc.Week(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-06", week.WeekStart)
}

func TestToggleCookedConsumesPantry(t *testing.T) {
	svc, _ := setupPlanner(t)
	ctx := context.Background()
	r := createRecipe(t, svc, "Rice Bowl", 4, ing("Rice", "500 g"), ing("Soy sauce", "a splash"), ing("Spring Onion", "2"))
	_, err := svc.AssignRecipe(ctx, "2024-05-06", r.ID, 2)
	require.NoError(t, err)

	_, err = svc.UpsertPantryItem(ctx, models.PantryItem{Name: "rice", Quantity: 300, Unit: "grams"})
	require.NoError(t, err)
	_, err = svc.UpsertPantryItem(ctx, models.PantryItem{Name: "Spring onions", Quantity: 5, Unit: ""})
	require.NoError(t, err)

	cooked, err := svc.ToggleCooked(ctx, "2024-05-06")
	require.NoError(t, err)
	assert.True(t, cooked)

	items, err := svc.Pantry(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "rice", items[0].Name)
	assert.InDelta(t, 50, items[0].Quantity, 0.0001)
	assert.Equal(t, "g", items[0].Unit)
	// "2" carries no unit so the spring onions stay put
	assert.InDelta(t, 5, items[1].Quantity, 0.0001)

	cooked, err = svc.ToggleCooked(ctx, "2024-05-06")
	require.NoError(t, err)
	assert.False(t, cooked)
	items, err = svc.Pantry(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 50, items[0].Quantity, 0.0001)
}

func TestCookingRemovesExhaustedRows(t *testing.T) {
	svc, _ := setupPlanner(t)
	ctx := context.Background()
	r := createRecipe(t, svc, "Risotto", 4, ing("Rice", "300 g"))
	_, err := svc.AssignRecipe(ctx, "2024-05-07", r.ID, 4)
	require.NoError(t, err)
	_, err = svc.UpsertPantryItem(ctx, models.PantryItem{Name: "Rice", Quantity: 300, Unit: "g"})
	require.NoError(t, err)

	_, err = svc.ToggleCooked(ctx, "2024-05-07")
	require.NoError(t, err)
	items, err := svc.Pantry(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPantryAndFridge(t *testing.T) {
	svc, _ := setupPlanner(t)
	ctx := context.Background()

	_, err := svc.UpsertPantryItem(ctx, models.PantryItem{Name: "Flour", Quantity: 1, Unit: "kg"})
	require.NoError(t, err)
	items, err := svc.UpsertPantryItem(ctx, models.PantryItem{Name: "flour", Quantity: 2, Unit: "kilograms"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2.0, items[0].Quantity)

	require.NoError(t, svc.RemovePantryItem(ctx, "FLOUR"))
	items, err = svc.Pantry(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = svc.UpsertPantryItem(ctx, models.PantryItem{Name: " "})
	assert.ErrorIs(t, err, service.ErrInvalidItem)

	fridge, err := svc.AddFridgeItem(ctx, models.FridgeItem{Name: "Milk", Amount: "1 l"})
	require.NoError(t, err)
	require.Len(t, fridge, 1)
	assert.Equal(t, fixedNow.Format(time.RFC3339), fridge[0].AddedAt)
	fridge, err = svc.AddFridgeItem(ctx, models.FridgeItem{Name: "milk", Amount: "2 l"})
	require.NoError(t, err)
	require.Len(t, fridge, 1)
	assert.Equal(t, "2 l", fridge[0].Amount)

	require.NoError(t, svc.RemoveFridgeItem(ctx, "MILK"))
	fridge, err = svc.Fridge(ctx)
	require.NoError(t, err)
	assert.Empty(t, fridge)
}

func TestFridgeExcludesFromList(t *testing.T) {
	svc, _ := setupPlanner(t)
	ctx := context.Background()
	r := createRecipe(t, svc, "Omelette", 2, ing("Eggs", "3"), ing("Milk", "100 ml"))
	_, err := svc.AssignRecipe(ctx, "2024-05-06", r.ID, 2)
	require.NoError(t, err)
	_, err = svc.AddFridgeItem(ctx, models.FridgeItem{Name: "milk"})
	require.NoError(t, err)

	list, err := svc.ShoppingList(ctx)
	require.NoError(t, err)
	for _, item := range list {
		assert.NotEqual(t, "Milk", item.Name)
	}
}

func TestCustomItemsAndChecked(t *testing.T) {
	svc, _ := setupPlanner(t)
	ctx := context.Background()

	_, err := svc.AddCustomItem(ctx, models.ShoppingItem{Name: "Bin bags"})
	require.NoError(t, err)
	items, err := svc.AddCustomItem(ctx, models.ShoppingItem{Name: "bin bags", Amounts: []string{"1 roll"}})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].IsCustom)

	require.NoError(t, svc.SetChecked(ctx, " Bin Bags ", true))
	list, err := svc.ShoppingList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Checked)
	assert.Equal(t, []string{"1 roll"}, list[0].Amounts)

	require.NoError(t, svc.SetChecked(ctx, "bin bags", false))
	list, err = svc.ShoppingList(ctx)
	require.NoError(t, err)
	assert.False(t, list[0].Checked)

	require.NoError(t, svc.RemoveCustomItem(ctx, "BIN BAGS"))
	list, err = svc.ShoppingList(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.AddCustomItem(ctx, models.ShoppingItem{Name: ""})
	assert.ErrorIs(t, err, service.ErrInvalidItem)
	assert.ErrorIs(t, svc.SetChecked(ctx, " ", true), service.ErrInvalidItem)
}

func TestUncheckCustomItemAddedChecked(t *testing.T) {
	svc, store := setupPlanner(t)
	ctx := context.Background()

	_, err := svc.AddCustomItem(ctx, models.ShoppingItem{Name: "Milk", Checked: true})
	require.NoError(t, err)
	list, err := svc.ShoppingList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Checked)

	require.NoError(t, svc.SetChecked(ctx, "milk", false))
	list, err = svc.ShoppingList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Checked)

	checked := kvstore.LoadJSON(ctx, store, models.KeyShoppingChecked, map[string]bool{})
	v, ok := checked["milk"]
	assert.True(t, ok)
	assert.False(t, v)
	custom := kvstore.LoadJSON(ctx, store, models.KeyCustomShopping, []models.ShoppingItem{})
	require.Len(t, custom, 1)
	assert.False(t, custom[0].Checked)

	require.NoError(t, svc.SetChecked(ctx, "MILK", true))
	list, err = svc.ShoppingList(ctx)
	require.NoError(t, err)
	assert.True(t, list[0].Checked)
}

func TestSeed(t *testing.T) {
	svc, _ := setupPlanner(t)
	ctx := context.Background()

	n, err := svc.Seed(ctx, service.SeedData{
		Recipes: []models.Recipe{
			{ID: "bibimbap", Title: "Bibimbap", Ingredients: []models.Ingredient{ing("gochujang", "2 tbsp")}},
			{ID: "seed-kimchi-stew", Title: "Kimchi Stew", Ingredients: []models.Ingredient{ing("Korean chilli paste", "1 tbsp")}},
			{Title: ""},
		},
		Ingredients: []models.SeededIngredient{
			{Name: "Gochujang", Aliases: []string{"korean chilli paste"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	recipes, err := svc.ListRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "seed-bibimbap", recipes[0].ID)
	assert.ErrorIs(t, svc.DeleteRecipe(ctx, recipes[0].ID), service.ErrSeedRecipeProtected)

	_, err = svc.AssignRecipe(ctx, "2024-05-06", "seed-bibimbap", 4)
	require.NoError(t, err)
	_, err = svc.AssignRecipe(ctx, "2024-05-07", "seed-kimchi-stew", 4)
	require.NoError(t, err)

	list, err := svc.ShoppingList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Gochujang", list[0].Name)
	assert.Equal(t, []string{"3 tbsp"}, list[0].Amounts)

	// reseeding refreshes in place
	n, err = svc.Seed(ctx, service.SeedData{Recipes: []models.Recipe{{ID: "seed-bibimbap", Title: "Bibimbap Bowl"}}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	recipes, err = svc.ListRecipes(ctx)
	require.NoError(t, err)
	assert.Len(t, recipes, 2)
	assert.Equal(t, "Bibimbap Bowl", recipes[0].Title)
}

func TestConcurrentAssignments(t *testing.T) {
	svc, _ := setupPlanner(t)
	ctx := context.Background()
	r := createRecipe(t, svc, "Chilli", 4)

	var wg sync.WaitGroup
	for i := 0; i < 14; i++ {
		wg.Add(1)
		go func(day int) {
			defer wg.Done()
			_, err := svc.AssignRecipe(ctx, fmt.Sprintf("2024-05-%02d", 6+day), r.ID, 0)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	plan, err := svc.MealPlan(ctx)
	require.NoError(t, err)
	assert.Len(t, plan, 14)
}
