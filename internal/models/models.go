package models

// DefaultServes is used whenever a recipe or meal plan entry carries no serving count.
const DefaultServes = 4

// Ingredient is one line of a recipe. Amount is free text such as "2 cups".
type Ingredient struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// Recipe represents a stored recipe
type Recipe struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions string       `json:"instructions,omitempty"`
	ImageURI     string       `json:"imageUri,omitempty"`
	DateCreated  string       `json:"dateCreated"`
	Serves       int          `json:"serves,omitempty"`
	Tags         []string     `json:"tags,omitempty"`
}

// ServesOrDefault returns the recipe's base serving count
func (r Recipe) ServesOrDefault() int {
	if r.Serves <= 0 {
		return DefaultServes
	}
	return r.Serves
}

// MealPlanEntry assigns a recipe to a single calendar day
type MealPlanEntry struct {
	Date        string `json:"date"`
	RecipeID    string `json:"recipeId"`
	RecipeTitle string `json:"recipeTitle"`
	Serves      int    `json:"serves,omitempty"`
}

// ServesOrDefault returns the planned serving count
func (e MealPlanEntry) ServesOrDefault() int {
	if e.Serves <= 0 {
		return DefaultServes
	}
	return e.Serves
}

// Person is one of the two members of the cooking rota
type Person string

const (
	PersonA Person = "PersonA"
	PersonB Person = "PersonB"
)

// Other returns the opposite rota member
func (p Person) Other() Person {
	if p == PersonB {
		return PersonA
	}
	return PersonB
}

// Valid reports whether p names a rota member
func (p Person) Valid() bool {
	return p == PersonA || p == PersonB
}

// PauseRecord is the snapshot taken when a day was paused
type PauseRecord struct {
	Before []MealPlanEntry `json:"before"`
	After  []MealPlanEntry `json:"after"`
}

// PantryItem is stock kept in the cupboard
type PantryItem struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	UpdatedAt string  `json:"updatedAt"`
}

// FridgeItem is anything currently in the fridge
type FridgeItem struct {
	Name    string `json:"name"`
	Amount  string `json:"amount,omitempty"`
	Notes   string `json:"notes,omitempty"`
	AddedAt string `json:"addedAt"`
}

// ShoppingItem is one line of the shopping list
type ShoppingItem struct {
	Name     string   `json:"name"`
	Amounts  []string `json:"amounts"`
	Recipes  []string `json:"recipes"`
	Checked  bool     `json:"checked"`
	IsCustom bool     `json:"isCustom,omitempty"`
}

// ShoppingListHistory is an archived shopping list for a planned range of days
type ShoppingListHistory struct {
	ID               string          `json:"id"`
	WeekStart        string          `json:"weekStart"`
	WeekEnd          string          `json:"weekEnd"`
	Items            []ShoppingItem  `json:"items"`
	MealPlanSnapshot []MealPlanEntry `json:"mealPlanSnapshot"`
	DateCreated      string          `json:"dateCreated"`
}

// SeededIngredient lists extra spellings loaded alongside the seed recipes
type SeededIngredient struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}
