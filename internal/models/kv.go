package models

import "time"

// Keys of the household blob store. Every value is a JSON document.
const (
	KeyRecipes           = "recipes"
	KeyMealPlan          = "mealPlan"
	KeyRotaPaused        = "rotaPaused"
	KeyRotaWeekStartMap  = "rotaWeekStartMap"
	KeyPauseShiftHistory = "pauseShiftHistory"
	KeyCookedMeals       = "cookedMeals"
	KeyFridgeItems       = "fridgeItems"
	KeyPantryItems       = "pantryItems"
	KeyCustomShopping    = "customShoppingItems"
	KeyShoppingChecked   = "shoppingListChecked"
	KeyShoppingHistory   = "shoppingHistory"
	KeySeededIngredients = "seededIngredients"
)

// AllKeys is every key included in a backup, in restore order.
var AllKeys = []string{
	KeySeededIngredients,
	KeyRecipes,
	KeyMealPlan,
	KeyRotaPaused,
	KeyRotaWeekStartMap,
	KeyPauseShiftHistory,
	KeyCookedMeals,
	KeyFridgeItems,
	KeyPantryItems,
	KeyCustomShopping,
	KeyShoppingChecked,
	KeyShoppingHistory,
}

// KVEntry is a row of the key-value table used by the SQL store
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:128"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName pins the table name regardless of naming strategy
func (KVEntry) TableName() string {
	return "kv_entries"
}
