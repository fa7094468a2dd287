package service

import (
	"context"

	"github.com/pageza/hearth/backend/internal/models"
	"github.com/pageza/hearth/backend/internal/rota"
	"github.com/pageza/hearth/backend/internal/types"
)

// IPlannerService defines the household planning operations
type IPlannerService interface {
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, id string) (models.Recipe, error)
	CreateRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error)
	UpdateRecipe(ctx context.Context, id string, recipe models.Recipe) (models.Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error

	MealPlan(ctx context.Context) ([]models.MealPlanEntry, error)
	AssignRecipe(ctx context.Context, date, recipeID string, serves int) (models.MealPlanEntry, error)
	UnassignDay(ctx context.Context, date string) error
	Week(ctx context.Context, date string) (rota.WeekView, error)
	TogglePause(ctx context.Context, date string) (bool, error)
	ToggleWeekStart(ctx context.Context, date string) (string, models.Person, error)
	ToggleCooked(ctx context.Context, date string) (bool, error)

	ShoppingList(ctx context.Context) ([]models.ShoppingItem, error)
	AddCustomItem(ctx context.Context, item models.ShoppingItem) ([]models.ShoppingItem, error)
	RemoveCustomItem(ctx context.Context, name string) error
	SetChecked(ctx context.Context, name string, checked bool) error
	History(ctx context.Context) ([]models.ShoppingListHistory, error)
	HistoricalList(ctx context.Context, index int) (models.ShoppingListHistory, error)

	Pantry(ctx context.Context) ([]models.PantryItem, error)
	UpsertPantryItem(ctx context.Context, item models.PantryItem) ([]models.PantryItem, error)
	RemovePantryItem(ctx context.Context, name string) error
	Fridge(ctx context.Context) ([]models.FridgeItem, error)
	AddFridgeItem(ctx context.Context, item models.FridgeItem) ([]models.FridgeItem, error)
	RemoveFridgeItem(ctx context.Context, name string) error
}

// IAuthService defines the household login operations
type IAuthService interface {
	Login(ctx context.Context, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IBackupService defines export and restore of the whole household
type IBackupService interface {
	Export(ctx context.Context) (*Snapshot, error)
	Import(ctx context.Context, snap *Snapshot) (int, error)
	UploadBackup(ctx context.Context) (*RemoteBackup, error)
	RestoreFromRemote(ctx context.Context, key string) (int, error)
}

// BackupSink stores serialised snapshots outside the household store
type BackupSink interface {
	Put(ctx context.Context, key string, body []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	URL(ctx context.Context, key string) (string, error)
}

var (
	_ IPlannerService = (*PlannerService)(nil)
	_ IAuthService    = (*AuthService)(nil)
	_ IBackupService  = (*BackupService)(nil)
	_ BackupSink      = (*S3BackupSink)(nil)
)
