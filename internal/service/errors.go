package service

import (
	"errors"

	"github.com/pageza/hearth/backend/internal/rota"
)

var (
	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrSeedRecipeProtected = errors.New("seed recipes cannot be deleted")
	ErrInvalidRecipe       = errors.New("recipe title is required")
	ErrHistoryNotFound     = errors.New("shopping history entry not found")
	ErrInvalidItem         = errors.New("item name is required")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrBackupDisabled      = errors.New("remote backups are not configured")
	ErrInvalidSnapshot     = errors.New("backup snapshot is malformed")

	// ErrInvalidDate is returned for dates not in YYYY-MM-DD form
	ErrInvalidDate = rota.ErrInvalidDate
)
