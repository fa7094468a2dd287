package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/hearth/backend/internal/kvstore"
	"github.com/pageza/hearth/backend/internal/models"
	"github.com/pageza/hearth/backend/internal/service"
)

// memorySink is an in-process BackupSink
type memorySink struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemorySink() *memorySink {
	return &memorySink{objects: map[string][]byte{}}
}

func (m *memorySink) Put(_ context.Context, key string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = append([]byte(nil), body...)
	return nil
}

func (m *memorySink) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.objects[key]
	if !ok {
		return nil, errors.New("no such object")
	}
	return body, nil
}

func (m *memorySink) URL(_ context.Context, key string) (string, error) {
	return "https://backups.test/" + key, nil
}

func TestExportImportRoundTrip(t *testing.T) {
	svc, store := setupPlanner(t)
	ctx := context.Background()
	r := createRecipe(t, svc, "Curry", 4, ing("Rice", "200 g"))
	_, err := svc.AssignRecipe(ctx, "2024-05-06", r.ID, 2)
	require.NoError(t, err)
	_, err = svc.TogglePause(ctx, "2024-05-06")
	require.NoError(t, err)
	_, err = svc.AddFridgeItem(ctx, models.FridgeItem{Name: "Milk"})
	require.NoError(t, err)

	backup := service.NewBackupService(svc, nil)
	snap, err := backup.Export(ctx)
	require.NoError(t, err)
	assert.Contains(t, snap.Data, models.KeyRecipes)
	assert.Contains(t, snap.Data, models.KeyPauseShiftHistory)
	assert.NotContains(t, snap.Data, models.KeySeededIngredients)

	target := kvstore.NewMemoryStore()
	restored := service.NewBackupService(service.NewPlannerService(target), nil)
	n, err := restored.Import(ctx, snap)
	require.NoError(t, err)
	assert.Equal(t, len(snap.Data), n)

	for _, key := range models.AllKeys {
		want, werr := store.Get(ctx, key)
		got, gerr := target.Get(ctx, key)
		if errors.Is(werr, kvstore.ErrNotFound) {
			assert.ErrorIs(t, gerr, kvstore.ErrNotFound, key)
			continue
		}
		require.NoError(t, gerr, key)
		assert.JSONEq(t, want, got, key)
	}
}

func TestExportSkipsMalformedValues(t *testing.T) {
	svc, store := setupPlanner(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, models.KeyFridgeItems, "{oops"))
	require.NoError(t, store.Set(ctx, models.KeyPantryItems, "[]"))

	snap, err := service.NewBackupService(svc, nil).Export(ctx)
	require.NoError(t, err)
	assert.NotContains(t, snap.Data, models.KeyFridgeItems)
	assert.Contains(t, snap.Data, models.KeyPantryItems)
}

func TestImportSkipsUnknownAndMalformed(t *testing.T) {
	svc, store := setupPlanner(t)
	ctx := context.Background()
	backup := service.NewBackupService(svc, nil)

	n, err := backup.Import(ctx, &service.Snapshot{Data: map[string]json.RawMessage{
		models.KeyRecipes:    json.RawMessage(`[]`),
		models.KeyMealPlan:   json.RawMessage(`{bad`),
		"somethingElse":      json.RawMessage(`true`),
		models.KeyRotaPaused: json.RawMessage(`{"2024-05-06":true}`),
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = store.Get(ctx, models.KeyMealPlan)
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
	_, err = store.Get(ctx, "somethingElse")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)

	_, err = backup.Import(ctx, nil)
	assert.ErrorIs(t, err, service.ErrInvalidSnapshot)
}

func TestRemoteBackup(t *testing.T) {
	svc, _ := setupPlanner(t)
	ctx := context.Background()
	createRecipe(t, svc, "Pancakes", 4, ing("Flour", "100 g"))

	sink := newMemorySink()
	backup := service.NewBackupService(svc, sink)
	remote, err := backup.UploadBackup(ctx)
	require.NoError(t, err)
	assert.Contains(t, remote.Key, "hearth-20240506T100000Z-")
	assert.Equal(t, "https://backups.test/"+remote.Key, remote.URL)

	other, _ := setupPlanner(t)
	restore := service.NewBackupService(other, sink)
	n, err := restore.RestoreFromRemote(ctx, remote.Key)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	recipes, err := other.ListRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Pancakes", recipes[0].Title)

	_, err = restore.RestoreFromRemote(ctx, "missing.json")
	assert.Error(t, err)
}

func TestRemoteBackupDisabled(t *testing.T) {
	svc, _ := setupPlanner(t)
	backup := service.NewBackupService(svc, nil)

	_, err := backup.UploadBackup(context.Background())
	assert.ErrorIs(t, err, service.ErrBackupDisabled)
	_, err = backup.RestoreFromRemote(context.Background(), "x")
	assert.ErrorIs(t, err, service.ErrBackupDisabled)
}
