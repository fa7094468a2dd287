package kvstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/hearth/backend/internal/kvstore"
	"github.com/pageza/hearth/backend/internal/testhelpers"
)

// exerciseStore runs the same contract against every backend
func exerciseStore(t *testing.T, s kvstore.Store) {
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)

	require.NoError(t, s.Set(ctx, "recipes", `[{"id":"a"}]`))
	got, err := s.Get(ctx, "recipes")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, got)

	require.NoError(t, s.Set(ctx, "recipes", `[]`))
	got, err = s.Get(ctx, "recipes")
	require.NoError(t, err)
	assert.Equal(t, `[]`, got)

	require.NoError(t, s.Remove(ctx, "recipes"))
	_, err = s.Get(ctx, "recipes")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)

	// removing an absent key is not an error
	assert.NoError(t, s.Remove(ctx, "recipes"))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, kvstore.NewMemoryStore())
}

func TestGormStoreSQLite(t *testing.T) {
	exerciseStore(t, kvstore.NewGormStore(testhelpers.SetupSQLite(t)))
}

func TestGormStorePostgres(t *testing.T) {
	exerciseStore(t, kvstore.NewGormStore(testhelpers.SetupPostgres(t)))
}

func TestRedisStore(t *testing.T) {
	exerciseStore(t, kvstore.NewRedisStore(testhelpers.SetupRedis(t), "test:"))
}

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestLoadJSON(t *testing.T) {
	ctx := context.Background()
	s := kvstore.NewMemoryStore()
	def := []sample{}

	t.Run("missing key yields default", func(t *testing.T) {
		got := kvstore.LoadJSON(ctx, s, "items", def)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, kvstore.SaveJSON(ctx, s, "items", []sample{{Name: "rice", Count: 2}}))
		got := kvstore.LoadJSON(ctx, s, "items", def)
		assert.Equal(t, []sample{{Name: "rice", Count: 2}}, got)
	})

	t.Run("malformed value yields default", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "items", "{not json"))
		got := kvstore.LoadJSON(ctx, s, "items", def)
		assert.Empty(t, got)
	})

	t.Run("null yields default", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "flags", "null"))
		got := kvstore.LoadJSON(ctx, s, "flags", map[string]bool{})
		assert.NotNil(t, got)
	})

	t.Run("wrong shape yields default", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "items", `{"name":"rice"}`))
		got := kvstore.LoadJSON(ctx, s, "items", def)
		assert.Empty(t, got)
	})
}
