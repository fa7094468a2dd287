package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pageza/hearth/backend/internal/logging"
)

// ErrNotFound is returned by Get when a key has never been set
var ErrNotFound = errors.New("kvstore: key not found")

// Store is a string keyed blob store
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// LoadJSON decodes the value stored under key into a T.
// Missing keys, store failures and malformed JSON all yield def; failures other than
// a missing key are logged.
func LoadJSON[T any](ctx context.Context, s Store, key string, def T) T {
	raw, err := s.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logging.Warn("failed to read key", zap.String("key", key), zap.Error(err))
		}
		return def
	}
	if raw == "" || raw == "null" {
		return def
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		logging.Warn("discarding malformed value", zap.String("key", key), zap.Error(err))
		return def
	}
	return v
}

// SaveJSON encodes v and stores it under key
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, string(data)); err != nil {
		logging.Error("failed to write key", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
