package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/hearth/backend/config"
	"github.com/pageza/hearth/backend/internal/kvstore"
	"github.com/pageza/hearth/backend/internal/logging"
	"github.com/pageza/hearth/backend/internal/models"
)

const snapshotVersion = 1

// Snapshot is a backup of every household key
type Snapshot struct {
	Version   int                        `json:"version"`
	CreatedAt string                     `json:"createdAt"`
	Data      map[string]json.RawMessage `json:"data"`
}

// RemoteBackup describes a snapshot uploaded to the backup sink
type RemoteBackup struct {
	Key       string `json:"key"`
	URL       string `json:"url,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// BackupService exports and restores the household store.
// It shares the planner's lock so a restore never interleaves with a mutation.
type BackupService struct {
	planner *PlannerService
	sink    BackupSink
}

// NewBackupService creates the service. sink may be nil when remote backups are off.
func NewBackupService(planner *PlannerService, sink BackupSink) *BackupService {
	return &BackupService{planner: planner, sink: sink}
}

// Export reads every known key. Missing keys and values that are not JSON are left out.
func (s *BackupService) Export(ctx context.Context) (*Snapshot, error) {
	s.planner.mu.Lock()
	defer s.planner.mu.Unlock()

	snap := &Snapshot{
		Version:   snapshotVersion,
		CreatedAt: s.planner.now().UTC().Format(time.RFC3339),
		Data:      make(map[string]json.RawMessage, len(models.AllKeys)),
	}
	for _, key := range models.AllKeys {
		raw, err := s.planner.store.Get(ctx, key)
		if errors.Is(err, kvstore.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", key, err)
		}
		if !json.Valid([]byte(raw)) {
			logging.Warn("leaving malformed value out of backup", zap.String("key", key))
			continue
		}
		snap.Data[key] = json.RawMessage(raw)
	}
	return snap, nil
}

// Import writes the snapshot back in restore order and returns how many keys were written.
// Unknown keys and malformed values are skipped.
func (s *BackupService) Import(ctx context.Context, snap *Snapshot) (int, error) {
	if snap == nil || snap.Data == nil {
		return 0, ErrInvalidSnapshot
	}

	s.planner.mu.Lock()
	defer s.planner.mu.Unlock()

	written := 0
	for _, key := range models.AllKeys {
		raw, ok := snap.Data[key]
		if !ok {
			continue
		}
		if !json.Valid(raw) {
			logging.Warn("skipping malformed value in backup", zap.String("key", key))
			continue
		}
		if err := s.planner.store.Set(ctx, key, string(raw)); err != nil {
			return written, fmt.Errorf("restore %s: %w", key, err)
		}
		written++
	}
	logging.Info("backup restored", zap.Int("keys", written))
	return written, nil
}

// UploadBackup exports the household and stores it in the sink
func (s *BackupService) UploadBackup(ctx context.Context) (*RemoteBackup, error) {
	if s.sink == nil {
		return nil, ErrBackupDisabled
	}
	snap, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}

	stamp := strings.NewReplacer("-", "", ":", "").Replace(snap.CreatedAt)
	key := fmt.Sprintf("hearth-%s-%s.json", stamp, uuid.NewString()[:8])
	if err := s.sink.Put(ctx, key, body); err != nil {
		logging.Error("failed to upload backup", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("upload backup: %w", err)
	}

	backup := &RemoteBackup{Key: key, CreatedAt: snap.CreatedAt}
	if url, err := s.sink.URL(ctx, key); err == nil {
		backup.URL = url
	} else {
		logging.Warn("failed to presign backup url", zap.String("key", key), zap.Error(err))
	}
	logging.Info("backup uploaded", zap.String("key", key), zap.Int("keys", len(snap.Data)))
	return backup, nil
}

// RestoreFromRemote downloads a snapshot from the sink and imports it
func (s *BackupService) RestoreFromRemote(ctx context.Context, key string) (int, error) {
	if s.sink == nil {
		return 0, ErrBackupDisabled
	}
	body, err := s.sink.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("download backup: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return s.Import(ctx, &snap)
}

// S3BackupSink keeps snapshots as objects under the configured prefix
type S3BackupSink struct {
	s3         *config.S3Config
	presignTTL time.Duration
}

// NewS3BackupSink wraps an initialised S3 client
func NewS3BackupSink(s3cfg *config.S3Config, presignTTL time.Duration) *S3BackupSink {
	if presignTTL <= 0 {
		presignTTL = 15 * time.Minute
	}
	return &S3BackupSink{s3: s3cfg, presignTTL: presignTTL}
}

func (b *S3BackupSink) objectKey(key string) string {
	return b.s3.Prefix + key
}

func (b *S3BackupSink) Put(ctx context.Context, key string, body []byte) error {
	_, err := b.s3.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.s3.BucketName),
		Key:         aws.String(b.objectKey(key)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	return err
}

func (b *S3BackupSink) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := b.s3.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.s3.BucketName),
		Key:    aws.String(b.objectKey(key)),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (b *S3BackupSink) URL(ctx context.Context, key string) (string, error) {
	return b.s3.GeneratePresignedURL(ctx, b.objectKey(key), b.presignTTL)
}
