package repository

import (
	"context"

	"github.com/sangkips/gusto-pos/internal/domain/entity"
)

// SnapshotRepository is the storage port for whole-collection snapshots.
// Every write replaces the full payload under a key; the last write wins.
type SnapshotRepository interface {
	// Get returns the snapshot stored under key, or nil when the key is absent
	Get(ctx context.Context, key string) (*entity.Snapshot, error)
	// Put replaces the payload stored under key
	Put(ctx context.Context, key string, payload string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
