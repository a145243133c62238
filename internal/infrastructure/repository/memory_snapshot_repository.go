package repository

import (
	"context"
	"sync"
	"time"

	"github.com/sangkips/gusto-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/gusto-pos/internal/domain/repository"
)

type memorySnapshotRepository struct {
	mu        sync.RWMutex
	snapshots map[string]entity.Snapshot
}

// NewMemorySnapshotRepository creates a process-local snapshot repository
func NewMemorySnapshotRepository() domainRepo.SnapshotRepository {
	return &memorySnapshotRepository{snapshots: make(map[string]entity.Snapshot)}
}

func (r *memorySnapshotRepository) Get(_ context.Context, key string) (*entity.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot, ok := r.snapshots[key]
	if !ok {
		return nil, nil
	}
	return &snapshot, nil
}

func (r *memorySnapshotRepository) Put(_ context.Context, key string, payload string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots[key] = entity.Snapshot{Key: key, Payload: payload, UpdatedAt: time.Now()}
	return nil
}

func (r *memorySnapshotRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.snapshots, key)
	return nil
}
