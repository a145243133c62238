package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/gusto-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/gusto-pos/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a gorm backed snapshot repository
func NewSnapshotRepository(db *gorm.DB) domainRepo.SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Get(ctx context.Context, key string) (*entity.Snapshot, error) {
	var snapshot entity.Snapshot
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *snapshotRepository) Put(ctx context.Context, key string, payload string) error {
	snapshot := &entity.Snapshot{Key: key, Payload: payload, UpdatedAt: time.Now()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(snapshot).Error
}

func (r *snapshotRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", key).Delete(&entity.Snapshot{}).Error
}
