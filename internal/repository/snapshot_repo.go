package repository

import (
	"context"
	"errors"
	"time"

	"anilink/internal/cache"
	"anilink/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ cache.SnapshotStore = (*SnapshotRepository)(nil)

// SnapshotRepository persists cache snapshots per user and key.
type SnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, owner, key string, data []byte, fetchedAt time.Time) error {
	s := domain.CacheSnapshot{
		Owner:     owner,
		Key:       key,
		Data:      data,
		FetchedAt: fetchedAt.UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner"}, {Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "fetched_at", "updated_at"}),
	}).Create(&s).Error
}

func (r *SnapshotRepository) LoadSnapshot(ctx context.Context, owner, key string) ([]byte, time.Time, error) {
	var s domain.CacheSnapshot
	err := r.db.WithContext(ctx).
		Where("owner = ? AND cache_key = ?", owner, key).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, time.Time{}, cache.ErrSnapshotNotFound
		}
		return nil, time.Time{}, err
	}
	return s.Data, s.FetchedAt, nil
}

func (r *SnapshotRepository) DeleteSnapshots(ctx context.Context, owner string) error {
	return r.db.WithContext(ctx).
		Where("owner = ?", owner).
		Delete(&domain.CacheSnapshot{}).Error
}

// DeleteOlderThan removes snapshots fetched before cutoff.
func (r *SnapshotRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("fetched_at < ?", cutoff.UTC()).
		Delete(&domain.CacheSnapshot{})
	return res.RowsAffected, res.Error
}

// CountByOwner reports how many keys are persisted for owner.
func (r *SnapshotRepository) CountByOwner(ctx context.Context, owner string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.CacheSnapshot{}).
		Where("owner = ?", owner).
		Count(&n).Error
	return n, err
}
