package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tweetlens/tweetlens/internal/models"
)

// SnapshotRepository persists and retrieves metrics snapshots
type SnapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db.DB}
}

// Save persists one snapshot
func (r *SnapshotRepository) Save(ctx context.Context, snap *models.Snapshot) error {
	return r.db.WithContext(ctx).Create(snap).Error
}

// Latest returns the most recent snapshot for an account, or nil when
// none exists.
func (r *SnapshotRepository) Latest(ctx context.Context, accountID string) (*models.Snapshot, error) {
	var snap models.Snapshot
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("taken_at DESC").
		First(&snap).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snap, nil
}

// LatestTwo returns the two most recent snapshots for an account,
// newest first. Fewer than two may be returned.
func (r *SnapshotRepository) LatestTwo(ctx context.Context, accountID string) ([]*models.Snapshot, error) {
	var snaps []*models.Snapshot
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("taken_at DESC").
		Limit(2).
		Find(&snaps).Error
	if err != nil {
		return nil, err
	}
	return snaps, nil
}

// ListByAccount returns all snapshots for an account, oldest first
func (r *SnapshotRepository) ListByAccount(ctx context.Context, accountID string) ([]*models.Snapshot, error) {
	var snaps []*models.Snapshot
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("taken_at ASC").
		Find(&snaps).Error
	if err != nil {
		return nil, err
	}
	return snaps, nil
}
