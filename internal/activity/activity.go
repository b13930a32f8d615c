// Package activity stores the dashboard's recent activity feed in postgres.
package activity

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"freight_admin/internal/models"
)

// Log records and lists activity entries.
type Log interface {
	Record(ctx context.Context, a models.Activity) error
	Recent(ctx context.Context, userID string, limit int) ([]models.Activity, error)
}

// Repository is the gorm-backed Log.
type Repository struct {
	db *gorm.DB
}

// NewRepository wraps an open database handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Record inserts one entry.
func (r *Repository) Record(ctx context.Context, a models.Activity) error {
	if err := r.db.WithContext(ctx).Create(&a).Error; err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}

// Recent returns the newest entries of a user, newest first.
func (r *Repository) Recent(ctx context.Context, userID string, limit int) ([]models.Activity, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	var out []models.Activity
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return out, nil
}
