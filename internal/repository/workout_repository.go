package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"lifelog/internal/model"
)

// WorkoutRepository handles CRUD for workout entries.
type WorkoutRepository struct {
	db *gorm.DB
}

func NewWorkoutRepository(db *gorm.DB) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

func (r *WorkoutRepository) Create(ctx context.Context, entry *model.WorkoutEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create workout: %w", err)
	}
	return nil
}

// ListBetween returns workouts in [from, to), newest first.
func (r *WorkoutRepository) ListBetween(ctx context.Context, userID uint, from, to time.Time) ([]model.WorkoutEntry, error) {
	var entries []model.WorkoutEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Delete removes a workout, scoped to the owning user.
func (r *WorkoutRepository) Delete(ctx context.Context, userID, entryID uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, entryID).
		Delete(&model.WorkoutEntry{})
	if res.Error != nil {
		return fmt.Errorf("delete workout: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
