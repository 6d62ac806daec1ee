package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"lifelog/internal/model"
)

// FoodRepository handles CRUD for food log entries.
type FoodRepository struct {
	db *gorm.DB
}

func NewFoodRepository(db *gorm.DB) *FoodRepository {
	return &FoodRepository{db: db}
}

func (r *FoodRepository) Create(ctx context.Context, entry *model.FoodEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create food entry: %w", err)
	}
	return nil
}

// ListBetween returns food entries in [from, to), newest first.
func (r *FoodRepository) ListBetween(ctx context.Context, userID uint, from, to time.Time) ([]model.FoodEntry, error) {
	var entries []model.FoodEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// NutritionTotals aggregates one day (or range) of food entries.
type NutritionTotals struct {
	Calories int
	Protein  float64
	Carbs    float64
	Fat      float64
	Entries  int
}

// TotalsBetween sums macros across [from, to).
func (r *FoodRepository) TotalsBetween(ctx context.Context, userID uint, from, to time.Time) (NutritionTotals, error) {
	var row struct {
		Calories *int
		Protein  *float64
		Carbs    *float64
		Fat      *float64
		Entries  int64
	}
	err := r.db.WithContext(ctx).Model(&model.FoodEntry{}).
		Select("SUM(calories) AS calories, SUM(protein) AS protein, SUM(carbs) AS carbs, SUM(fat) AS fat, COUNT(*) AS entries").
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Scan(&row).Error
	if err != nil {
		return NutritionTotals{}, err
	}

	totals := NutritionTotals{Entries: int(row.Entries)}
	if row.Calories != nil {
		totals.Calories = *row.Calories
	}
	if row.Protein != nil {
		totals.Protein = *row.Protein
	}
	if row.Carbs != nil {
		totals.Carbs = *row.Carbs
	}
	if row.Fat != nil {
		totals.Fat = *row.Fat
	}
	return totals, nil
}

// Delete removes a food entry, scoped to the owning user.
func (r *FoodRepository) Delete(ctx context.Context, userID, entryID uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, entryID).
		Delete(&model.FoodEntry{})
	if res.Error != nil {
		return fmt.Errorf("delete food entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
