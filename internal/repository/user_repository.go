package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"lifelog/internal/model"
)

const defaultCalorieTarget = 2000

// UserRepository handles CRUD for users.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// UpsertFromTelegram finds or creates a user based on TelegramID and
// updates basic profile info. New users start with the default daily
// calorie target.
func (r *UserRepository) UpsertFromTelegram(ctx context.Context, telegramID int64, firstName, lastName, username string) (*model.User, error) {
	var user model.User
	db := r.db.WithContext(ctx)
	err := db.Where("telegram_id = ?", telegramID).First(&user).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"first_name": firstName,
			"last_name":  lastName,
			"username":   username,
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		return &user, nil
	case err == gorm.ErrRecordNotFound:
		target := defaultCalorieTarget
		user = model.User{
			TelegramID:         telegramID,
			FirstName:          firstName,
			LastName:           lastName,
			Username:           username,
			DailyCalorieTarget: &target,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		return &user, nil
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}
}

func (r *UserRepository) FindByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ProfileUpdate carries the optional profile fields a user may change.
// Nil fields are left untouched.
type ProfileUpdate struct {
	CurrentWeight      *float64
	GoalWeight         *float64
	DailyCalorieTarget *int
}

func (r *UserRepository) UpdateProfile(ctx context.Context, userID uint, upd ProfileUpdate) (*model.User, error) {
	updates := map[string]interface{}{}
	if upd.CurrentWeight != nil {
		updates["current_weight"] = *upd.CurrentWeight
	}
	if upd.GoalWeight != nil {
		updates["goal_weight"] = *upd.GoalWeight
	}
	if upd.DailyCalorieTarget != nil {
		updates["daily_calorie_target"] = *upd.DailyCalorieTarget
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no profile fields to update")
	}

	var user model.User
	db := r.db.WithContext(ctx)
	if err := db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &user, nil
}
