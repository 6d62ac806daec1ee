package model

import "time"

// User stores Telegram user metadata plus profile targets.
type User struct {
	ID                 uint  `gorm:"primaryKey"`
	TelegramID         int64 `gorm:"uniqueIndex"`
	FirstName          string
	LastName           string
	Username           string
	CurrentWeight      *float64
	GoalWeight         *float64
	DailyCalorieTarget *int
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Notes    []Note         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Foods    []FoodEntry    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Workouts []WorkoutEntry `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
