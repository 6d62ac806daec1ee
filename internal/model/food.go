package model

import "time"

// FoodEntry is one logged meal, snack or drink. Macro values are
// model estimates, zero when the message gave no numeric cues.
type FoodEntry struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"index"`
	Description string
	Calories    int
	Protein     float64
	Carbs       float64
	Fat         float64
	CreatedAt   time.Time
}
