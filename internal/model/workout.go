package model

import "time"

// WorkoutEntry is one logged exercise session. Duration is nil when
// the message did not say how long it took.
type WorkoutEntry struct {
	ID           uint `gorm:"primaryKey"`
	UserID       uint `gorm:"index"`
	ActivityType string
	DurationMins *int
	DistanceKm   *float64
	Notes        string
	CreatedAt    time.Time
}
