package model

import "time"

// Note is a free-text entry the user asked to keep. Append-only.
type Note struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index"`
	Content   string
	Summary   string
	Tags      []string `gorm:"serializer:json"`
	CreatedAt time.Time
}
