package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"lifelog/internal/model"
)

// NoteRepository handles CRUD for notes.
type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, note *model.Note) error {
	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

func (r *NoteRepository) ListRecent(ctx context.Context, userID uint, limit int) ([]model.Note, error) {
	var notes []model.Note
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// Search matches the keyword against content and summary,
// case-insensitive, newest first.
func (r *NoteRepository) Search(ctx context.Context, userID uint, query string, limit int) ([]model.Note, error) {
	var notes []model.Note
	pattern := "%" + query + "%"
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND (LOWER(content) LIKE LOWER(?) OR LOWER(summary) LIKE LOWER(?))", userID, pattern, pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// ListBetween returns notes in [from, to), newest first.
func (r *NoteRepository) ListBetween(ctx context.Context, userID uint, from, to time.Time) ([]model.Note, error) {
	var notes []model.Note
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Order("created_at DESC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *NoteRepository) CountBetween(ctx context.Context, userID uint, from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Note{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes a note, scoped to the owning user.
func (r *NoteRepository) Delete(ctx context.Context, userID, noteID uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, noteID).
		Delete(&model.Note{})
	if res.Error != nil {
		return fmt.Errorf("delete note: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
