package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"feedback-hub/internal/model"
)

type EntryRepository struct {
	db *gorm.DB
}

func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) Create(ctx context.Context, entry *model.FeedbackEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create feedback entry failed: %w", err)
	}
	return nil
}

// GetByIDAndUserID returns nil, nil when no entry with that id belongs to userID.
func (r *EntryRepository) GetByIDAndUserID(ctx context.Context, id, userID string) (*model.FeedbackEntry, error) {
	var entry model.FeedbackEntry
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get feedback entry failed: %w", err)
	}
	return &entry, nil
}

func (r *EntryRepository) ListByUserID(ctx context.Context, userID string) ([]model.FeedbackEntry, error) {
	var list []model.FeedbackEntry
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list feedback entries failed: %w", err)
	}
	return list, nil
}

func (r *EntryRepository) ListBySourceID(ctx context.Context, sourceID, userID string) ([]model.FeedbackEntry, error) {
	var list []model.FeedbackEntry
	err := r.db.WithContext(ctx).
		Where("source_id = ? AND user_id = ?", sourceID, userID).
		Order("created_at ASC, id ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list feedback entries by source failed: %w", err)
	}
	return list, nil
}

// ListIDsByUserID returns the ids of every entry owned by userID.
func (r *EntryRepository) ListIDsByUserID(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Model(&model.FeedbackEntry{}).Where("user_id = ?", userID).Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list feedback entry ids failed: %w", err)
	}
	return ids, nil
}
