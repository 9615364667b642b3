package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"feedback-hub/internal/model"
)

type SourceRepository struct {
	db *gorm.DB
}

func NewSourceRepository(db *gorm.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

func (r *SourceRepository) Create(ctx context.Context, source *model.FeedbackSource) error {
	if err := r.db.WithContext(ctx).Create(source).Error; err != nil {
		return fmt.Errorf("create feedback source failed: %w", err)
	}
	return nil
}

// GetByIDAndUserID returns nil, nil when no source with that id belongs to userID.
func (r *SourceRepository) GetByIDAndUserID(ctx context.Context, id, userID string) (*model.FeedbackSource, error) {
	var source model.FeedbackSource
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&source).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get feedback source failed: %w", err)
	}
	return &source, nil
}

// UpdateFields applies a column->value map to the owned source in one statement.
func (r *SourceRepository) UpdateFields(ctx context.Context, id, userID string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Model(&model.FeedbackSource{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields).Error
	if err != nil {
		return fmt.Errorf("update feedback source failed: %w", err)
	}
	return nil
}

func (r *SourceRepository) ListByUserID(ctx context.Context, userID string) ([]model.FeedbackSource, error) {
	var list []model.FeedbackSource
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list feedback sources failed: %w", err)
	}
	return list, nil
}
