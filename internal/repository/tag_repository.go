package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"feedback-hub/internal/model"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) Create(ctx context.Context, tag *model.FeedbackTag) error {
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		return fmt.Errorf("create feedback tag failed: %w", err)
	}
	return nil
}

func (r *TagRepository) ListByFeedbackID(ctx context.Context, feedbackID string) ([]model.FeedbackTag, error) {
	var list []model.FeedbackTag
	if err := r.db.WithContext(ctx).Where("feedback_id = ?", feedbackID).Order("created_at ASC, id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list feedback tags failed: %w", err)
	}
	return list, nil
}

// ListByFeedbackIDs returns all tags for the given entry ids.
// Caller should filter entry ids by user ownership.
func (r *TagRepository) ListByFeedbackIDs(ctx context.Context, feedbackIDs []string) ([]model.FeedbackTag, error) {
	if len(feedbackIDs) == 0 {
		return nil, nil
	}
	var list []model.FeedbackTag
	if err := r.db.WithContext(ctx).Where("feedback_id IN ?", feedbackIDs).Order("created_at ASC, id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list feedback tags by entry ids failed: %w", err)
	}
	return list, nil
}
