package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"feedback-hub/internal/model"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts the event; redelivered events with a known id are ignored.
func (r *EventRepository) Create(ctx context.Context, event *model.FeedbackEvent) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(event).Error
	if err != nil {
		return fmt.Errorf("create feedback event failed: %w", err)
	}
	return nil
}
