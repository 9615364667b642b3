package app

import (
	"context"
	"strings"

	"feedback-hub/internal/model"
)

type CreateSourceInput struct {
	Name        string
	SourceType  *string
	Description *string
}

// UpdateSourceInput applies only the non-nil fields.
type UpdateSourceInput struct {
	ID          string
	Name        *string
	SourceType  *string
	Description *string
}

func (s *FeedbackService) CreateSource(ctx context.Context, userID string, input CreateSourceInput) (*model.FeedbackSource, error) {
	if err := requireCaller(userID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalidInput("name is required")
	}
	sourceType := normalizeOptional(input.SourceType)
	description := normalizeOptional(input.Description)
	if err := checkLength("name", &name, maxNameLength); err != nil {
		return nil, err
	}
	if err := checkLength("source_type", sourceType, maxSourceTypeLength); err != nil {
		return nil, err
	}

	now := s.now()
	source := &model.FeedbackSource{
		ID:          s.newID(),
		UserID:      userID,
		Name:        name,
		SourceType:  sourceType,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.beginWrite(ctx, listKindSources, userID)
	if err := s.sources.Create(ctx, source); err != nil {
		return nil, err
	}
	s.endWrite(ctx, listKindSources, userID)

	s.logger.Debug("feedback source created", "source_id", source.ID, "user_id", userID)
	s.publish(ctx, model.EventSourceCreated, userID, source.ID, now)
	return source, nil
}

func (s *FeedbackService) UpdateSource(ctx context.Context, userID string, input UpdateSourceInput) (*model.FeedbackSource, error) {
	if err := requireCaller(userID); err != nil {
		return nil, err
	}
	if input.Name == nil && input.SourceType == nil && input.Description == nil {
		return nil, invalidInput("at least one of name, source_type, description is required")
	}
	if strings.TrimSpace(input.ID) == "" {
		return nil, invalidInput("id is required")
	}

	fields := make(map[string]any, 4)
	var name string
	if input.Name != nil {
		name = strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, invalidInput("name must not be empty")
		}
		if err := checkLength("name", &name, maxNameLength); err != nil {
			return nil, err
		}
		fields["name"] = name
	}
	sourceType := normalizeOptional(input.SourceType)
	if input.SourceType != nil {
		if err := checkLength("source_type", sourceType, maxSourceTypeLength); err != nil {
			return nil, err
		}
		fields["source_type"] = nullable(sourceType)
	}
	description := normalizeOptional(input.Description)
	if input.Description != nil {
		fields["description"] = nullable(description)
	}

	source, err := s.guard.Source(ctx, input.ID, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	fields["updated_at"] = now

	s.beginWrite(ctx, listKindSources, userID)
	if err := s.sources.UpdateFields(ctx, source.ID, userID, fields); err != nil {
		return nil, err
	}
	s.endWrite(ctx, listKindSources, userID)

	if input.Name != nil {
		source.Name = name
	}
	if input.SourceType != nil {
		source.SourceType = sourceType
	}
	if input.Description != nil {
		source.Description = description
	}
	source.UpdatedAt = now

	s.logger.Debug("feedback source updated", "source_id", source.ID, "user_id", userID)
	s.publish(ctx, model.EventSourceUpdated, userID, source.ID, now)
	return source, nil
}

func (s *FeedbackService) ListSources(ctx context.Context, userID string) (*ListResult[model.FeedbackSource], error) {
	if err := requireCaller(userID); err != nil {
		return nil, err
	}

	var sources []model.FeedbackSource
	if s.cachedList(ctx, listKindSources, userID, &sources) {
		return newListResult(sources), nil
	}

	sources, err := s.sources.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.storeList(ctx, listKindSources, userID, sources)
	return newListResult(sources), nil
}

// nullable turns a nil pointer into an untyped nil so the column is cleared.
func nullable(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}
