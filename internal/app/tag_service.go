package app

import (
	"context"
	"strings"

	"feedback-hub/internal/model"
)

type AddTagInput struct {
	FeedbackID string
	Tag        string
	Sentiment  *string
	Importance *string
}

func (s *FeedbackService) AddTag(ctx context.Context, userID string, input AddTagInput) (*model.FeedbackTag, error) {
	if err := requireCaller(userID); err != nil {
		return nil, err
	}

	tagName := strings.TrimSpace(input.Tag)
	if tagName == "" {
		return nil, invalidInput("tag is required")
	}
	feedbackID := strings.TrimSpace(input.FeedbackID)
	if feedbackID == "" {
		return nil, invalidInput("feedback_id is required")
	}
	sentiment := normalizeOptional(input.Sentiment)
	importance := normalizeOptional(input.Importance)
	if err := checkLength("tag", &tagName, maxTagLength); err != nil {
		return nil, err
	}
	if err := checkLength("sentiment", sentiment, maxLabelLength); err != nil {
		return nil, err
	}
	if err := checkLength("importance", importance, maxLabelLength); err != nil {
		return nil, err
	}

	entry, err := s.guard.Entry(ctx, feedbackID, userID)
	if err != nil {
		return nil, err
	}

	tag := &model.FeedbackTag{
		ID:         s.newID(),
		FeedbackID: entry.ID,
		Tag:        tagName,
		Sentiment:  sentiment,
		Importance: importance,
		CreatedAt:  s.now(),
	}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, err
	}

	s.logger.Debug("feedback tag added", "tag_id", tag.ID, "entry_id", entry.ID, "user_id", userID)
	s.publish(ctx, model.EventTagAdded, userID, tag.ID, tag.CreatedAt)
	return tag, nil
}

// ListTags returns tags of one owned entry, or of every owned entry when
// feedbackID is empty.
func (s *FeedbackService) ListTags(ctx context.Context, userID, feedbackID string) (*ListResult[model.FeedbackTag], error) {
	if err := requireCaller(userID); err != nil {
		return nil, err
	}

	feedbackID = strings.TrimSpace(feedbackID)
	if feedbackID != "" {
		if _, err := s.guard.Entry(ctx, feedbackID, userID); err != nil {
			return nil, err
		}
		tags, err := s.tags.ListByFeedbackID(ctx, feedbackID)
		if err != nil {
			return nil, err
		}
		return newListResult(tags), nil
	}

	entryIDs, err := s.ownedEntryIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(entryIDs) == 0 {
		return newListResult[model.FeedbackTag](nil), nil
	}
	tags, err := s.tags.ListByFeedbackIDs(ctx, entryIDs)
	if err != nil {
		return nil, err
	}
	return newListResult(tags), nil
}
