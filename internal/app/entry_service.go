package app

import (
	"context"
	"strings"

	"feedback-hub/internal/model"
)

type CreateEntryInput struct {
	SourceID string
	Channel  *string
	Author   *string
	Rating   *int
	RawText  string
}

func (s *FeedbackService) CreateEntry(ctx context.Context, userID string, input CreateEntryInput) (*model.FeedbackEntry, error) {
	if err := requireCaller(userID); err != nil {
		return nil, err
	}

	rawText := strings.TrimSpace(input.RawText)
	if rawText == "" {
		return nil, invalidInput("raw_text is required")
	}
	sourceID := strings.TrimSpace(input.SourceID)
	if sourceID == "" {
		return nil, invalidInput("source_id is required")
	}
	channel := normalizeOptional(input.Channel)
	author := normalizeOptional(input.Author)
	if err := checkLength("channel", channel, maxChannelLength); err != nil {
		return nil, err
	}
	if err := checkLength("author", author, maxAuthorLength); err != nil {
		return nil, err
	}

	source, err := s.guard.Source(ctx, sourceID, userID)
	if err != nil {
		return nil, err
	}

	entry := &model.FeedbackEntry{
		ID:        s.newID(),
		SourceID:  source.ID,
		UserID:    source.UserID,
		Channel:   channel,
		Author:    author,
		Rating:    input.Rating,
		RawText:   rawText,
		CreatedAt: s.now(),
	}

	s.beginWrite(ctx, listKindEntryIDs, userID)
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	s.endWrite(ctx, listKindEntryIDs, userID)

	s.logger.Debug("feedback entry created", "entry_id", entry.ID, "source_id", source.ID, "user_id", userID)
	s.publish(ctx, model.EventEntryCreated, userID, entry.ID, entry.CreatedAt)
	return entry, nil
}

// ListEntries returns the caller's entries, narrowed to one source when
// sourceID is non-empty.
func (s *FeedbackService) ListEntries(ctx context.Context, userID, sourceID string) (*ListResult[model.FeedbackEntry], error) {
	if err := requireCaller(userID); err != nil {
		return nil, err
	}

	sourceID = strings.TrimSpace(sourceID)
	if sourceID == "" {
		entries, err := s.entries.ListByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return newListResult(entries), nil
	}

	if _, err := s.guard.Source(ctx, sourceID, userID); err != nil {
		return nil, err
	}
	entries, err := s.entries.ListBySourceID(ctx, sourceID, userID)
	if err != nil {
		return nil, err
	}
	return newListResult(entries), nil
}

func (s *FeedbackService) ownedEntryIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	if s.cachedList(ctx, listKindEntryIDs, userID, &ids) {
		return ids, nil
	}
	ids, err := s.entries.ListIDsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.storeList(ctx, listKindEntryIDs, userID, ids)
	return ids, nil
}
