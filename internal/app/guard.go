package app

import (
	"context"

	"feedback-hub/internal/model"
)

type SourceFinder interface {
	GetByIDAndUserID(ctx context.Context, id, userID string) (*model.FeedbackSource, error)
}

type EntryFinder interface {
	GetByIDAndUserID(ctx context.Context, id, userID string) (*model.FeedbackEntry, error)
}

// OwnershipGuard resolves a parent record for the caller. Missing and
// foreign records both yield ErrNotFound.
type OwnershipGuard struct {
	sources SourceFinder
	entries EntryFinder
}

func NewOwnershipGuard(sources SourceFinder, entries EntryFinder) *OwnershipGuard {
	return &OwnershipGuard{sources: sources, entries: entries}
}

func (g *OwnershipGuard) Source(ctx context.Context, id, userID string) (*model.FeedbackSource, error) {
	if id == "" || userID == "" {
		return nil, ErrNotFound
	}
	source, err := g.sources.GetByIDAndUserID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if source == nil || source.UserID != userID {
		return nil, ErrNotFound
	}
	return source, nil
}

func (g *OwnershipGuard) Entry(ctx context.Context, id, userID string) (*model.FeedbackEntry, error) {
	if id == "" || userID == "" {
		return nil, ErrNotFound
	}
	entry, err := g.entries.GetByIDAndUserID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if entry == nil || entry.UserID != userID {
		return nil, ErrNotFound
	}
	return entry, nil
}
