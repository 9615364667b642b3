package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"feedback-hub/internal/model"
)

const (
	listKindSources  = "sources"
	listKindEntryIDs = "entry_ids"
)

const (
	maxNameLength       = 255
	maxSourceTypeLength = 64
	maxChannelLength    = 64
	maxAuthorLength     = 255
	maxTagLength        = 64
	maxLabelLength      = 32
)

type SourceStore interface {
	SourceFinder
	Create(ctx context.Context, source *model.FeedbackSource) error
	UpdateFields(ctx context.Context, id, userID string, fields map[string]any) error
	ListByUserID(ctx context.Context, userID string) ([]model.FeedbackSource, error)
}

type EntryStore interface {
	EntryFinder
	Create(ctx context.Context, entry *model.FeedbackEntry) error
	ListByUserID(ctx context.Context, userID string) ([]model.FeedbackEntry, error)
	ListBySourceID(ctx context.Context, sourceID, userID string) ([]model.FeedbackEntry, error)
	ListIDsByUserID(ctx context.Context, userID string) ([]string, error)
}

type TagStore interface {
	Create(ctx context.Context, tag *model.FeedbackTag) error
	ListByFeedbackID(ctx context.Context, feedbackID string) ([]model.FeedbackTag, error)
	ListByFeedbackIDs(ctx context.Context, feedbackIDs []string) ([]model.FeedbackTag, error)
}

type ListCache interface {
	Get(ctx context.Context, kind, userID string, dst any) (bool, error)
	Set(ctx context.Context, kind, userID string, value any) error
	Delete(ctx context.Context, kind, userID string) error
	MarkDirty(ctx context.Context, kind, userID string) error
	IsDirty(ctx context.Context, kind, userID string) (bool, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event model.FeedbackEvent) error
}

type ListResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func newListResult[T any](items []T) *ListResult[T] {
	if items == nil {
		items = []T{}
	}
	return &ListResult[T]{Items: items, Total: len(items)}
}

// FeedbackService implements the owner-scoped source, entry and tag
// operations. cache and events are optional.
type FeedbackService struct {
	sources SourceStore
	entries EntryStore
	tags    TagStore
	guard   *OwnershipGuard
	cache   ListCache
	events  EventPublisher
	logger  *slog.Logger

	newID func() string
	now   func() time.Time
}

func NewFeedbackService(
	sources SourceStore,
	entries EntryStore,
	tags TagStore,
	cache ListCache,
	events EventPublisher,
	logger *slog.Logger,
) *FeedbackService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedbackService{
		sources: sources,
		entries: entries,
		tags:    tags,
		guard:   NewOwnershipGuard(sources, entries),
		cache:   cache,
		events:  events,
		logger:  logger,
		newID:   uuid.NewString,
		now:     model.Now,
	}
}

func (s *FeedbackService) cachedList(ctx context.Context, kind, userID string, dst any) bool {
	if s.cache == nil {
		return false
	}
	if dirty, err := s.cache.IsDirty(ctx, kind, userID); err != nil || dirty {
		return false
	}
	hit, err := s.cache.Get(ctx, kind, userID, dst)
	if err != nil {
		s.logger.Warn("read list cache failed", "kind", kind, "error", err)
		return false
	}
	return hit
}

func (s *FeedbackService) storeList(ctx context.Context, kind, userID string, value any) {
	if s.cache == nil {
		return
	}
	if dirty, err := s.cache.IsDirty(ctx, kind, userID); err != nil || dirty {
		return
	}
	if err := s.cache.Set(ctx, kind, userID, value); err != nil {
		s.logger.Warn("write list cache failed", "kind", kind, "error", err)
	}
}

// beginWrite blocks cache repopulation for the duration of a write.
func (s *FeedbackService) beginWrite(ctx context.Context, kind, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.MarkDirty(ctx, kind, userID); err != nil {
		s.logger.Warn("mark list cache dirty failed", "kind", kind, "error", err)
	}
	if err := s.cache.Delete(ctx, kind, userID); err != nil {
		s.logger.Warn("invalidate list cache failed", "kind", kind, "error", err)
	}
}

func (s *FeedbackService) endWrite(ctx context.Context, kind, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, kind, userID); err != nil {
		s.logger.Warn("invalidate list cache failed", "kind", kind, "error", err)
	}
}

func (s *FeedbackService) publish(ctx context.Context, kind, userID, subjectID string, at time.Time) {
	if s.events == nil {
		return
	}
	event := model.FeedbackEvent{
		ID:         s.newID(),
		Kind:       kind,
		UserID:     userID,
		SubjectID:  subjectID,
		OccurredAt: at,
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("publish feedback event failed", "kind", kind, "subject_id", subjectID, "error", err)
	}
}
