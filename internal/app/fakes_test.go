package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"feedback-hub/internal/model"
)

type fakeSourceStore struct {
	rows      []model.FeedbackSource
	calls     int
	listCalls int
	updates   int
}

func (f *fakeSourceStore) Create(_ context.Context, source *model.FeedbackSource) error {
	f.calls++
	f.rows = append(f.rows, *source)
	return nil
}

func (f *fakeSourceStore) GetByIDAndUserID(_ context.Context, id, userID string) (*model.FeedbackSource, error) {
	f.calls++
	for _, row := range f.rows {
		if row.ID == id && row.UserID == userID {
			found := row
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeSourceStore) UpdateFields(_ context.Context, id, userID string, fields map[string]any) error {
	f.calls++
	f.updates++
	for i := range f.rows {
		row := &f.rows[i]
		if row.ID != id || row.UserID != userID {
			continue
		}
		for column, value := range fields {
			switch column {
			case "name":
				row.Name = value.(string)
			case "source_type":
				row.SourceType = optionalString(value)
			case "description":
				row.Description = optionalString(value)
			case "updated_at":
				row.UpdatedAt = value.(time.Time)
			default:
				return fmt.Errorf("unexpected column %q", column)
			}
		}
	}
	return nil
}

func (f *fakeSourceStore) ListByUserID(_ context.Context, userID string) ([]model.FeedbackSource, error) {
	f.calls++
	f.listCalls++
	var out []model.FeedbackSource
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func optionalString(value any) *string {
	if value == nil {
		return nil
	}
	s := value.(string)
	return &s
}

type fakeEntryStore struct {
	rows    []model.FeedbackEntry
	calls   int
	idCalls int
}

func (f *fakeEntryStore) Create(_ context.Context, entry *model.FeedbackEntry) error {
	f.calls++
	f.rows = append(f.rows, *entry)
	return nil
}

func (f *fakeEntryStore) GetByIDAndUserID(_ context.Context, id, userID string) (*model.FeedbackEntry, error) {
	f.calls++
	for _, row := range f.rows {
		if row.ID == id && row.UserID == userID {
			found := row
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeEntryStore) ListByUserID(_ context.Context, userID string) ([]model.FeedbackEntry, error) {
	f.calls++
	var out []model.FeedbackEntry
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeEntryStore) ListBySourceID(_ context.Context, sourceID, userID string) ([]model.FeedbackEntry, error) {
	f.calls++
	var out []model.FeedbackEntry
	for _, row := range f.rows {
		if row.SourceID == sourceID && row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeEntryStore) ListIDsByUserID(_ context.Context, userID string) ([]string, error) {
	f.calls++
	f.idCalls++
	var ids []string
	for _, row := range f.rows {
		if row.UserID == userID {
			ids = append(ids, row.ID)
		}
	}
	return ids, nil
}

type fakeTagStore struct {
	rows  []model.FeedbackTag
	calls int
}

func (f *fakeTagStore) Create(_ context.Context, tag *model.FeedbackTag) error {
	f.calls++
	f.rows = append(f.rows, *tag)
	return nil
}

func (f *fakeTagStore) ListByFeedbackID(_ context.Context, feedbackID string) ([]model.FeedbackTag, error) {
	f.calls++
	var out []model.FeedbackTag
	for _, row := range f.rows {
		if row.FeedbackID == feedbackID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeTagStore) ListByFeedbackIDs(_ context.Context, feedbackIDs []string) ([]model.FeedbackTag, error) {
	f.calls++
	wanted := make(map[string]bool, len(feedbackIDs))
	for _, id := range feedbackIDs {
		wanted[id] = true
	}
	var out []model.FeedbackTag
	for _, row := range f.rows {
		if wanted[row.FeedbackID] {
			out = append(out, row)
		}
	}
	return out, nil
}

// fakeListCache keeps JSON payloads in memory, like the redis cache.
type fakeListCache struct {
	mu     sync.Mutex
	values map[string][]byte
	dirty  map[string]bool
	sets   int
}

func newFakeListCache() *fakeListCache {
	return &fakeListCache{values: map[string][]byte{}, dirty: map[string]bool{}}
}

func (c *fakeListCache) Get(_ context.Context, kind, userID string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.values[kind+":"+userID]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *fakeListCache) Set(_ context.Context, kind, userID string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.sets++
	c.values[kind+":"+userID] = raw
	return nil
}

func (c *fakeListCache) Delete(_ context.Context, kind, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, kind+":"+userID)
	return nil
}

func (c *fakeListCache) MarkDirty(_ context.Context, kind, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty[kind+":"+userID] = true
	return nil
}

func (c *fakeListCache) IsDirty(_ context.Context, kind, userID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty[kind+":"+userID], nil
}

// clearDirty simulates the dirty marker TTL elapsing.
func (c *fakeListCache) clearDirty() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = map[string]bool{}
}

type fakePublisher struct {
	events []model.FeedbackEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, event model.FeedbackEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

var errBrokerDown = errors.New("broker down")

type serviceFixture struct {
	svc     *FeedbackService
	sources *fakeSourceStore
	entries *fakeEntryStore
	tags    *fakeTagStore
}

func (f *serviceFixture) storageCalls() int {
	return f.sources.calls + f.entries.calls + f.tags.calls
}

// newServiceFixture wires a FeedbackService with sequential ids and a
// clock that advances one second per call.
func newServiceFixture(t *testing.T, cache ListCache, events EventPublisher) *serviceFixture {
	t.Helper()

	f := &serviceFixture{
		sources: &fakeSourceStore{},
		entries: &fakeEntryStore{},
		tags:    &fakeTagStore{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = NewFeedbackService(f.sources, f.entries, f.tags, cache, events, logger)

	var seq int
	f.svc.newID = func() string {
		seq++
		return fmt.Sprintf("id-%03d", seq)
	}
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return f
}

// brokenListCache fails every call, like an unreachable redis.
type brokenListCache struct{}

var errCacheDown = errors.New("cache down")

func (brokenListCache) Get(context.Context, string, string, any) (bool, error) {
	return false, errCacheDown
}
func (brokenListCache) Set(context.Context, string, string, any) error { return errCacheDown }
func (brokenListCache) Delete(context.Context, string, string) error { return errCacheDown }
func (brokenListCache) MarkDirty(context.Context, string, string) error {
	return errCacheDown
}
func (brokenListCache) IsDirty(context.Context, string, string) (bool, error) {
	return false, errCacheDown
}
