package model

import "time"

const (
	EventSourceCreated = "source.created"
	EventSourceUpdated = "source.updated"
	EventEntryCreated  = "entry.created"
	EventTagAdded      = "tag.added"
)

// FeedbackEvent records a committed write. Published to the broker and
// persisted by the audit worker.
type FeedbackEvent struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Kind       string    `gorm:"size:32;not null;index" json:"kind"`
	UserID     string    `gorm:"size:36;not null;index" json:"user_id"`
	SubjectID  string    `gorm:"size:36;not null" json:"subject_id"`
	OccurredAt time.Time `gorm:"not null" json:"occurred_at"`
	RecordedAt time.Time `json:"recorded_at"`
}
