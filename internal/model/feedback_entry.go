package model

import "time"

// FeedbackEntry is one piece of raw feedback under a source.
// UserID always equals the owning source's UserID.
type FeedbackEntry struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	SourceID  string    `gorm:"size:36;not null;index" json:"source_id"`
	UserID    string    `gorm:"size:36;not null;index" json:"user_id"`
	Channel   *string   `gorm:"size:64" json:"channel,omitempty"`
	Author    *string   `gorm:"size:255" json:"author,omitempty"`
	Rating    *int      `json:"rating,omitempty"`
	RawText   string    `gorm:"type:text;not null" json:"raw_text"`
	CreatedAt time.Time `json:"created_at"`
}
