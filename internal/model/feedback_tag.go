package model

import "time"

// FeedbackTag labels an entry. Ownership is resolved through the entry.
type FeedbackTag struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	FeedbackID string    `gorm:"size:36;not null;index" json:"feedback_id"`
	Tag        string    `gorm:"size:64;not null" json:"tag"`
	Sentiment  *string   `gorm:"size:32" json:"sentiment,omitempty"`
	Importance *string   `gorm:"size:32" json:"importance,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
