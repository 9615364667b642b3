package model

import "time"

// FeedbackSource is a named collection bucket owned by one user.
type FeedbackSource struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"size:36;not null;index" json:"user_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	SourceType  *string   `gorm:"size:64" json:"source_type,omitempty"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
