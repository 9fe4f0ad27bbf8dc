package model

import (
	"time"

	"github.com/google/uuid"
)

// Transcript statuses.
const (
	TranscriptPending = "pending"
	TranscriptDone    = "done"
	TranscriptFailed  = "failed"
)

// Transcript is a voice transcription record produced by the speech-to-text
// pipeline. To-do items may reference one via their TranscriptionID field.
type Transcript struct {
	ID        uuid.UUID `gorm:"type:text;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:text;index" json:"-"`
	AudioURI  string    `json:"audio_uri"`
	Language  string    `json:"language,omitempty"`
	Status    string    `gorm:"default:pending;index" json:"status"`
	Text      string    `json:"text,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
