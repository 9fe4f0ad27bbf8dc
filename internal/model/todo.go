package model

import (
	"time"

	"github.com/google/uuid"
)

// Priority levels accepted for a to-do item.
const (
	PriorityLow  = "low"
	PriorityMed  = "med"
	PriorityHigh = "high"
)

// ValidPriority reports whether p is one of the accepted priority levels.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMed, PriorityHigh:
		return true
	}
	return false
}

// Todo represents a single to-do item owned by a user.
type Todo struct {
	ID              uuid.UUID      `gorm:"type:text;primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:text;index" json:"user_id"`
	Description     string         `json:"description"`
	Priority        string         `gorm:"default:med" json:"priority"`
	DueAt           *time.Time     `json:"due_at"`
	Metadata        map[string]any `gorm:"serializer:json" json:"metadata,omitempty"`
	TranscriptionID *uuid.UUID     `gorm:"type:text" json:"transcription_id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	Categories      []Category     `gorm:"many2many:todo_categories;" json:"categories"`
}

// CategoryNames returns the names of the attached categories, in association order.
func (t *Todo) CategoryNames() []string {
	names := make([]string, 0, len(t.Categories))
	for _, c := range t.Categories {
		names = append(names, c.Name)
	}
	return names
}
