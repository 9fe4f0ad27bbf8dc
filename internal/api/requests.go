package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aniketsrinivasan/voice-todo/internal/model"
	"github.com/aniketsrinivasan/voice-todo/internal/service"
)

type createTodoRequest struct {
	Description string         `json:"description"`
	Priority    string         `json:"priority"`
	DueAt       *time.Time     `json:"due_at"`
	Categories  []string       `json:"categories"`
	Metadata    map[string]any `json:"metadata"`
}

func (r *createTodoRequest) validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return fmt.Errorf("description must not be empty")
	}
	if r.Priority != "" && !model.ValidPriority(r.Priority) {
		return fmt.Errorf("priority must be one of low, med, high")
	}
	return nil
}

func (r *createTodoRequest) toInput() service.CreateTodoInput {
	return service.CreateTodoInput{
		Description: r.Description,
		Priority:    r.Priority,
		DueAt:       r.DueAt,
		Categories:  r.Categories,
		Metadata:    r.Metadata,
	}
}

// updateTodoRequest keeps due_at raw so that an explicit null (clear the due
// date) is distinguishable from the field being absent (leave it alone).
type updateTodoRequest struct {
	Description *string         `json:"description"`
	Priority    *string         `json:"priority"`
	DueAt       json.RawMessage `json:"due_at"`
	Categories  []string        `json:"categories"`
	Metadata    map[string]any  `json:"metadata"`
}

func (r *updateTodoRequest) toInput() (service.UpdateTodoInput, error) {
	input := service.UpdateTodoInput{
		Description: r.Description,
		Priority:    r.Priority,
		Categories:  r.Categories,
		Metadata:    r.Metadata,
	}

	if r.Description != nil && strings.TrimSpace(*r.Description) == "" {
		return input, fmt.Errorf("description must not be empty")
	}
	if r.Priority != nil && !model.ValidPriority(*r.Priority) {
		return input, fmt.Errorf("priority must be one of low, med, high")
	}

	if len(r.DueAt) > 0 {
		input.DueAtSet = true
		if !bytes.Equal(bytes.TrimSpace(r.DueAt), []byte("null")) {
			var due time.Time
			if err := json.Unmarshal(r.DueAt, &due); err != nil {
				return input, fmt.Errorf("due_at must be an RFC3339 timestamp or null")
			}
			input.DueAt = &due
		}
	}

	return input, nil
}

type attachCategoriesRequest struct {
	Names []string `json:"names"`
}

type linkTranscriptionRequest struct {
	TranscriptID uuid.UUID `json:"transcript_id"`
}

type createTranscriptRequest struct {
	AudioURI string `json:"audio_uri"`
	Language string `json:"language"`
}

func (r *createTranscriptRequest) validate() error {
	if strings.TrimSpace(r.AudioURI) == "" {
		return fmt.Errorf("audio_uri must not be empty")
	}
	return nil
}

type agentQueryRequest struct {
	Prompt  string         `json:"prompt"`
	Mode    string         `json:"mode"`
	Context map[string]any `json:"context"`
}

func (r *agentQueryRequest) validate() error {
	switch r.Mode {
	case "", "query", "create", "edit", "delete":
		return nil
	}
	return fmt.Errorf("mode must be one of query, create, edit, delete")
}

// todoResponse is the wire shape of a to-do item: categories flatten to their
// names, matching what list filters accept.
type todoResponse struct {
	ID              uuid.UUID      `json:"id"`
	UserID          uuid.UUID      `json:"user_id"`
	Description     string         `json:"description"`
	Priority        string         `json:"priority"`
	DueAt           *time.Time     `json:"due_at"`
	Categories      []string       `json:"categories"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	TranscriptionID *uuid.UUID     `json:"transcription_id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func toTodoResponse(t *model.Todo) todoResponse {
	return todoResponse{
		ID:              t.ID,
		UserID:          t.UserID,
		Description:     t.Description,
		Priority:        t.Priority,
		DueAt:           t.DueAt,
		Categories:      t.CategoryNames(),
		Metadata:        t.Metadata,
		TranscriptionID: t.TranscriptionID,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func toTodoResponses(todos []model.Todo) []todoResponse {
	out := make([]todoResponse, 0, len(todos))
	for i := range todos {
		out = append(out, toTodoResponse(&todos[i]))
	}
	return out
}
