package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aniketsrinivasan/voice-todo/internal/model"
)

// TranscriptRepository stores voice transcription records.
type TranscriptRepository struct {
	db *gorm.DB
}

func NewTranscriptRepository(db *gorm.DB) *TranscriptRepository {
	return &TranscriptRepository{db: db}
}

// CreatePending registers a new transcription request in the pending state.
func (r *TranscriptRepository) CreatePending(ctx context.Context, userID uuid.UUID, audioURI, language string) (*model.Transcript, error) {
	now := time.Now().UTC()
	transcript := model.Transcript{
		ID:        uuid.New(),
		UserID:    userID,
		AudioURI:  audioURI,
		Language:  language,
		Status:    model.TranscriptPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.WithContext(ctx).Create(&transcript).Error; err != nil {
		return nil, fmt.Errorf("create transcript: %w", err)
	}
	return &transcript, nil
}

func (r *TranscriptRepository) FindByID(ctx context.Context, userID, transcriptID uuid.UUID) (*model.Transcript, error) {
	var transcript model.Transcript
	err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, transcriptID).First(&transcript).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTranscriptNotFound
		}
		return nil, fmt.Errorf("find transcript: %w", err)
	}
	return &transcript, nil
}

// ListPending returns every record still waiting for transcription, oldest
// first, across all users. Used by the background sweep.
func (r *TranscriptRepository) ListPending(ctx context.Context) ([]model.Transcript, error) {
	var transcripts []model.Transcript
	if err := r.db.WithContext(ctx).Where("status = ?", model.TranscriptPending).
		Order("created_at ASC").
		Find(&transcripts).Error; err != nil {
		return nil, fmt.Errorf("list pending transcripts: %w", err)
	}
	return transcripts, nil
}

func (r *TranscriptRepository) MarkDone(ctx context.Context, transcript *model.Transcript, text string) error {
	transcript.Status = model.TranscriptDone
	transcript.Text = text
	transcript.Error = ""
	transcript.UpdatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Save(transcript).Error; err != nil {
		return fmt.Errorf("mark transcript done: %w", err)
	}
	return nil
}

func (r *TranscriptRepository) MarkFailed(ctx context.Context, transcript *model.Transcript, cause string) error {
	transcript.Status = model.TranscriptFailed
	transcript.Error = cause
	transcript.UpdatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Save(transcript).Error; err != nil {
		return fmt.Errorf("mark transcript failed: %w", err)
	}
	return nil
}
