package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/aniketsrinivasan/voice-todo/internal/model"
	"github.com/aniketsrinivasan/voice-todo/internal/repository"
	"github.com/aniketsrinivasan/voice-todo/internal/voice"
)

// VoiceService accepts transcription requests and resolves them through the
// speech-to-text client. Requests are stored pending and completed by
// ProcessPending, which the scheduler runs periodically.
type VoiceService struct {
	transcriptRepo *repository.TranscriptRepository
	stt            voice.SpeechToText
}

func NewVoiceService(transcriptRepo *repository.TranscriptRepository, stt voice.SpeechToText) *VoiceService {
	return &VoiceService{transcriptRepo: transcriptRepo, stt: stt}
}

// Submit registers a transcription request in the pending state.
func (s *VoiceService) Submit(ctx context.Context, userID uuid.UUID, audioURI, language string) (*model.Transcript, error) {
	return s.transcriptRepo.CreatePending(ctx, userID, audioURI, language)
}

func (s *VoiceService) Get(ctx context.Context, userID, transcriptID uuid.UUID) (*model.Transcript, error) {
	return s.transcriptRepo.FindByID(ctx, userID, transcriptID)
}

// ProcessPending transcribes every pending record, marking each done or
// failed. A failing record does not stop the sweep.
func (s *VoiceService) ProcessPending(ctx context.Context) error {
	pending, err := s.transcriptRepo.ListPending(ctx)
	if err != nil {
		return err
	}

	for i := range pending {
		transcript := &pending[i]
		text, err := s.stt.Transcribe(ctx, transcript.AudioURI, transcript.Language)
		if err != nil {
			if markErr := s.transcriptRepo.MarkFailed(ctx, transcript, err.Error()); markErr != nil {
				return markErr
			}
			log.Printf("transcribe %s: %v", transcript.ID, err)
			continue
		}
		if err := s.transcriptRepo.MarkDone(ctx, transcript, text); err != nil {
			return err
		}
	}
	return nil
}
