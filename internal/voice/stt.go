// Package voice defines the speech-to-text boundary used by the transcription
// sweep, plus an offline stub implementation.
package voice

import "context"

// SpeechToText resolves an audio reference to its transcribed text.
type SpeechToText interface {
	Transcribe(ctx context.Context, audioURI, language string) (string, error)
}

// WhisperStub is a placeholder transcriber that fabricates text from the
// audio URI without any external calls.
type WhisperStub struct {
	Model string
}

func NewWhisperStub() *WhisperStub {
	return &WhisperStub{Model: "whisper-1"}
}

func (s *WhisperStub) Transcribe(_ context.Context, audioURI, _ string) (string, error) {
	return "Transcribed: " + audioURI, nil
}
