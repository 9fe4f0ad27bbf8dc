package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/aniketsrinivasan/voice-todo/internal/service"
)

// Server is the HTTP surface over the to-do, agent, and voice services. Auth
// is a fixed user id for now; every request runs as that caller.
type Server struct {
	todoSvc  *service.TodoService
	agentSvc *service.AgentService
	voiceSvc *service.VoiceService
	userID   uuid.UUID

	httpServer *http.Server
}

func New(addr string, todoSvc *service.TodoService, agentSvc *service.AgentService, voiceSvc *service.VoiceService, userID uuid.UUID) *Server {
	s := &Server{
		todoSvc:  todoSvc,
		agentSvc: agentSvc,
		voiceSvc: voiceSvc,
		userID:   userID,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /todos", s.handleCreateTodo)
	mux.HandleFunc("GET /todos", s.handleListTodos)
	mux.HandleFunc("GET /todos/{id}", s.handleGetTodo)
	mux.HandleFunc("PATCH /todos/{id}", s.handleUpdateTodo)
	mux.HandleFunc("DELETE /todos/{id}", s.handleDeleteTodo)
	mux.HandleFunc("POST /todos/{id}/categories", s.handleAttachCategories)
	mux.HandleFunc("POST /todos/{id}/transcription", s.handleLinkTranscription)
	mux.HandleFunc("GET /categories", s.handleListCategories)
	mux.HandleFunc("POST /transcripts", s.handleCreateTranscript)
	mux.HandleFunc("GET /transcripts/{id}", s.handleGetTranscript)
	mux.HandleFunc("POST /agent/query", s.handleAgentQuery)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the route table, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until the context is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()
	log.Printf("[info] http server listening on %s", s.httpServer.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
