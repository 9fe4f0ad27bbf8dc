package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/aniketsrinivasan/voice-todo/internal/repository"
	"github.com/aniketsrinivasan/voice-todo/internal/service"
)

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	todo, err := s.todoSvc.Create(r.Context(), s.userID, req.toInput())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTodoResponse(todo))
}

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptionsFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	todos, err := s.todoSvc.List(r.Context(), s.userID, opts)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTodoResponses(todos))
}

func (s *Server) handleGetTodo(w http.ResponseWriter, r *http.Request) {
	todoID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	todo, err := s.todoSvc.Get(r.Context(), s.userID, todoID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTodoResponse(todo))
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	todoID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req updateTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	todo, err := s.todoSvc.Update(r.Context(), s.userID, todoID, input)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTodoResponse(todo))
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	todoID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	if err := s.todoSvc.Delete(r.Context(), s.userID, todoID); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAttachCategories(w http.ResponseWriter, r *http.Request) {
	todoID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req attachCategoriesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	todo, err := s.todoSvc.AttachCategories(r.Context(), s.userID, todoID, req.Names)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTodoResponse(todo))
}

func (s *Server) handleLinkTranscription(w http.ResponseWriter, r *http.Request) {
	todoID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req linkTranscriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if req.TranscriptID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "bad_request", "transcript_id is required")
		return
	}

	todo, err := s.todoSvc.LinkTranscription(r.Context(), s.userID, todoID, req.TranscriptID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTodoResponse(todo))
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.todoSvc.ListCategories(r.Context(), s.userID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleCreateTranscript(w http.ResponseWriter, r *http.Request) {
	var req createTranscriptRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	transcript, err := s.voiceSvc.Submit(r.Context(), s.userID, req.AudioURI, req.Language)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, transcript)
}

func (s *Server) handleGetTranscript(w http.ResponseWriter, r *http.Request) {
	transcriptID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	transcript, err := s.voiceSvc.Get(r.Context(), s.userID, transcriptID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transcript)
}

func (s *Server) handleAgentQuery(w http.ResponseWriter, r *http.Request) {
	var req agentQueryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	mode := req.Mode
	if mode == "" {
		mode = service.AgentModeQuery
	}

	result, err := s.agentSvc.Execute(r.Context(), s.userID, service.AgentQuery{
		Prompt:  req.Prompt,
		Mode:    mode,
		Context: req.Context,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// listOptionsFromQuery reads list filters from the URL. Due bounds must be
// RFC3339; window values are passed through for the service to interpret.
func listOptionsFromQuery(r *http.Request) (service.ListOptions, error) {
	q := r.URL.Query()
	opts := service.ListOptions{
		Query:    q.Get("q"),
		Priority: q.Get("priority"),
		Category: q.Get("category"),
		Window:   q.Get("window"),
	}

	if raw := q.Get("due_before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return opts, errors.New("due_before must be an RFC3339 timestamp")
		}
		opts.DueBefore = &t
	}
	if raw := q.Get("due_after"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return opts, errors.New("due_after must be an RFC3339 timestamp")
		}
		opts.DueAfter = &t
	}
	return opts, nil
}

// pathID parses the {id} path segment, answering 400 itself on garbage input.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrTodoNotFound):
		writeError(w, http.StatusNotFound, "not_found", "Todo not found")
	case errors.Is(err, repository.ErrTranscriptNotFound):
		writeError(w, http.StatusNotFound, "not_found", "Transcript not found")
	default:
		log.Printf("[error] %v", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[error] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"code": code, "message": message})
}
