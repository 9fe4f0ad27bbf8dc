package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/aniketsrinivasan/voice-todo/internal/llm"
	"github.com/aniketsrinivasan/voice-todo/internal/model"
)

// Agent modes.
const (
	AgentModeQuery  = "query"
	AgentModeCreate = "create"
)

// AgentQuery is a plain-text request routed by mode.
type AgentQuery struct {
	Prompt  string
	Mode    string
	Context map[string]any
}

// AgentResult carries the agent's reply and optional structured data.
type AgentResult struct {
	Message string           `json:"message"`
	Changes []map[string]any `json:"changes,omitempty"`
	Data    map[string]any   `json:"data,omitempty"`
}

// AgentService routes prompts to the to-do service. There is no language
// understanding here: a query prompt becomes a free-text search and a create
// prompt becomes the item description verbatim. Anything else is answered by
// the LLM client.
type AgentService struct {
	todoSvc *TodoService
	llm     llm.Client
}

func NewAgentService(todoSvc *TodoService, client llm.Client) *AgentService {
	return &AgentService{todoSvc: todoSvc, llm: client}
}

func (s *AgentService) Execute(ctx context.Context, userID uuid.UUID, query AgentQuery) (*AgentResult, error) {
	prompt := strings.TrimSpace(query.Prompt)

	switch query.Mode {
	case AgentModeQuery:
		todos, err := s.todoSvc.List(ctx, userID, ListOptions{Query: prompt})
		if err != nil {
			return nil, err
		}
		return &AgentResult{
			Message: fmt.Sprintf("Found %d to-dos.", len(todos)),
			Data:    map[string]any{"todos": todos},
		}, nil

	case AgentModeCreate:
		created, err := s.todoSvc.Create(ctx, userID, CreateTodoInput{
			Description: prompt,
			Priority:    model.PriorityMed,
		})
		if err != nil {
			return nil, err
		}
		return &AgentResult{
			Message: fmt.Sprintf("Created to-do: %s", created.Description),
			Changes: []map[string]any{{"action": "create_todo", "id": created.ID.String()}},
		}, nil

	default:
		reply, err := s.llm.Generate(ctx, []llm.Message{{Role: "user", Content: prompt}})
		if err != nil {
			return nil, fmt.Errorf("generate reply: %w", err)
		}
		return &AgentResult{Message: reply}, nil
	}
}
