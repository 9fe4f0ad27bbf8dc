package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aniketsrinivasan/voice-todo/internal/llm"
	"github.com/aniketsrinivasan/voice-todo/internal/model"
)

// stubLLM is a canned-response client for tests.
type stubLLM struct {
	reply string
	err   error
}

func (s *stubLLM) Generate(_ context.Context, _ []llm.Message) (string, error) {
	return s.reply, s.err
}

func TestAgentQueryModeSearches(t *testing.T) {
	ctx := context.Background()
	todoSvc, _ := newTestTodoService(t)
	agent := NewAgentService(todoSvc, &stubLLM{})
	userID := uuid.New()

	_, err := todoSvc.Create(ctx, userID, CreateTodoInput{Description: "call the dentist"})
	require.NoError(t, err)
	_, err = todoSvc.Create(ctx, userID, CreateTodoInput{Description: "water the plants"})
	require.NoError(t, err)

	result, err := agent.Execute(ctx, userID, AgentQuery{Prompt: "dentist", Mode: AgentModeQuery})
	require.NoError(t, err)
	assert.Equal(t, "Found 1 to-dos.", result.Message)

	todos, ok := result.Data["todos"].([]model.Todo)
	require.True(t, ok)
	require.Len(t, todos, 1)
	assert.Equal(t, "call the dentist", todos[0].Description)
}

func TestAgentCreateModeUsesPromptVerbatim(t *testing.T) {
	ctx := context.Background()
	todoSvc, _ := newTestTodoService(t)
	agent := NewAgentService(todoSvc, &stubLLM{})
	userID := uuid.New()

	result, err := agent.Execute(ctx, userID, AgentQuery{Prompt: "  buy stamps  ", Mode: AgentModeCreate})
	require.NoError(t, err)
	assert.Equal(t, "Created to-do: buy stamps", result.Message)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, "create_todo", result.Changes[0]["action"])

	todos, err := todoSvc.List(ctx, userID, ListOptions{})
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "buy stamps", todos[0].Description)
	assert.Equal(t, model.PriorityMed, todos[0].Priority)
}

func TestAgentOtherModesFallThroughToLLM(t *testing.T) {
	ctx := context.Background()
	todoSvc, _ := newTestTodoService(t)
	userID := uuid.New()

	agent := NewAgentService(todoSvc, llm.NewEchoClient())
	result, err := agent.Execute(ctx, userID, AgentQuery{Prompt: "rename my tasks", Mode: "edit"})
	require.NoError(t, err)
	assert.Equal(t, "Echo: rename my tasks", result.Message)

	failing := NewAgentService(todoSvc, &stubLLM{err: errors.New("provider down")})
	_, err = failing.Execute(ctx, userID, AgentQuery{Prompt: "anything", Mode: "delete"})
	assert.Error(t, err)
}
