// Package llm defines the narrow interface the agent uses to talk to a
// language model, plus an offline echo implementation.
package llm

import "context"

// Message is a single chat turn.
type Message struct {
	Role    string
	Content string
}

// Client generates a completion for a conversation. Implementations may call
// an external provider; the agent only depends on this one method.
type Client interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

// EchoClient answers with the last user message. It stands in for a real
// provider so the agent endpoints work without network access or API keys.
type EchoClient struct {
	Model string
}

func NewEchoClient() *EchoClient {
	return &EchoClient{Model: "echo"}
}

func (c *EchoClient) Generate(_ context.Context, messages []Message) (string, error) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return "Echo: " + messages[i].Content, nil
		}
	}
	return "Echo: ", nil
}
