package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEchoClientRepeatsLastUserMessage(t *testing.T) {
	client := NewEchoClient()

	reply, err := client.Generate(context.Background(), []Message{
		{Role: "system", Content: "be helpful"},
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "ok"},
		{Role: "user", Content: "second"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Echo: second", reply)
}

func TestEchoClientWithoutUserMessage(t *testing.T) {
	client := NewEchoClient()

	reply, err := client.Generate(context.Background(), []Message{{Role: "system", Content: "be helpful"}})
	require.NoError(t, err)
	assert.Equal(t, "Echo: ", reply)
}
