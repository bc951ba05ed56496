package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXDGSCRAMClient_Begin(t *testing.T) {
	client := &XDGSCRAMClient{HashGeneratorFcn: SHA256}
	require.NoError(t, client.Begin("user", "pass", ""))
	assert.NotNil(t, client.Client)
	assert.NotNil(t, client.ClientConversation)
	assert.False(t, client.Done())
}

func TestXDGSCRAMClient_Step(t *testing.T) {
	client := &XDGSCRAMClient{HashGeneratorFcn: SHA512}
	require.NoError(t, client.Begin("user", "pass", ""))

	// The first step emits the client-first message.
	response, err := client.Step("")
	require.NoError(t, err)
	assert.NotEmpty(t, response)
}

func TestHashGenerators(t *testing.T) {
	assert.Equal(t, 32, SHA256().Size())
	assert.Equal(t, 64, SHA512().Size())
}
