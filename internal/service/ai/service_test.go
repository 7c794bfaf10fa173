package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledes/internal/config"
)

func TestNewChatModelRequiresKey(t *testing.T) {
	_, err := NewChatModel(context.Background(), config.ProviderClaude, config.ProviderConfig{}, 0)
	assert.ErrorContains(t, err, "api key is empty")
}

func TestNewChatModelUnknownProvider(t *testing.T) {
	_, err := NewChatModel(context.Background(), "cohere", config.ProviderConfig{APIKey: "k"}, 0)
	assert.ErrorContains(t, err, "invalid provider")
}

func TestNewChatModelClaude(t *testing.T) {
	cm, err := NewChatModel(context.Background(), config.ProviderClaude, config.ProviderConfig{APIKey: "sk-ant-test"}, 512)
	require.NoError(t, err)
	assert.NotNil(t, cm)
}
