package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/core/ports/driven"
)

func TestNewConfigValidator(t *testing.T) {
	assert.NotNil(t, NewConfigValidator())
}

func TestConfigValidator_ImplementsInterface(t *testing.T) {
	var _ driven.AIConfigValidator = NewConfigValidator()
}

func TestConfigValidator_ValidateLLM_NilConfig(t *testing.T) {
	assert.NoError(t, NewConfigValidator().ValidateLLM(nil))
}

func TestConfigValidator_ValidateLLM_UnconfiguredProvider(t *testing.T) {
	err := NewConfigValidator().ValidateLLM(&domain.LLMSettings{Provider: domain.AIProviderGemini})

	assert.NoError(t, err)
}
