package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ValidateDefaults(t *testing.T) {
	cfg := DefaultConfig
	assert.NoError(t, cfg.Validate())
}

func TestConfig_ValidateRejectsNegativeDepth(t *testing.T) {
	cfg := DefaultConfig
	cfg.Depth = -1
	assert.Error(t, cfg.Validate())
}

func TestConfig_ValidateRejectsNonPositiveBudgets(t *testing.T) {
	cfg := DefaultConfig
	cfg.MaxChars = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig
	cfg.MaxTokens = -5
	assert.Error(t, cfg.Validate())
}

func TestConfig_ValidateRejectsEmptyEncoding(t *testing.T) {
	cfg := DefaultConfig
	cfg.Encoding = ""
	assert.Error(t, cfg.Validate())
}
