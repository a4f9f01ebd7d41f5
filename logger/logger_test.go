package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]interface{}{"api_key", "sk-123", "pergunta", "oi", "DB_PASSWORD", "x"})

	assert.Equal(t, []interface{}{"api_key", "[REDACTED]", "pergunta", "oi", "DB_PASSWORD", "[REDACTED]"}, out)
}

func TestSanitizeKVsOddLength(t *testing.T) {
	out := sanitizeKVs([]interface{}{"a", 1, "dangling"})

	assert.Equal(t, []interface{}{"a", 1, "dangling"}, out)
}
