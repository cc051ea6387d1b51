package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pinegen/internal/config"
)

func TestUnwrapEnvelopePlainTextPassthrough(t *testing.T) {
	raw := "Here is your script:\n\n```pine\nplot(close)\n```\n"
	assert.Equal(t, raw, UnwrapEnvelope(raw))
}

func TestUnwrapEnvelopeBareJSON(t *testing.T) {
	raw := `{"code": "//@version=5\nindicator(\"X\")\nplot(close)", "preview": "function calculate(bars) { return []; }"}`

	out := UnwrapEnvelope(raw)

	assert.Contains(t, out, "```pine\n//@version=5\n")
	assert.Contains(t, out, "plot(close)\n```")
	assert.Contains(t, out, "```javascript\nfunction calculate(bars)")
}

func TestUnwrapEnvelopeInsideJSONFence(t *testing.T) {
	raw := "```json\n{\"code\": \"plot(close)\"}\n```"

	out := UnwrapEnvelope(raw)

	assert.Contains(t, out, "```pine\nplot(close)\n```")
	assert.NotContains(t, out, "json")
}

func TestUnwrapEnvelopeScriptKey(t *testing.T) {
	raw := `{"script": "plot(open)"}`

	out := UnwrapEnvelope(raw)

	assert.Contains(t, out, "```pine\nplot(open)\n```")
}

func TestUnwrapEnvelopeRepairsTrailingComma(t *testing.T) {
	raw := `{"code": "plot(close)",}`

	out := UnwrapEnvelope(raw)

	assert.Contains(t, out, "```pine\nplot(close)\n```")
}

func TestUnwrapEnvelopeWithoutCodeKeyPassthrough(t *testing.T) {
	raw := `{"message": "I cannot help with that"}`
	assert.Equal(t, raw, UnwrapEnvelope(raw))
}

func TestNewConnectorUnknownProvider(t *testing.T) {
	_, err := NewConnector("claude", config.AIConfig{Model: "x"})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrProviderNotFound))
}
