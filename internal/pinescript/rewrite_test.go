package pinescript

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteLegacyCallsQualifiesBareCalls(t *testing.T) {
	cases := map[string]string{
		"v = sma(close, 14)":    "v = ta.sma(close, 14)",
		"v = ema(close, 9)":     "v = ta.ema(close, 9)",
		"up = crossover(a, b)":  "up = ta.crossover(a, b)",
		"m = min(a, max(b, c))": "m = math.min(a, math.max(b, c))",
		"s = tostring(close)":   "s = str.tostring(close)",
		"h = highest(high, 20)": "h = ta.highest(high, 20)",
		"x = abs(d) + sqrt(e)":  "x = math.abs(d) + math.sqrt(e)",
	}

	for in, want := range cases {
		assert.Equal(t, want, RewriteLegacyCalls(in))
	}
}

func TestRewriteLegacyCallsLeavesQualifiedCalls(t *testing.T) {
	cases := []string{
		"v = ta.sma(close, 14)",
		"m = math.min(a, b)",
		"s = str.tostring(close)",
		"custom = myLib.sma(close, 14)",
	}

	for _, in := range cases {
		assert.Equal(t, in, RewriteLegacyCalls(in))
	}
}

func TestRewriteLegacyCallsMixedLine(t *testing.T) {
	in := "d = min(math.min(a, b), c)"
	want := "d = math.min(math.min(a, b), c)"
	assert.Equal(t, want, RewriteLegacyCalls(in))
}

func TestRewriteLegacyCallsIgnoresNonCalls(t *testing.T) {
	cases := []string{
		"min = 5",             // plain variable, no call
		"minimum(a, b)",       // different identifier
		"mysma(close, 14)",    // suffix of a longer identifier
		"label = \"use sma\"", // sma not followed by (
	}

	for _, in := range cases {
		assert.Equal(t, in, RewriteLegacyCalls(in))
	}
}

func TestRewriteLegacyCallsIdempotent(t *testing.T) {
	in := "a = sma(close, 9)\nb = rsi(close, 14)\nc = min(a, b)"
	once := RewriteLegacyCalls(in)
	assert.Equal(t, once, RewriteLegacyCalls(once))
}

func TestRewriteColorCalls(t *testing.T) {
	assert.Equal(t, "c = color.rgb(255, 0, 0)", rewriteColorCalls("c = rgb(255, 0, 0)"))
	assert.Equal(t, "c = color.rgb(255, 0, 0)", rewriteColorCalls("c = color.rgb(255, 0, 0)"))
}
