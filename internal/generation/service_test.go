package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	responses []string
	errs      []error
	calls     int
	lastUser  string
}

func (f *fakeProvider) Generate(ctx context.Context, system, user string) (string, error) {
	i := f.calls
	f.calls++
	f.lastUser = user
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return f.responses[len(f.responses)-1], nil
}

func (f *fakeProvider) Name() string { return "fake" }

func TestGenerateNormalizesFencedResponse(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		"Here you go:\n\n```pine\n//@version=4\nstudy(\"RSI\")\nr = rsi(close, 14)\nplot(r)\n```\n\n```javascript\nfunction calculate(bars) { return []; }\n```\n",
	}}
	svc := NewService(provider, nil)

	res, err := svc.Generate(context.Background(), "rsi indicator")
	require.NoError(t, err)

	assert.Contains(t, res.Code, "//@version=5")
	assert.NotContains(t, res.Code, "//@version=4")
	assert.Contains(t, res.Code, "ta.rsi(close, 14)")
	assert.Contains(t, res.Preview, "function calculate")
	assert.NotEmpty(t, res.Raw)
}

func TestGenerateUnwrapsJSONEnvelope(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"code": "indicator(\"X\")\nplot(sma(close, 20))", "preview": "function calculate(bars) { return []; }"}`,
	}}
	svc := NewService(provider, nil)

	res, err := svc.Generate(context.Background(), "moving average")
	require.NoError(t, err)

	assert.Contains(t, res.Code, "//@version=5")
	assert.Contains(t, res.Code, "ta.sma(close, 20)")
	assert.Contains(t, res.Preview, "function calculate")
}

func TestGenerateFallsBackToRawWithoutFences(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		"//@version=5\nindicator(\"Bare\")\nplot(close)",
	}}
	svc := NewService(provider, nil)

	res, err := svc.Generate(context.Background(), "plot close")
	require.NoError(t, err)

	assert.Contains(t, res.Code, "indicator(\"Bare\")")
	assert.Equal(t, 1, countOccurrences(res.Code, "//@version=5"))
}

func TestGenerateProseReplyLeavesCodeEmpty(t *testing.T) {
	prose := "I can only describe the idea: compare fast and slow averages and alert on the cross."
	provider := &fakeProvider{responses: []string{prose}}
	svc := NewService(provider, nil)

	res, err := svc.Generate(context.Background(), "something vague")
	require.NoError(t, err)

	assert.Empty(t, res.Code, "a prose reply must not be dressed up as a script")
	assert.Equal(t, prose, res.Raw)
	assert.Empty(t, res.Config.Inputs)
}

func TestGenerateEmbedsMatchedTemplate(t *testing.T) {
	provider := &fakeProvider{responses: []string{"```pine\nplot(close)\n```"}}
	svc := NewService(provider, nil)

	res, err := svc.Generate(context.Background(), "rsi divergence overbought oversold")
	require.NoError(t, err)

	require.NotNil(t, res.Match.BestMatch)
	assert.Equal(t, "rsi-divergence", res.Match.BestMatch.ID)
	assert.Contains(t, provider.lastUser, "rsi-divergence")
}

func TestGenerateParsesIndicatorConfig(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		"```pine\n//@version=5\nindicator(\"Len Test\", overlay=true)\nlen = input.int(14, title=\"Length\", minval=1)\nplot(ta.sma(close, len))\n```",
	}}
	svc := NewService(provider, nil)

	res, err := svc.Generate(context.Background(), "sma")
	require.NoError(t, err)

	assert.Equal(t, "Len Test", res.Config.Title)
	assert.True(t, res.Config.Overlay)
	require.Len(t, res.Config.Inputs, 1)
	assert.Equal(t, "len", res.Config.Inputs[0].Name)
}

func TestGenerateRetriesTransientErrors(t *testing.T) {
	provider := &fakeProvider{
		responses: []string{"", "```pine\nplot(close)\n```"},
		errs:      []error{errors.New("429 too many requests"), nil},
	}
	svc := NewService(provider, nil)
	svc.retryCfg.BaseDelay = 0
	svc.retryCfg.LogRetries = false

	res, err := svc.Generate(context.Background(), "anything at all")
	require.NoError(t, err)

	assert.Equal(t, 2, provider.calls)
	assert.Contains(t, res.Code, "plot(close)")
}

func TestGenerateFailsOnNonRetryableError(t *testing.T) {
	provider := &fakeProvider{
		responses: []string{""},
		errs:      []error{errors.New("invalid api key")},
	}
	svc := NewService(provider, nil)

	_, err := svc.Generate(context.Background(), "anything")
	require.Error(t, err)
	assert.Equal(t, 1, provider.calls)
}

func TestGenerateRejectsEmptyPrompt(t *testing.T) {
	svc := NewService(&fakeProvider{responses: []string{"x"}}, nil)

	_, err := svc.Generate(context.Background(), "   ")
	assert.Error(t, err)
}

func TestGenerateTitleTrimsQuotes(t *testing.T) {
	provider := &fakeProvider{responses: []string{"\"RSI Divergence Scanner\"\n"}}
	svc := NewService(provider, nil)

	title, err := svc.GenerateTitle(context.Background(), "build me an rsi thing")
	require.NoError(t, err)
	assert.Equal(t, "RSI Divergence Scanner", title)
}

func TestGenerateTitleEmptyResponseFallsBack(t *testing.T) {
	provider := &fakeProvider{responses: []string{"  \n"}}
	svc := NewService(provider, nil)

	title, err := svc.GenerateTitle(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "New chat", title)
}

func countOccurrences(s, sub string) int {
	n := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			n++
		}
	}
	return n
}
