package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/pinegen/internal/config"
)

// Provider represents an AI provider type
type Provider string

const (
	ProviderOpenAI   Provider = "openai"
	ProviderDeepSeek Provider = "deepseek"
	ProviderOllama   Provider = "ollama"
)

// DeepSeek speaks the OpenAI wire protocol; only the base URL differs.
const deepSeekBaseURL = "https://api.deepseek.com/v1"

// ErrProviderNotFound is returned when an AI provider name is not recognized.
var ErrProviderNotFound = errors.New("ai provider not found")

// Generator is the interface the generation pipeline depends on. Connector is
// the production implementation; tests substitute fakes.
type Generator interface {
	// Generate sends a system instruction plus user prompt and returns the
	// model's raw text response.
	Generate(ctx context.Context, system, user string) (string, error)

	// Name returns the provider's name.
	Name() string
}

// Connector wraps a langchaingo model for one configured provider.
type Connector struct {
	provider Provider
	llm      llms.Model
	cfg      config.AIConfig
}

// NewConnector creates a connector for the named provider using its section
// of the application config.
func NewConnector(name string, cfg config.AIConfig) (*Connector, error) {
	provider := Provider(name)

	log.Debug().
		Str("provider", name).
		Str("model", cfg.Model).
		Float64("temperature", cfg.Temperature).
		Msg("Creating AI connector")

	var model llms.Model
	var err error

	switch provider {
	case ProviderOpenAI:
		model, err = newOpenAICompatible(cfg, cfg.BaseURL)
	case ProviderDeepSeek:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = deepSeekBaseURL
		}
		model, err = newOpenAICompatible(cfg, baseURL)
	case ProviderOllama:
		model, err = newOllama(cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, name)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create model for provider %s: %w", name, err)
	}

	return &Connector{provider: provider, llm: model, cfg: cfg}, nil
}

// Generate sends the prompt pair and returns the first choice's text.
func (c *Connector) Generate(ctx context.Context, system, user string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}

	opts := []llms.CallOption{}
	if c.cfg.Temperature > 0 {
		opts = append(opts, llms.WithTemperature(c.cfg.Temperature))
	}
	if c.cfg.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(c.cfg.MaxTokens))
	}

	resp, err := c.llm.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", fmt.Errorf("%s generation failed: %w", c.provider, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", c.provider)
	}

	return resp.Choices[0].Content, nil
}

// Name returns the provider's name.
func (c *Connector) Name() string {
	return string(c.provider)
}

// ValidateAPIKey checks a key by issuing a minimal generation call.
func ValidateAPIKey(ctx context.Context, name string, cfg config.AIConfig) (bool, error) {
	connector, err := NewConnector(name, cfg)
	if err != nil {
		return false, err
	}

	_, err = llms.GenerateFromSinglePrompt(ctx, connector.llm, "test", llms.WithMaxTokens(10))
	if err != nil {
		// Quota errors mean the key is valid but throttled.
		if isQuotaError(err) {
			return false, fmt.Errorf("quota exceeded - the key is likely valid but rate limited: %w", err)
		}
		log.Debug().Err(err).Str("provider", name).Msg("API key validation failed")
		return false, nil
	}

	return true, nil
}

func isQuotaError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota")
}

func newOpenAICompatible(cfg config.AIConfig, baseURL string) (llms.Model, error) {
	opts := []openai.Option{
		openai.WithModel(cfg.Model),
		openai.WithToken(cfg.APIKey),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	return openai.New(opts...)
}

func newOllama(cfg config.AIConfig) (llms.Model, error) {
	opts := []ollama.Option{
		ollama.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
	}
	return ollama.New(opts...)
}
