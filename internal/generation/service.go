// Package generation orchestrates the indicator pipeline: match the request
// against the reference library, prompt the configured AI provider, then
// normalize whatever comes back into clean PineScript plus preview code.
package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pinegen/internal/ai"
	"github.com/pinegen/internal/pinescript"
	"github.com/pinegen/internal/prompts"
	"github.com/pinegen/internal/reference"
	"github.com/pinegen/internal/retry"
)

// Result is the outcome of one generation request.
type Result struct {
	Code    string                     `json:"code"`
	Preview string                     `json:"preview,omitempty"`
	Raw     string                     `json:"raw"`
	Config  pinescript.IndicatorConfig `json:"config"`
	Match   reference.MatchResult      `json:"match"`
}

// Service runs generation requests against one AI provider.
type Service struct {
	provider ai.Generator
	library  *reference.Library
	builder  *prompts.PromptBuilder
	retryCfg retry.Config
}

// NewService creates a generation service. A nil library falls back to the
// built-in reference templates.
func NewService(provider ai.Generator, library *reference.Library) *Service {
	if library == nil {
		library = reference.DefaultLibrary()
	}
	return &Service{
		provider: provider,
		library:  library,
		builder:  prompts.NewPromptBuilder(),
		retryCfg: retry.LLMConfig(),
	}
}

// Generate produces an indicator for the user's request.
func (s *Service) Generate(ctx context.Context, userPrompt string) (*Result, error) {
	userPrompt = strings.TrimSpace(userPrompt)
	if userPrompt == "" {
		return nil, fmt.Errorf("empty prompt")
	}

	match := s.library.Match(userPrompt)
	if match.BestMatch != nil {
		log.Info().
			Str("template", match.BestMatch.ID).
			Float64("score", match.Score).
			Msg("Matched reference template")
	} else {
		log.Info().Msg("No reference template matched, generating from scratch")
	}

	prompt := s.builder.BuildGenerationPrompt(userPrompt, match)

	var raw string
	result := retry.Do(ctx, s.retryCfg, func() error {
		var err error
		raw, err = s.provider.Generate(ctx, prompts.ScriptWriterRole, prompt)
		return err
	})
	if !result.Success {
		return nil, fmt.Errorf("generation failed after %d attempts: %w", result.Attempts, result.LastError)
	}

	extraction := pinescript.Normalize(ai.UnwrapEnvelope(raw))

	code := extraction.Primary
	if code == "" && pinescript.LooksLikePine(extraction.Raw) {
		// The model skipped the fences but still replied with script;
		// run the whole reply through the same cleanup. A prose reply
		// stays out of Code entirely and the caller shows Raw instead.
		code = pinescript.CleanPrimary(extraction.Raw)
	}

	cfg := pinescript.ParseIndicatorConfig(code)

	log.Debug().
		Str("provider", s.provider.Name()).
		Int("attempts", result.Attempts).
		Int("code_bytes", len(code)).
		Bool("has_preview", extraction.Preview != "").
		Msg("Generation complete")

	return &Result{
		Code:    code,
		Preview: extraction.Preview,
		Raw:     raw,
		Config:  cfg,
		Match:   match,
	}, nil
}

// GenerateTitle derives a short chat title from the opening exchange.
func (s *Service) GenerateTitle(ctx context.Context, excerpt string) (string, error) {
	prompt := s.builder.BuildTitlePrompt(excerpt)

	var raw string
	result := retry.Do(ctx, s.retryCfg, func() error {
		var err error
		raw, err = s.provider.Generate(ctx, prompts.TitleWriterRole, prompt)
		return err
	})
	if !result.Success {
		return "", fmt.Errorf("title generation failed: %w", result.LastError)
	}

	title := strings.Trim(strings.TrimSpace(raw), `"'`)
	if title == "" {
		title = "New chat"
	}
	return title, nil
}
