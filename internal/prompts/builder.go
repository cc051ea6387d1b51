package prompts

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pinegen/internal/reference"
)

// PromptBuilder provides methods for building the different AI prompts used
// by the generation pipeline.
type PromptBuilder struct{}

// NewPromptBuilder creates a new prompt builder instance
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildGenerationPrompt assembles the user-facing prompt for an indicator
// generation request. When the reference matcher produced a template, its
// code is embedded verbatim as a starting point; otherwise the model is told
// to work from scratch.
func (pb *PromptBuilder) BuildGenerationPrompt(userPrompt string, match reference.MatchResult) string {
	var prompt strings.Builder

	prompt.WriteString(GenerationInstructions)
	prompt.WriteString("\n\n")
	prompt.WriteString(PreviewInstructions)
	prompt.WriteString("\n\n")

	if match.BestMatch != nil {
		t := match.BestMatch
		prompt.WriteString(StartingPointPreamble)
		prompt.WriteString("\n\n")
		prompt.WriteString(fmt.Sprintf("Template: %s (%s)\n", t.Name, t.ID))
		if t.Description != "" {
			prompt.WriteString(fmt.Sprintf("Description: %s\n", t.Description))
		}
		prompt.WriteString("\n```pine\n")
		prompt.WriteString(strings.TrimRight(t.Code, "\n"))
		prompt.WriteString("\n```\n\n")
	} else {
		prompt.WriteString(NoMatchPreamble)
		prompt.WriteString("\n\n")
	}

	prompt.WriteString("Request: ")
	prompt.WriteString(strings.TrimSpace(userPrompt))
	prompt.WriteString("\n")

	return prompt.String()
}

// BuildTitlePrompt assembles the prompt used to derive a short chat title
// from the opening exchange of a conversation.
func (pb *PromptBuilder) BuildTitlePrompt(excerpt string) string {
	const maxExcerpt = 500
	if len(excerpt) > maxExcerpt {
		cut := maxExcerpt
		for cut > 0 && !utf8.RuneStart(excerpt[cut]) {
			cut--
		}
		excerpt = excerpt[:cut]
	}

	return fmt.Sprintf("Reply with only a title of at most five words, no quotes, for this conversation:\n\n%s\n", excerpt)
}
