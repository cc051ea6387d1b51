package reference

import (
	"math"
	"sort"
	"strings"
)

// MatchThreshold is the minimum normalized score for a template to count as a
// match. Tuned empirically; keep in sync with the alternates cutoff.
const MatchThreshold = 0.05

// Scoring weights. These were tuned by hand against real user prompts, not
// derived from a model; do not "fix" them.
const (
	phraseBonus     = 3 // multi-word keyword phrase found verbatim
	wordBonus       = 2 // single-word keyword found verbatim
	partialBonus    = 1 // partial overlap between a keyword word and a prompt token
	categoryBonus   = 1 // category tag found in the prompt
	nameBonus       = 5 // template display name found in the prompt
	maxAlternates   = 3
	normalizeFactor = 2 // raw scores are normalized against maxPossible*normalizeFactor
)

// Scored pairs a template with its normalized score for one prompt.
type Scored struct {
	Template *Template `json:"template"`
	Score    float64   `json:"score"`
}

// MatchResult is the outcome of scoring a prompt against the library.
type MatchResult struct {
	// BestMatch is the top-scoring template, or nil when the top score is
	// below MatchThreshold.
	BestMatch *Template `json:"best_match"`
	// Score is the top template's normalized score in [0,1], regardless of
	// whether it cleared the threshold. 0 for an empty library.
	Score float64 `json:"score"`
	// Alternates holds up to three further templates at or above the
	// threshold, score-descending. Never includes BestMatch.
	Alternates []Scored `json:"alternates"`
}

// Match scores the prompt against every template and returns the best match
// plus alternates. It is a pure function over the library: no side effects,
// total over any input including the empty string.
func (l *Library) Match(prompt string) MatchResult {
	normalized := strings.ToLower(strings.TrimSpace(prompt))
	tokens := strings.Fields(normalized)

	scored := make([]Scored, 0, len(l.templates))
	for i := range l.templates {
		t := &l.templates[i]
		score := 0.0
		// An empty prompt contains every substring; short-circuit instead of
		// letting strings.Contains hand out points for nothing.
		if normalized != "" {
			score = scoreTemplate(t, normalized, tokens)
		}
		scored = append(scored, Scored{Template: t, Score: score})
	}

	// Ties keep library order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	result := MatchResult{}
	if len(scored) == 0 {
		return result
	}

	result.Score = scored[0].Score
	if scored[0].Score >= MatchThreshold {
		result.BestMatch = scored[0].Template
	}

	for _, s := range scored[1:] {
		if s.Score < MatchThreshold {
			break
		}
		result.Alternates = append(result.Alternates, s)
		if len(result.Alternates) == maxAlternates {
			break
		}
	}

	return result
}

// scoreTemplate computes the normalized score of one template for a prompt
// that has already been lower-cased and tokenized.
func scoreTemplate(t *Template, normalized string, tokens []string) float64 {
	raw := 0

	for _, kw := range t.Keywords {
		phrase := strings.ToLower(kw)
		if strings.Contains(normalized, phrase) {
			if strings.Contains(phrase, " ") {
				raw += phraseBonus
			} else {
				raw += wordBonus
			}
			continue
		}
		// Partial credit: each word of the phrase scores if it overlaps any
		// prompt token in either direction ("diverg" matches "divergence").
		for _, word := range strings.Fields(phrase) {
			for _, tok := range tokens {
				if strings.Contains(word, tok) || strings.Contains(tok, word) {
					raw += partialBonus
					break
				}
			}
		}
	}

	for _, cat := range t.Categories {
		if strings.Contains(normalized, strings.ToLower(cat)) {
			raw += categoryBonus
		}
	}

	if strings.Contains(normalized, strings.ToLower(t.Name)) {
		raw += nameBonus
	}

	maxPossible := len(t.Keywords) + len(t.Categories)
	if maxPossible == 0 {
		return 0
	}

	return math.Min(float64(raw)/float64(maxPossible*normalizeFactor), 1)
}
