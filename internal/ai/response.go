package ai

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/rs/zerolog/log"
)

// Some models ignore the fenced-markdown instruction and reply with a JSON
// envelope instead: {"code": "...", "preview": "..."}. UnwrapEnvelope detects
// that shape and converts it back to fenced markdown so the normalizer sees
// the format it expects. Non-envelope responses pass through untouched.

type codeEnvelope struct {
	Code    string `json:"code"`
	Preview string `json:"preview"`
	Script  string `json:"script"`
}

var jsonFenceRe = regexp.MustCompile("(?s)^```(?:json)?[ \t]*\r?\n(.*?)```\\s*$")

// UnwrapEnvelope converts a JSON-enveloped model response into fenced
// markdown. Malformed JSON is repaired before parsing; responses that are
// not envelopes are returned unchanged.
func UnwrapEnvelope(raw string) string {
	candidate := strings.TrimSpace(raw)

	// The envelope itself may arrive inside a ```json fence.
	if m := jsonFenceRe.FindStringSubmatch(candidate); m != nil {
		candidate = strings.TrimSpace(m[1])
	}

	if !strings.HasPrefix(candidate, "{") {
		return raw
	}

	env, ok := parseEnvelope(candidate)
	if !ok {
		return raw
	}

	code := env.Code
	if code == "" {
		code = env.Script
	}
	if code == "" {
		return raw
	}

	var out strings.Builder
	out.WriteString("```pine\n")
	out.WriteString(strings.TrimRight(code, "\n"))
	out.WriteString("\n```\n")
	if env.Preview != "" {
		out.WriteString("\n```javascript\n")
		out.WriteString(strings.TrimRight(env.Preview, "\n"))
		out.WriteString("\n```\n")
	}

	return out.String()
}

func parseEnvelope(candidate string) (codeEnvelope, bool) {
	var env codeEnvelope
	if err := json.Unmarshal([]byte(candidate), &env); err == nil {
		return env, true
	}

	repaired, err := jsonrepair.JSONRepair(candidate)
	if err != nil {
		log.Debug().Err(err).Msg("JSON repair failed, treating response as plain text")
		return codeEnvelope{}, false
	}

	if err := json.Unmarshal([]byte(repaired), &env); err != nil {
		return codeEnvelope{}, false
	}

	log.Debug().
		Int("original_bytes", len(candidate)).
		Int("repaired_bytes", len(repaired)).
		Msg("Repaired malformed JSON envelope")
	return env, true
}
