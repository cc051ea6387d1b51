package pinescript

import (
	"regexp"
	"strconv"
	"strings"
)

// InputParam is one numeric input declaration scraped from cleaned code.
type InputParam struct {
	Name    string   `json:"name"`
	Default float64  `json:"default"`
	Title   string   `json:"title,omitempty"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Step    *float64 `json:"step,omitempty"`
}

// IndicatorConfig is the display metadata derived from a cleaned script. It
// is stored alongside the code so the front end can render a settings panel
// without parsing PineScript itself.
type IndicatorConfig struct {
	Title   string       `json:"title"`
	Overlay bool         `json:"overlay"`
	Inputs  []InputParam `json:"inputs"`
}

var (
	entryTitleRe = regexp.MustCompile(`\b(?:indicator|strategy)\s*\(\s*(?:title\s*=\s*)?["']([^"']*)["']`)
	overlayRe    = regexp.MustCompile(`\boverlay\s*=\s*true\b`)

	// Numeric input declarations only. input.bool / input.color /
	// input.string / input.source / input.timeframe never match because the
	// dot is only allowed before int or float.
	inputDeclRe = regexp.MustCompile(`(?m)^\s*([A-Za-z_][A-Za-z0-9_]*)\s*=\s*input(?:\.(?:int|float))?\(([^)\n]*)\)`)

	inputTitleRe = regexp.MustCompile(`title\s*=\s*["']([^"']*)["']`)
	minvalRe     = regexp.MustCompile(`minval\s*=\s*(-?[0-9]+(?:\.[0-9]+)?)`)
	maxvalRe     = regexp.MustCompile(`maxval\s*=\s*(-?[0-9]+(?:\.[0-9]+)?)`)
	stepRe       = regexp.MustCompile(`step\s*=\s*(-?[0-9]+(?:\.[0-9]+)?)`)
	defvalRe     = regexp.MustCompile(`defval\s*=\s*(-?[0-9]+(?:\.[0-9]+)?)`)
)

// ParseIndicatorConfig heuristically extracts display metadata from cleaned
// primary code: the script title, the overlay flag, and the numeric input
// parameter table. Best effort; unparseable declarations are skipped, never
// reported.
func ParseIndicatorConfig(code string) IndicatorConfig {
	cfg := IndicatorConfig{}

	if m := entryTitleRe.FindStringSubmatch(code); m != nil {
		cfg.Title = m[1]
	}
	cfg.Overlay = overlayRe.MatchString(code)

	for _, decl := range inputDeclRe.FindAllStringSubmatch(code, -1) {
		name, args := decl[1], decl[2]

		defval, ok := parseDefault(args)
		if !ok {
			// Non-numeric default (bool, color, string, source): excluded
			// from the parameter table.
			continue
		}

		param := InputParam{Name: name, Default: defval}
		if m := inputTitleRe.FindStringSubmatch(args); m != nil {
			param.Title = m[1]
		}
		if m := minvalRe.FindStringSubmatch(args); m != nil {
			param.Min = parseFloatPtr(m[1])
		}
		if m := maxvalRe.FindStringSubmatch(args); m != nil {
			param.Max = parseFloatPtr(m[1])
		}
		if m := stepRe.FindStringSubmatch(args); m != nil {
			param.Step = parseFloatPtr(m[1])
		}

		cfg.Inputs = append(cfg.Inputs, param)
	}

	return cfg
}

// parseDefault reads the declared default value: the first positional
// argument, or a defval= named argument wherever it appears.
func parseDefault(args string) (float64, bool) {
	first := args
	if idx := strings.IndexByte(args, ','); idx >= 0 {
		first = args[:idx]
	}
	first = strings.TrimSpace(first)
	first = strings.TrimPrefix(first, "defval")
	first = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(first), "="))

	if v, err := strconv.ParseFloat(first, 64); err == nil {
		return v, true
	}

	// defval may be named and not first.
	if m := defvalRe.FindStringSubmatch(args); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		return v, true
	}

	return 0, false
}

func parseFloatPtr(s string) *float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return &v
}
