// Package pinescript post-processes raw language-model output into a cleaned
// PineScript artifact plus an optional JavaScript preview snippet. Everything
// here is a best-effort text transform: no function in this package returns an
// error, and "nothing found" is a valid result the caller surfaces by falling
// back to the raw text.
package pinescript

import (
	"regexp"
	"strings"
)

// Extraction is the result of scanning raw model output for code blocks.
type Extraction struct {
	// Primary is the PineScript block body, empty when none was found.
	Primary string
	// Preview is the general-purpose (JavaScript) block body, empty when none
	// was found.
	Preview string
	// Raw is the original model output, untouched, kept for fallback display.
	Raw string
}

// fencedBlock is one ``` block as it appeared in the raw text.
type fencedBlock struct {
	lang string
	body string
}

var fenceRe = regexp.MustCompile("(?s)```([A-Za-z0-9_+-]*)[ \t]*\r?\n(.*?)```")

// previewLangs are the language tags treated as preview code outright.
var previewLangs = map[string]bool{
	"js":         true,
	"javascript": true,
	"ts":         true,
	"typescript": true,
}

var (
	versionDirectiveRe = regexp.MustCompile(`(?m)^\s*//\s?@version\s*=\s*\d+`)
	entryPointRe       = regexp.MustCompile(`\b(?:indicator|strategy)\s*\(`)
	taCallRe           = regexp.MustCompile(`\bta\.[a-z][a-z0-9_]*`)

	calculateDefRe = regexp.MustCompile(`(?m)(?:function\s+calculate\s*\(|(?:const|let|var)\s+calculate\s*=)`)
	moduleExportRe = regexp.MustCompile(`\bmodule\.exports\s*=`)
)

// parseFences returns every fenced block in order of appearance, bodies
// trimmed, empty bodies dropped.
func parseFences(raw string) []fencedBlock {
	matches := fenceRe.FindAllStringSubmatch(raw, -1)
	blocks := make([]fencedBlock, 0, len(matches))
	for _, m := range matches {
		body := strings.TrimSpace(m[2])
		if body == "" {
			continue
		}
		blocks = append(blocks, fencedBlock{
			lang: strings.ToLower(strings.TrimSpace(m[1])),
			body: body,
		})
	}
	return blocks
}

// LooksLikePine reports whether a body reads as PineScript: a version
// directive, an indicator/strategy entry point, or a namespaced ta.* call.
// Used both for classifying untagged fences and for deciding whether a
// completely unfenced reply is bare code or prose.
func LooksLikePine(body string) bool {
	return versionDirectiveRe.MatchString(body) ||
		entryPointRe.MatchString(body) ||
		taCallRe.MatchString(body)
}

// looksLikePreview reports whether a block body reads as a preview snippet:
// it defines a function or constant named calculate, or assigns
// module.exports.
func looksLikePreview(body string) bool {
	return calculateDefRe.MatchString(body) || moduleExportRe.MatchString(body)
}

// ExtractBlocks scans raw model output and fills two slots, primary and
// preview, first match wins. Classification order per block:
//
//  1. primary by language tag (tag contains "pine"), or, while the primary
//     slot is still empty, by the PineScript body heuristic;
//  2. preview by language tag (js/ts family), or, while the preview slot is
//     still empty, by the calculate/module.exports heuristic.
//
// A block that qualifies for both goes to whichever slot is still empty,
// primary first. Later candidates for a filled slot are ignored.
func ExtractBlocks(raw string) Extraction {
	out := Extraction{Raw: raw}

	for _, b := range parseFences(raw) {
		isPrimary := strings.Contains(b.lang, "pine") ||
			(out.Primary == "" && LooksLikePine(b.body))
		isPreview := previewLangs[b.lang] ||
			(out.Preview == "" && looksLikePreview(b.body))

		switch {
		case isPrimary && out.Primary == "":
			out.Primary = b.body
		case isPreview && out.Preview == "":
			out.Preview = b.body
		}

		if out.Primary != "" && out.Preview != "" {
			break
		}
	}

	return out
}
