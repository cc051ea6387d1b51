package pinescript

import (
	"regexp"
	"strings"
)

// VersionDirective is the single canonical version line every cleaned script
// starts with.
const VersionDirective = "//@version=5"

var (
	// Matches both spacing conventions: "//@version=5" and "// @version=5".
	versionLineRe = regexp.MustCompile(`^\s*//\s?@version\s*=\s*\d+\s*$`)

	// Author / copyright / source-attribution comment lines the model tends
	// to copy from public scripts.
	creditLineRe = regexp.MustCompile(`(?i)^\s*//.*(?:©|\(c\)|copyright|author\s*:|credit|written by|courtesy of)`)

	// Bare URLs to known script-hosting domains, with or without a scheme.
	scriptHostURLRe = regexp.MustCompile(`(?i)^\s*(?:https?://)?(?:www\.)?(?:tradingview\.com|pastebin\.com)\S*\s*$`)
)

// CleanPrimary normalizes an extracted PineScript block:
//
//  1. strip all existing version-declaration lines,
//  2. strip attribution comments and bare script-hosting URLs,
//  3. prepend exactly one canonical version directive,
//  4. qualify legacy un-namespaced calls,
//  5. re-check the version line (a malformed directive can survive step 1
//     and reappear as a valid one after rewriting),
//  6. qualify bare rgb() color constructor calls.
//
// The result is stable: running CleanPrimary on its own output changes
// nothing.
func CleanPrimary(body string) string {
	body = stripLines(body, versionLineRe, creditLineRe, scriptHostURLRe)
	body = VersionDirective + "\n" + strings.TrimLeft(body, "\n")
	body = RewriteLegacyCalls(body)
	body = ensureSingleVersionLine(body)
	body = rewriteColorCalls(body)
	return strings.TrimRight(body, "\n") + "\n"
}

// CleanPreview strips nothing but surrounding whitespace; preview snippets
// are passed through as-is.
func CleanPreview(body string) string {
	return strings.TrimSpace(body) + "\n"
}

// stripLines drops every line matching any of the given patterns.
func stripLines(body string, patterns ...*regexp.Regexp) string {
	lines := strings.Split(body, "\n")
	kept := lines[:0]
outer:
	for _, line := range lines {
		for _, re := range patterns {
			if re.MatchString(line) {
				continue outer
			}
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// ensureSingleVersionLine removes every version-declaration line and puts one
// canonical directive back at the very top.
func ensureSingleVersionLine(body string) string {
	body = stripLines(body, versionLineRe)
	return VersionDirective + "\n" + strings.TrimLeft(body, "\n")
}

// Normalize runs the full pipeline over raw model output: extract the two
// blocks, clean the primary, pass the preview through. It never fails; when
// no primary block is found, Primary stays empty and Raw carries the original
// text for the caller's fallback path.
func Normalize(raw string) Extraction {
	out := ExtractBlocks(raw)
	if out.Primary != "" {
		out.Primary = CleanPrimary(out.Primary)
	}
	if out.Preview != "" {
		out.Preview = CleanPreview(out.Preview)
	}
	return out
}
