package pinescript

import "strings"

// legacyCalls maps unqualified PineScript v4 built-in calls to their v5
// namespaced form. Applied by a single left-to-right scan, so entries cannot
// corrupt each other regardless of map order.
var legacyCalls = map[string]string{
	// technical analysis
	"sma":         "ta.sma",
	"ema":         "ta.ema",
	"rma":         "ta.rma",
	"wma":         "ta.wma",
	"vwma":        "ta.vwma",
	"rsi":         "ta.rsi",
	"macd":        "ta.macd",
	"stoch":       "ta.stoch",
	"bb":          "ta.bb",
	"atr":         "ta.atr",
	"tr":          "ta.tr",
	"cci":         "ta.cci",
	"mom":         "ta.mom",
	"roc":         "ta.roc",
	"tsi":         "ta.tsi",
	"sar":         "ta.sar",
	"obv":         "ta.obv",
	"cum":         "ta.cum",
	"highest":     "ta.highest",
	"lowest":      "ta.lowest",
	"crossover":   "ta.crossover",
	"crossunder":  "ta.crossunder",
	"cross":       "ta.cross",
	"change":      "ta.change",
	"stdev":       "ta.stdev",
	"variance":    "ta.variance",
	"correlation": "ta.correlation",
	"linreg":      "ta.linreg",
	"pivothigh":   "ta.pivothigh",
	"pivotlow":    "ta.pivotlow",
	"valuewhen":   "ta.valuewhen",
	"barssince":   "ta.barssince",
	// math
	"abs":   "math.abs",
	"max":   "math.max",
	"min":   "math.min",
	"avg":   "math.avg",
	"sum":   "math.sum",
	"pow":   "math.pow",
	"sqrt":  "math.sqrt",
	"round": "math.round",
	"floor": "math.floor",
	"ceil":  "math.ceil",
	"log":   "math.log",
	"exp":   "math.exp",
	"sign":  "math.sign",
	// string conversion
	"tostring": "str.tostring",
	"tonumber": "str.tonumber",
}

// colorCalls covers the bare numeric color constructor.
var colorCalls = map[string]string{
	"rgb": "color.rgb",
}

// RewriteLegacyCalls qualifies legacy v4 built-in calls with their v5
// namespace. A call already preceded by a qualifying dot (ta.sma, math.min,
// f.max) is left alone, which also makes the rewrite idempotent.
func RewriteLegacyCalls(src string) string {
	return rewriteCalls(src, legacyCalls)
}

// rewriteColorCalls turns bare rgb(...) constructor calls into color.rgb(...).
func rewriteColorCalls(src string) string {
	return rewriteCalls(src, colorCalls)
}

// rewriteCalls performs one left-to-right scan over src. For every identifier
// immediately followed by "(" it looks up the mapping; the identifier is
// rewritten unless the character before it is a dot. This replaces the
// original per-entry find-and-replace passes, whose correctness depended on
// dictionary ordering.
func rewriteCalls(src string, mapping map[string]string) string {
	var out strings.Builder
	out.Grow(len(src))

	i := 0
	for i < len(src) {
		c := src[i]
		if !isIdentStart(c) {
			out.WriteByte(c)
			i++
			continue
		}

		j := i + 1
		for j < len(src) && isIdentPart(src[j]) {
			j++
		}
		word := src[i:j]

		qualified := i > 0 && src[i-1] == '.'
		isCall := j < len(src) && src[j] == '('

		if repl, ok := mapping[word]; ok && isCall && !qualified {
			out.WriteString(repl)
		} else {
			out.WriteString(word)
		}
		i = j
	}

	return out.String()
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
