package reference

// BuiltinTemplates is the curated starting-point library embedded in the
// binary. Keywords and categories drive matching; code is passed verbatim to
// the prompt builder as a starting point for the model.
var BuiltinTemplates = []Template{
	{
		ID:         "rsi-divergence",
		Name:       "RSI Divergence",
		Author:     "PineGen",
		Source:     SourceBuiltin,
		Keywords:   []string{"rsi", "divergence", "overbought", "oversold", "relative strength"},
		Categories: []string{"momentum", "oscillator"},
		Description: "Relative Strength Index with regular bullish and bearish " +
			"divergence detection against price pivots.",
		Code: `//@version=5
indicator("RSI Divergence", overlay=false)
len = input.int(14, title="RSI Length", minval=1)
src = input(close, title="Source")
lbL = input.int(5, title="Pivot Lookback Left", minval=1)
lbR = input.int(5, title="Pivot Lookback Right", minval=1)
osc = ta.rsi(src, len)
plFound = not na(ta.pivotlow(osc, lbL, lbR))
phFound = not na(ta.pivothigh(osc, lbL, lbR))
oscHL = osc[lbR] > ta.valuewhen(plFound, osc[lbR], 1)
priceLL = low[lbR] < ta.valuewhen(plFound, low[lbR], 1)
bullCond = priceLL and oscHL and plFound
oscLH = osc[lbR] < ta.valuewhen(phFound, osc[lbR], 1)
priceHH = high[lbR] > ta.valuewhen(phFound, high[lbR], 1)
bearCond = priceHH and oscLH and phFound
plot(osc, title="RSI", color=color.new(color.purple, 0))
hline(70, "Overbought")
hline(30, "Oversold")
plotshape(bullCond, style=shape.labelup, location=location.bottom, color=color.green, text="Bull")
plotshape(bearCond, style=shape.labeldown, location=location.top, color=color.red, text="Bear")`,
	},
	{
		ID:         "macd-cross",
		Name:       "MACD Cross",
		Author:     "PineGen",
		Source:     SourceBuiltin,
		Keywords:   []string{"macd", "signal", "histogram", "crossover", "moving average convergence"},
		Categories: []string{"momentum", "trend"},
		Description: "MACD line, signal line and histogram with crossover " +
			"markers for entries and exits.",
		Code: `//@version=5
indicator("MACD Cross", overlay=false)
fastLen = input.int(12, title="Fast Length", minval=1)
slowLen = input.int(26, title="Slow Length", minval=1)
sigLen = input.int(9, title="Signal Length", minval=1)
[macdLine, signalLine, hist] = ta.macd(close, fastLen, slowLen, sigLen)
plot(macdLine, title="MACD", color=color.blue)
plot(signalLine, title="Signal", color=color.orange)
plot(hist, title="Histogram", style=plot.style_columns, color=hist >= 0 ? color.green : color.red)
plotshape(ta.crossover(macdLine, signalLine), style=shape.triangleup, location=location.bottom, color=color.green)
plotshape(ta.crossunder(macdLine, signalLine), style=shape.triangledown, location=location.top, color=color.red)`,
	},
	{
		ID:         "bollinger-bands",
		Name:       "Bollinger Bands",
		Author:     "PineGen",
		Source:     SourceClassic,
		Keywords:   []string{"bollinger", "bands", "volatility", "standard deviation", "squeeze"},
		Categories: []string{"volatility", "bands"},
		Description: "Classic Bollinger Bands with basis, upper and lower bands " +
			"and optional band-width squeeze highlight.",
		Code: `//@version=5
indicator("Bollinger Bands", overlay=true)
length = input.int(20, title="Length", minval=1)
mult = input.float(2.0, title="StdDev", minval=0.1, maxval=5, step=0.1)
src = input(close, title="Source")
basis = ta.sma(src, length)
dev = mult * ta.stdev(src, length)
upper = basis + dev
lower = basis - dev
plot(basis, title="Basis", color=color.orange)
p1 = plot(upper, title="Upper", color=color.blue)
p2 = plot(lower, title="Lower", color=color.blue)
fill(p1, p2, color=color.new(color.blue, 90))`,
	},
	{
		ID:         "ema-crossover",
		Name:       "EMA Crossover",
		Author:     "PineGen",
		Source:     SourceClassic,
		Keywords:   []string{"ema", "exponential moving average", "crossover", "golden cross", "death cross"},
		Categories: []string{"trend", "moving average"},
		Description: "Fast/slow exponential moving average crossover with " +
			"golden-cross and death-cross markers.",
		Code: `//@version=5
indicator("EMA Crossover", overlay=true)
fastLen = input.int(9, title="Fast EMA", minval=1)
slowLen = input.int(21, title="Slow EMA", minval=1)
fastEma = ta.ema(close, fastLen)
slowEma = ta.ema(close, slowLen)
plot(fastEma, title="Fast EMA", color=color.teal)
plot(slowEma, title="Slow EMA", color=color.red)
plotshape(ta.crossover(fastEma, slowEma), style=shape.triangleup, location=location.belowbar, color=color.green, size=size.small)
plotshape(ta.crossunder(fastEma, slowEma), style=shape.triangledown, location=location.abovebar, color=color.red, size=size.small)`,
	},
	{
		ID:         "vwap-bands",
		Name:       "VWAP Bands",
		Author:     "PineGen",
		Source:     SourceCommunity,
		Keywords:   []string{"vwap", "volume weighted", "anchored", "intraday", "bands"},
		Categories: []string{"volume", "bands"},
		Description: "Session VWAP with standard-deviation bands, commonly used " +
			"for intraday mean reversion.",
		Code: `//@version=5
indicator("VWAP Bands", overlay=true)
mult = input.float(1.5, title="Band Multiplier", minval=0.1, step=0.1)
vwapValue = ta.vwap(hlc3)
dev = ta.stdev(hlc3, 20)
plot(vwapValue, title="VWAP", color=color.blue, linewidth=2)
plot(vwapValue + mult * dev, title="Upper Band", color=color.new(color.blue, 50))
plot(vwapValue - mult * dev, title="Lower Band", color=color.new(color.blue, 50))`,
	},
	{
		ID:         "supertrend",
		Name:       "Supertrend",
		Author:     "PineGen",
		Source:     SourceCommunity,
		Keywords:   []string{"supertrend", "atr", "trailing stop", "trend following"},
		Categories: []string{"trend", "volatility"},
		Description: "ATR-based Supertrend trailing line that flips direction " +
			"when price closes through the band.",
		Code: `//@version=5
indicator("Supertrend", overlay=true)
atrPeriod = input.int(10, title="ATR Length", minval=1)
factor = input.float(3.0, title="Factor", minval=0.5, step=0.1)
[supertrend, direction] = ta.supertrend(factor, atrPeriod)
upTrend = plot(direction < 0 ? supertrend : na, title="Up Trend", color=color.green, style=plot.style_linebr)
downTrend = plot(direction > 0 ? supertrend : na, title="Down Trend", color=color.red, style=plot.style_linebr)`,
	},
	{
		ID:         "stochastic-oscillator",
		Name:       "Stochastic Oscillator",
		Author:     "PineGen",
		Source:     SourceClassic,
		Keywords:   []string{"stochastic", "oscillator", "overbought", "oversold", "k d cross"},
		Categories: []string{"momentum", "oscillator"},
		Description: "Stochastic %K/%D oscillator with overbought and oversold " +
			"zones.",
		Code: `//@version=5
indicator("Stochastic Oscillator", overlay=false)
periodK = input.int(14, title="%K Length", minval=1)
smoothK = input.int(3, title="%K Smoothing", minval=1)
periodD = input.int(3, title="%D Smoothing", minval=1)
k = ta.sma(ta.stoch(close, high, low, periodK), smoothK)
d = ta.sma(k, periodD)
plot(k, title="%K", color=color.blue)
plot(d, title="%D", color=color.orange)
h0 = hline(80, "Upper Band")
h1 = hline(20, "Lower Band")
fill(h0, h1, color=color.new(color.purple, 90))`,
	},
	{
		ID:         "obv-trend",
		Name:       "OBV Trend",
		Author:     "PineGen",
		Source:     SourceCommunity,
		Keywords:   []string{"obv", "on balance volume", "accumulation", "distribution", "volume trend"},
		Categories: []string{"volume", "trend"},
		Description: "On-balance volume with a smoothing average to read " +
			"accumulation versus distribution.",
		Code: `//@version=5
indicator("OBV Trend", overlay=false)
smoothLen = input.int(21, title="Smoothing Length", minval=1)
obv = ta.obv
smoothed = ta.ema(obv, smoothLen)
plot(obv, title="OBV", color=color.blue)
plot(smoothed, title="OBV EMA", color=color.orange)`,
	},
}

// DefaultLibrary builds the library over the built-in templates. It panics on
// a malformed table, which is a programming error caught at startup.
func DefaultLibrary() *Library {
	lib, err := NewLibrary(BuiltinTemplates)
	if err != nil {
		panic(err)
	}
	return lib
}
