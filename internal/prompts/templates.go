package prompts

// System role definitions
const (
	// ScriptWriterRole defines the primary AI role for indicator generation
	ScriptWriterRole = "You are an expert PineScript v5 developer who builds TradingView indicators for traders"

	// TitleWriterRole defines the AI role for naming saved chats
	TitleWriterRole = "You are a naming assistant. Given a conversation excerpt, reply with a short descriptive title"
)

// Core instruction templates
const (
	// GenerationInstructions provides the main instructions for indicator generation
	GenerationInstructions = `Write a complete PineScript v5 indicator for the request below.
Requirements:
1. Return exactly one fenced code block tagged ` + "`pine`" + ` containing the full script
2. Start the script with //@version=5 and an indicator() or strategy() call
3. Use namespaced built-ins only (ta.*, math.*, str.*, color.*)
4. Declare every tunable value with input.int()/input.float() including title, minval and sensible defaults`

	// PreviewInstructions asks for the optional JavaScript preview snippet
	PreviewInstructions = `If the indicator can be simulated outside TradingView, add a second fenced code block tagged ` + "`javascript`" + ` that defines a calculate(candles) function returning the plotted series and assigns it to module.exports. Omit the block if a faithful simulation is not possible.`

	// StartingPointPreamble introduces an embedded template
	StartingPointPreamble = `Use the following script as a starting point. Keep its overall structure and adapt it to the request; do not copy it unchanged:`

	// NoMatchPreamble is used when no library template cleared the threshold
	NoMatchPreamble = `No matching starting point was found in the script library, so design the indicator from scratch using standard PineScript v5 building blocks.`
)
