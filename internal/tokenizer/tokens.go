// Package tokenizer splits CSV text into character-class tokens using Shape's tokenizer framework.
package tokenizer

// Token kinds emitted for CSV text.
//
// The tokenizer only classifies characters. Whether a comma or newline is
// structural depends on quote state, which the parser tracks.
const (
	TokenComma   = "Comma"   // ,
	TokenDQuote  = "DQuote"  // "
	TokenNewline = "Newline" // \n only; \r is ordinary content

	// TokenField is a run of characters that are none of the above.
	TokenField = "Field"
)
