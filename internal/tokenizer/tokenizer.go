package tokenizer

import (
	"unicode/utf8"

	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// NewTokenizer creates a tokenizer for CSV text.
//
// Matchers are tried in order:
// 1. Newline (LF only, CRLF is not normalized)
// 2. Comma
// 3. Double quote
// 4. Field content (a run of any other characters, including \r)
//
// Every input character is matched by exactly one of these, so the token
// stream always covers the whole input.
func NewTokenizer() tokenizer.Tokenizer {
	return tokenizer.NewTokenizerWithoutWhitespace(
		tokenizer.StringMatcherFunc(TokenNewline, "\n"),
		tokenizer.StringMatcherFunc(TokenComma, ","),
		tokenizer.StringMatcherFunc(TokenDQuote, `"`),
		FieldContentMatcher(),
	)
}

// NewTokenizerWithStream creates a CSV tokenizer over a pre-configured stream.
func NewTokenizerWithStream(stream tokenizer.Stream) tokenizer.Tokenizer {
	tok := NewTokenizer()
	tok.InitializeFromStream(stream)
	return tok
}

// NewTokenizerFromString creates a CSV tokenizer over input.
//
// Input that is not valid UTF-8 is scanned rune by rune: each invalid byte
// becomes one U+FFFD in token values, and the stream's byte offsets no longer
// line up with its rune cursor. Callers that need the raw bytes slice them
// from input using the token's rune count.
func NewTokenizerFromString(input string) tokenizer.Tokenizer {
	stream := tokenizer.NewStream(input)
	if !utf8.ValidString(input) {
		stream = runeStream{stream}
	}
	return NewTokenizerWithStream(stream)
}

// runeStream hides the ByteStream methods of the wrapped stream.
type runeStream struct {
	tokenizer.Stream
}

// FieldContentMatcher matches a run of characters that are not a comma,
// a double quote, or LF.
//
// Grammar:
//
//	Field = Character+ ;
//	Character = <any character except ',', '"', LF> ;
//
// Uses ByteStream for fast ASCII scanning when available.
func FieldContentMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if byteStream, ok := stream.(tokenizer.ByteStream); ok {
			return fieldContentMatcherByte(byteStream)
		}
		return fieldContentMatcherRune(stream)
	}
}

// isStructural reports whether c is one of the characters that end a field run.
func isStructural(c rune) bool {
	return c == ',' || c == '"' || c == '\n'
}

func fieldContentMatcherByte(stream tokenizer.ByteStream) *tokenizer.Token {
	startPos := stream.BytePosition()

	for {
		b, ok := stream.PeekByte()
		if !ok || isStructural(rune(b)) {
			break
		}
		stream.NextByte()
	}

	if stream.BytePosition() == startPos {
		return nil
	}

	value := stream.SliceFrom(startPos)
	return tokenizer.NewToken(TokenField, []rune(string(value)))
}

func fieldContentMatcherRune(stream tokenizer.Stream) *tokenizer.Token {
	var value []rune

	for {
		r, ok := stream.PeekChar()
		if !ok || isStructural(r) {
			break
		}
		stream.NextChar()
		value = append(value, r)
	}

	if len(value) == 0 {
		return nil
	}

	return tokenizer.NewToken(TokenField, value)
}
