// Package parser implements the CSV quote state machine.
//
// The parser consumes character-class tokens from internal/tokenizer and
// groups them into records of raw fields. It never fails: every finite input
// produces records, and malformed quoting is resolved by the transition rules
// below rather than rejected.
//
// Transitions, given the current token and the inQuote flag:
//
//	Comma/Newline, !inQuote  -> end field (Newline also ends the record)
//	Field, Comma, Newline    -> append verbatim
//	DQuote, !inQuote         -> inQuote = true, field is marked quoted
//	DQuote DQuote, inQuote   -> append one literal quote
//	DQuote, inQuote          -> inQuote = false
//
// A quote only opens a quoted section; it does not discard content already
// buffered for the field. `ab"c,d"` is therefore the single field `abc,d`.
package parser

import (
	"strings"
	"unicode/utf8"

	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"
	"github.com/shapestone/shape-tablecsv/internal/tokenizer"
)

// Field is a raw field as it appeared in the source, after quote removal
// and unescaping.
type Field struct {
	// Text is the field content.
	Text string
	// Quoted reports whether a quote opened a quoted section in this field.
	Quoted bool
}

// Parser runs the quote state machine over a token stream.
// It maintains a single token lookahead for escaped-quote detection.
type Parser struct {
	tokenizer *shapetokenizer.Tokenizer
	current   *shapetokenizer.Token
	hasToken  bool

	// src is set when parsing a string; field text is sliced from it so
	// bytes that are not valid UTF-8 are kept as they are.
	src    string
	hasSrc bool
	pos    int
	text   string
}

// NewParser creates a new CSV parser for the given input string.
// Field text is taken from input byte for byte, including invalid UTF-8.
// For parsing from io.Reader, use NewParserFromStream instead.
func NewParser(input string) *Parser {
	tok := tokenizer.NewTokenizerFromString(input)
	p := &Parser{tokenizer: &tok, src: input, hasSrc: true}
	p.advance()
	return p
}

// NewParserFromStream creates a new CSV parser using a pre-configured stream.
// This allows parsing from io.Reader using tokenizer.NewStreamFromReader.
// Field text is the stream's decoded runes, so invalid UTF-8 reads as U+FFFD.
func NewParserFromStream(stream shapetokenizer.Stream) *Parser {
	tok := tokenizer.NewTokenizerWithStream(stream)
	p := &Parser{tokenizer: &tok}
	p.advance()
	return p
}

// Parse consumes the whole input and returns its records.
//
// A single trailing newline is not a record terminator: "a\n" and "a" both
// yield one record. The result always contains at least one record with at
// least one field, so empty input yields a single empty field.
func (p *Parser) Parse() [][]Field {
	records := make([][]Field, 0, 16)
	record := make([]Field, 0, 8)

	var (
		buf     strings.Builder
		inQuote bool
		quoted  bool
	)

	endField := func() {
		record = append(record, Field{Text: buf.String(), Quoted: quoted})
		buf.Reset()
		quoted = false
	}

	for p.hasToken {
		token, text := p.current, p.text
		p.advance()

		switch token.Kind() {
		case tokenizer.TokenNewline:
			if !p.hasToken {
				// Trailing newline, stripped before processing.
				continue
			}
			if inQuote {
				buf.WriteByte('\n')
				continue
			}
			endField()
			records = append(records, record)
			record = make([]Field, 0, len(record))

		case tokenizer.TokenComma:
			if inQuote {
				buf.WriteByte(',')
				continue
			}
			endField()

		case tokenizer.TokenDQuote:
			switch {
			case !inQuote:
				inQuote = true
				quoted = true
			case p.hasToken && p.current.Kind() == tokenizer.TokenDQuote:
				buf.WriteByte('"')
				p.advance()
			default:
				inQuote = false
			}

		default:
			buf.WriteString(text)
		}
	}

	endField()
	return append(records, record)
}

// advance moves to the next token and records its source text.
func (p *Parser) advance() {
	token, ok := p.tokenizer.NextToken()
	if !ok {
		p.hasToken = false
		p.current = nil
		p.text = ""
		return
	}
	p.current = token
	p.hasToken = true

	if !p.hasSrc {
		p.text = token.ValueString()
		return
	}
	// Each rune in a token is one decoded unit of src, and an invalid
	// byte is a unit of width 1, matching the string to []rune conversion.
	start := p.pos
	for range token.Value() {
		if p.pos >= len(p.src) {
			break
		}
		_, width := utf8.DecodeRuneInString(p.src[p.pos:])
		p.pos += width
	}
	p.text = p.src[start:p.pos]
}
