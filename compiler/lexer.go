package compiler

import (
	"fmt"
	"unicode/utf8"
)

// ---------------------------------------------------------------------------
// Lexer: tokenizer for postfix expression source
// ---------------------------------------------------------------------------

// LexError reports an unexpected character in the source text.
type LexError struct {
	Pos Position
	Ch  rune
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unexpected character %q at %s", e.Ch, e.Pos)
}

// lexState enumerates the scanner states. The scanner is an explicit state
// machine: each call to NextToken starts in stateStart and runs transitions
// until a token is produced or the input fails.
type lexState int

const (
	stateStart        lexState = iota
	stateNumber                // accumulating digits
	stateMaybeComment          // just saw '/', one character of lookahead decides
	stateComment               // skipping to end of line
)

// Lexer tokenizes postfix expression source. Tokens are numbers and the
// single-character operators + - * /; whitespace and // line comments are
// skipped.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      rune // current character, 0 at EOF
	line    int  // current line (1-based)
	col     int  // current column (1-based)
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
		l.pos = l.readPos
	} else {
		r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
		l.ch = r
		l.pos = l.readPos
		l.readPos += size
	}
	l.col++
}

// position returns the current position.
func (l *Lexer) position() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.col,
	}
}

// NextToken returns the next token, or a TokenEOF token at end of input.
// An unexpected character returns a LexError.
func (l *Lexer) NextToken() (Token, error) {
	state := stateStart
	var start Position
	startOffset := 0

	for {
		switch state {
		case stateStart:
			switch {
			case l.ch == 0:
				return Token{Type: TokenEOF, Pos: l.position()}, nil

			case isSpace(l.ch):
				l.readChar()

			case isDigit(l.ch):
				start = l.position()
				startOffset = l.pos
				state = stateNumber
				l.readChar()

			case l.ch == '+' || l.ch == '-' || l.ch == '*':
				tok := Token{Type: TokenOperator, Literal: string(l.ch), Pos: l.position()}
				l.readChar()
				return tok, nil

			case l.ch == '/':
				start = l.position()
				state = stateMaybeComment
				l.readChar()

			default:
				return Token{}, &LexError{Pos: l.position(), Ch: l.ch}
			}

		case stateNumber:
			if isDigit(l.ch) {
				l.readChar()
				continue
			}
			// The token ends at the first non-digit. End of input flushes
			// the pending number the same way.
			return Token{Type: TokenNumber, Literal: l.input[startOffset:l.pos], Pos: start}, nil

		case stateMaybeComment:
			if l.ch == '/' {
				l.readChar()
				state = stateComment
				continue
			}
			// A lone '/' is a complete operator token.
			return Token{Type: TokenOperator, Literal: "/", Pos: start}, nil

		case stateComment:
			switch l.ch {
			case 0:
				// End of input inside a comment terminates cleanly.
				return Token{Type: TokenEOF, Pos: l.position()}, nil
			case '\n':
				l.readChar()
				state = stateStart
			default:
				l.readChar()
			}
		}
	}
}

// Tokenize returns all tokens from the input, excluding the trailing EOF.
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == TokenEOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// Helper functions

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
