// Package lexer turns a source program into a sequence of tokens.
package lexer

import (
	"github.com/skx/subc/token"
)

// Lexer holds our object-state.
type Lexer struct {
	position     int    //current character position
	readPosition int    //next character position
	ch           rune   //current character
	characters   []rune //rune slice of input string
}

// New creates a Lexer instance from string input.
func New(input string) *Lexer {
	l := &Lexer{characters: []rune(input)}
	l.readChar()
	return l
}

// read one forward character
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.characters) {
		l.ch = rune(0)
	} else {
		l.ch = l.characters[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

// NextToken reads and returns the next token, skipping whitespace.
func (l *Lexer) NextToken() token.Token {
	var tok token.Token
	l.skipWhitespace()

	switch l.ch {
	case rune(';'):
		tok = newToken(token.SEMI, l.ch)
	case rune(','):
		tok = newToken(token.COMMA, l.ch)
	case rune('('):
		tok = newToken(token.LPAREN, l.ch)
	case rune(')'):
		tok = newToken(token.RPAREN, l.ch)
	case rune('{'):
		tok = newToken(token.LBRACE, l.ch)
	case rune('}'):
		tok = newToken(token.RBRACE, l.ch)
	case rune('+'):
		tok = newToken(token.PLUS, l.ch)
	case rune('-'):
		tok = newToken(token.MINUS, l.ch)
	case rune('*'):
		tok = newToken(token.ASTERISK, l.ch)
	case rune('/'):
		tok = newToken(token.SLASH, l.ch)
	case rune('%'):
		tok = newToken(token.PERCENT, l.ch)
	case rune('~'):
		tok = newToken(token.BIT_NOT, l.ch)
	case rune('?'):
		tok = newToken(token.QUESTION, l.ch)
	case rune(':'):
		tok = newToken(token.COLON, l.ch)
	case rune('='):
		if l.peekChar() == rune('=') {
			l.readChar()
			tok = token.Token{Type: token.EQ, Literal: "=="}
		} else {
			tok = newToken(token.ASSIGN, l.ch)
		}
	case rune('!'):
		if l.peekChar() == rune('=') {
			l.readChar()
			tok = token.Token{Type: token.NOT_EQ, Literal: "!="}
		} else {
			tok = newToken(token.NOT, l.ch)
		}
	case rune('<'):
		if l.peekChar() == rune('=') {
			l.readChar()
			tok = token.Token{Type: token.LT_EQ, Literal: "<="}
		} else if l.peekChar() == rune('<') {
			l.readChar()
			tok = token.Token{Type: token.SHL, Literal: "<<"}
		} else {
			tok = newToken(token.LT, l.ch)
		}
	case rune('>'):
		if l.peekChar() == rune('=') {
			l.readChar()
			tok = token.Token{Type: token.GT_EQ, Literal: ">="}
		} else if l.peekChar() == rune('>') {
			l.readChar()
			tok = token.Token{Type: token.SHR, Literal: ">>"}
		} else {
			tok = newToken(token.GT, l.ch)
		}
	case rune('&'):
		if l.peekChar() == rune('&') {
			l.readChar()
			tok = token.Token{Type: token.AND, Literal: "&&"}
		} else {
			tok = newToken(token.BIT_AND, l.ch)
		}
	case rune('|'):
		if l.peekChar() == rune('|') {
			l.readChar()
			tok = token.Token{Type: token.OR, Literal: "||"}
		} else {
			tok = newToken(token.BIT_OR, l.ch)
		}
	case rune('^'):
		tok = newToken(token.BIT_XOR, l.ch)
	case rune(0):
		tok.Literal = ""
		tok.Type = token.EOF
	default:
		if isDigit(l.ch) {
			return l.readNumber()
		}
		if isLetter(l.ch) {
			lit := l.readIdentifier()
			tok.Literal = lit
			tok.Type = token.LookupIdentifier(lit)
			return tok
		}

		tok.Type = token.ERROR
		tok.Literal = "unrecognised character: " + string(l.ch)
	}
	l.readChar()
	return tok
}

// newToken builds a single-character token.
func newToken(tokenType token.Type, ch rune) token.Token {
	return token.Token{Type: tokenType, Literal: string(ch)}
}

// skipWhitespace consumes ASCII whitespace.
func (l *Lexer) skipWhitespace() {
	for isWhitespace(l.ch) {
		l.readChar()
	}
}

// readNumber reads a sequence of decimal digits as an INT token.
func (l *Lexer) readNumber() token.Token {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	return token.Token{Type: token.INT, Literal: string(l.characters[start:l.position])}
}

// readIdentifier reads a leading letter/underscore followed by
// letters, digits, or underscores.
func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return string(l.characters[start:l.position])
}

// peekChar returns the next character without consuming it.
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.characters) {
		return rune(0)
	}
	return l.characters[l.readPosition]
}

func isWhitespace(ch rune) bool {
	return ch == rune(' ') || ch == rune('\t') || ch == rune('\n') || ch == rune('\r')
}

func isDigit(ch rune) bool {
	return rune('0') <= ch && ch <= rune('9')
}

func isLetter(ch rune) bool {
	return ch == rune('_') || (rune('a') <= ch && ch <= rune('z')) || (rune('A') <= ch && ch <= rune('Z'))
}
