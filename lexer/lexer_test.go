package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skx/subc/token"
)

func TestNumbers(t *testing.T) {
	l := New("3 43 100")

	tests := []struct {
		typ token.Type
		lit string
	}{
		{token.INT, "3"},
		{token.INT, "43"},
		{token.INT, "100"},
		{token.EOF, ""},
	}

	for i, tt := range tests {
		tok := l.NextToken()
		assert.Equal(t, tt.typ, tok.Type, "test %d", i)
		assert.Equal(t, tt.lit, tok.Literal, "test %d", i)
	}
}

func TestOperatorsAndPunctuation(t *testing.T) {
	input := "+ - * / % = == != < > <= >= && || ! ~ & | ^ << >> ? : ; , ( ) { }"

	expected := []token.Type{
		token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT,
		token.ASSIGN, token.EQ, token.NOT_EQ, token.LT, token.GT, token.LT_EQ,
		token.GT_EQ, token.AND, token.OR, token.NOT, token.BIT_NOT,
		token.BIT_AND, token.BIT_OR, token.BIT_XOR, token.SHL, token.SHR,
		token.QUESTION, token.COLON, token.SEMI, token.COMMA, token.LPAREN,
		token.RPAREN, token.LBRACE, token.RBRACE, token.EOF,
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		assert.Equal(t, want, tok.Type, "token %d", i)
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	input := "return if else while do for break continue int foo _bar baz2"

	expected := []token.Type{
		token.RETURN, token.IF, token.ELSE, token.WHILE, token.DO, token.FOR,
		token.BREAK, token.CONTINUE, token.INTTYPE,
		token.IDENT, token.IDENT, token.IDENT,
		token.EOF,
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		assert.Equal(t, want, tok.Type, "token %d", i)
	}
}

func TestUnrecognisedCharacter(t *testing.T) {
	l := New("1 @ 2")

	assert.Equal(t, token.INT, l.NextToken().Type)

	tok := l.NextToken()
	assert.Equal(t, token.ERROR, tok.Type)
}

func TestFullProgram(t *testing.T) {
	input := `
int main() {
	int x;
	x = 4;
	return x + 1;
}
`
	l := New(input)
	var types []token.Type
	for {
		tok := l.NextToken()
		types = append(types, tok.Type)
		if tok.Type == token.EOF {
			break
		}
	}

	assert.Equal(t, token.Type(token.INTTYPE), types[0])
	assert.Equal(t, token.Type(token.IDENT), types[1])
	assert.Equal(t, token.Type(token.LPAREN), types[2])
	assert.Equal(t, token.Type(token.RPAREN), types[3])
	assert.Equal(t, token.Type(token.LBRACE), types[4])
	assert.Equal(t, token.Type(token.EOF), types[len(types)-1])
}
