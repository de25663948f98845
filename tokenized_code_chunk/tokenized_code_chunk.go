package tokenized_code_chunk

import (
	"fmt"
	"strings"

	"monkey/lexer"
	"monkey/stack"
	"monkey/token"
)

// A TokenizedCodeChunk is a lexed piece of code which can be looked at as a whole before it is
// handed out a token at a time: the hub shows the tokens to the user and counts unclosed
// brackets, and the parser reads the same chunk through NextToken.
type TokenizedCodeChunk struct {
	position int
	code     []token.Token
}

func New() *TokenizedCodeChunk {
	tcc := &TokenizedCodeChunk{
		position: -1,
		code:     []token.Token{},
	}
	return tcc
}

// Lex runs the lexer over the input to the end. The EOF token isn't stored.
func Lex(input string) *TokenizedCodeChunk {
	tcc := New()
	l := lexer.New(input)
	for tok := l.NextToken(); tok.Type != token.EOF; tok = l.NextToken() {
		tcc.Append(tok)
	}
	return tcc
}

func (tcc *TokenizedCodeChunk) Append(tokenToAppend token.Token) {
	tcc.code = append(tcc.code, tokenToAppend)
}

// Like the lexer, the chunk keeps returning EOF once it has run out.
func (tcc *TokenizedCodeChunk) NextToken() token.Token {
	if tcc.position+1 < len(tcc.code) {
		tcc.position++
		return tcc.code[tcc.position]
	}
	tcc.position = len(tcc.code)
	return token.Token{Type: token.EOF, Literal: ""}
}

// Unclosed says how many brackets are still waiting to be closed at the end of the chunk. A
// closing bracket that doesn't match the last one opened makes it return -1, since no amount
// of further input will fix that.
func (tcc *TokenizedCodeChunk) Unclosed() int {
	expected := stack.NewStack[token.TokenType]()
	for _, tok := range tcc.code {
		if closer, ok := token.Closer(tok.Type); ok {
			expected.Push(closer)
			continue
		}
		switch tok.Type {
		case token.RPAREN, token.RBRACE, token.RBRACK:
			head, ok := expected.HeadValue()
			if !ok || head != tok.Type {
				return -1
			}
			expected.Pop()
		}
	}
	return expected.Len()
}

// One token per line, for the hub to show what the lexer is doing.
func (tcc *TokenizedCodeChunk) String() string {
	var out strings.Builder
	for _, tok := range tcc.code {
		fmt.Fprintf(&out, "%-8s %q\n", tok.Type, tok.Literal)
	}
	return out.String()
}
