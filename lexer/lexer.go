package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"monkey/token"

	"fortio.org/log"
)

// The lexer hands out tokens one at a time on demand. Once the input is used up it
// keeps on returning EOF, so the parser can look ahead past the end without worrying.
type Lexer struct {
	reader strings.Reader
	ch     rune   // current rune under examination
	raw    string // the bytes ch was read from, which differ from ch for invalid UTF-8
	eof    bool
}

func New(input string) *Lexer {
	l := &Lexer{reader: *strings.NewReader(input)}
	l.readChar()
	return l
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	if l.eof {
		tok = newToken(token.EOF, "")
		log.LogVf("lexer: %v", tok)
		return tok
	}

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = newToken(token.EQ, "==")
		} else {
			tok = newToken(token.ASSIGN, "=")
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = newToken(token.NOT_EQ, "!=")
		} else {
			tok = newToken(token.BANG, "!")
		}
	case '+':
		tok = newToken(token.PLUS, "+")
	case '-':
		tok = newToken(token.MINUS, "-")
	case '*':
		tok = newToken(token.ASTERISK, "*")
	case '/':
		tok = newToken(token.SLASH, "/")
	case '<':
		tok = newToken(token.LT, "<")
	case '>':
		tok = newToken(token.GT, ">")
	case ';':
		tok = newToken(token.SEMICOLON, ";")
	case ':':
		tok = newToken(token.COLON, ":")
	case ',':
		tok = newToken(token.COMMA, ",")
	case '{':
		tok = newToken(token.LBRACE, "{")
	case '}':
		tok = newToken(token.RBRACE, "}")
	case '(':
		tok = newToken(token.LPAREN, "(")
	case ')':
		tok = newToken(token.RPAREN, ")")
	case '[':
		tok = newToken(token.LBRACK, "[")
	case ']':
		tok = newToken(token.RBRACK, "]")
	case '"':
		tok = newToken(token.STRING, l.readString())
	default:
		if isLetter(l.ch) {
			literal := l.readIdentifier()
			tok = newToken(token.LookupIdent(literal), literal)
			log.LogVf("lexer: %v", tok)
			return tok
		}
		if isDigit(l.ch) {
			// Whether it fits in an int64 is the parser's problem.
			tok = newToken(token.INT, l.readNumber())
			log.LogVf("lexer: %v", tok)
			return tok
		}
		tok = newToken(token.ILLEGAL, l.raw)
	}
	l.readChar()
	log.LogVf("lexer: %v", tok)
	return tok
}

func (l *Lexer) skipWhitespace() {
	for !l.eof && (l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r') {
		l.readChar()
	}
}

// At the end of the input ch is 0, but so is a NUL in the input: only eof says which.
func (l *Lexer) readChar() {
	if l.reader.Len() == 0 {
		l.ch, l.raw, l.eof = 0, "", true
		return
	}
	start := l.reader.Size() - int64(l.reader.Len())
	ch, size, _ := l.reader.ReadRune()
	l.ch = ch
	if ch == utf8.RuneError && size == 1 {
		var b [1]byte
		l.reader.ReadAt(b[:], start)
		l.raw = string(b[:])
	} else {
		l.raw = string(ch)
	}
}

func (l *Lexer) peekChar() rune {
	if l.reader.Len() == 0 {
		return 0
	}
	ru, _, _ := l.reader.ReadRune()
	l.reader.UnreadRune()
	return ru
}

// Reads from after the opening quote up to the closing quote, leaving l.ch on the
// closing quote. There are no escape sequences, and a string with no closing quote
// simply runs to the end of the input.
func (l *Lexer) readString() string {
	var result strings.Builder
	for {
		l.readChar()
		if l.eof || l.ch == '"' {
			break
		}
		result.WriteString(l.raw)
	}
	return result.String()
}

func (l *Lexer) readIdentifier() string {
	var result strings.Builder
	for isLetter(l.ch) {
		result.WriteRune(l.ch)
		l.readChar()
	}
	return result.String()
}

func (l *Lexer) readNumber() string {
	var result strings.Builder
	for isDigit(l.ch) {
		result.WriteRune(l.ch)
		l.readChar()
	}
	return result.String()
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func newToken(tokenType token.TokenType, literal string) token.Token {
	return token.Token{Type: tokenType, Literal: literal}
}
