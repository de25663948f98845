package report

import (
	"fmt"

	"monkey/token"
)

// A map from error identifiers to functions that supply the corresponding error messages and explanations.
//
// Errors in the map are in alphabetical order of their identifers.
//
// Two otherwise identical errors thrown in different places in the Go code must be assigned
// different identifiers, if only by suffixing /a, /b, etc to the identifier.

var ErrorCreatorMap = map[string]ErrorCreator{

	// TEMPLATE
	"": {
		Message: func(tok token.Token, args ...any) string {
			return ""
		},
		Explanation: func(tok token.Token, args ...any) string {
			return ""
		},
	},

	"parse/expect": {
		Message: func(tok token.Token, args ...any) string {
			return fmt.Sprintf("expected next token to be %s, got %s instead", args[0], tok.Type)
		},
		Explanation: func(tok token.Token, args ...any) string {
			return fmt.Sprintf("At this point in the code the parser needed to see %s to make sense of "+
				"what came before, but found %s. This usually means a bracket, an identifier or "+
				"an '=' has been left out or mistyped.", describeType(args[0].(token.TokenType)), describeTok(tok))
		},
	},

	"parse/int": {
		Message: func(tok token.Token, args ...any) string {
			return fmt.Sprintf("could not parse %q as integer", tok.Literal)
		},
		Explanation: func(tok token.Token, args ...any) string {
			return "Integers are 64-bit signed numbers, so the largest literal you can write is " +
				"9223372036854775807. The literal " + tok.Literal + " is too big to fit."
		},
	},

	"parse/prefix": {
		Message: func(tok token.Token, args ...any) string {
			return fmt.Sprintf("no prefix parse function for %s found", tok.Type)
		},
		Explanation: func(tok token.Token, args ...any) string {
			if tok.Type == token.ILLEGAL {
				return fmt.Sprintf("The character %q isn't part of the language at all, so the "+
					"lexer couldn't turn it into anything the parser understands.", tok.Literal)
			}
			if tok.Type == token.EOF {
				return "The input ended in the middle of an expression: something was expected " +
					"after the last thing you wrote."
			}
			return fmt.Sprintf("An expression can't begin with %s. Perhaps an operand has been "+
				"left out before it, or there is a stray delimiter.", describeTok(tok))
		},
	},
}

func describeTok(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "the end of the input"
	case token.IDENT:
		return "the identifier '" + tok.Literal + "'"
	case token.INT:
		return "the integer " + tok.Literal
	case token.STRING:
		return "a string"
	}
	return "'" + tok.Literal + "'"
}

func describeType(t token.TokenType) string {
	switch t {
	case token.IDENT:
		return "an identifier"
	case token.EOF:
		return "the end of the input"
	}
	return "'" + string(t) + "'"
}
