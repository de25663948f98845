package report

import (
	"errors"

	"monkey/token"
)

type ErrorCreator struct {
	Message     func(tok token.Token, args ...any) string
	Explanation func(tok token.Token, args ...any) string
}

// A parse-time failure. Runtime failures are not reported this way: they are values in
// the object system.
type Error struct {
	ErrorId string
	Message string
	Token   token.Token
	Args    []any
}

func (e *Error) Error() string { return e.Message }

func CreateErr(errorID string, tok token.Token, args ...any) *Error {
	creator, ok := ErrorCreatorMap[errorID]
	if !ok {
		panic("unknown error id " + errorID)
	}
	return &Error{ErrorId: errorID, Message: creator.Message(tok, args...), Token: tok, Args: args}
}

// Gives the long-form explanation of an error, if it is one of ours.
func Explain(err error) (string, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return "", false
	}
	return ErrorCreatorMap[e.ErrorId].Explanation(e.Token, e.Args...), true
}
