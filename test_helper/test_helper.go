package test_helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Auxiliary types and functions for testing the parser and evaluator.

type TestItem struct {
	Input string
	Want  string
}

// Runs F on each input and checks that it produces the wanted string without error.
func RunTest(t *testing.T, tests []TestItem, F func(s string) (string, error)) {
	t.Helper()
	for _, test := range tests {
		got, e := F(test.Input)
		if !assert.NoError(t, e, "input %q", test.Input) {
			continue
		}
		assert.Equal(t, test.Want, got, "input %q", test.Input)
	}
}

// Runs F on each input and checks that it fails with the wanted error message.
func RunFailTest(t *testing.T, tests []TestItem, F func(s string) (string, error)) {
	t.Helper()
	for _, test := range tests {
		_, e := F(test.Input)
		if assert.Error(t, e, "input %q", test.Input) {
			assert.Equal(t, test.Want, e.Error(), "input %q", test.Input)
		}
	}
}
