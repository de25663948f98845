//
// Monkey version 0.1
//
// A tree-walking interpreter for the Monkey language: a lexer, a Pratt parser, and an evaluator
// in which runtime errors are values.
//

package main

import (
	"fmt"
	"io"
	"os"

	"monkey/evaluator"
	"monkey/hub"
	"monkey/object"
	"monkey/parser"
	"monkey/repl"
	"monkey/settings"
	"monkey/text"

	"fortio.org/log"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run does everything but exit, and returns the exit status.
func run(args []string, stdout, stderr io.Writer) int {
	s, err := settings.Load()
	if err != nil {
		log.Errf("Can't load settings: %v", err)
		return 1
	}
	s.Apply()
	text.SetColor(s.Color)
	evaluator.Out = stdout

	switch {
	case len(args) == 0:
		fmt.Fprint(stdout, text.Logo())
		repl.Start(hub.New(stdout, s))
		return 0

	case args[0] == "-h" || args[0] == "--help":
		fmt.Fprint(stdout, text.USAGE)
		return 0

	case args[0] == "-v" || args[0] == "--version":
		fmt.Fprintln(stdout, "monkey version "+text.VERSION)
		return 0

	case args[0] == "-e":
		if len(args) != 2 {
			fmt.Fprint(stderr, text.ERROR+"the "+text.Emph("-e")+" flag takes exactly one argument\n\n"+text.USAGE)
			return 2
		}
		return evaluate(args[1], stdout, stderr, true)

	case len(args) == 1:
		source, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintln(stderr, text.ERROR+err.Error())
			return 1
		}
		log.LogVf("main: running %s", args[0])
		return evaluate(string(source), stdout, stderr, false)

	default:
		fmt.Fprint(stderr, text.ERROR+"too many arguments\n\n"+text.USAGE)
		return 2
	}
}

// evaluate runs source in a fresh environment. Errors of either kind go to stderr and make the
// exit status 1; otherwise the result is printed only if asked for.
func evaluate(source string, stdout, stderr io.Writer, printResult bool) int {
	program, err := parser.Parse(source)
	if err != nil {
		fmt.Fprintln(stderr, text.ERROR+err.Error())
		return 1
	}
	result := evaluator.Eval(program, object.NewEnvironment())
	if _, ok := result.(*object.Error); ok {
		fmt.Fprintln(stderr, text.Red(result.Inspect()))
		return 1
	}
	if printResult {
		fmt.Fprintln(stdout, result.Inspect())
	}
	return 0
}
