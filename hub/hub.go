package hub

import (
	"errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"monkey/evaluator"
	"monkey/object"
	"monkey/parser"
	"monkey/report"
	"monkey/settings"
	"monkey/text"
	"monkey/tokenized_code_chunk"

	"fortio.org/log"
)

var MARGIN = 80

// The hub is the REPL minus the terminal: it owns the root environment, which persists from
// one line of input to the next, and it knows about the commands beginning with ':'. Everything
// it has to say goes to out.
type Hub struct {
	env      *object.Environment
	settings *settings.Settings
	out      io.Writer
	lastErr  error // the last syntax error, for ':why'
}

func New(out io.Writer, s *settings.Settings) *Hub {
	if s == nil {
		s = settings.Default()
	}
	evaluator.Out = out
	return &Hub{env: object.NewEnvironment(), settings: s, out: out}
}

func (hub *Hub) Settings() *settings.Settings { return hub.settings }

func (hub *Hub) Env() *object.Environment { return hub.env }

// Do takes a complete piece of input from the REPL and returns true if the user wants to quit,
// since the hub can't quit from the REPL itself.
func (hub *Hub) Do(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, ":") {
		return hub.DoCommand(strings.Fields(line[1:]))
	}
	hub.Run(line)
	return false
}

// Run parses and evaluates the source in the hub's environment and writes out the result. It
// returns false if there was a syntax error or the result was an error value.
func (hub *Hub) Run(source string) bool {
	chunk := tokenized_code_chunk.Lex(source)
	if hub.settings.ShowLexer {
		hub.WriteString(chunk.String())
	}

	program, err := parser.New(chunk).ParseProgram()
	if err != nil {
		hub.lastErr = err
		log.LogVf("hub: syntax error: %v", err)
		hub.WriteString(text.ERROR + err.Error() + "\n")
		return false
	}
	if hub.settings.ShowParser {
		hub.WriteString(text.GRAY + program.String() + text.RESET + "\n")
	}

	result := evaluator.Eval(program, hub.env)
	if _, ok := result.(*object.Error); ok {
		hub.WriteString(text.Red(result.Inspect()) + "\n")
		return false
	}
	hub.WriteString(result.Inspect() + "\n")
	return true
}

// DoCommand is handed the words after the ':'. Like Do, it returns true only for ':quit'.
func (hub *Hub) DoCommand(words []string) bool {
	if len(words) == 0 {
		hub.WriteString(text.ERROR + "missing command after " + text.Emph(":") + ", try " + text.Emph(":help") + "\n")
		return false
	}
	verb, args := words[0], words[1:]
	if verb != "load" && len(args) > 0 {
		hub.WriteString(text.ERROR + "the " + text.Emph(":"+verb) + " command takes no parameters\n")
		return false
	}

	// Verbs are in alphabetical order :
	// env, help, load, quit, reset, why

	switch verb {
	case "env":
		names := hub.env.Names()
		if len(names) == 0 {
			hub.WriteString("There are no bindings.\n")
			return false
		}
		for _, name := range names {
			val, _ := hub.env.Get(name)
			hub.WriteString(text.BULLET + name + " = " + val.Inspect() + "\n")
		}

	case "help":
		hub.WriteString(text.HELP)
		hub.WriteString("\nBuiltin functions:\n")
		hub.WriteString(text.Bulleted(evaluator.BuiltinNames()))

	case "load":
		if len(args) != 1 {
			hub.WriteString(text.ERROR + "the " + text.Emph(":load") + " command takes a filename as its one parameter\n")
			return false
		}
		hub.Load(args[0])

	case "quit":
		hub.quit()
		return true

	case "reset":
		hub.env = object.NewEnvironment()
		hub.lastErr = nil
		log.S(log.Info, "hub: environment reset")
		hub.WriteString(text.OK + "\n")

	case "why":
		explanation, ok := report.Explain(hub.lastErr)
		if !ok {
			hub.WriteString(text.ERROR + "there is no syntax error to explain\n")
			return false
		}
		hub.WritePretty(explanation)

	default:
		hub.WriteString(text.ERROR + "the hub doesn't know the command " + text.Emph(":"+verb) +
			", try " + text.Emph(":help") + "\n")
	}
	return false
}

// Load runs a file in the hub's environment, so whatever it binds at the top level is
// available afterwards.
func (hub *Hub) Load(path string) bool {
	source, err := os.ReadFile(path)
	if err != nil {
		hub.WriteString(text.ERROR + "can't load " + text.Emph(path) + ": " + unwrapPathError(err).Error() + "\n")
		return false
	}
	log.S(log.Info, "hub: loading file", log.Str("path", path))
	return hub.Run(string(source))
}

func unwrapPathError(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}

func (hub *Hub) quit() {
	hub.WriteString(text.OK + "\n" + "\nThank you for using Monkey. Have a nice day!\n\n")
}

// NeedsMore says whether the input so far has brackets that are still waiting to be closed, in
// which case the REPL should ask for another line rather than hand it to the hub. A closing
// bracket of the wrong sort means the input is as finished as it will ever be and the parser
// can complain about it.
func NeedsMore(input string) bool {
	if strings.HasPrefix(strings.TrimSpace(input), ":") {
		return false
	}
	return tokenized_code_chunk.Lex(input).Unclosed() > 0
}

// WritePretty wraps each paragraph of s at MARGIN characters, breaking only between words.
func (hub *Hub) WritePretty(s string) {
	for _, para := range strings.Split(s, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			if line != "" && utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) > MARGIN {
				hub.WriteString(line + "\n")
				line = ""
			}
			if line != "" {
				line += " "
			}
			line += word
		}
		hub.WriteString(line + "\n")
	}
}

func (hub *Hub) WriteString(s string) {
	io.WriteString(hub.out, s)
}
