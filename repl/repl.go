package repl

import (
	"strings"

	"monkey/hub"
	"monkey/text"

	"github.com/lmorg/readline"
)

// What the REPL needs from a line editor. *readline.Instance is one.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
}

func Start(hb *hub.Hub) {
	Run(hb, readline.NewInstance())
}

// Run reads input until the hub is told to quit or the reader gives up, e.g. on Ctrl-D. Lines
// are gathered up until their brackets balance and then handed to the hub all together.
func Run(hb *hub.Hub, rline LineReader) {
	for {
		input := ""
		for {
			rline.SetPrompt(makePrompt(hb, input != ""))
			line, err := rline.Readline()
			if err != nil {
				hb.WriteString("\n")
				return
			}
			input = input + line + "\n"
			if !hub.NeedsMore(input) {
				break
			}
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if hb.Do(input) {
			return
		}
	}
}

func makePrompt(hb *hub.Hub, continuing bool) string {
	prompt := hb.Settings().Prompt
	if continuing {
		return strings.Repeat(" ", max(len([]rune(prompt))-len([]rune(text.INDENT_PROMPT)), 0)) + text.INDENT_PROMPT
	}
	return prompt
}
