package text

import (
	"strings"
)

const (
	VERSION = "0.1"
	BULLET  = " ▪ "
	PROMPT  = "→ "

	INDENT_PROMPT = "… "
)

const USAGE = `Usage:
  monkey              start the REPL
  monkey FILE         run FILE
  monkey -e SOURCE    evaluate SOURCE and print the result
  monkey -h, --help   show this message
  monkey -v, --version
`

const HELP = `Type Monkey code to evaluate it. Unclosed brackets carry on to the next line.

Commands:
  :help        show this message
  :quit        leave the REPL
  :why         explain the last syntax error
  :env         list the top-level bindings
  :reset       forget all the top-level bindings
  :load FILE   run FILE in this session
`

func Emph(s string) string {
	return CYAN + "'" + s + "'" + RESET
}

func Red(s string) string {
	return RED + s + RESET
}

func Green(s string) string {
	return GREEN + s + RESET
}

func Logo() string {
	var padding string
	if len(VERSION)%2 == 0 {
		padding = ","
	}
	titleText := " Monkey" + padding + " version " + VERSION + " "
	heart := Red("♥")
	leftMargin := "  "
	bar := strings.Repeat("═", len(titleText)/2)
	logoString := "\n" +
		leftMargin + "╔" + bar + heart + bar + "╗\n" +
		leftMargin + "║" + titleText + "║\n" +
		leftMargin + "╚" + bar + heart + bar + "╝\n\n"
	return logoString
}

// Bulleted turns a list of names into an indented column.
func Bulleted(items []string) string {
	var out strings.Builder
	for _, item := range items {
		out.WriteString(BULLET + item + "\n")
	}
	return out.String()
}

var (
	RESET = "\033[0m"
	RED   = "\033[31m"
	GREEN = "\033[32m"
	CYAN  = "\033[36m"
	GRAY  = "\033[37m"
	ERROR = Red("error") + ": "
	OK    = Green("ok")
)

// SetColor switches the escape codes on or off, for terminals and pipes that don't want them.
func SetColor(on bool) {
	if on {
		RESET, RED, GREEN = "\033[0m", "\033[31m", "\033[32m"
		CYAN, GRAY = "\033[36m", "\033[37m"
	} else {
		RESET, RED, GREEN, CYAN, GRAY = "", "", "", "", ""
	}
	ERROR = Red("error") + ": "
	OK = Green("ok")
}
