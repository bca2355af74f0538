package client

import (
	"io"
	"os"

	"golang.org/x/term"
)

// colorEnabled decides whether output to w is colored.
// Priority: 1. --no-color, 2. output.color always/never, 3. NO_COLOR, 4. TTY and TERM.
func colorEnabled(mode string, noColorFlag bool, w io.Writer) bool {
	if noColorFlag {
		return false
	}
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTerminal(w)
}

// isTerminal reports whether v is an *os.File attached to a terminal
func isTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
