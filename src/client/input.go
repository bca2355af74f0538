package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/apimgr/cityweather/src/weather"
)

// promptCity runs the interactive prompt; tests replace it
var promptCity = runCityPrompt

// GetCity returns the city from positional args, joined with spaces so that
// unquoted multi-word names work. Without args it prompts: the interactive
// prompt on a terminal, a plain line read from in otherwise. Empty or
// whitespace-only input fails with *weather.InvalidInputError.
func GetCity(args []string, in io.Reader, out io.Writer, interactive bool) (string, error) {
	if len(args) > 0 {
		return weather.NormalizeCity(strings.Join(args, " "))
	}

	var raw string
	var err error
	if interactive {
		raw, err = promptCity(in, out)
	} else {
		raw, err = readLine(in, out)
	}
	if err != nil {
		return "", err
	}
	return weather.NormalizeCity(raw)
}

// readLine prints a prompt and reads one line. EOF counts as end of line.
func readLine(in io.Reader, out io.Writer) (string, error) {
	if in == nil {
		return "", nil
	}
	fmt.Fprint(out, "City: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read city: %w", err)
	}
	return line, nil
}
