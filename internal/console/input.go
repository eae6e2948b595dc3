package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// prompt prints a label and reads a single trimmed line of input.
// If EOF occurs after some input was read, the partial line is returned.
func (a *App) prompt(label string) (string, error) {
	if _, err := fmt.Fprint(a.out, label); err != nil {
		return "", err
	}
	return readLine(a.reader)
}

// promptSecret reads a secret without echo when stdin is a terminal, and
// falls back to a plain line read otherwise (piped input, tests).
func (a *App) promptSecret(label string) (string, error) {
	if _, err := fmt.Fprint(a.out, label); err != nil {
		return "", err
	}

	fd := int(os.Stdin.Fd())
	if a.interactive && term.IsTerminal(fd) {
		secret, err := readPassword(fd)
		fmt.Fprintln(a.out)
		if err != nil {
			return "", err
		}
		return string(secret), nil
	}
	return readLine(a.reader)
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
