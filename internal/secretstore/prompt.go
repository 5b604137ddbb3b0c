package secretstore

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNotTerminal is returned when stdin is not an interactive terminal.
var ErrNotTerminal = errors.New("stdin is not a terminal")

// TerminalPrompter reads secrets from the controlling terminal without echo.
type TerminalPrompter struct {
	In  *os.File
	Out io.Writer
}

// NewTerminalPrompter prompts on stderr and reads from stdin.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{In: os.Stdin, Out: os.Stderr}
}

// Prompt prints message and reads one line of hidden input.
func (p *TerminalPrompter) Prompt(message string) (string, error) {
	fd := int(p.In.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrNotTerminal
	}

	_, _ = fmt.Fprintf(p.Out, "%s: ", message)
	secret, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(p.Out)
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	return string(secret), nil
}
