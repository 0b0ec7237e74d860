package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// Seams over the terminal so prompts can be driven from tests.
var (
	isTerminal   = term.IsTerminal
	readPassword = term.ReadPassword
)

// Prompter reads credentials either from an interactive terminal or from piped input.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

// NewPrompter reads lines from in and writes prompts to out. fd is the descriptor
// behind in, used to switch off echo for passwords when it is a terminal.
func NewPrompter(in io.Reader, fd int, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, fd: fd}
}

// Line prints prompt and returns one trimmed line. A final line without a newline is accepted.
func (p *Prompter) Line(prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, prompt+": "); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Password reads a password without echo on a terminal; otherwise it takes the next
// line verbatim, dropping only the line terminator.
func (p *Prompter) Password(prompt string) (string, error) {
	if !isTerminal(p.fd) {
		line, err := p.in.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	if _, err := fmt.Fprint(p.out, prompt+": "); err != nil {
		return "", err
	}
	pw, err := readPassword(p.fd)
	_, _ = fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
