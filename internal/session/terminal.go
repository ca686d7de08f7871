package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const clearScreen = "\033[H\033[2J"

// TerminalPort reads answers from a line reader and writes to out.
type TerminalPort struct {
	in     *bufio.Reader
	out    io.Writer
	prompt *color.Color
	tty    bool
}

// NewTerminalPort creates a port. tty enables color and screen clearing.
func NewTerminalPort(in io.Reader, out io.Writer, tty bool) *TerminalPort {
	prompt := color.New(color.FgCyan, color.Bold)
	if !tty {
		prompt.DisableColor()
	}
	return &TerminalPort{in: bufio.NewReader(in), out: out, prompt: prompt, tty: tty}
}

func (p *TerminalPort) ReadLine(prompt string) (string, error) {
	_, _ = p.prompt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *TerminalPort) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

func (p *TerminalPort) Clear() {
	if p.tty {
		fmt.Fprint(p.out, clearScreen)
	}
}
