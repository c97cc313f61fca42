// Package cli adapts a terminal (or any line-oriented stream) to the
// session's CommandSource and Renderer ports.
package cli

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/bft-labs/drivecli/internal/domain"
	"github.com/bft-labs/drivecli/internal/ports"
)

// Console reads commands from in and renders responses to out.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole creates a Console over the given streams.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// ReadCommand reads one line and splits it at the first space.
// A final line without a newline is still returned; io.EOF is returned
// only when no input remains.
func (c *Console) ReadCommand() (domain.Command, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || line == "" {
			return domain.Command{}, err
		}
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return domain.ParseCommand(line)
}

// Render writes output exactly as given.
func (c *Console) Render(output string) error {
	_, err := io.WriteString(c.out, output)
	return err
}

var (
	_ ports.CommandSource = (*Console)(nil)
	_ ports.Renderer      = (*Console)(nil)
)
