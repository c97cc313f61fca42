package ports

import "github.com/bft-labs/drivecli/internal/domain"

// CommandSource yields parsed user commands, one per input line.
type CommandSource interface {
	// ReadCommand returns domain.ErrInvalidInput for an empty line and
	// io.EOF once the input is exhausted.
	ReadCommand() (domain.Command, error)
}

// Renderer displays server output verbatim.
type Renderer interface {
	Render(output string) error
}
