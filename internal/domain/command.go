package domain

import "strings"

// BadRequestNotice is rendered locally when a line of input cannot be sent.
const BadRequestNotice = "400 Bad Request\n"

// Command is one parsed line of user input.
// HasArgs distinguishes "get" from "get " (the latter carries empty arguments).
type Command struct {
	// Name is everything before the first space.
	Name string

	// Args is everything after the first space, verbatim.
	Args string

	// HasArgs reports whether the line contained a space at all.
	HasArgs bool
}

// ParseCommand splits a line at its first space.
// An empty line returns ErrInvalidInput.
func ParseCommand(line string) (Command, error) {
	if line == "" {
		return Command{}, ErrInvalidInput
	}
	name, args, found := strings.Cut(line, " ")
	if !found {
		return Command{Name: line}, nil
	}
	return Command{Name: name, Args: args, HasArgs: true}, nil
}

// Message reassembles the command into the request line sent to the server.
// Every part is followed by a space, then the separator after the last part
// is dropped and exactly one newline is appended. Arguments keep any
// trailing spaces the user typed.
func (c Command) Message() string {
	msg := c.Name + " "
	if c.HasArgs {
		msg += c.Args + " "
	}
	return strings.TrimSuffix(msg, " ") + "\n"
}
