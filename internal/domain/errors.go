package domain

import "errors"

// Domain errors represent error conditions in the drivecli protocol.
// They are wrapped with context by adapters and can be checked with errors.Is.
var (
	// ErrInvalidInput is returned when a line of user input cannot form a request.
	// It is recovered locally: the user sees "400 Bad Request" and is prompted again.
	ErrInvalidInput = errors.New("drivecli: invalid input")

	// ErrTransportWrite is returned when the peer stops accepting written bytes.
	ErrTransportWrite = errors.New("drivecli: transport write failed")

	// ErrConnectionClosed is returned when the peer closes the stream before a
	// complete frame has been received.
	ErrConnectionClosed = errors.New("drivecli: connection closed")

	// ErrDecoding is returned when a frame payload is not valid UTF-8.
	ErrDecoding = errors.New("drivecli: payload is not valid utf-8")

	// ErrInvalidHeader is returned when a frame header is not a decimal length.
	ErrInvalidHeader = errors.New("drivecli: invalid frame header")

	// ErrFrameTooLarge is returned when a payload does not fit the 8-digit header.
	ErrFrameTooLarge = errors.New("drivecli: frame too large")

	// ErrInvalidTransition is returned when the session state machine is asked
	// to move along an edge it does not have.
	ErrInvalidTransition = errors.New("drivecli: invalid state transition")
)
