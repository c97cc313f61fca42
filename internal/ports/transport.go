package ports

import "context"

// Transport owns one connected stream socket.
type Transport interface {
	// SendAll writes the whole payload or returns an error wrapping
	// domain.ErrTransportWrite. Partial sends are never reported as success.
	SendAll(payload []byte) error

	// ReceiveFramed reads one length-prefixed frame and returns its payload.
	// Returns an error wrapping domain.ErrConnectionClosed if the peer goes
	// away mid-frame, domain.ErrInvalidHeader or domain.ErrDecoding otherwise.
	ReceiveFramed() (string, error)

	// Close releases the connection. Calling it more than once is safe.
	Close() error
}

// Dialer establishes a Transport to a remote endpoint.
type Dialer interface {
	Dial(ctx context.Context, host string, port int) (Transport, error)
}
