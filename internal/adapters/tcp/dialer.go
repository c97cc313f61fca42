package tcp

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/bft-labs/drivecli/internal/ports"
)

// DefaultDialTimeout bounds connection establishment only. Established
// connections carry no read or write deadlines.
const DefaultDialTimeout = 10 * time.Second

// Dialer connects to the drive server over TCP.
type Dialer struct {
	Timeout       time.Duration
	ReadChunkSize int
	Logger        ports.Logger
}

// Dial resolves host and connects to host:port.
func (d *Dialer) Dial(ctx context.Context, host string, port int) (ports.Transport, error) {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	nd := net.Dialer{Timeout: timeout}
	conn, err := nd.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	d.Logger.Info("connected",
		ports.String("addr", addr),
		ports.String("local", conn.LocalAddr().String()),
	)
	return NewTransport(conn, d.ReadChunkSize, d.Logger), nil
}

// Ensure Dialer implements ports.Dialer.
var _ ports.Dialer = (*Dialer)(nil)
