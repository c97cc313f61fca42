// Package tcp implements ports.Transport over a connected stream socket.
//
// Requests are written as-is. Responses are read as an 8-byte decimal
// length header followed by exactly that many payload bytes, using bounded
// reads so a slow or fragmented peer never makes the client over-request.
package tcp

import (
	"fmt"
	"io"
	"sync"
	"unicode/utf8"

	"github.com/bft-labs/drivecli/internal/domain"
	"github.com/bft-labs/drivecli/internal/ports"
)

// DefaultReadChunkSize caps the number of bytes requested per read call.
const DefaultReadChunkSize = 4096

// Transport sends request lines and receives framed responses over conn.
type Transport struct {
	conn      io.ReadWriteCloser
	chunkSize int
	logger    ports.Logger

	closeOnce sync.Once
	closeErr  error
}

// NewTransport wraps an already connected stream.
// chunkSize <= 0 selects DefaultReadChunkSize.
func NewTransport(conn io.ReadWriteCloser, chunkSize int, logger ports.Logger) *Transport {
	if chunkSize <= 0 {
		chunkSize = DefaultReadChunkSize
	}
	return &Transport{
		conn:      conn,
		chunkSize: chunkSize,
		logger:    logger,
	}
}

// SendAll writes payload until every byte has been accepted.
func (t *Transport) SendAll(payload []byte) error {
	sent := 0
	for sent < len(payload) {
		n, err := t.conn.Write(payload[sent:])
		sent += n
		if err != nil {
			return fmt.Errorf("%w: %d of %d bytes sent: %w", domain.ErrTransportWrite, sent, len(payload), err)
		}
		if n == 0 {
			return fmt.Errorf("%w: peer accepted 0 bytes (%d of %d sent)", domain.ErrTransportWrite, sent, len(payload))
		}
	}
	t.logger.Debug("request sent", ports.Int("bytes", sent))
	return nil
}

// ReceiveFramed reads one frame and returns its payload as text.
func (t *Transport) ReceiveFramed() (string, error) {
	header, err := t.readExact(domain.HeaderSize)
	if err != nil {
		return "", fmt.Errorf("read header: %w", err)
	}
	n, err := domain.ParseHeader(header)
	if err != nil {
		return "", err
	}

	payload, err := t.readExact(n)
	if err != nil {
		return "", fmt.Errorf("read payload: %w", err)
	}
	if !utf8.Valid(payload) {
		return "", fmt.Errorf("%w: %d byte payload", domain.ErrDecoding, n)
	}

	t.logger.Debug("frame received", ports.Int("bytes", n))
	return string(payload), nil
}

// readExact accumulates exactly n bytes, requesting at most chunkSize per call.
// A read that yields nothing before n is reached means the peer is gone.
func (t *Transport) readExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	got := 0
	for got < n {
		end := got + t.chunkSize
		if end > n {
			end = n
		}
		m, err := t.conn.Read(buf[got:end])
		got += m
		if got == n {
			break
		}
		if err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("%w: %d of %d bytes", domain.ErrConnectionClosed, got, n)
			}
			return nil, fmt.Errorf("%w: %d of %d bytes: %w", domain.ErrConnectionClosed, got, n, err)
		}
		if m == 0 {
			return nil, fmt.Errorf("%w: %d of %d bytes", domain.ErrConnectionClosed, got, n)
		}
	}
	return buf, nil
}

// Close releases the connection. Only the first call closes it.
func (t *Transport) Close() error {
	t.closeOnce.Do(func() {
		t.closeErr = t.conn.Close()
	})
	return t.closeErr
}

// Ensure Transport implements ports.Transport.
var _ ports.Transport = (*Transport)(nil)
