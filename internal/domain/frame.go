package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// HeaderSize is the fixed width of the response length header in bytes.
	HeaderSize = 8

	// MaxPayloadSize is the largest payload an 8-digit decimal header can declare.
	MaxPayloadSize = 99_999_999
)

// ParseHeader interprets a response header as a payload length.
// Surrounding whitespace is ignored, so both "00000005" and the
// space-padded "5       " declare five bytes.
func ParseHeader(header []byte) (int, error) {
	if len(header) != HeaderSize {
		return 0, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidHeader, len(header), HeaderSize)
	}
	text := strings.TrimSpace(string(header))
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHeader, text)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative length %d", ErrInvalidHeader, n)
	}
	return n, nil
}

// FormatHeader renders a payload length the way the drive server does:
// left-justified decimal padded with spaces to HeaderSize bytes.
func FormatHeader(n int) ([]byte, error) {
	if n < 0 || n > MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, n)
	}
	return []byte(fmt.Sprintf("%-*d", HeaderSize, n)), nil
}

// EncodeFrame prefixes payload with its length header.
func EncodeFrame(payload []byte) ([]byte, error) {
	header, err := FormatHeader(len(payload))
	if err != nil {
		return nil, err
	}
	frame := make([]byte, 0, HeaderSize+len(payload))
	frame = append(frame, header...)
	return append(frame, payload...), nil
}
