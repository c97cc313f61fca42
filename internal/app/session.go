package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/bft-labs/drivecli/internal/domain"
	"github.com/bft-labs/drivecli/internal/ports"
)

// SessionConfig identifies the server a session talks to.
type SessionConfig struct {
	Host string
	Port int
}

// Session owns one connection to the drive server and drives the
// read-send-receive-display loop over it.
type Session struct {
	config    SessionConfig
	dialer    ports.Dialer
	source    ports.CommandSource
	renderer  ports.Renderer
	logger    ports.Logger
	lifecycle *Lifecycle

	mu        sync.Mutex
	transport ports.Transport
}

// NewSession creates a session with the given dependencies.
// The connection is not opened until Run is called.
func NewSession(
	config SessionConfig,
	dialer ports.Dialer,
	source ports.CommandSource,
	renderer ports.Renderer,
	logger ports.Logger,
	emitter EventEmitter,
) *Session {
	return &Session{
		config:    config,
		dialer:    dialer,
		source:    source,
		renderer:  renderer,
		logger:    logger,
		lifecycle: NewLifecycle(logger, emitter),
	}
}

// State returns the current session state.
func (s *Session) State() State {
	return s.lifecycle.State()
}

// Run connects and serves commands until input ends, ctx is canceled,
// Close is called, or a transport error occurs. Stopping (the first three)
// returns nil. The connection is released on every return path.
func (s *Session) Run(ctx context.Context) error {
	if s.lifecycle.Closed() {
		return nil
	}
	transport, err := s.dialer.Dial(ctx, s.config.Host, s.config.Port)
	if err != nil {
		s.closeWith("connect failed")
		return fmt.Errorf("connect: %w", err)
	}
	if !s.attach(transport) {
		transport.Close()
		return nil
	}
	defer s.closeWith("session ended")

	stop := context.AfterFunc(ctx, func() { s.closeWith("canceled") })
	defer stop()

	if err := s.lifecycle.TransitionTo(StateConnected, "dialed"); err != nil {
		return s.stopped(err)
	}

	for {
		if err := s.lifecycle.TransitionTo(StateAwaitingInput, "prompt"); err != nil {
			return s.stopped(err)
		}
		cmd, err := s.source.ReadCommand()
		if errors.Is(err, domain.ErrInvalidInput) {
			if err := s.renderer.Render(domain.BadRequestNotice); err != nil {
				return s.stopped(fmt.Errorf("render: %w", err))
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			s.logger.Info("end of input")
			return nil
		}
		if err != nil {
			return s.stopped(fmt.Errorf("read input: %w", err))
		}

		response, err := s.roundTrip(transport, cmd)
		if err != nil {
			return s.stopped(err)
		}

		if err := s.lifecycle.TransitionTo(StateDisplaying, "response received"); err != nil {
			return s.stopped(err)
		}
		if err := s.renderer.Render(response); err != nil {
			return s.stopped(fmt.Errorf("render: %w", err))
		}
	}
}

// roundTrip sends one request line and waits for its frame.
func (s *Session) roundTrip(transport ports.Transport, cmd domain.Command) (string, error) {
	if err := s.lifecycle.TransitionTo(StateSending, cmd.Name); err != nil {
		return "", err
	}
	if err := transport.SendAll([]byte(cmd.Message())); err != nil {
		return "", err
	}

	if err := s.lifecycle.TransitionTo(StateAwaitingResponse, cmd.Name); err != nil {
		return "", err
	}
	return transport.ReceiveFramed()
}

// Close ends the session and releases the connection. It is safe to call
// from another goroutine while Run is blocked on the socket, and more than once.
func (s *Session) Close() error {
	return s.closeWith("close requested")
}

func (s *Session) closeWith(reason string) error {
	s.mu.Lock()
	transport := s.transport
	s.transport = nil
	s.mu.Unlock()

	if !s.lifecycle.Closed() {
		_ = s.lifecycle.TransitionTo(StateClosed, reason)
	}
	if transport == nil {
		return nil
	}
	if err := transport.Close(); err != nil {
		s.logger.Warn("close connection", ports.Err(err))
		return err
	}
	return nil
}

// attach records the live transport unless the session was already closed.
func (s *Session) attach(transport ports.Transport) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lifecycle.Closed() {
		return false
	}
	s.transport = transport
	return true
}

// stopped maps errors caused by a concurrent Close to a clean stop.
func (s *Session) stopped(err error) error {
	if s.lifecycle.Closed() {
		s.logger.Debug("session stopped", ports.Err(err))
		return nil
	}
	return err
}
