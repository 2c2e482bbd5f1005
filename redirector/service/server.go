package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Server accepts one client at a time and hands it to the relay
type Server interface {
	Bind() error
	Listen(ctx context.Context) error
	Addr() net.Addr
	Kill() error
}

type server struct {
	address string
	relay   Relay
	logger  *zap.Logger

	listenerMutex sync.Mutex
	listener      net.Listener
	quiting       atomic.Bool
}

func NewServer(address string, relay Relay, logger *zap.Logger) (Server, error) {
	if len(address) == 0 {
		return nil, fmt.Errorf("address should be defined")
	}

	return &server{
		address: address,
		relay:   relay,
		logger:  logger,
	}, nil
}

// Bind opens the listener without accepting, Listen binds on its own when it is not called
func (s *server) Bind() error {
	s.listenerMutex.Lock()
	defer s.listenerMutex.Unlock()

	if s.listener != nil {
		return nil
	}

	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	s.listener = listener

	return nil
}

func (s *server) Addr() net.Addr {
	s.listenerMutex.Lock()
	defer s.listenerMutex.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Listen serves clients sequentially until Kill is called or ctx is cancelled
func (s *server) Listen(ctx context.Context) error {
	if err := s.Bind(); err != nil {
		return err
	}

	stop := context.AfterFunc(ctx, func() { _ = s.Kill() })
	defer stop()

	s.logger.Info("Redirector is listening", zap.String("address", s.listener.Addr().String()))

	for !s.quiting.Load() {
		c, err := s.listener.Accept()
		if err != nil {
			if s.quiting.Load() || errors.Is(err, net.ErrClosed) {
				break
			}
			s.logger.Error("Unable to accept connection", zap.Error(err))
			continue
		}

		if _, err := s.relay.Handle(ctx, c); err != nil {
			s.logger.Warn(
				"Client is dropped",
				zap.String("address", c.RemoteAddr().String()),
				zap.Error(err),
			)
		}
	}

	return nil
}

func (s *server) Kill() error {
	s.quiting.Store(true)

	s.listenerMutex.Lock()
	defer s.listenerMutex.Unlock()

	if s.listener == nil {
		return nil
	}

	if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}

	return nil
}

var _ Server = &server{}
