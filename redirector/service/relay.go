package service

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/freakmaxi/rdrelay/basics/common"
	"github.com/freakmaxi/rdrelay/basics/config"
	"github.com/freakmaxi/rdrelay/basics/protocol"
	"github.com/freakmaxi/rdrelay/basics/terminal"
	"github.com/freakmaxi/rdrelay/redirector/origin"
	"go.uber.org/zap"
)

// Relay serves one connected receiver from the origin
type Relay interface {
	// Handle runs the handshake and streams the origin until it ends. The connection is closed on return.
	Handle(ctx context.Context, conn net.Conn) (*common.Session, error)
}

type relay struct {
	origin  origin.Origin
	tracker Tracker
	output  terminal.Output
	logger  *zap.Logger

	timeout   time.Duration
	chunkSize int
}

func NewRelay(cfg config.Redirector, o origin.Origin, tracker Tracker, output terminal.Output, logger *zap.Logger) Relay {
	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = config.DefaultChunkSize
	}

	return &relay{
		origin:    o,
		tracker:   tracker,
		output:    output,
		logger:    logger,
		timeout:   cfg.Timeout,
		chunkSize: chunkSize,
	}
}

func (r *relay) Handle(ctx context.Context, conn net.Conn) (*common.Session, error) {
	defer func() { _ = conn.Close() }()

	session := common.NewSession(conn.RemoteAddr().String())
	r.tracker.Begin(session)
	defer r.tracker.End(session)

	r.logger.Info("Client is connected", zap.String("sessionId", session.Id), zap.String("address", session.Peer))

	if err := r.handle(ctx, conn, session); err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("%w: %w", ctx.Err(), err)
		}
		session.Abort(err)

		r.logger.Error(
			"Relay is aborted",
			zap.String("sessionId", session.Id),
			zap.Uint64("sent", session.Transferred),
			zap.Error(err),
		)
		return session, err
	}

	session.Complete()

	r.logger.Info(
		"Relay is completed",
		zap.String("sessionId", session.Id),
		zap.Uint64("sent", session.Transferred),
		zap.Duration("elapsed", time.Since(session.Started)),
	)
	return session, nil
}

func (r *relay) handle(ctx context.Context, conn net.Conn, session *common.Session) error {
	stop := context.AfterFunc(ctx, func() {
		reset(conn)
		_ = conn.Close()
	})
	defer stop()

	c := protocol.NewConn(conn, r.timeout)

	offset, err := protocol.ReadResumeOffset(c)
	if err != nil {
		return err
	}
	session.Resume(offset)

	resp, err := r.origin.Open(ctx, offset)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	header := protocol.NewHeader(resp.Remaining, r.origin.Name())
	session.Describe(resp.Remaining, header.Name)
	r.tracker.Update(session)

	if err := protocol.WriteHeader(c, header); err != nil {
		return err
	}

	r.output.Printf("Serving %s to %s from offset %d\n", session.ResourceName, session.Peer, offset)

	progress := terminal.NewProgress(r.output, "sent")
	session.Stream()
	r.tracker.Update(session)

	if err := r.copy(c, resp.Body, session, progress); err != nil {
		progress.Done(session)
		if originFailure(err) {
			reset(conn)
		}
		return err
	}
	progress.Done(session)

	return nil
}

type originError struct {
	err error
}

func (e *originError) Error() string {
	return fmt.Sprintf("%s: %s", origin.ErrOrigin.Error(), e.err.Error())
}

func (e *originError) Unwrap() []error {
	return []error{origin.ErrOrigin, e.err}
}

func originFailure(err error) bool {
	_, ok := err.(*originError)
	return ok
}

// copy forwards the origin body verbatim, origin read failures are returned as *originError
func (r *relay) copy(target io.Writer, source io.Reader, session *common.Session, progress *terminal.Progress) error {
	buffer := make([]byte, r.chunkSize)

	for {
		n, err := source.Read(buffer)
		if n > 0 {
			if _, err := target.Write(buffer[:n]); err != nil {
				return err
			}
			session.Advance(n)
			r.tracker.Update(session)
			progress.Update(session)
		}

		if err == io.EOF {
			return nil
		}
		if err != nil {
			return &originError{err: err}
		}
	}
}

// reset drops the connection with a TCP RST so the receiver can not take it as the end of stream.
// It is used for origin failures and for shutdown in the middle of a relay.
func reset(conn net.Conn) {
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		_ = tcpConn.SetLinger(0)
	}
}

var _ Relay = &relay{}
