package transfer

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/freakmaxi/rdrelay/basics/common"
	"github.com/freakmaxi/rdrelay/basics/config"
	"github.com/freakmaxi/rdrelay/basics/errors"
	"github.com/freakmaxi/rdrelay/basics/protocol"
	"github.com/freakmaxi/rdrelay/basics/terminal"
	"go.uber.org/zap"
)

// Receiver downloads the resource announced by the redirector into the destination directory
type Receiver interface {
	// Receive runs one transfer. The returned session is never nil and holds the final state.
	Receive(ctx context.Context) (*common.Session, error)
}

type receiver struct {
	cfg    config.Receiver
	output terminal.Output
	logger *zap.Logger

	dialer net.Dialer
}

func NewReceiver(cfg config.Receiver, output terminal.Output, logger *zap.Logger) Receiver {
	return &receiver{
		cfg:    cfg,
		output: output,
		logger: logger,
		dialer: net.Dialer{Timeout: cfg.Timeout},
	}
}

func (r *receiver) Receive(ctx context.Context) (*common.Session, error) {
	session := common.NewSession(r.cfg.RedirectorAddress)

	if err := r.receive(ctx, session); err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("%w: %w", ctx.Err(), err)
		}
		session.Abort(err)

		r.logger.Error(
			"Transfer is aborted",
			zap.String("sessionId", session.Id),
			zap.Uint64("committed", session.Transferred),
			zap.Error(err),
		)
		return session, err
	}

	return session, nil
}

func (r *receiver) receive(ctx context.Context, session *common.Session) (err error) {
	if err := os.MkdirAll(r.cfg.Directory, 0777); err != nil {
		return err
	}

	rec, err := OpenRecord(r.cfg.Directory, r.cfg.SyncWrites, r.logger)
	if err != nil {
		return err
	}

	var dest *destination
	defer func() {
		cleanup := errors.NewBulkError()
		if dest != nil {
			cleanup.Add("closing destination", dest.Close())
		}
		cleanup.Add("closing resume record", rec.Close())

		if err == nil {
			err = cleanup.ErrorOrNil()
		}
	}()
	session.Resume(rec.Value())

	anim := terminal.NewAnimation(r.output, fmt.Sprintf("Connecting to %s...", r.cfg.RedirectorAddress))
	anim.Start()

	conn, err := r.dialer.DialContext(ctx, "tcp", r.cfg.RedirectorAddress)
	if err != nil {
		anim.Cancel()
		return err
	}
	defer func() { _ = conn.Close() }()

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	c := protocol.NewConn(conn, r.cfg.Timeout)

	header, err := handshake(c, session.ResumeOffset)
	if err != nil {
		anim.Cancel()
		return err
	}
	anim.Stop()

	session.Describe(header.TotalSize, header.Name)
	r.logger.Info(
		"Handshake is completed",
		zap.String("sessionId", session.Id),
		zap.String("name", session.ResourceName),
		zap.Uint64("resumeOffset", session.ResumeOffset),
		zap.Uint64("totalSize", session.TotalSize),
	)

	dest, err = openDestination(r.cfg.Directory, header.Name, session.ResumeOffset, rec.Fresh(), r.cfg.SyncWrites, r.logger)
	if err != nil {
		return err
	}

	r.checkSpace(ctx, header.TotalSize)

	r.output.Printf("Total File Size: %s\n", common.SizeToString(session.TotalSize))

	progress := terminal.NewProgress(r.output, "read")
	session.Stream()

	if err := stream(c, dest, rec, session, progress, r.cfg.ChunkSize); err != nil {
		progress.Done(session)
		return err
	}
	progress.Done(session)

	if err := finish(dest, rec); err != nil {
		return err
	}

	session.Complete()

	elapsed := time.Since(session.Started)
	r.logger.Info(
		"Transfer is completed",
		zap.String("sessionId", session.Id),
		zap.String("path", dest.Path()),
		zap.Uint64("size", session.Transferred),
		zap.Duration("elapsed", elapsed),
	)
	r.output.Success("Download finished in %s", elapsed.Round(time.Millisecond))

	return nil
}

func (r *receiver) checkSpace(ctx context.Context, remaining uint64) {
	free, err := freeSpace(ctx, r.cfg.Directory)
	if err != nil {
		r.logger.Warn("Unable to read free disk space", zap.String("directory", r.cfg.Directory), zap.Error(err))
		return
	}
	if free < remaining {
		r.logger.Warn(
			"Not enough disk space for the remaining bytes",
			zap.String("directory", r.cfg.Directory),
			zap.Uint64("free", free),
			zap.Uint64("remaining", remaining),
		)
	}
}

// finish closes the destination and removes the record only when the destination is closed cleanly
func finish(dest *destination, rec Record) error {
	if err := dest.Close(); err != nil {
		return fmt.Errorf("closing destination: %w", err)
	}
	return rec.Remove()
}

func handshake(conn net.Conn, offset uint64) (*protocol.Header, error) {
	if err := protocol.WriteResumeOffset(conn, offset); err != nil {
		return nil, err
	}
	return protocol.ReadHeader(conn)
}

// stream appends every chunk to the destination and checkpoints the record after the write
// is acknowledged, so the record never claims bytes the destination does not hold.
func stream(source io.Reader, dest *destination, rec Record, session *common.Session, progress *terminal.Progress, chunkSize int) error {
	buffer := make([]byte, chunkSize)

	for {
		n, err := source.Read(buffer)
		if n > 0 {
			if err := dest.Write(buffer[:n]); err != nil {
				return err
			}

			if err := rec.Save(session.Advance(n)); err != nil {
				return err
			}

			progress.Update(session)
		}

		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
