package transfer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/freakmaxi/rdrelay/basics/errors"
	"go.uber.org/zap"
)

type destination struct {
	inner *os.File
	path  string
	sync  bool

	closed bool
}

// SafeName reduces the announced resource name to a file name inside the destination directory
func SafeName(name string) (string, error) {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(filepath.Clean("/" + name))

	switch name {
	case "", ".", "..", "/", RecordName:
		return "", errors.ErrInvalidName
	}
	return name, nil
}

// openDestination opens the file in append mode and reconciles its length with the resume offset.
// Bytes after the offset have never been checkpointed, they are dropped and received again.
// When the record is fresh, a file that already holds bytes is not ours and is left untouched.
func openDestination(dir string, name string, offset uint64, fresh bool, sync bool, logger *zap.Logger) (*destination, error) {
	fileName, err := SafeName(name)
	if err != nil {
		return nil, err
	}

	d := &destination{
		path: filepath.Join(dir, fileName),
		sync: sync,
	}

	f, err := os.OpenFile(d.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}
	d.inner = f

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	size := uint64(info.Size())

	if fresh && size > 0 {
		_ = f.Close()
		logger.Error(
			"Destination file exists but the resume record is new, refusing to overwrite",
			zap.String("path", d.path),
			zap.Uint64("fileSize", size),
		)
		return nil, fmt.Errorf("%w: %s holds %d bytes", errors.ErrDestinationExists, d.path, size)
	}

	if size < offset {
		_ = f.Close()
		return nil, fmt.Errorf("%w: record %d, file %d bytes", errors.ErrRecordAhead, offset, size)
	}

	if size > offset {
		logger.Warn(
			"Destination file is longer than the resume record, dropping unrecorded bytes",
			zap.String("path", d.path),
			zap.Uint64("fileSize", size),
			zap.Uint64("resumeOffset", offset),
			zap.Uint64("dropped", size-offset),
		)
		if err := f.Truncate(int64(offset)); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	return d, nil
}

// Write appends the chunk and returns only when the write is acknowledged
func (d *destination) Write(chunk []byte) error {
	if _, err := d.inner.Write(chunk); err != nil {
		return err
	}
	if d.sync {
		return d.inner.Sync()
	}
	return nil
}

func (d *destination) Path() string {
	return d.path
}

func (d *destination) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	return d.inner.Close()
}
