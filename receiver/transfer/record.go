package transfer

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/freakmaxi/rdrelay/basics/errors"
	"go.uber.org/zap"
)

// RecordName is the hidden file that keeps the committed byte count of the destination directory
const RecordName = ".rdres"

const recordSize = 8

var recordByteOrder = binary.BigEndian

// Record is the durable resume offset of a destination directory
type Record interface {
	Value() uint64
	// Fresh reports that the record did not exist before it was opened
	Fresh() bool
	// Save overwrites the record from offset zero with value
	Save(value uint64) error
	// Remove closes and deletes the record, it is used only when the transfer is completed
	Remove() error
	Close() error
}

type record struct {
	inner *os.File
	path  string
	sync  bool

	value  uint64
	fresh  bool
	closed bool

	logger *zap.Logger
}

// OpenRecord opens or creates the record in dir. A missing, empty or torn record is read as zero.
func OpenRecord(dir string, sync bool, logger *zap.Logger) (Record, error) {
	r := &record{
		path:   filepath.Join(dir, RecordName),
		sync:   sync,
		logger: logger,
	}

	if _, err := os.Stat(r.path); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %w", errors.ErrRecord, err)
		}
		r.fresh = true
	}

	f, err := os.OpenFile(r.path, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrRecord, err)
	}
	r.inner = f

	if err := r.load(); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %w", errors.ErrRecord, err)
	}

	return r, nil
}

func (r *record) load() error {
	if _, err := r.inner.Seek(0, io.SeekStart); err != nil {
		return err
	}

	var value uint64
	if err := binary.Read(r.inner, recordByteOrder, &value); err != nil {
		if err == io.ErrUnexpectedEOF {
			r.logger.Warn("Resume record is torn, starting over", zap.String("path", r.path))
			return r.save(0)
		}
		if err == io.EOF {
			return r.save(0)
		}
		return err
	}
	r.value = value

	return nil
}

func (r *record) Value() uint64 {
	return r.value
}

func (r *record) Fresh() bool {
	return r.fresh
}

func (r *record) Save(value uint64) error {
	if err := r.save(value); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrRecord, err)
	}
	return nil
}

func (r *record) save(value uint64) error {
	if _, err := r.inner.Seek(0, io.SeekStart); err != nil {
		return err
	}

	if err := binary.Write(r.inner, recordByteOrder, value); err != nil {
		return err
	}

	if r.sync {
		if err := r.inner.Sync(); err != nil {
			return err
		}
	}
	r.value = value

	return nil
}

func (r *record) Remove() error {
	if err := r.Close(); err != nil {
		return err
	}
	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %w", errors.ErrRecord, err)
	}
	return nil
}

func (r *record) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	return r.inner.Close()
}

var _ Record = &record{}
