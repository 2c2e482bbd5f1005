package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/freakmaxi/rdrelay/basics/common"
	"github.com/freakmaxi/rdrelay/basics/errors"
)

// NameLimit is the longest resource name the u16 length prefix can carry
const NameLimit = math.MaxUint16

var byteOrder = binary.BigEndian

// Header is what the redirector announces after it receives the resume offset
type Header struct {
	// TotalSize is the remaining byte count at the resume offset, never 0
	TotalSize uint64
	Name      string
}

func NewHeader(remaining uint64, name string) Header {
	return Header{
		TotalSize: common.TotalSize(0, remaining),
		Name:      name,
	}
}

func WriteResumeOffset(w io.Writer, offset uint64) error {
	if err := binary.Write(w, byteOrder, offset); err != nil {
		return fmt.Errorf("%w: sending resume offset: %w", errors.ErrHandshake, err)
	}
	return nil
}

func ReadResumeOffset(r io.Reader) (uint64, error) {
	var offset uint64
	if err := binary.Read(r, byteOrder, &offset); err != nil {
		return 0, fmt.Errorf("%w: reading resume offset: %w", errors.ErrHandshake, err)
	}
	return offset, nil
}

func WriteHeader(w io.Writer, h Header) error {
	if len(h.Name) > NameLimit {
		return errors.ErrNameTooLong
	}

	buffer := make([]byte, 10+len(h.Name))
	byteOrder.PutUint64(buffer[0:8], common.TotalSize(0, h.TotalSize))
	byteOrder.PutUint16(buffer[8:10], uint16(len(h.Name)))
	copy(buffer[10:], h.Name)

	if _, err := w.Write(buffer); err != nil {
		return fmt.Errorf("%w: sending header: %w", errors.ErrHandshake, err)
	}
	return nil
}

func ReadHeader(r io.Reader) (*Header, error) {
	var totalSize uint64
	if err := binary.Read(r, byteOrder, &totalSize); err != nil {
		return nil, fmt.Errorf("%w: reading total size: %w", errors.ErrHandshake, err)
	}

	var nameLength uint16
	if err := binary.Read(r, byteOrder, &nameLength); err != nil {
		return nil, fmt.Errorf("%w: reading name length: %w", errors.ErrHandshake, err)
	}

	name := make([]byte, nameLength)
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, fmt.Errorf("%w: reading name: %w", errors.ErrHandshake, err)
	}

	if !utf8.Valid(name) {
		return nil, errors.ErrInvalidName
	}

	return &Header{
		TotalSize: totalSize,
		Name:      string(name),
	}, nil
}
