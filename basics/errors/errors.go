package errors

import "errors"

var (
	ErrHandshake   = errors.New("handshake is failed")
	ErrInvalidName = errors.New("resource name is not valid")
	ErrNameTooLong = errors.New("resource name exceeds 65535 bytes")

	ErrRecordAhead = errors.New("resume record is ahead of the destination file")
	ErrRecord      = errors.New("resume record is not accessible")

	ErrDestinationExists = errors.New("destination file exists without a resume record")
)
