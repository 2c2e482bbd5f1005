package origin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"
)

var (
	ErrRangeNotSupported = errors.New("origin: server does not support range requests")
	ErrNotFound          = errors.New("origin: resource not found")
	ErrForbidden         = errors.New("origin: access forbidden")
	ErrUnauthorized      = errors.New("origin: unauthorized")
	ErrOrigin            = errors.New("origin: request is failed")
	ErrScheme            = errors.New("origin: url scheme is not supported")
)

// Response is the resource content starting at the requested offset
type Response struct {
	// Remaining is the declared byte count from the offset, 0 if unknown or fully consumed
	Remaining uint64
	// Body is read once, front to back, and must be closed
	Body io.ReadCloser
}

// Origin is the source of the relayed resource
type Origin interface {
	Name() string
	Open(ctx context.Context, offset uint64) (*Response, error)
	Close() error
}

// New creates the origin for rawURL. http and https are fetched with range requests,
// file, s3, gs and mem are opened as blob buckets.
func New(ctx context.Context, rawURL string, timeout time.Duration) (Origin, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return NewHttp(rawURL, timeout), nil
	case "file", "s3", "gs", "mem":
		return OpenBlob(ctx, u)
	}
	return nil, fmt.Errorf("%w: %s", ErrScheme, u.Scheme)
}

// resourceName is the last path segment of the resource location
func resourceName(p string) string {
	name := path.Base(p)
	switch name {
	case ".", "/", "":
		return "download"
	}
	return name
}

func emptyResponse() *Response {
	return &Response{
		Remaining: 0,
		Body:      io.NopCloser(strings.NewReader("")),
	}
}
