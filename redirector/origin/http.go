package origin

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type httpOrigin struct {
	url    string
	name   string
	client *http.Client
}

// NewHttp creates the origin that fetches rawURL with "Range: bytes=<offset>-" requests.
// The timeout bounds connection setup and response headers, the body stream is not limited.
func NewHttp(rawURL string, timeout time.Duration) Origin {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableCompression = true
	transport.ResponseHeaderTimeout = timeout

	name := "download"
	if u, err := url.Parse(rawURL); err == nil {
		name = resourceName(u.Path)
	}

	return &httpOrigin{
		url:  rawURL,
		name: name,
		client: &http.Client{
			Transport: transport,
		},
	}
}

func (h *httpOrigin) Name() string {
	return h.name
}

func (h *httpOrigin) Open(ctx context.Context, offset uint64) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=%d-", offset))

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOrigin, err)
	}

	switch resp.StatusCode {
	case http.StatusPartialContent:
	case http.StatusOK:
		if offset > 0 {
			_ = resp.Body.Close()
			return nil, ErrRangeNotSupported
		}
	case http.StatusRequestedRangeNotSatisfiable:
		_ = resp.Body.Close()
		return emptyResponse(), nil
	default:
		_ = resp.Body.Close()
		return nil, checkStatusCode(resp.StatusCode, resp.Status)
	}

	remaining := uint64(0)
	if resp.ContentLength > 0 {
		remaining = uint64(resp.ContentLength)
	}

	return &Response{
		Remaining: remaining,
		Body:      resp.Body,
	}, nil
}

func (h *httpOrigin) Close() error {
	h.client.CloseIdleConnections()
	return nil
}

func checkStatusCode(code int, status string) error {
	switch code {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusUnauthorized:
		return ErrUnauthorized
	}
	return fmt.Errorf("%w: %s", ErrOrigin, status)
}

var _ Origin = &httpOrigin{}
