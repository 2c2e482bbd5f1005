package origin

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newContentServer(t *testing.T, content []byte) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeContent(w, r, "disk.img", time.Time{}, bytes.NewReader(content))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestHttpOrigin_Open(t *testing.T) {
	content := bytes.Repeat([]byte("0123456789"), 100)
	server := newContentServer(t, content)

	o := NewHttp(server.URL+"/images/disk.img", 0)
	defer func() { _ = o.Close() }()

	assert.Equal(t, "disk.img", o.Name())

	resp, err := o.Open(context.Background(), 0)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1000), resp.Remaining)

	body, err := io.ReadAll(resp.Body)
	assert.Nil(t, err)
	assert.Equal(t, content, body)
	_ = resp.Body.Close()
}

func TestHttpOrigin_OpenRange(t *testing.T) {
	content := bytes.Repeat([]byte("0123456789"), 100)
	server := newContentServer(t, content)

	o := NewHttp(server.URL+"/disk.img", time.Second)

	resp, err := o.Open(context.Background(), 400)
	assert.Nil(t, err)
	assert.Equal(t, uint64(600), resp.Remaining)

	body, err := io.ReadAll(resp.Body)
	assert.Nil(t, err)
	assert.Equal(t, content[400:], body)
	_ = resp.Body.Close()
}

func TestHttpOrigin_OpenConsumed(t *testing.T) {
	server := newContentServer(t, []byte("abc"))

	o := NewHttp(server.URL+"/abc.txt", 0)

	resp, err := o.Open(context.Background(), 3)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), resp.Remaining)

	body, err := io.ReadAll(resp.Body)
	assert.Nil(t, err)
	assert.Empty(t, body)
}

func TestHttpOrigin_RangeNotSupported(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("full body"))
	}))
	defer server.Close()

	o := NewHttp(server.URL+"/file", 0)

	resp, err := o.Open(context.Background(), 0)
	assert.Nil(t, err)
	_ = resp.Body.Close()

	_, err = o.Open(context.Background(), 4)
	assert.True(t, errors.Is(err, ErrRangeNotSupported))
}

func TestHttpOrigin_Status(t *testing.T) {
	cases := map[int]error{
		http.StatusNotFound:            ErrNotFound,
		http.StatusForbidden:           ErrForbidden,
		http.StatusUnauthorized:        ErrUnauthorized,
		http.StatusInternalServerError: ErrOrigin,
	}

	for code, expected := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))

		_, err := NewHttp(server.URL+"/file", 0).Open(context.Background(), 0)
		assert.True(t, errors.Is(err, expected), "status %d", code)

		server.Close()
	}
}

func TestHttpOrigin_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewHttp(url+"/file", 0).Open(context.Background(), 0)
	assert.True(t, errors.Is(err, ErrOrigin))
}

func TestResourceName(t *testing.T) {
	assert.Equal(t, "disk.img", resourceName("/a/b/disk.img"))
	assert.Equal(t, "download", resourceName("/"))
	assert.Equal(t, "download", resourceName(""))
}
