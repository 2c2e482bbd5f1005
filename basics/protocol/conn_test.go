package protocol

import (
	"net"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConn_NoTimeout(t *testing.T) {
	client, server := net.Pipe()
	defer func() { _ = client.Close() }()
	defer func() { _ = server.Close() }()

	assert.Equal(t, client, NewConn(client, 0))
}

func TestNewConn_ReadTimeout(t *testing.T) {
	client, server := net.Pipe()
	defer func() { _ = client.Close() }()
	defer func() { _ = server.Close() }()

	c := NewConn(client, time.Millisecond*50)

	_, err := ReadResumeOffset(c)
	assert.ErrorIs(t, err, os.ErrDeadlineExceeded)
}

func TestNewConn_Transfers(t *testing.T) {
	client, server := net.Pipe()
	defer func() { _ = client.Close() }()
	defer func() { _ = server.Close() }()

	c := NewConn(client, time.Second)
	s := NewConn(server, time.Second)

	go func() { _ = WriteResumeOffset(c, 1234) }()

	offset, err := ReadResumeOffset(s)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1234), offset)
}
