package protocol

import (
	"net"
	"time"
)

type conn struct {
	net.Conn

	timeout time.Duration
}

// NewConn refreshes the connection deadline before every read and write.
// A zero timeout leaves the connection blocking without a deadline.
func NewConn(c net.Conn, timeout time.Duration) net.Conn {
	if timeout <= 0 {
		return c
	}

	return &conn{
		Conn:    c,
		timeout: timeout,
	}
}

func (c *conn) Read(b []byte) (int, error) {
	if err := c.Conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}
	return c.Conn.Read(b)
}

func (c *conn) Write(b []byte) (int, error) {
	if err := c.Conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}
	return c.Conn.Write(b)
}

var _ net.Conn = &conn{}
