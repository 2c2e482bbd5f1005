package common

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_Lifecycle(t *testing.T) {
	s := NewSession("127.0.0.1:5000")
	assert.NotEmpty(t, s.Id)
	assert.Equal(t, Handshaking, s.State)

	s.Resume(400)
	s.Describe(600, "file.bin")
	assert.Equal(t, uint64(1000), s.TotalSize)
	assert.Equal(t, uint64(400), s.Transferred)
	assert.Equal(t, uint64(40), s.Percentage())

	s.Stream()
	assert.Equal(t, Streaming, s.State)

	committed := uint64(400)
	for _, n := range []int{100, 250, 0, 250} {
		committed += uint64(n)
		assert.Equal(t, committed, s.Advance(n))
	}
	assert.Equal(t, uint64(1000), s.Transferred)
	assert.Equal(t, uint64(600), s.Moved())
	assert.Equal(t, uint64(100), s.Percentage())

	s.Complete()
	assert.True(t, s.Finished())
	assert.Equal(t, "completed", s.State.String())
}

func TestSession_Abort(t *testing.T) {
	s := NewSession("")
	s.Abort(fmt.Errorf("connection reset"))

	assert.Equal(t, Aborted, s.State)
	assert.Equal(t, "connection reset", s.Failure)
	assert.True(t, s.Finished())
}

func TestSession_ZeroRemaining(t *testing.T) {
	s := NewSession("")
	s.Describe(0, "empty")

	assert.Equal(t, uint64(1), s.TotalSize)
	assert.Equal(t, uint64(0), s.Percentage())
}

func TestSession_Throughput(t *testing.T) {
	s := NewSession("")
	s.Resume(1000)
	s.Stream()
	s.Advance(2048)

	assert.Equal(t, uint64(1024), s.Throughput(s.Started.Add(time.Second*2)))
	assert.Equal(t, uint64(0), s.Throughput(s.Started))
}

func TestState_MarshalText(t *testing.T) {
	b, err := Aborted.MarshalText()
	assert.Nil(t, err)
	assert.Equal(t, "aborted", string(b))
	assert.Equal(t, "unknown", State(42).String())
}
