package common

import (
	"time"

	"github.com/google/uuid"
)

// State is the position of a transfer in Handshaking -> Streaming -> {Completed | Aborted}
type State int

const (
	Handshaking State = iota
	Streaming
	Completed
	Aborted
)

func (s State) String() string {
	switch s {
	case Handshaking:
		return "handshaking"
	case Streaming:
		return "streaming"
	case Completed:
		return "completed"
	case Aborted:
		return "aborted"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Session holds the ephemeral state of one transfer over one connection.
// Transferred counts the bytes committed so far including ResumeOffset.
type Session struct {
	Id           string    `json:"id"`
	Peer         string    `json:"peer,omitempty"`
	ResumeOffset uint64    `json:"resumeOffset"`
	TotalSize    uint64    `json:"totalSize"`
	ResourceName string    `json:"resourceName"`
	Transferred  uint64    `json:"transferred"`
	Started      time.Time `json:"started"`
	State        State     `json:"state"`
	Failure      string    `json:"failure,omitempty"`
}

func NewSession(peer string) *Session {
	return &Session{
		Id:      uuid.New().String(),
		Peer:    peer,
		Started: time.Now().UTC(),
		State:   Handshaking,
	}
}

// Resume seeds the counters with the offset agreed in the handshake
func (s *Session) Resume(offset uint64) {
	s.ResumeOffset = offset
	s.Transferred = offset
}

// Describe sets the resource details, TotalSize is remaining+ResumeOffset with the floor of 1
func (s *Session) Describe(remaining uint64, name string) {
	s.TotalSize = TotalSize(s.ResumeOffset, remaining)
	s.ResourceName = name
}

func (s *Session) Stream() {
	s.State = Streaming
	s.Started = time.Now().UTC()
}

// Advance adds the chunk size to the counter and returns the new committed value
func (s *Session) Advance(n int) uint64 {
	if n > 0 {
		s.Transferred += uint64(n)
	}
	return s.Transferred
}

// Moved is the amount of bytes carried in this session
func (s *Session) Moved() uint64 {
	return s.Transferred - s.ResumeOffset
}

func (s *Session) Percentage() uint64 {
	return Percentage(s.Transferred, s.TotalSize)
}

func (s *Session) Throughput(now time.Time) uint64 {
	return Throughput(s.Moved(), now.Sub(s.Started))
}

func (s *Session) Complete() {
	s.State = Completed
}

func (s *Session) Abort(err error) {
	s.State = Aborted
	if err != nil {
		s.Failure = err.Error()
	}
}

// Finished reports if the session reached one of the terminal states
func (s *Session) Finished() bool {
	return s.State == Completed || s.State == Aborted
}
