package service

import (
	"sync"

	"github.com/freakmaxi/rdrelay/basics/common"
)

// Status is the point in time view of the redirector
type Status struct {
	Served uint64          `json:"served"`
	Active *common.Session `json:"active"`
	Last   *common.Session `json:"last"`
}

// Tracker keeps copies of the session owned by the relay for concurrent readers
type Tracker interface {
	Begin(session *common.Session)
	Update(session *common.Session)
	End(session *common.Session)
	Status() Status
}

type tracker struct {
	mutex  sync.Mutex
	served uint64
	active *common.Session
	last   *common.Session
}

func NewTracker() Tracker {
	return &tracker{}
}

func (t *tracker) Begin(session *common.Session) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.active = snapshot(session)
}

func (t *tracker) Update(session *common.Session) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.active == nil || t.active.Id != session.Id {
		return
	}
	*t.active = *session
}

func (t *tracker) End(session *common.Session) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.served++
	t.last = snapshot(session)
	if t.active != nil && t.active.Id == session.Id {
		t.active = nil
	}
}

func (t *tracker) Status() Status {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return Status{
		Served: t.served,
		Active: snapshot(t.active),
		Last:   snapshot(t.last),
	}
}

func snapshot(session *common.Session) *common.Session {
	if session == nil {
		return nil
	}
	s := *session
	return &s
}

var _ Tracker = &tracker{}
