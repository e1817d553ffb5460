package core

import (
	"sync"
	"time"
)

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeInfo    NoticeKind = "info"
	NoticeError   NoticeKind = "error"
)

// Notice is a transient, non-blocking message.
type Notice struct {
	ID   uint64
	Kind NoticeKind
	Text string
}

// NoticeSink displays notices. Dismiss may be called for an id that is
// already gone. It runs with the notifier locked and must not call back
// into it.
type NoticeSink interface {
	Show(n Notice)
	Dismiss(id uint64)
}

// Notifier shows notices and dismisses them after a fixed delay. Timers are
// fire and forget; once a notice is dismissed or the notifier is closed a
// late timer does nothing.
type Notifier struct {
	mu     sync.Mutex
	sink   NoticeSink
	delay  time.Duration
	nextID uint64
	timers map[uint64]*time.Timer
	closed bool
}

func NewNotifier(sink NoticeSink, delay time.Duration) *Notifier {
	if delay <= 0 {
		delay = 3 * time.Second
	}
	return &Notifier{sink: sink, delay: delay, timers: make(map[uint64]*time.Timer)}
}

// Notify shows text and schedules its dismissal. It returns the notice id,
// or 0 when the notifier is closed.
func (n *Notifier) Notify(kind NoticeKind, text string) uint64 {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return 0
	}
	n.nextID++
	id := n.nextID
	n.timers[id] = time.AfterFunc(n.delay, func() { n.expire(id) })
	n.mu.Unlock()

	n.sink.Show(Notice{ID: id, Kind: kind, Text: text})
	return id
}

// Dismiss removes a notice early.
func (n *Notifier) Dismiss(id uint64) {
	n.expire(id)
}

func (n *Notifier) expire(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	t, ok := n.timers[id]
	if !ok || n.closed {
		return
	}
	t.Stop()
	delete(n.timers, id)
	n.sink.Dismiss(id)
}

// Pending is the number of notices still on screen.
func (n *Notifier) Pending() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.timers)
}

// Close stops every pending timer. Notices are not dismissed through the
// sink; the owner is tearing it down. A dismissal already in flight
// finishes before Close returns.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, t := range n.timers {
		t.Stop()
		delete(n.timers, id)
	}
	n.closed = true
}
