package app

import "sync/atomic"

// Signal is a wake signal raised by the engine from one of its own threads.
// Window events reach the loop through the Surface instead.
type Signal uint8

const (
	// SignalRenderReady: the render context has new content.
	SignalRenderReady Signal = iota
	// SignalEngineEvents: the engine has queued events.
	SignalEngineEvents
	numSignals
)

func (s Signal) String() string {
	switch s {
	case SignalRenderReady:
		return "render-ready"
	case SignalEngineEvents:
		return "engine-events"
	}
	return "unknown"
}

// Mailbox carries signals from engine threads to the loop thread. Post never
// blocks and never calls into the engine, so it is safe from inside libmpv
// callbacks. A signal that is already queued is not queued again: bursts
// collapse into one delivery.
type Mailbox struct {
	ch     chan Signal
	queued [numSignals]atomic.Bool
	closed atomic.Bool
	wake   func()
}

// NewMailbox returns a mailbox that calls wake after queueing a signal, to
// interrupt a loop blocked waiting for window events. wake must be safe to
// call from any thread.
func NewMailbox(wake func()) *Mailbox {
	return &Mailbox{
		// Each signal is queued at most once, so sends never block.
		ch:   make(chan Signal, numSignals),
		wake: wake,
	}
}

// Post queues s unless it is already queued or the mailbox is closed.
func (m *Mailbox) Post(s Signal) {
	if s >= numSignals || m.closed.Load() {
		return
	}
	if !m.queued[s].CompareAndSwap(false, true) {
		return
	}
	select {
	case m.ch <- s:
	default:
		m.queued[s].Store(false)
		return
	}
	if m.wake != nil {
		m.wake()
	}
}

// TryReceive returns the next queued signal without blocking. The signal can
// be posted again as soon as it has been received.
func (m *Mailbox) TryReceive() (Signal, bool) {
	select {
	case s := <-m.ch:
		m.queued[s].Store(false)
		return s, true
	default:
		return 0, false
	}
}

// Pending returns the number of queued signals.
func (m *Mailbox) Pending() int {
	return len(m.ch)
}

// Close stops accepting signals and discards the queued ones.
func (m *Mailbox) Close() {
	m.closed.Store(true)
	for {
		if _, ok := m.TryReceive(); !ok {
			return
		}
	}
}

// Closed reports whether Close was called.
func (m *Mailbox) Closed() bool {
	return m.closed.Load()
}
