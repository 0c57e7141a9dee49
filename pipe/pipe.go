// Package pipe implements an unbounded multi-producer, single-consumer
// FIFO channel.
//
// Go's built-in channels are bounded and panic on send-after-close, which
// makes them awkward as a transport for values that must never be dropped
// by a slow consumer. pipe trades the built-in channel's backpressure for
// an unbounded queue with error-returning operations:
//
//   - [Sender.Send] never blocks and reports closure as [ErrClosed]
//     instead of panicking.
//   - [Sender.Clone] produces additional producer handles; the channel
//     closes for receiving only after every handle is closed.
//   - [Receiver.Recv], [Receiver.RecvTimeout], and [Receiver.TryRecv]
//     cover the blocking, bounded-wait, and non-blocking receive policies.
//     After the senders close, queued values are still drained in order
//     before receives start failing with [ErrClosed].
//
// The sending half is safe for concurrent use from any number of
// goroutines. The receiving half is single-consumer: exactly one goroutine
// may use a [Receiver] at a time.
package pipe

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrClosed is returned by Send when the receiver has been closed, and
	// by receives when every sender handle has closed and the queue has
	// been fully drained. It is permanent.
	ErrClosed = errors.New("pipe: channel closed")

	// ErrTimeout is returned by [Receiver.RecvTimeout] when the wait
	// expires before a value arrives.
	ErrTimeout = errors.New("pipe: receive timed out")

	// ErrEmpty is returned by [Receiver.TryRecv] when nothing is queued
	// but senders remain. It is transient.
	ErrEmpty = errors.New("pipe: channel empty")
)

// core is the state shared by every Sender handle and the Receiver.
type core[T any] struct {
	mu       sync.Mutex
	q        fifo[T]
	senders  int
	rxClosed bool

	wake chan struct{} // capacity 1; a token is posted after each push
	done chan struct{} // closed when the last sender handle closes
}

// Sender is one producer handle of a channel. Handles may be used from
// different goroutines concurrently; create more with [Sender.Clone].
type Sender[T any] struct {
	c *core[T]

	mu     sync.Mutex
	closed bool
}

// Receiver is the consuming half of a channel. It is owned by exactly one
// goroutine at a time; concurrent receives are not supported.
type Receiver[T any] struct {
	c *core[T]
}

// New creates an unbounded channel and returns its first sender handle
// together with the receiver.
func New[T any]() (*Sender[T], *Receiver[T]) {
	c := &core[T]{
		senders: 1,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	return &Sender[T]{c: c}, &Receiver[T]{c: c}
}

// Send enqueues v. It never blocks. It returns [ErrClosed] if this handle
// has been closed or the receiver has been closed.
func (s *Sender[T]) Send(v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	c := s.c
	c.mu.Lock()
	if c.rxClosed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.q.push(v)
	c.mu.Unlock()

	// Nudge a waiting receiver. A stale token only costs it one extra
	// queue check, so a full wake channel is fine to skip.
	select {
	case c.wake <- struct{}{}:
	default:
	}
	return nil
}

// Clone returns a new sender handle for the same channel. The channel
// stays open for receiving until every handle is closed. Clone panics if
// called on a closed handle.
func (s *Sender[T]) Clone() *Sender[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		panic("pipe: Clone of closed Sender")
	}

	c := s.c
	c.mu.Lock()
	c.senders++
	c.mu.Unlock()
	return &Sender[T]{c: c}
}

// Close releases this handle. It is idempotent per handle; when the last
// handle closes, receivers drain whatever is queued and then observe
// [ErrClosed].
func (s *Sender[T]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	c := s.c
	c.mu.Lock()
	c.senders--
	last := c.senders == 0
	c.mu.Unlock()
	if last {
		close(c.done)
	}
}

// next pops a queued value if one is available. The error reports why
// nothing could be popped: ErrClosed when the receiver is closed or every
// sender is gone and the queue is drained, ErrEmpty when senders remain.
func (c *core[T]) next() (T, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rxClosed {
		return zero, ErrClosed
	}
	if v, ok := c.q.pop(); ok {
		return v, nil
	}
	if c.senders == 0 {
		return zero, ErrClosed
	}
	return zero, ErrEmpty
}

// Recv blocks until a value is available or the channel closes.
func (r *Receiver[T]) Recv() (T, error) {
	c := r.c
	for {
		v, err := c.next()
		if !errors.Is(err, ErrEmpty) {
			return v, err
		}
		select {
		case <-c.wake:
		case <-c.done:
		}
	}
}

// RecvTimeout behaves like [Receiver.Recv] but waits at most d. A
// non-positive d degenerates to a single immediate check; either way an
// expired wait is reported as [ErrTimeout].
func (r *Receiver[T]) RecvTimeout(d time.Duration) (T, error) {
	c := r.c
	v, err := c.next()
	if !errors.Is(err, ErrEmpty) {
		return v, err
	}
	if d <= 0 {
		var zero T
		return zero, ErrTimeout
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	for {
		select {
		case <-c.wake:
		case <-c.done:
		case <-timer.C:
			// A value may have raced in with the deadline; one last look.
			v, err := c.next()
			if errors.Is(err, ErrEmpty) {
				var zero T
				return zero, ErrTimeout
			}
			return v, err
		}
		v, err := c.next()
		if !errors.Is(err, ErrEmpty) {
			return v, err
		}
	}
}

// TryRecv returns a queued value without waiting. It returns [ErrEmpty]
// when nothing is queued but senders remain, [ErrClosed] once the channel
// is closed and drained.
func (r *Receiver[T]) TryRecv() (T, error) {
	return r.c.next()
}

// Close drops the consuming end. Queued values are discarded, and all
// subsequent sends and receives fail with [ErrClosed]. Close is
// idempotent.
func (r *Receiver[T]) Close() {
	c := r.c
	c.mu.Lock()
	if !c.rxClosed {
		c.rxClosed = true
		c.q.reset()
	}
	c.mu.Unlock()
}

// Len reports how many values are currently queued.
func (r *Receiver[T]) Len() int {
	c := r.c
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q.len()
}
