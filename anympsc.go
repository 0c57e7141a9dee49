package anympsc

import (
	"github.com/Eolu/any-mpsc/pipe"
	"github.com/Eolu/any-mpsc/typebuf"
)

// New creates a dynamically typed channel and returns its sender and
// unbuffered receiver halves. Mismatched receives hand the value back to
// the caller; nothing is retained.
func New() (*Sender, *Receiver) {
	tx, rx := pipe.New[any]()
	return &Sender{tx: tx}, &Receiver{rx: rx}
}

// NewBuffered creates a dynamically typed channel whose receiver parks
// mismatched values in a per-type retry buffer, so a value sent as one
// type is never lost to a receive call that asked for another.
func NewBuffered() (*Sender, *BufferedReceiver) {
	tx, rx := pipe.New[any]()
	return &Sender{tx: tx}, &BufferedReceiver{rx: rx, buf: typebuf.New()}
}

// Sender is the producer half of a dynamically typed channel. A value of
// any type may be sent; its dynamic type travels with it and is what
// receive calls match against. Handles are safe for concurrent use and
// more can be created with [Sender.Clone].
type Sender struct {
	tx *pipe.Sender[any]
}

// Send forwards v, boxed with its dynamic type, to the channel. It never
// blocks and has no buffering side effects. It returns [ErrClosed] if the
// receiver or this handle has been closed.
//
// Send panics on an untyped nil: nil carries no dynamic type for a
// receive call to match.
func (s *Sender) Send(v any) error {
	if v == nil {
		panic("anympsc: Send of untyped nil")
	}
	return s.tx.Send(v)
}

// Clone returns an additional sender handle for multi-producer use. The
// channel closes for receiving only when every handle is closed. Clone
// panics if this handle is already closed.
func (s *Sender) Clone() *Sender {
	return &Sender{tx: s.tx.Clone()}
}

// Close releases this handle. Closing the last handle lets blocked
// receives drain the channel and then fail with [ErrClosed].
func (s *Sender) Close() {
	s.tx.Close()
}
