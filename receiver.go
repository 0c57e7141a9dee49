package anympsc

import (
	"reflect"
	"time"

	"github.com/Eolu/any-mpsc/pipe"
)

// Receiver is the unbuffered consumer half of a dynamically typed
// channel. A mismatched receive returns the original value to the caller
// inside a [*WrongTypeError] and stores nothing, for callers that want
// zero buffering overhead and will dispose of or re-route strays
// themselves.
//
// A Receiver is owned by exactly one goroutine at a time.
type Receiver struct {
	rx *pipe.Receiver[any]
}

// Pending reports how many values are queued in the underlying channel.
func (r *Receiver) Pending() int {
	return r.rx.Len()
}

// Close drops the consuming end. Queued values are discarded and
// subsequent sends fail with [ErrClosed].
func (r *Receiver) Close() {
	r.rx.Close()
}

// A Source is a consumer handle the generic receive functions can pull
// from: either a [*Receiver] or a [*BufferedReceiver]. The interface is
// sealed.
type Source interface {
	takeBuffered(t reflect.Type) (any, bool)
	pull(p waitPolicy, d time.Duration) (any, error)
	park(v any) bool
}

type waitPolicy int

const (
	waitBlock waitPolicy = iota
	waitBounded
	waitNone
)

func (r *Receiver) takeBuffered(reflect.Type) (any, bool) { return nil, false }

func (r *Receiver) pull(p waitPolicy, d time.Duration) (any, error) {
	switch p {
	case waitBounded:
		return r.rx.RecvTimeout(d)
	case waitNone:
		return r.rx.TryRecv()
	default:
		return r.rx.Recv()
	}
}

func (r *Receiver) park(any) bool { return false }

// typeOf is the runtime identity a receive call requests. Matching is
// exact: an interface type parameter never equals the concrete dynamic
// type of a sent value, so receives must name concrete types.
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// receive is the engine behind every typed receive: optional buffer
// check, one pull from the channel under the requested wait policy, then
// exact dynamic-type matching with the mode's mismatch disposition.
func receive[T any](src Source, checkBuf, parkMismatch bool, p waitPolicy, d time.Duration) (T, error) {
	var zero T
	want := typeOf[T]()
	if checkBuf {
		if v, ok := src.takeBuffered(want); ok {
			return v.(T), nil
		}
	}
	v, err := src.pull(p, d)
	if err != nil {
		return zero, err
	}
	if got := reflect.TypeOf(v); got != want {
		if parkMismatch && src.park(v) {
			return zero, &MismatchError{Type: got}
		}
		return zero, &WrongTypeError{Value: v}
	}
	return v.(T), nil
}

// Recv returns the next value of type T, blocking until one arrives or
// the channel closes.
//
// On a [*BufferedReceiver] a parked value of T is preferred over the
// channel, and a mismatched channel value is parked and reported as a
// [*MismatchError] carrying its type. On a [*Receiver] a mismatch is
// returned directly inside a [*WrongTypeError].
func Recv[T any](src Source) (T, error) {
	return receive[T](src, true, true, waitBlock, 0)
}

// RecvTimeout behaves like [Recv] but waits at most d for the channel.
// The buffer check, when src is buffered, happens before the wait and is
// not subject to it. An expired wait is reported as [ErrTimeout].
func RecvTimeout[T any](src Source, d time.Duration) (T, error) {
	return receive[T](src, true, true, waitBounded, d)
}

// TryRecv behaves like [Recv] without blocking: if the buffer (when
// present) holds nothing of type T and the channel has nothing queued, it
// fails with [ErrEmpty].
func TryRecv[T any](src Source) (T, error) {
	return receive[T](src, true, true, waitNone, 0)
}
