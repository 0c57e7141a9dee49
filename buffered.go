package anympsc

import (
	"errors"
	"reflect"
	"time"

	"github.com/Eolu/any-mpsc/pipe"
	"github.com/Eolu/any-mpsc/typebuf"
)

// BufferedReceiver is the consumer half of a dynamically typed channel
// with a per-type retry buffer. When a receive pulls a value whose
// dynamic type does not match the request, the value is parked in the
// buffer keyed by its type; a later receive for that type pops it in
// original arrival order. Values of one type therefore form an ordered
// sub-stream regardless of what else is multiplexed over the channel.
//
// A BufferedReceiver holds only the channel's consuming end and the
// buffer. Each receive call is independent; there are no pending
// continuations. It is owned by exactly one goroutine at a time, which is
// why the buffer needs no lock.
type BufferedReceiver struct {
	rx  *pipe.Receiver[any]
	buf *typebuf.Buffer
}

func (br *BufferedReceiver) takeBuffered(t reflect.Type) (any, bool) {
	return br.buf.Take(t)
}

func (br *BufferedReceiver) pull(p waitPolicy, d time.Duration) (any, error) {
	switch p {
	case waitBounded:
		return br.rx.RecvTimeout(d)
	case waitNone:
		return br.rx.TryRecv()
	default:
		return br.rx.Recv()
	}
}

func (br *BufferedReceiver) park(v any) bool {
	br.buf.Insert(v)
	return true
}

// Buffer exposes the retry buffer for diagnostics, draining, and
// re-injection of values recovered from [*WrongTypeError]. The receiver's
// single-consumer discipline extends to the buffer: touch it only from
// the consuming goroutine.
func (br *BufferedReceiver) Buffer() *typebuf.Buffer {
	return br.buf
}

// Pending reports how many values are queued in the underlying channel,
// not counting parked values; see [typebuf.Buffer.Len] for those.
func (br *BufferedReceiver) Pending() int {
	return br.rx.Len()
}

// Close drops the consuming end and discards both queued and parked
// values. Subsequent sends fail with [ErrClosed]; subsequent
// [RecvBuffered] calls fail with [ErrBufferEmpty].
func (br *BufferedReceiver) Close() {
	br.rx.Close()
	br.buf.Reset()
}

// RecvLive is [Recv] without the buffer check: it always pulls from the
// channel, deliberately skipping parked values of T. Mismatches are still
// parked. Useful for draining the channel past stale buffered entries.
func RecvLive[T any](br *BufferedReceiver) (T, error) {
	return receive[T](br, false, true, waitBlock, 0)
}

// RecvTimeoutLive is [RecvTimeout] without the buffer check. Mismatches
// are still parked.
func RecvTimeoutLive[T any](br *BufferedReceiver, d time.Duration) (T, error) {
	return receive[T](br, false, true, waitBounded, d)
}

// TryRecvLive is [TryRecv] without the buffer check. Mismatches are still
// parked.
func TryRecvLive[T any](br *BufferedReceiver) (T, error) {
	return receive[T](br, false, true, waitNone, 0)
}

// RecvNoBuf pulls from the channel with the buffer bypassed entirely: a
// mismatched value is returned to the caller inside a [*WrongTypeError]
// and is not parked, exactly as on an unbuffered [*Receiver].
func RecvNoBuf[T any](br *BufferedReceiver) (T, error) {
	return receive[T](br, false, false, waitBlock, 0)
}

// RecvTimeoutNoBuf is [RecvNoBuf] with a bounded wait.
func RecvTimeoutNoBuf[T any](br *BufferedReceiver, d time.Duration) (T, error) {
	return receive[T](br, false, false, waitBounded, d)
}

// TryRecvNoBuf is [RecvNoBuf] without blocking.
func TryRecvNoBuf[T any](br *BufferedReceiver) (T, error) {
	return receive[T](br, false, false, waitNone, 0)
}

// RecvBuffered pops a parked value of type T. It fails with
// [ErrBufferEmpty] when none is parked and never touches the channel, so
// it cannot block and cannot disturb queued values of other types.
func RecvBuffered[T any](br *BufferedReceiver) (T, error) {
	if v, ok := br.buf.Take(typeOf[T]()); ok {
		return v.(T), nil
	}
	var zero T
	return zero, ErrBufferEmpty
}

// RecvUntil receives repeatedly until a value of type T turns up. Each
// mismatch has already parked its value, so the loop drains one channel
// value per attempt and always makes progress; it has no backoff and no
// iteration cap. Any failure other than a mismatch stops the loop and is
// returned, which makes closing the senders the way to cancel it.
func RecvUntil[T any](br *BufferedReceiver) (T, error) {
	for {
		v, err := Recv[T](br)
		if err == nil {
			return v, nil
		}
		var mm *MismatchError
		if errors.As(err, &mm) {
			continue
		}
		var zero T
		return zero, err
	}
}

// RecvUntilTimeout is [RecvUntil] under a single deadline spanning all
// attempts. Mismatches before the deadline are parked as usual; once the
// budget is spent the call fails with [ErrTimeout].
func RecvUntilTimeout[T any](br *BufferedReceiver, d time.Duration) (T, error) {
	deadline := time.Now().Add(d)
	for {
		v, err := RecvTimeout[T](br, time.Until(deadline))
		if err == nil {
			return v, nil
		}
		var mm *MismatchError
		if errors.As(err, &mm) {
			continue
		}
		var zero T
		return zero, err
	}
}
