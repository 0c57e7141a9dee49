package anympsc

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/Eolu/any-mpsc/pipe"
)

// Channel-level failures keep the same identities at both layers, so
// errors.Is works whether a caller matched against this package or
// against [pipe] directly.
var (
	// ErrClosed reports that the channel is permanently closed: either
	// the receiver was closed, or every sender handle was closed and the
	// queue has been drained.
	ErrClosed = pipe.ErrClosed

	// ErrTimeout reports that a bounded-wait receive expired before a
	// value arrived. A value arriving later is lost to that call only;
	// the caller may simply retry.
	ErrTimeout = pipe.ErrTimeout

	// ErrEmpty reports that a non-blocking receive found nothing queued
	// while senders remain. Transient.
	ErrEmpty = pipe.ErrEmpty

	// ErrBufferEmpty reports that [RecvBuffered] found nothing parked for
	// the requested type. It says nothing about the channel.
	ErrBufferEmpty = errors.New("anympsc: no buffered value of the requested type")
)

// WrongTypeError reports a type mismatch on an unbuffered path. Value
// holds the original type-erased value; it has not been stored anywhere,
// so disposing of it or re-injecting it is the caller's responsibility.
type WrongTypeError struct {
	Value any
}

func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("anympsc: received %T, not the requested type", e.Value)
}

// MismatchError reports a type mismatch on a buffered path. The value has
// already been parked in the retry buffer; only its runtime type travels
// in the error. Retrieve the value by receiving with the matching type.
type MismatchError struct {
	Type reflect.Type
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("anympsc: received %v, not the requested type; value buffered", e.Type)
}

// IsMismatch reports whether err (or any error in its chain) is a type
// mismatch from either path.
func IsMismatch(err error) bool {
	if err == nil {
		return false
	}
	var wt *WrongTypeError
	var mm *MismatchError
	return errors.As(err, &wt) || errors.As(err, &mm)
}

// MismatchType extracts the runtime type carried by the first
// [*MismatchError] in err's chain. Returns false if there is none.
func MismatchType(err error) (reflect.Type, bool) {
	if err == nil {
		return nil, false
	}
	var mm *MismatchError
	if errors.As(err, &mm) {
		return mm.Type, true
	}
	return nil, false
}

// MismatchValue extracts the value carried by the first [*WrongTypeError]
// in err's chain. Returns false if there is none.
func MismatchValue(err error) (any, bool) {
	if err == nil {
		return nil, false
	}
	var wt *WrongTypeError
	if errors.As(err, &wt) {
		return wt.Value, true
	}
	return nil, false
}
