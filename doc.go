// Package anympsc provides dynamically typed multi-producer,
// single-consumer channels.
//
// A normal channel carries values of one fixed type. anympsc lets values
// of many types travel together over a single FIFO channel, type-erased,
// while each receive call asks for a specific type. The buffered receiver
// guarantees that a value whose type did not match one call is never
// lost: it is parked in a per-type retry buffer and handed to a later
// call that asks for the matching type, in original arrival order.
//
// # Sending
//
// [New] and [NewBuffered] return a [Sender] paired with a receiver.
// [Sender.Send] accepts a value of any type, never blocks, and fails only
// once the receiving end is gone. [Sender.Clone] produces additional
// handles for multi-producer use; the channel closes for receiving when
// every handle is closed.
//
// # Receiving
//
// Go methods cannot introduce type parameters, so receives are top-level
// generic functions over the receiver handle:
//
//	tx, rx := anympsc.NewBuffered()
//	tx.Send(42)
//	tx.Send("hello")
//
//	n, err := anympsc.Recv[int](rx)    // 42
//	s, err := anympsc.Recv[string](rx) // "hello"
//
// [Recv], [RecvTimeout], and [TryRecv] cover the blocking, bounded-wait,
// and non-blocking policies and work on both receiver kinds. On a
// [*BufferedReceiver] they check the retry buffer before touching the
// channel, and park any mismatched channel value; the failure is a
// [*MismatchError] naming the stray's type. On a [*Receiver] nothing is
// parked and the mismatched value rides back to the caller in a
// [*WrongTypeError].
//
// Type matching is exact runtime identity: receive with the concrete type
// that was sent. An interface type parameter never matches.
//
// # Buffered receive modes
//
// The buffered receiver adds three more families:
//
//   - [RecvLive], [RecvTimeoutLive], [TryRecvLive]: skip the buffer check
//     and always pull from the channel, still parking mismatches. This
//     deliberately drains the channel past stale parked entries.
//   - [RecvNoBuf], [RecvTimeoutNoBuf], [TryRecvNoBuf]: bypass the buffer
//     entirely; mismatches come back in the error, unparked, exactly as
//     on an unbuffered [*Receiver].
//   - [RecvBuffered]: buffer only; fails with [ErrBufferEmpty] and never
//     touches the channel.
//
// [RecvUntil] loops a buffered receive until a value of the requested
// type arrives, parking every stray along the way; each failed attempt
// consumes one channel value, so the loop always makes progress. It has
// no deadline of its own and unblocks only when a match arrives or the
// channel closes. [RecvUntilTimeout] runs the same loop under a single
// deadline spanning all attempts.
//
// # Errors
//
// Channel failures are sentinels: [ErrClosed] (permanent), [ErrTimeout]
// (bounded wait expired), [ErrEmpty] (non-blocking miss), and
// [ErrBufferEmpty] (buffer-only miss). Mismatches are structured:
// inspect them with [IsMismatch], [MismatchType], and [MismatchValue].
// No operation panics on mismatch or closure; panics are reserved for API
// misuse such as sending an untyped nil or cloning a closed handle.
//
// # Ordering and ownership
//
// Per-type FIFO holds end-to-end: values of the same type are observed in
// send order whether they pass straight through or detour through the
// buffer. No ordering holds between different types. The Live modes can
// observe newer values of a type while older ones sit parked; that is
// their point.
//
// Any number of goroutines may send. Exactly one goroutine owns a
// [*Receiver] or [*BufferedReceiver] at a time; this single-consumer
// discipline is documented, not enforced, and is why the retry buffer
// needs no lock.
//
// # Subpackages
//
// The [github.com/Eolu/any-mpsc/pipe] subpackage is the underlying
// unbounded MPSC channel; [github.com/Eolu/any-mpsc/typebuf] is the
// type-keyed retry buffer. Both are usable on their own.
package anympsc
