// Package typebuf provides a FIFO spillover buffer keyed by runtime type.
//
// A [Buffer] maps each concrete dynamic type to an ordered queue of
// type-erased values. Values of the same type come back out in the order
// they went in; queues for different types are fully independent, and a
// [Buffer.Take] for one type never touches another type's queue.
//
// Buffer does no locking. It is designed for exclusive ownership by a
// single consumer goroutine, which by contract is the only place it is
// ever touched.
package typebuf

import "reflect"

// Buffer holds type-erased values grouped by their dynamic type, each
// group in FIFO order. The zero value is not usable; call [New].
type Buffer struct {
	queues map[reflect.Type][]any
	size   int
}

// New returns an empty Buffer.
func New() *Buffer {
	return &Buffer{queues: make(map[reflect.Type][]any)}
}

// Insert appends v to the back of the queue for v's dynamic type.
// Insert panics on an untyped nil: nil has no dynamic type to key on.
func (b *Buffer) Insert(v any) {
	if v == nil {
		panic("typebuf: Insert of untyped nil")
	}
	t := reflect.TypeOf(v)
	b.queues[t] = append(b.queues[t], v)
	b.size++
}

// Take pops the front of exactly t's queue. It reports false when that
// queue is empty; it never consults queues of other types.
func (b *Buffer) Take(t reflect.Type) (any, bool) {
	q := b.queues[t]
	if len(q) == 0 {
		return nil, false
	}
	v := q[0]
	q[0] = nil
	if len(q) == 1 {
		delete(b.queues, t)
	} else {
		b.queues[t] = q[1:]
	}
	b.size--
	return v, true
}

// Len reports the total number of buffered values across all types.
func (b *Buffer) Len() int {
	return b.size
}

// LenOf reports how many values are buffered for exactly type t.
func (b *Buffer) LenOf(t reflect.Type) int {
	return len(b.queues[t])
}

// Types lists the types that currently have at least one buffered value,
// in no particular order.
func (b *Buffer) Types() []reflect.Type {
	out := make([]reflect.Type, 0, len(b.queues))
	for t := range b.queues {
		out = append(out, t)
	}
	return out
}

// Drop discards every buffered value of type t and reports how many were
// discarded.
func (b *Buffer) Drop(t reflect.Type) int {
	n := len(b.queues[t])
	if n > 0 {
		delete(b.queues, t)
		b.size -= n
	}
	return n
}

// Reset discards all buffered values and reports how many were discarded.
func (b *Buffer) Reset() int {
	n := b.size
	b.queues = make(map[reflect.Type][]any)
	b.size = 0
	return n
}
