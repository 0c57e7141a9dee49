package pipe

// fifo is a slice-backed queue with amortized O(1) push and pop.
// Popped slots are zeroed so dequeued values do not outlive their stay,
// and the backing array is compacted once the dead prefix dominates it.
type fifo[T any] struct {
	buf  []T
	head int
}

func (f *fifo[T]) push(v T) {
	if f.head > 32 && 2*f.head >= len(f.buf) {
		f.compact()
	}
	f.buf = append(f.buf, v)
}

func (f *fifo[T]) pop() (T, bool) {
	var zero T
	if f.head == len(f.buf) {
		return zero, false
	}
	v := f.buf[f.head]
	f.buf[f.head] = zero
	f.head++
	if f.head == len(f.buf) {
		f.buf = f.buf[:0]
		f.head = 0
	}
	return v, true
}

func (f *fifo[T]) len() int {
	return len(f.buf) - f.head
}

func (f *fifo[T]) reset() {
	var zero T
	for i := f.head; i < len(f.buf); i++ {
		f.buf[i] = zero
	}
	f.buf = f.buf[:0]
	f.head = 0
}

func (f *fifo[T]) compact() {
	n := copy(f.buf, f.buf[f.head:])
	var zero T
	for i := n; i < len(f.buf); i++ {
		f.buf[i] = zero
	}
	f.buf = f.buf[:n]
	f.head = 0
}
