package anympsc_test

import (
	"sync"
	"testing"
	"time"

	anympsc "github.com/Eolu/any-mpsc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Four producers each send an interleaved run of their own payload type;
// one consumer demultiplexes by type and must see every per-type
// sub-stream intact and in order.
func TestStress_TypedSubStreams(t *testing.T) {
	const perProducer = 300

	type alpha struct{ Seq int }
	type beta struct{ Seq int }
	type gamma struct{ Seq int }
	type delta struct{ Seq int }

	tx, rx := anympsc.NewBuffered()

	var wg sync.WaitGroup
	send := func(h *anympsc.Sender, mk func(int) any) {
		defer wg.Done()
		defer h.Close()
		for i := 0; i < perProducer; i++ {
			require.NoError(t, h.Send(mk(i)))
		}
	}
	wg.Add(4)
	go send(tx.Clone(), func(i int) any { return alpha{i} })
	go send(tx.Clone(), func(i int) any { return beta{i} })
	go send(tx.Clone(), func(i int) any { return gamma{i} })
	go send(tx.Clone(), func(i int) any { return delta{i} })
	tx.Close()

	for i := 0; i < perProducer; i++ {
		a, err := anympsc.RecvUntil[alpha](rx)
		require.NoError(t, err)
		require.Equal(t, i, a.Seq)
	}
	for i := 0; i < perProducer; i++ {
		b, err := anympsc.RecvUntil[beta](rx)
		require.NoError(t, err)
		require.Equal(t, i, b.Seq)
	}
	wg.Wait()

	// Everything not yet requested is either parked or still queued, in
	// per-type order.
	for i := 0; i < perProducer; i++ {
		g, err := anympsc.RecvUntil[gamma](rx)
		require.NoError(t, err)
		require.Equal(t, i, g.Seq)
		d, err := anympsc.RecvUntil[delta](rx)
		require.NoError(t, err)
		require.Equal(t, i, d.Seq)
	}

	assert.Equal(t, 0, rx.Buffer().Len())
	assert.Equal(t, 0, rx.Pending())
}

// A consumer blocked in RecvUntil while producers keep sending strays
// must unblock the moment the wanted type arrives.
func TestStress_RecvUntilUnderLoad(t *testing.T) {
	tx, rx := anympsc.NewBuffered()

	stop := make(chan struct{})
	h := tx.Clone()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer h.Close()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			if h.Send(i) != nil {
				return
			}
		}
	}()

	go func() {
		time.Sleep(30 * time.Millisecond)
		tx.Send("needle")
		tx.Close()
	}()

	s, err := anympsc.RecvUntil[string](rx)
	require.NoError(t, err)
	assert.Equal(t, "needle", s)

	close(stop)
	wg.Wait()

	// Every stray the loop consumed is still retrievable in order.
	prev := -1
	for {
		v, err := anympsc.RecvBuffered[int](rx)
		if err != nil {
			break
		}
		require.Greater(t, v, prev)
		prev = v
	}
}

func TestStress_ConcurrentSendersSurviveClose(t *testing.T) {
	const producers = 16

	tx, rx := anympsc.New()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		h := tx.Clone()
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer h.Close()
			for i := 0; i < 100; i++ {
				if h.Send(i) != nil {
					return
				}
			}
		}()
	}
	tx.Close()

	received := 0
	for {
		_, err := anympsc.Recv[int](rx)
		if err != nil {
			break
		}
		received++
	}
	wg.Wait()
	assert.Equal(t, producers*100, received)
}
