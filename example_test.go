package anympsc_test

import (
	"fmt"

	anympsc "github.com/Eolu/any-mpsc"
)

func ExampleRecv() {
	tx, rx := anympsc.New()
	defer tx.Close()

	tx.Send("hello")
	tx.Send(42)

	s, _ := anympsc.Recv[string](rx)
	n, _ := anympsc.Recv[int](rx)
	fmt.Println(s, n)
	// Output: hello 42
}

func ExampleNewBuffered() {
	tx, rx := anympsc.NewBuffered()
	defer tx.Close()

	tx.Send(42)

	// The int does not match this request, so it is parked.
	_, err := anympsc.Recv[string](rx)
	if t, ok := anympsc.MismatchType(err); ok {
		fmt.Println("parked a", t)
	}

	// The right request finds it again.
	n, _ := anympsc.Recv[int](rx)
	fmt.Println("recovered", n)
	// Output:
	// parked a int
	// recovered 42
}

func ExampleRecvUntil() {
	type job struct{ ID int }

	tx, rx := anympsc.NewBuffered()

	go func() {
		tx.Send("noise")
		tx.Send(3.14)
		tx.Send(job{ID: 7})
		tx.Close()
	}()

	// Skips past the noise, parking it for later.
	j, _ := anympsc.RecvUntil[job](rx)
	fmt.Println("job", j.ID)

	s, _ := anympsc.RecvBuffered[string](rx)
	fmt.Println("parked:", s)
	// Output:
	// job 7
	// parked: noise
}

func ExampleRecvNoBuf() {
	tx, rx := anympsc.NewBuffered()
	defer tx.Close()

	tx.Send("stray")

	// The bypass variant hands the mismatch straight back.
	_, err := anympsc.RecvNoBuf[int](rx)
	if v, ok := anympsc.MismatchValue(err); ok {
		fmt.Println("got back:", v)
	}
	fmt.Println("buffered:", rx.Buffer().Len())
	// Output:
	// got back: stray
	// buffered: 0
}

func ExampleSender_Clone() {
	tx, rx := anympsc.New()

	tx2 := tx.Clone()
	go func() {
		tx2.Send(1)
		tx2.Close()
	}()
	tx.Close()

	n, _ := anympsc.Recv[int](rx)
	fmt.Println(n)
	// Output: 1
}
