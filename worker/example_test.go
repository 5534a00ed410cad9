//go:build !nobcrypt

package worker_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/hasbyte1/password-worker/hashing"
	"github.com/hasbyte1/password-worker/worker"
)

func Example() {
	w, err := worker.NewBcrypt(2)
	if err != nil {
		panic(err)
	}
	defer w.Close()

	ctx := context.Background()
	hash, err := w.Hash(ctx, "hunter2", hashing.BcryptConfig{Cost: 4})
	if err != nil {
		panic(err)
	}

	ok, _ := w.Verify(ctx, "hunter2", hash)
	fmt.Println("hunter2:", ok)
	ok, _ = w.Verify(ctx, "hunter3", hash)
	fmt.Println("hunter3:", ok)
	// Output:
	// hunter2: true
	// hunter3: false
}

func ExampleWorker_Clone() {
	w, _ := worker.NewBcrypt(1)
	c := w.Clone()

	_ = w.Close()
	_, err := c.Hash(context.Background(), "still works", hashing.BcryptConfig{Cost: 4})
	fmt.Println(err)

	_ = c.Close()
	_, err = c.Hash(context.Background(), "closed", hashing.BcryptConfig{Cost: 4})
	fmt.Println(errors.Is(err, worker.ErrQueueClosed))
	// Output:
	// <nil>
	// true
}

func ExampleWithOverflow() {
	w, _ := worker.NewBcrypt(2,
		worker.WithQueueSize(64),
		worker.WithOverflow(worker.OverflowReject),
	)
	defer w.Close()

	fmt.Println(w.QueueCapacity())
	// Output: 64
}
