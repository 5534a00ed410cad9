package worker

import "context"

// outcome is the single value carried by a completion channel.
type outcome[T any] struct {
	val T
	err error
}

// responder is the producer end of a per-job completion channel.  Only the
// pool goroutine that dequeued the job touches it, and it is used at most
// once: send delivers a value and closes, drop closes without one.
//
// The channel has capacity 1, so send never blocks even when the caller has
// stopped waiting.
type responder[T any] struct {
	ch   chan outcome[T]
	used bool
}

func newCompletion[T any]() (*responder[T], <-chan outcome[T]) {
	ch := make(chan outcome[T], 1)
	return &responder[T]{ch: ch}, ch
}

func (r *responder[T]) send(v T, err error) {
	if r.used {
		return
	}
	r.used = true
	r.ch <- outcome[T]{val: v, err: err}
	close(r.ch)
}

func (r *responder[T]) drop() {
	if r.used {
		return
	}
	r.used = true
	close(r.ch)
}

// await parks the calling goroutine until the job resolves or ctx ends.
// A channel closed without a value resolves to ErrWorkerGone.  Giving up on
// ctx does not stop the computation; its result is discarded.
func await[T any](ctx context.Context, ch <-chan outcome[T]) (T, error) {
	var zero T
	select {
	case o, ok := <-ch:
		if !ok {
			return zero, ErrWorkerGone
		}
		return o.val, o.err
	case <-ctx.Done():
		// Prefer a result that raced with cancellation.
		select {
		case o, ok := <-ch:
			if ok {
				return o.val, o.err
			}
		default:
		}
		return zero, ctx.Err()
	}
}
