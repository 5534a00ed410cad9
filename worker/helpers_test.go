package worker_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hasbyte1/password-worker/hashing"
	"github.com/hasbyte1/password-worker/worker"
)

// fakeConfig steers what fakeAlgorithm does for a single Hash call.
type fakeConfig struct {
	Block bool // wait for the gate to open
	Panic bool
}

// fakeAlgorithm is a cheap, controllable hashing.Algorithm.  Hash with
// Block set reports on started and then waits until open is closed.
type fakeAlgorithm struct {
	started chan struct{}
	open    chan struct{}
	once    sync.Once
}

func newFakeAlgorithm() *fakeAlgorithm {
	return &fakeAlgorithm{
		started: make(chan struct{}, 64),
		open:    make(chan struct{}),
	}
}

func (f *fakeAlgorithm) Driver() hashing.DriverName { return "fake" }

func (f *fakeAlgorithm) Hash(password string, cfg fakeConfig) (string, error) {
	if cfg.Panic {
		panic("fake: boom")
	}
	if cfg.Block {
		f.started <- struct{}{}
		<-f.open
	}
	if password == "" {
		return "", hashing.ErrInvalidOption
	}
	return "fake$" + password, nil
}

func (f *fakeAlgorithm) Verify(password, hash string) (bool, error) {
	if hash == "panic" {
		panic(errors.New("fake: verify boom"))
	}
	if !strings.HasPrefix(hash, "fake$") {
		return false, hashing.ErrAlgorithmMismatch
	}
	return hash == "fake$"+password, nil
}

// release opens the gate for every blocked and future Hash call.
func (f *fakeAlgorithm) release() { f.once.Do(func() { close(f.open) }) }

func (f *fakeAlgorithm) waitStarted(t *testing.T) {
	t.Helper()
	select {
	case <-f.started:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a blocking job to start")
	}
}

func newFakeWorker(t *testing.T, threads int, opts ...worker.Option) (*worker.Worker[fakeConfig], *fakeAlgorithm) {
	t.Helper()
	alg := newFakeAlgorithm()
	w, err := worker.New[fakeConfig](threads, alg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() {
		alg.release()
		_ = w.Close()
	})
	return w, alg
}

// waitFor polls cond until it holds or a few seconds pass.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

type result struct {
	hash string
	err  error
}

// hashAsync runs w.Hash in a goroutine and returns a channel for its result.
func hashAsync(w *worker.Worker[fakeConfig], password string, cfg fakeConfig) <-chan result {
	ch := make(chan result, 1)
	go func() {
		h, err := w.Hash(context.Background(), password, cfg)
		ch <- result{h, err}
	}()
	return ch
}

func receive(t *testing.T, ch <-chan result) result {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a result")
		return result{}
	}
}

// recordingObserver counts lifecycle events.
type recordingObserver struct {
	mu        sync.Mutex
	submitted map[worker.JobKind]int
	rejected  map[worker.JobKind]int
	started   map[worker.JobKind]int
	finished  map[worker.Outcome]int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{
		submitted: map[worker.JobKind]int{},
		rejected:  map[worker.JobKind]int{},
		started:   map[worker.JobKind]int{},
		finished:  map[worker.Outcome]int{},
	}
}

func (r *recordingObserver) JobSubmitted(kind worker.JobKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submitted[kind]++
}

func (r *recordingObserver) JobRejected(kind worker.JobKind, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected[kind]++
}

func (r *recordingObserver) JobStarted(kind worker.JobKind, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started[kind]++
}

func (r *recordingObserver) JobFinished(_ worker.JobKind, outcome worker.Outcome, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished[outcome]++
}
