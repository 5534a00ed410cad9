package worker

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hasbyte1/password-worker/hashing"
)

// JobKind names the operation a job performs.
type JobKind string

const (
	KindHash   JobKind = "hash"
	KindVerify JobKind = "verify"
)

// job is a closed interface; only the types in this file implement it.
//
// Lifecycle: created by a Worker method, queued by pool.submit, dispatched
// to exactly one pool goroutine, then either run (completed) or dropped
// (abandoned).
type job interface {
	meta() *jobMeta
	// run executes the job and sends its result.  The returned error is the
	// one delivered to the caller, for accounting only.
	run() error
	// fail delivers err as an AlgorithmError unless a result was already sent.
	fail(err error)
	// drop abandons the job without a result.
	drop()
}

type jobMeta struct {
	id       string
	kind     JobKind
	driver   hashing.DriverName
	queuedAt time.Time
}

func newJobMeta(kind JobKind, driver hashing.DriverName) jobMeta {
	return jobMeta{id: ulid.Make().String(), kind: kind, driver: driver}
}

func (m *jobMeta) meta() *jobMeta { return m }

func (m *jobMeta) algorithmError(err error) error {
	return &AlgorithmError{Op: m.kind, Driver: m.driver, JobID: m.id, Err: err}
}

// ──────────────────────────────────────────────────────────────────────────────
// Hash
// ──────────────────────────────────────────────────────────────────────────────

type hashJob[C any] struct {
	jobMeta
	alg      hashing.Algorithm[C]
	password string
	cfg      C
	resp     *responder[string]
}

func newHashJob[C any](alg hashing.Algorithm[C], password string, cfg C) (*hashJob[C], <-chan outcome[string]) {
	resp, ch := newCompletion[string]()
	return &hashJob[C]{
		jobMeta:  newJobMeta(KindHash, alg.Driver()),
		alg:      alg,
		password: password,
		cfg:      cfg,
		resp:     resp,
	}, ch
}

func (j *hashJob[C]) run() error {
	hash, err := j.alg.Hash(j.password, j.cfg)
	if err != nil {
		err = j.algorithmError(err)
		j.resp.send("", err)
		return err
	}
	j.resp.send(hash, nil)
	return nil
}

func (j *hashJob[C]) fail(err error) { j.resp.send("", j.algorithmError(err)) }

func (j *hashJob[C]) drop() { j.resp.drop() }

// ──────────────────────────────────────────────────────────────────────────────
// Verify
// ──────────────────────────────────────────────────────────────────────────────

// verifier is the half of hashing.Algorithm a verify job needs; it keeps
// verifyJob free of the config type parameter.
type verifier interface {
	Driver() hashing.DriverName
	Verify(password, hash string) (bool, error)
}

type verifyJob struct {
	jobMeta
	alg      verifier
	password string
	hash     string
	resp     *responder[bool]
}

func newVerifyJob(alg verifier, password, hash string) (*verifyJob, <-chan outcome[bool]) {
	resp, ch := newCompletion[bool]()
	return &verifyJob{
		jobMeta:  newJobMeta(KindVerify, alg.Driver()),
		alg:      alg,
		password: password,
		hash:     hash,
		resp:     resp,
	}, ch
}

func (j *verifyJob) run() error {
	ok, err := j.alg.Verify(j.password, j.hash)
	if err != nil {
		err = j.algorithmError(err)
		j.resp.send(false, err)
		return err
	}
	j.resp.send(ok, nil)
	return nil
}

func (j *verifyJob) fail(err error) { j.resp.send(false, j.algorithmError(err)) }

func (j *verifyJob) drop() { j.resp.drop() }

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("%w: %w", ErrJobPanicked, err)
	}
	return fmt.Errorf("%w: %v", ErrJobPanicked, r)
}
