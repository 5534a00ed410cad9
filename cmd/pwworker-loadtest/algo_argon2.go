//go:build !noargon2

package main

import (
	"context"

	"github.com/hasbyte1/password-worker/hashing"
	"github.com/hasbyte1/password-worker/worker"
)

func init() { runners["argon2id"] = runArgon2id }

func runArgon2id(ctx context.Context, env runEnv) (phaseStats, worker.Stats, error) {
	cfg, err := hashing.Argon2ConfigFromEnv()
	if err != nil {
		return phaseStats{}, worker.Stats{}, err
	}
	w, err := worker.NewFromConfig[hashing.Argon2Config](env.pool, hashing.Argon2id{Limits: cfg}, env.opts...)
	if err != nil {
		return phaseStats{}, worker.Stats{}, err
	}
	phase, err := drive(ctx, w, cfg, env.concurrency, env.ops)
	closeErr := w.Close()
	if err == nil {
		err = closeErr
	}
	return phase, w.Stats(), err
}
