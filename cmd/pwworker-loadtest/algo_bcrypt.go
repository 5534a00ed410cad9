//go:build !nobcrypt

package main

import (
	"context"

	"github.com/hasbyte1/password-worker/hashing"
	"github.com/hasbyte1/password-worker/worker"
)

func init() { runners["bcrypt"] = runBcrypt }

func runBcrypt(ctx context.Context, env runEnv) (phaseStats, worker.Stats, error) {
	cfg, err := hashing.BcryptConfigFromEnv()
	if err != nil {
		return phaseStats{}, worker.Stats{}, err
	}
	w, err := worker.NewFromConfig[hashing.BcryptConfig](env.pool, hashing.Bcrypt{}, env.opts...)
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
