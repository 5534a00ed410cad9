//go:build !nobcrypt

package worker

import "github.com/hasbyte1/password-worker/hashing"

// NewBcrypt starts a pool that hashes with bcrypt.
//
//	w, err := worker.NewBcrypt(4)
//	hash, err := w.Hash(ctx, "hunter2", hashing.DefaultBcryptConfig())
func NewBcrypt(maxThreads int, opts ...Option) (*Worker[hashing.BcryptConfig], error) {
	return New[hashing.BcryptConfig](maxThreads, hashing.Bcrypt{}, opts...)
}
