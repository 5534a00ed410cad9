//go:build !noargon2

package worker

import "github.com/hasbyte1/password-worker/hashing"

// NewArgon2id starts a pool that hashes with Argon2id.  Verification uses
// [hashing.DefaultArgon2Config] as its limits, so a stored hash whose
// parameters exceed twice the defaults is rejected before any key
// derivation.  Use New with a configured [hashing.Argon2id] for other limits.
func NewArgon2id(maxThreads int, opts ...Option) (*Worker[hashing.Argon2Config], error) {
	alg := hashing.Argon2id{Limits: hashing.DefaultArgon2Config()}
	return New[hashing.Argon2Config](maxThreads, alg, opts...)
}
