//go:build !noargon2

package hashing

import (
	"fmt"

	"github.com/hasbyte1/password-worker/internal/envconf"
)

// Argon2ConfigFromEnv returns [DefaultArgon2Config] overridden by the
// following variables when set:
//
//   - PWWORKER_ARGON2_MEMORY_KIB (8 MiB .. 1 GiB)
//   - PWWORKER_ARGON2_TIME       (1 .. 20)
//   - PWWORKER_ARGON2_THREADS    (1 .. 64)
//   - PWWORKER_ARGON2_KEY_LEN    (16 .. 64)
//   - PWWORKER_ARGON2_SALT_LEN   (8 .. 64)
func Argon2ConfigFromEnv() (Argon2Config, error) {
	cfg := DefaultArgon2Config()

	if u, ok, err := envconf.Uint32("PWWORKER_ARGON2_MEMORY_KIB", 8*1024, 1024*1024); err != nil {
		return Argon2Config{}, err
	} else if ok {
		cfg.Memory = u
	}
	if u, ok, err := envconf.Uint32("PWWORKER_ARGON2_TIME", 1, 20); err != nil {
		return Argon2Config{}, err
	} else if ok {
		cfg.Time = u
	}
	if u, ok, err := envconf.Uint8("PWWORKER_ARGON2_THREADS", 1, 64); err != nil {
		return Argon2Config{}, err
	} else if ok {
		cfg.Threads = u
	}
	if u, ok, err := envconf.Uint32("PWWORKER_ARGON2_KEY_LEN", 16, 64); err != nil {
		return Argon2Config{}, err
	} else if ok {
		cfg.KeyLen = u
	}
	if u, ok, err := envconf.Uint32("PWWORKER_ARGON2_SALT_LEN", 8, 64); err != nil {
		return Argon2Config{}, err
	} else if ok {
		cfg.SaltLen = u
	}

	if err := cfg.Validate(); err != nil {
		return Argon2Config{}, fmt.Errorf("argon2 config from env: %w", err)
	}
	return cfg, nil
}
