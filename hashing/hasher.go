package hashing

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// DriverName identifies a hashing algorithm.
type DriverName string

const (
	// DriverBcrypt selects the bcrypt variant.
	DriverBcrypt DriverName = "bcrypt"
	// DriverArgon2i selects the Argon2i variant.
	DriverArgon2i DriverName = "argon2i"
	// DriverArgon2id selects the Argon2id variant (recommended for new systems).
	DriverArgon2id DriverName = "argon2id"
)

// Algorithm is the capability implemented by every hashing variant.
//
// C is the variant's configuration shape.  It is supplied on every Hash call
// rather than at construction, so a single Algorithm value can serve callers
// with different cost settings.  Verify never needs C: every hash string
// produced by Hash embeds the parameters it was made with.
//
// Implementations must be safe for concurrent use and must never panic on
// malformed input.  Verify returns (false, nil) on mismatch and a non-nil
// error only when the hash cannot be checked at all.
type Algorithm[C any] interface {
	// Driver returns the DriverName implemented by this algorithm.
	Driver() DriverName

	// Hash derives a self-describing hash string from password using cfg.
	// A fresh salt is generated for every call.
	Hash(password string, cfg C) (string, error)

	// Verify reports whether password matches hash.  Comparison is done in
	// constant time.
	Verify(password, hash string) (bool, error)
}

// HashInfo carries metadata parsed from an encoded hash string.
type HashInfo struct {
	// Driver is the hashing algorithm that produced the hash.
	Driver DriverName

	// Params holds algorithm-specific parameters extracted from the hash string.
	//
	// For bcrypt:
	//   "cost" → int
	//
	// For Argon2i and Argon2id:
	//   "version" → int
	//   "memory"  → uint32 (KiB)
	//   "time"    → uint32
	//   "threads" → uint8
	//   "key_len" → uint32
	Params map[string]any
}

// DetectDriver inspects a hash string and returns the [DriverName] that
// produced it.  It is a prefix heuristic and does not validate the hash.
//
// The second return value is false when the format is not recognised.
func DetectDriver(hash string) (DriverName, bool) {
	switch {
	case strings.HasPrefix(hash, "$argon2id$"):
		return DriverArgon2id, true
	case strings.HasPrefix(hash, "$argon2i$"):
		return DriverArgon2i, true
	// bcrypt hashes start with $2a$, $2b$, or $2y$
	case strings.HasPrefix(hash, "$2a$"),
		strings.HasPrefix(hash, "$2b$"),
		strings.HasPrefix(hash, "$2y$"):
		return DriverBcrypt, true
	default:
		return "", false
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Compiled-in variants
// ──────────────────────────────────────────────────────────────────────────────

type verifyFunc func(password, hash string) (bool, error)

var (
	registryMu sync.RWMutex
	verifiers  = make(map[DriverName]verifyFunc)
)

// register is called from the init function of every variant file, so the
// set of registered drivers reflects the build tags in effect.
func register(name DriverName, fn verifyFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	verifiers[name] = fn
}

// Drivers returns the variants compiled into this binary, sorted by name.
func Drivers() []DriverName {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]DriverName, 0, len(verifiers))
	for name := range verifiers {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Enabled reports whether the named variant is compiled in.
func Enabled(name DriverName) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := verifiers[name]
	return ok
}

// VerifyAny verifies password against hash using whichever compiled-in
// variant produced it.  This is the path to use while hashes from several
// algorithms coexist, e.g. during a bcrypt to Argon2id migration.
//
// Returns [ErrInvalidHash] if the format is unrecognised and
// [ErrDriverNotCompiled] if the producing variant was excluded at build time.
func VerifyAny(password, hash string) (bool, error) {
	name, ok := DetectDriver(hash)
	if !ok {
		return false, ErrInvalidHash
	}
	registryMu.RLock()
	fn, ok := verifiers[name]
	registryMu.RUnlock()
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrDriverNotCompiled, name)
	}
	return fn(password, hash)
}
