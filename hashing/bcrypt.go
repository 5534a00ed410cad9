//go:build !nobcrypt

package hashing

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

func init() { register(DriverBcrypt, Bcrypt{}.Verify) }

const (
	// DefaultBcryptCost is the recommended work factor for bcrypt.
	// At cost 12, hashing takes approximately 250 ms on a modern server CPU,
	// which satisfies OWASP ASVS Level 1 (≥ 10) and Level 2 (≥ 12).
	DefaultBcryptCost = 12
)

// BcryptConfig is the per-call configuration of [Bcrypt].
type BcryptConfig struct {
	// Cost is the bcrypt work factor (logarithmic).
	// Valid range: [bcrypt.MinCost (4), bcrypt.MaxCost (31)].
	Cost int
}

// DefaultBcryptConfig returns a BcryptConfig with [DefaultBcryptCost].
func DefaultBcryptConfig() BcryptConfig {
	return BcryptConfig{Cost: DefaultBcryptCost}
}

// Validate returns [ErrInvalidOption] if Cost is outside
// [bcrypt.MinCost, bcrypt.MaxCost].
func (c BcryptConfig) Validate() error {
	if c.Cost < bcrypt.MinCost || c.Cost > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt cost %d must be in [%d, %d]",
			ErrInvalidOption, c.Cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

// Bcrypt is the cost-based variant.  It has no state; the zero value is
// ready to use and safe for concurrent use.
//
// bcrypt generates and embeds a 128-bit salt, so callers never manage salts.
// Passwords longer than 72 bytes are rejected with [ErrInvalidOption] by both
// Hash and Verify.
type Bcrypt struct{}

var _ Algorithm[BcryptConfig] = Bcrypt{}

// Driver returns [DriverBcrypt].
func (Bcrypt) Driver() DriverName { return DriverBcrypt }

// Hash returns the Modular Crypt Format string (e.g., "$2a$12$...").
func (Bcrypt) Hash(password string, cfg BcryptConfig) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if len(password) > maxBcryptPasswordLen {
		return "", errBcryptPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.Cost)
	if err != nil {
		return "", fmt.Errorf("hashing: bcrypt: failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify checks password against a bcrypt hash.
// Returns (false, nil) on mismatch; never returns ErrMismatchedHashAndPassword.
// Passwords Hash would refuse are refused here too, since bcrypt only reads
// the first 72 bytes.
func (Bcrypt) Verify(password, hash string) (bool, error) {
	if !looksLikeBcrypt(hash) {
		return false, fmt.Errorf("%w: hash does not appear to be bcrypt", ErrAlgorithmMismatch)
	}
	if len(password) > maxBcryptPasswordLen {
		return false, errBcryptPasswordTooLong
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: bcrypt: %v", ErrInvalidHash, err)
	}
	return true, nil
}

// NeedsRehash reports whether the work factor encoded in hash differs from
// cfg.Cost.  Callers typically check this after a successful Verify and
// store a fresh hash when it returns true.
func (Bcrypt) NeedsRehash(hash string, cfg BcryptConfig) (bool, error) {
	cost, err := bcryptCost(hash)
	if err != nil {
		return false, err
	}
	return cost != cfg.Cost, nil
}

// Info extracts the work factor from a bcrypt hash string.
//
// Returned [HashInfo].Params:
//   - "cost" → int
func (Bcrypt) Info(hash string) (HashInfo, error) {
	cost, err := bcryptCost(hash)
	if err != nil {
		return HashInfo{}, err
	}
	return HashInfo{
		Driver: DriverBcrypt,
		Params: map[string]any{"cost": cost},
	}, nil
}

func bcryptCost(hash string) (int, error) {
	if !looksLikeBcrypt(hash) {
		return 0, fmt.Errorf("%w: hash does not appear to be bcrypt", ErrAlgorithmMismatch)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	return cost, nil
}

// maxBcryptPasswordLen is the number of password bytes bcrypt consumes.
const maxBcryptPasswordLen = 72

var errBcryptPasswordTooLong = fmt.Errorf("%w: bcrypt password longer than %d bytes", ErrInvalidOption, maxBcryptPasswordLen)

func looksLikeBcrypt(hash string) bool {
	d, ok := DetectDriver(hash)
	return ok && d == DriverBcrypt
}
