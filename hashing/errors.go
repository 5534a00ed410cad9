package hashing

import "errors"

// Sentinel errors returned by hashing operations.
//
// Use [errors.Is] for comparisons:
//
//	ok, err := alg.Verify(password, hash)
//	if errors.Is(err, hashing.ErrInvalidHash) {
//	    // hash string is malformed
//	}
var (
	// ErrInvalidHash is returned when a hash string cannot be parsed because
	// it has an unrecognised format, missing fields, invalid encoding, or
	// parameters outside the verifier's bounds.
	ErrInvalidHash = errors.New("hashing: invalid or unrecognised hash string")

	// ErrInvalidOption is returned when a config value falls outside the
	// allowed range (e.g., a bcrypt cost below 4 or above 31).
	ErrInvalidOption = errors.New("hashing: invalid option value")

	// ErrAlgorithmMismatch is returned by Verify, NeedsRehash or Info when
	// the hash string was produced by a different algorithm than the one
	// being asked.
	ErrAlgorithmMismatch = errors.New("hashing: hash was produced by a different algorithm")

	// ErrDriverNotCompiled is returned by [VerifyAny] when the hash belongs
	// to a variant excluded by build tags.
	ErrDriverNotCompiled = errors.New("hashing: driver not compiled in")
)
