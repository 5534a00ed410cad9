//go:build nobcrypt && noargon2

package hashing

// At least one variant must be compiled in.  Building with both nobcrypt and
// noargon2 stops here with an undefined-identifier error naming the problem.
var _ = at_least_one_of_bcrypt_or_argon2_must_be_enabled
