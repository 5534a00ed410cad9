// Package hashing defines the password hashing capability used by the worker
// pool, together with its built-in variants.
//
// # Architecture
//
// The central abstraction is [Algorithm], parameterised by the variant's
// configuration type.  Three variants ship with this package:
//
//   - [Bcrypt], configured by [BcryptConfig] (a single cost factor)
//   - [Argon2id], configured by [Argon2Config] (memory, time, parallelism, key and salt length)
//   - [Argon2i], same configuration, kept for verifying existing hashes
//
// Configuration travels with every Hash call.  Every produced string embeds
// its algorithm and parameters, so Verify needs nothing but the string.
//
// # Build tags
//
// Variants are selected at compile time:
//
//	go build -tags nobcrypt    // Argon2 family only
//	go build -tags noargon2    // bcrypt only
//
// Both are enabled by default.  Setting both tags fails the build.
// [Drivers] lists what was compiled in and [VerifyAny] dispatches on the
// hash prefix to the matching variant.
//
// # Untrusted input
//
// Verify treats the hash string as untrusted.  Malformed or foreign strings
// return [ErrInvalidHash] or [ErrAlgorithmMismatch]; nothing in this package
// panics on them.  Argon2 strings are range checked before any key
// derivation, and [Argon2id.Limits] can tighten the accepted parameters.
//
// # Argon2 hash format
//
//	$argon2id$v=19$m=65536,t=3,p=2$<base64-salt>$<base64-hash>
package hashing
