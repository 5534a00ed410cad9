//go:build !noargon2

package hashing

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

func init() {
	register(DriverArgon2i, Argon2i{}.Verify)
	register(DriverArgon2id, Argon2id{}.Verify)
}

// ──────────────────────────────────────────────────────────────────────────────
// Config
// ──────────────────────────────────────────────────────────────────────────────

const (
	// DefaultArgon2Memory is the default memory cost in KiB (64 MiB).
	DefaultArgon2Memory uint32 = 64 * 1024

	// DefaultArgon2Time is the default number of iterations.
	DefaultArgon2Time uint32 = 3

	// DefaultArgon2Threads is the default degree of parallelism.
	DefaultArgon2Threads uint8 = 2

	// DefaultArgon2KeyLen is the default output key length in bytes.
	DefaultArgon2KeyLen uint32 = 32

	// DefaultArgon2SaltLen is the default random salt length in bytes.
	DefaultArgon2SaltLen uint32 = 16

	argon2Version = argon2.Version // 0x13 = 19

	// Hard ceilings applied to every hash string before verification, so an
	// attacker-supplied string cannot make Verify allocate without bound.
	maxArgon2Memory uint32 = 4 * 1024 * 1024 // 4 GiB in KiB
	maxArgon2Time   uint32 = 1024

	maxArgon2KeyLen  = 1024
	minArgon2KeyLen  = 4
	minArgon2SaltLen = 8
)

// Argon2Config is the per-call configuration of [Argon2i] and [Argon2id].
//
// All parameters are encoded into the output hash (PHC format), so changing
// them only affects newly produced hashes.
type Argon2Config struct {
	// Memory is the memory cost in KiB.  Minimum: 8 * Threads.
	Memory uint32

	// Time is the number of passes over memory.  Minimum: 1.
	Time uint32

	// Threads is the degree of parallelism.  Minimum: 1.
	Threads uint8

	// KeyLen is the length of the derived key in bytes.  Minimum: 4.
	KeyLen uint32

	// SaltLen is the length of the random salt in bytes.  Minimum: 8.
	SaltLen uint32
}

// DefaultArgon2Config returns the recommended parameters.  They exceed
// OWASP ASVS Level 2 (m ≥ 19 MiB, t ≥ 2, p ≥ 1).
func DefaultArgon2Config() Argon2Config {
	return Argon2Config{
		Memory:  DefaultArgon2Memory,
		Time:    DefaultArgon2Time,
		Threads: DefaultArgon2Threads,
		KeyLen:  DefaultArgon2KeyLen,
		SaltLen: DefaultArgon2SaltLen,
	}
}

// Validate returns [ErrInvalidOption] if any parameter is out of range.
func (c Argon2Config) Validate() error {
	if c.Time < 1 || c.Time > maxArgon2Time {
		return fmt.Errorf("%w: argon2 time must be in [1, %d], got %d", ErrInvalidOption, maxArgon2Time, c.Time)
	}
	if c.Threads < 1 {
		return fmt.Errorf("%w: argon2 threads must be ≥ 1, got %d", ErrInvalidOption, c.Threads)
	}
	if c.Memory < 8*uint32(c.Threads) || c.Memory > maxArgon2Memory {
		return fmt.Errorf("%w: argon2 memory (%d KiB) must be in [8×threads (%d), %d] KiB",
			ErrInvalidOption, c.Memory, 8*uint32(c.Threads), maxArgon2Memory)
	}
	if c.KeyLen < minArgon2KeyLen || c.KeyLen > maxArgon2KeyLen {
		return fmt.Errorf("%w: argon2 key_len must be in [%d, %d], got %d",
			ErrInvalidOption, minArgon2KeyLen, maxArgon2KeyLen, c.KeyLen)
	}
	if c.SaltLen < minArgon2SaltLen {
		return fmt.Errorf("%w: argon2 salt_len must be ≥ %d, got %d", ErrInvalidOption, minArgon2SaltLen, c.SaltLen)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Variants
// ──────────────────────────────────────────────────────────────────────────────

// Argon2id is the memory-hard variant recommended by RFC 9106 and OWASP.
//
// Output format: $argon2id$v=19$m=…,t=…,p=…$<salt>$<hash>
//
// The zero value is ready to use.  Set Limits to refuse verification of
// hashes whose stored parameters exceed twice the given values; zero fields
// in Limits are not enforced.
type Argon2id struct {
	Limits Argon2Config
}

var _ Algorithm[Argon2Config] = Argon2id{}

// Driver returns [DriverArgon2id].
func (Argon2id) Driver() DriverName { return DriverArgon2id }

// Hash derives an Argon2id key with a fresh random salt.
func (a Argon2id) Hash(password string, cfg Argon2Config) (string, error) {
	return argon2Hash(DriverArgon2id, password, cfg)
}

// Verify checks password against an Argon2id PHC string.  Parameters are
// read from the string itself.
func (a Argon2id) Verify(password, hash string) (bool, error) {
	return argon2Verify(DriverArgon2id, a.Limits, password, hash)
}

// NeedsRehash reports whether any parameter stored in hash differs from cfg.
func (Argon2id) NeedsRehash(hash string, cfg Argon2Config) (bool, error) {
	return argon2NeedsRehash(DriverArgon2id, hash, cfg)
}

// Info parses the PHC string and returns the encoded parameters.
func (Argon2id) Info(hash string) (HashInfo, error) {
	return argon2Info(DriverArgon2id, hash)
}

// Argon2i uses data-independent memory access.  Prefer [Argon2id] for new
// systems; Argon2i is kept for verifying existing hashes.
type Argon2i struct {
	Limits Argon2Config
}

var _ Algorithm[Argon2Config] = Argon2i{}

// Driver returns [DriverArgon2i].
func (Argon2i) Driver() DriverName { return DriverArgon2i }

// Hash derives an Argon2i key with a fresh random salt.
func (a Argon2i) Hash(password string, cfg Argon2Config) (string, error) {
	return argon2Hash(DriverArgon2i, password, cfg)
}

// Verify checks password against an Argon2i PHC string.
func (a Argon2i) Verify(password, hash string) (bool, error) {
	return argon2Verify(DriverArgon2i, a.Limits, password, hash)
}

// NeedsRehash reports whether any parameter stored in hash differs from cfg.
func (Argon2i) NeedsRehash(hash string, cfg Argon2Config) (bool, error) {
	return argon2NeedsRehash(DriverArgon2i, hash, cfg)
}

// Info parses the PHC string and returns the encoded parameters.
func (Argon2i) Info(hash string) (HashInfo, error) {
	return argon2Info(DriverArgon2i, hash)
}

// ──────────────────────────────────────────────────────────────────────────────
// Shared implementation
// ──────────────────────────────────────────────────────────────────────────────

func deriveKey(variant DriverName, password, salt []byte, time, memory uint32, threads uint8, keyLen uint32) []byte {
	if variant == DriverArgon2i {
		return argon2.Key(password, salt, time, memory, threads, keyLen)
	}
	return argon2.IDKey(password, salt, time, memory, threads, keyLen)
}

func argon2Hash(variant DriverName, password string, cfg Argon2Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	salt, err := randomSalt(cfg.SaltLen)
	if err != nil {
		return "", err
	}
	key := deriveKey(variant, []byte(password), salt, cfg.Time, cfg.Memory, cfg.Threads, cfg.KeyLen)
	return encodePHC(variant, argon2Version, cfg.Memory, cfg.Time, cfg.Threads, salt, key), nil
}

func argon2Verify(variant DriverName, limits Argon2Config, password, hash string) (bool, error) {
	p, err := decodeFor(variant, hash)
	if err != nil {
		return false, err
	}
	if !withinLimits(p, limits) {
		return false, fmt.Errorf("%w: parameters exceed verification limits", ErrInvalidHash)
	}
	computed := deriveKey(variant, []byte(password), p.salt, p.time, p.memory, p.threads, p.keyLen)
	return subtle.ConstantTimeCompare(computed, p.hash) == 1, nil
}

func argon2NeedsRehash(variant DriverName, hash string, cfg Argon2Config) (bool, error) {
	p, err := decodeFor(variant, hash)
	if err != nil {
		return false, err
	}
	return p.memory != cfg.Memory ||
		p.time != cfg.Time ||
		p.threads != cfg.Threads ||
		p.keyLen != cfg.KeyLen, nil
}

func argon2Info(variant DriverName, hash string) (HashInfo, error) {
	p, err := decodeFor(variant, hash)
	if err != nil {
		return HashInfo{}, err
	}
	return HashInfo{
		Driver: p.variant,
		Params: map[string]any{
			"version": int(p.version),
			"memory":  p.memory,
			"time":    p.time,
			"threads": p.threads,
			"key_len": p.keyLen,
		},
	}, nil
}

// decodeFor decodes hash and checks it belongs to variant.
func decodeFor(variant DriverName, hash string) (*argon2Params, error) {
	if d, ok := DetectDriver(hash); !ok || d != variant {
		return nil, fmt.Errorf("%w: hash does not appear to be %s", ErrAlgorithmMismatch, variant)
	}
	return decodePHC(hash)
}

// withinLimits allows hashes made with older or smaller settings but
// rejects stored parameters more than twice the configured limits.
func withinLimits(p *argon2Params, limits Argon2Config) bool {
	if limits.Memory > 0 && uint64(p.memory) > 2*uint64(limits.Memory) {
		return false
	}
	if limits.Time > 0 && uint64(p.time) > 2*uint64(limits.Time) {
		return false
	}
	if limits.Threads > 0 && uint32(p.threads) > 2*uint32(limits.Threads) {
		return false
	}
	if limits.KeyLen > 0 && uint64(p.keyLen) > 2*uint64(limits.KeyLen) {
		return false
	}
	return true
}

// ──────────────────────────────────────────────────────────────────────────────
// PHC string format
// ──────────────────────────────────────────────────────────────────────────────

type argon2Params struct {
	variant DriverName
	version uint32
	memory  uint32
	time    uint32
	threads uint8
	keyLen  uint32
	salt    []byte
	hash    []byte
}

// encodePHC serialises an Argon2 hash in PHC String Format:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt_base64>$<hash_base64>
//
// base64 is the standard alphabet without padding.
func encodePHC(variant DriverName, version, memory, time uint32, threads uint8, salt, hash []byte) string {
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		string(variant),
		version,
		memory,
		time,
		threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)
}

// decodePHC parses an Argon2 PHC string.  Every numeric field is range
// checked here because argon2 panics on zero time or zero parallelism.
func decodePHC(encoded string) (*argon2Params, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, fmt.Errorf("%w: expected 5-segment PHC string, got %d segments",
			ErrInvalidHash, len(parts)-1)
	}

	var variant DriverName
	switch parts[1] {
	case string(DriverArgon2i):
		variant = DriverArgon2i
	case string(DriverArgon2id):
		variant = DriverArgon2id
	default:
		return nil, fmt.Errorf("%w: unknown argon2 variant %q", ErrInvalidHash, parts[1])
	}

	version, err := parseKV(parts[2], "v")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	if version != argon2Version {
		return nil, fmt.Errorf("%w: unsupported argon2 version %d", ErrInvalidHash, version)
	}

	kvs, err := parseParams(parts[3])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	memory, ok1 := kvs["m"]
	time, ok2 := kvs["t"]
	threads, ok3 := kvs["p"]
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("%w: missing m/t/p in parameter segment %q", ErrInvalidHash, parts[3])
	}
	if time < 1 || time > uint64(maxArgon2Time) ||
		threads < 1 || threads > 255 ||
		memory < 1 || memory > uint64(maxArgon2Memory) {
		return nil, fmt.Errorf("%w: parameters out of range in %q", ErrInvalidHash, parts[3])
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid salt base64: %v", ErrInvalidHash, err)
	}
	if len(salt) < minArgon2SaltLen {
		return nil, fmt.Errorf("%w: salt shorter than %d bytes", ErrInvalidHash, minArgon2SaltLen)
	}

	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hash base64: %v", ErrInvalidHash, err)
	}
	if len(hash) < minArgon2KeyLen || len(hash) > maxArgon2KeyLen {
		return nil, fmt.Errorf("%w: key length %d out of range", ErrInvalidHash, len(hash))
	}

	return &argon2Params{
		variant: variant,
		version: uint32(version),
		memory:  uint32(memory),
		time:    uint32(time),
		threads: uint8(threads),
		keyLen:  uint32(len(hash)),
		salt:    salt,
		hash:    hash,
	}, nil
}

// parseKV parses a "key=value" string and returns the uint64 value.
func parseKV(s, key string) (uint64, error) {
	prefix := key + "="
	if !strings.HasPrefix(s, prefix) {
		return 0, fmt.Errorf("expected %q prefix in %q", prefix, s)
	}
	return strconv.ParseUint(s[len(prefix):], 10, 32)
}

// parseParams splits "m=65536,t=3,p=2" into a map.
func parseParams(s string) (map[string]uint64, error) {
	out := make(map[string]uint64, 3)
	for _, kv := range strings.Split(s, ",") {
		eq := strings.IndexByte(kv, '=')
		if eq <= 0 {
			return nil, fmt.Errorf("malformed param %q", kv)
		}
		v, err := strconv.ParseUint(kv[eq+1:], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("non-numeric value in %q: %v", kv, err)
		}
		out[kv[:eq]] = v
	}
	return out, nil
}

func randomSalt(n uint32) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("hashing: argon2: failed to generate salt: %w", err)
	}
	return b, nil
}
