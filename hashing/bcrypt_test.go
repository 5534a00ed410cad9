//go:build !nobcrypt

package hashing_test

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/hasbyte1/password-worker/hashing"
)

// testBcryptCost is the minimum bcrypt work factor, used so the suite runs
// quickly.  Production code should use DefaultBcryptCost.
const testBcryptCost = bcrypt.MinCost // 4

func testBcryptConfig() hashing.BcryptConfig {
	return hashing.BcryptConfig{Cost: testBcryptCost}
}

func mustBcryptHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := hashing.Bcrypt{}.Hash(password, testBcryptConfig())
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	return hash
}

// ──────────────────────────────────────────────────────────────────────────────
// Config
// ──────────────────────────────────────────────────────────────────────────────

func TestBcryptConfig_Validate(t *testing.T) {
	for _, cost := range []int{bcrypt.MinCost, 10, 12, bcrypt.MaxCost} {
		if err := (hashing.BcryptConfig{Cost: cost}).Validate(); err != nil {
			t.Errorf("cost %d: unexpected error %v", cost, err)
		}
	}
	for _, cost := range []int{bcrypt.MinCost - 1, 0, -1, bcrypt.MaxCost + 1, 99} {
		err := (hashing.BcryptConfig{Cost: cost}).Validate()
		if !errors.Is(err, hashing.ErrInvalidOption) {
			t.Errorf("cost %d: expected ErrInvalidOption, got %v", cost, err)
		}
	}
}

func TestDefaultBcryptConfig(t *testing.T) {
	if got := hashing.DefaultBcryptConfig().Cost; got != hashing.DefaultBcryptCost {
		t.Errorf("got cost %d, want %d", got, hashing.DefaultBcryptCost)
	}
}

func TestBcryptConfigFromEnv(t *testing.T) {
	t.Setenv("PWWORKER_BCRYPT_COST", "5")
	cfg, err := hashing.BcryptConfigFromEnv()
	if err != nil {
		t.Fatalf("BcryptConfigFromEnv: %v", err)
	}
	if cfg.Cost != 5 {
		t.Errorf("Cost = %d, want 5", cfg.Cost)
	}

	t.Setenv("PWWORKER_BCRYPT_COST", "3")
	if _, err := hashing.BcryptConfigFromEnv(); err == nil {
		t.Error("expected error for cost below bcrypt.MinCost")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Hash
// ──────────────────────────────────────────────────────────────────────────────

func TestBcrypt_Hash_ReturnsTaggedHash(t *testing.T) {
	hash := mustBcryptHash(t, "hunter2")
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("hash does not look like bcrypt: %q", hash)
	}
	if d, ok := hashing.DetectDriver(hash); !ok || d != hashing.DriverBcrypt {
		t.Errorf("DetectDriver = (%q, %v), want bcrypt", d, ok)
	}
}

func TestBcrypt_Hash_ProducesUniqueHashes(t *testing.T) {
	h1 := mustBcryptHash(t, "same-password")
	h2 := mustBcryptHash(t, "same-password")
	if h1 == h2 {
		t.Error("two Hash calls with the same password must produce different hashes (different salts)")
	}
}

func TestBcrypt_Hash_InvalidCost(t *testing.T) {
	_, err := hashing.Bcrypt{}.Hash("pw", hashing.BcryptConfig{Cost: 1})
	if !errors.Is(err, hashing.ErrInvalidOption) {
		t.Errorf("expected ErrInvalidOption, got %v", err)
	}
}

func TestBcrypt_Hash_PasswordTooLong(t *testing.T) {
	_, err := hashing.Bcrypt{}.Hash(strings.Repeat("x", 73), testBcryptConfig())
	if !errors.Is(err, hashing.ErrInvalidOption) {
		t.Errorf("expected ErrInvalidOption for password longer than 72 bytes, got %v", err)
	}
}

// bcrypt reads only 72 bytes, so a longer candidate sharing that prefix
// must not verify.
func TestBcrypt_Verify_PasswordTooLong(t *testing.T) {
	prefix := strings.Repeat("a", 72)
	hash := mustBcryptHash(t, prefix)

	if ok, err := (hashing.Bcrypt{}).Verify(prefix, hash); err != nil || !ok {
		t.Fatalf("72-byte password: got %v, %v", ok, err)
	}
	ok, err := hashing.Bcrypt{}.Verify(prefix+"DIFFERENT", hash)
	if ok {
		t.Error("password longer than 72 bytes verified against its prefix")
	}
	if !errors.Is(err, hashing.ErrInvalidOption) {
		t.Errorf("expected ErrInvalidOption, got %v", err)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Verify
// ──────────────────────────────────────────────────────────────────────────────

func TestBcrypt_Verify(t *testing.T) {
	hash := mustBcryptHash(t, "hunter2")

	ok, err := hashing.Bcrypt{}.Verify("hunter2", hash)
	if err != nil || !ok {
		t.Fatalf("Verify correct password: ok=%v err=%v", ok, err)
	}

	ok, err = hashing.Bcrypt{}.Verify("wrong", hash)
	if err != nil {
		t.Fatalf("Verify wrong password: %v", err)
	}
	if ok {
		t.Error("Verify returned true for wrong password")
	}
}

func TestBcrypt_Verify_EmptyPassword(t *testing.T) {
	hash := mustBcryptHash(t, "")
	ok, err := hashing.Bcrypt{}.Verify("", hash)
	if err != nil || !ok {
		t.Fatal("Verify empty password failed")
	}
}

func TestBcrypt_Verify_MalformedHashes(t *testing.T) {
	tests := []struct {
		name string
		hash string
		want error
	}{
		{"garbage", "not-a-hash", hashing.ErrAlgorithmMismatch},
		{"empty", "", hashing.ErrAlgorithmMismatch},
		{"argon2 hash", "$argon2id$v=19$m=65536,t=3,p=2$abc$def", hashing.ErrAlgorithmMismatch},
		{"truncated bcrypt", "$2a$04$short", hashing.ErrInvalidHash},
		{"bad cost", "$2a$xx$abcdefghijklmnopqrstuuABCDEFGHIJKLMNOPQRSTUVWXYZ01234", hashing.ErrInvalidHash},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := hashing.Bcrypt{}.Verify("password", tt.hash)
			if ok {
				t.Error("Verify returned true for malformed hash")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// NeedsRehash / Info
// ──────────────────────────────────────────────────────────────────────────────

func TestBcrypt_NeedsRehash(t *testing.T) {
	hash := mustBcryptHash(t, "pw")

	needs, err := hashing.Bcrypt{}.NeedsRehash(hash, testBcryptConfig())
	if err != nil {
		t.Fatalf("NeedsRehash: %v", err)
	}
	if needs {
		t.Error("NeedsRehash should be false when costs match")
	}

	needs, err = hashing.Bcrypt{}.NeedsRehash(hash, hashing.BcryptConfig{Cost: testBcryptCost + 1})
	if err != nil {
		t.Fatalf("NeedsRehash: %v", err)
	}
	if !needs {
		t.Error("NeedsRehash should be true when stored cost differs")
	}
}

func TestBcrypt_NeedsRehash_InvalidHash(t *testing.T) {
	_, err := hashing.Bcrypt{}.NeedsRehash("not-a-hash", testBcryptConfig())
	if !errors.Is(err, hashing.ErrAlgorithmMismatch) {
		t.Errorf("expected ErrAlgorithmMismatch, got %v", err)
	}
}

func TestBcrypt_Info(t *testing.T) {
	info, err := hashing.Bcrypt{}.Info(mustBcryptHash(t, "pw"))
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Driver != hashing.DriverBcrypt {
		t.Errorf("Driver = %q, want %q", info.Driver, hashing.DriverBcrypt)
	}
	cost, ok := info.Params["cost"].(int)
	if !ok {
		t.Fatalf("Params[\"cost\"] is not int: %T", info.Params["cost"])
	}
	if cost != testBcryptCost {
		t.Errorf("cost = %d, want %d", cost, testBcryptCost)
	}
}

func TestBcrypt_Driver(t *testing.T) {
	if d := (hashing.Bcrypt{}).Driver(); d != hashing.DriverBcrypt {
		t.Errorf("got %q, want %q", d, hashing.DriverBcrypt)
	}
}
