//go:build !nobcrypt && !noargon2

package hashing_test

import (
	"encoding/json"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/hasbyte1/password-worker/hashing"
)

// Example_bcrypt demonstrates the cost-based variant.
func Example_bcrypt() {
	hash, err := hashing.Bcrypt{}.Hash("hunter2", hashing.BcryptConfig{Cost: bcrypt.MinCost})
	if err != nil {
		log.Fatal(err)
	}
	ok, _ := hashing.Bcrypt{}.Verify("hunter2", hash)
	fmt.Println(ok)
	// Output: true
}

// Example_argon2id demonstrates the memory-hard variant.
func Example_argon2id() {
	cfg := hashing.Argon2Config{
		Memory:  19 * 1024, // 19 MiB
		Time:    2,
		Threads: 1,
		KeyLen:  32,
		SaltLen: 16,
	}
	hash, err := hashing.Argon2id{}.Hash("correct-horse-battery-staple", cfg)
	if err != nil {
		log.Fatal(err)
	}
	ok, _ := hashing.Argon2id{}.Verify("correct-horse-battery-staple", hash)
	fmt.Println(ok)
	// Output: true
}

// Example_migration illustrates upgrading legacy bcrypt hashes to Argon2id
// on the next successful login.
func Example_migration() {
	legacyHash, _ := hashing.Bcrypt{}.Hash("user-password", hashing.BcryptConfig{Cost: bcrypt.MinCost})

	ok, err := hashing.VerifyAny("user-password", legacyHash)
	if err != nil || !ok {
		log.Fatal("login failed")
	}

	if d, _ := hashing.DetectDriver(legacyHash); d != hashing.DriverArgon2id {
		newHash, _ := hashing.Argon2id{}.Hash("user-password", hashing.Argon2Config{
			Memory: 16, Time: 1, Threads: 2, KeyLen: 16, SaltLen: 8,
		})
		_ = newHash // persist newHash here
		fmt.Println("password re-hashed with argon2id")
	}
	// Output: password re-hashed with argon2id
}

// Example_hashInfo shows how to inspect the parameters embedded in a hash.
func Example_hashInfo() {
	hash, _ := hashing.Argon2id{}.Hash("inspect-me", hashing.Argon2Config{
		Memory: 1024, Time: 2, Threads: 1, KeyLen: 32, SaltLen: 16,
	})

	info, err := hashing.Argon2id{}.Info(hash)
	if err != nil {
		log.Fatal(err)
	}

	out, _ := json.Marshal(map[string]any{
		"driver": info.Driver,
		"memory": info.Params["memory"],
		"time":   info.Params["time"],
	})
	fmt.Println(string(out))
	// Output: {"driver":"argon2id","memory":1024,"time":2}
}

// ExampleAlgorithm shows generic calling code that stays independent of the
// variant in use.
func ExampleAlgorithm() {
	roundTrip := func(alg hashing.Algorithm[hashing.BcryptConfig], cfg hashing.BcryptConfig) bool {
		hash, err := alg.Hash("demo", cfg)
		if err != nil {
			return false
		}
		ok, _ := alg.Verify("demo", hash)
		return ok
	}
	fmt.Println(roundTrip(hashing.Bcrypt{}, hashing.BcryptConfig{Cost: bcrypt.MinCost}))
	// Output: true
}
