//go:build !nobcrypt

package hashing

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/hasbyte1/password-worker/internal/envconf"
)

// BcryptConfigFromEnv returns [DefaultBcryptConfig] overridden by
// PWWORKER_BCRYPT_COST when set.
func BcryptConfigFromEnv() (BcryptConfig, error) {
	cfg := DefaultBcryptConfig()
	cost, ok, err := envconf.Int("PWWORKER_BCRYPT_COST", bcrypt.MinCost, bcrypt.MaxCost)
	if err != nil {
		return BcryptConfig{}, err
	}
	if ok {
		cfg.Cost = cost
	}
	return cfg, nil
}
