// Package envconf reads range-checked values from environment variables.
//
// Every lookup returns ok=false when the variable is unset, so callers keep
// their defaults.  A set but invalid value is an error naming the variable.
package envconf

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Int reads key as an int in [minVal, maxVal].
func Int(key string, minVal, maxVal int) (int, bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return 0, false, nil
	}
	i64, err := strconv.ParseInt(strings.TrimSpace(v), 10, 32)
	if err != nil {
		return 0, true, fmt.Errorf("%s: not an integer", key)
	}
	i := int(i64)
	if i < minVal || i > maxVal {
		return 0, true, fmt.Errorf("%s: out of range [%d..%d]", key, minVal, maxVal)
	}
	return i, true, nil
}

// Uint32 reads key as a uint32 in [minVal, maxVal].
func Uint32(key string, minVal, maxVal uint32) (uint32, bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return 0, false, nil
	}
	u64, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32)
	if err != nil {
		return 0, true, fmt.Errorf("%s: not an unsigned integer", key)
	}
	u := uint32(u64)
	if u < minVal || u > maxVal {
		return 0, true, fmt.Errorf("%s: out of range [%d..%d]", key, minVal, maxVal)
	}
	return u, true, nil
}

// Uint8 reads key as a uint8 in [minVal, maxVal].
func Uint8(key string, minVal, maxVal uint8) (uint8, bool, error) {
	u, ok, err := Uint32(key, uint32(minVal), uint32(maxVal))
	if !ok || err != nil {
		return 0, ok, err
	}
	return uint8(u), true, nil // #nosec G115 -- bounded by maxVal above.
}

// Bool reads key as a boolean.  Accepts 1/0, true/false, yes/no, on/off in
// any case.
func Bool(key string) (bool, bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return false, false, nil
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true, true, nil
	case "0", "false", "no", "off":
		return false, true, nil
	default:
		return false, true, fmt.Errorf("%s: invalid boolean", key)
	}
}

// String reads key with surrounding whitespace removed.  An empty value
// counts as unset.
func String(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
