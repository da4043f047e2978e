// Package config holds the process-wide tunables this module reads from the
// environment at startup, in the spirit of evoting/app/app.go's flag-driven
// entry point: no config file, no third-party config library, just a couple
// of env vars a host can override.
package config

import (
	"os"
	"strconv"
)

// DefaultBoundedDlogMax is T_max when EG_BOUNDED_DLOG_MAX is unset: the
// bounded discrete-log ceiling used during decryption (spec.md §4.9).
const DefaultBoundedDlogMax = 1_000_000

// PrimeOption names which group constants a process is configured for.
// The zero value is Standard. Package group does not read this value; it
// always starts with the standard constants, and test code swaps in a
// small set with group.UseTestConstants.
type PrimeOption int

const (
	// Standard is the pinned 4096-bit/256-bit production prime pair.
	Standard PrimeOption = iota
	// TestOnly marks a process configured for the small test prime sets.
	// It does not name which of those sets.
	TestOnly
)

// BoundedDlogMax returns T_max, honoring EG_BOUNDED_DLOG_MAX if set to a
// positive integer.
func BoundedDlogMax() int {
	v := os.Getenv("EG_BOUNDED_DLOG_MAX")
	if v == "" {
		return DefaultBoundedDlogMax
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return DefaultBoundedDlogMax
	}
	return n
}

// PrimeOptionFromEnv reports whether EG_PRIME_OPTION=test-only was set.
// Production code never needs to call this; it exists for test harnesses
// that want to honor an operator override without hardcoding it.
func PrimeOptionFromEnv() PrimeOption {
	if os.Getenv("EG_PRIME_OPTION") == "test-only" {
		return TestOnly
	}
	return Standard
}
