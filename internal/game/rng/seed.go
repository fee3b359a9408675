package rng

import (
	"encoding/hex"
	"fmt"
)

// SubSeedDigits is the zero-padding width for cascade step numbers folded
// into a sub-seed, per the "root_seed || zero_padded_step_number" rule.
const SubSeedDigits = 4

// GenerateSeed produces a cryptographically random hex-encoded root seed,
// the seed that roots every draw for one spin. It draws its entropy from
// CryptoRNG rather than calling crypto/rand directly, since minting the
// root seed - unlike expanding it - has no replay requirement and is
// exactly the live, non-deterministic draw CryptoRNG exists for.
func GenerateSeed() (string, error) {
	buf := make([]byte, 32)
	if err := NewCryptoRNG().Bytes(buf); err != nil {
		return "", fmt.Errorf("crypto RNG failed generating seed: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// DeriveSubSeed derives the sub-seed for cascade step `step` (1-indexed)
// from the spin's root seed: root_seed || zero_padded_step_number.
func DeriveSubSeed(rootSeed string, step int) string {
	return fmt.Sprintf("%s%0*d", rootSeed, SubSeedDigits, step)
}
