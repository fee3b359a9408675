package rng

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DeterministicRNG is a seeded, replayable RNG: the same seed always
// produces the same sequence of draws. It implements the same RNG
// interface as CryptoRNG so the Spin Pipeline can be evaluated both live
// (rooted at a CryptoRNG-minted seed) and on replay (re-seeded from a
// persisted rng_seed), with identical output for identical input.
//
// It is NOT used to mint the root seed itself - GenerateSeed does that.
// DeterministicRNG expands the fixed seed into an unbounded keystream by
// running it through HKDF (RFC 5869, extract then expand, no salt) once
// per 32-byte block, with the block counter as the "info" parameter to
// domain-separate each block from the next.
type DeterministicRNG struct {
	seed    []byte
	counter uint64
	buf     []byte
	pos     int
}

// NewDeterministicRNG builds a DeterministicRNG rooted at the given seed
// string (typically a root seed or a per-cascade-step sub-seed).
func NewDeterministicRNG(seed string) *DeterministicRNG {
	return &DeterministicRNG{seed: []byte(seed)}
}

func (r *DeterministicRNG) nextBytes(n int) ([]byte, error) {
	out := make([]byte, 0, n)
	for len(out) < n {
		if r.pos >= len(r.buf) {
			block, err := r.block()
			if err != nil {
				return nil, err
			}
			r.buf = block
			r.pos = 0
		}
		take := len(r.buf) - r.pos
		if need := n - len(out); take > need {
			take = need
		}
		out = append(out, r.buf[r.pos:r.pos+take]...)
		r.pos += take
	}
	return out, nil
}

// block derives the next 32-byte keystream block by running the seed
// through HKDF-Expand with the block counter as the info parameter, so
// successive blocks are independent HKDF outputs rather than hand-rolled
// SHA-256(seed||counter) concatenation.
func (r *DeterministicRNG) block() ([]byte, error) {
	var ctr [8]byte
	binary.BigEndian.PutUint64(ctr[:], r.counter)
	r.counter++

	kdf := hkdf.New(sha256.New, r.seed, nil, ctr[:])
	out := make([]byte, sha256.Size)
	if _, err := io.ReadFull(kdf, out); err != nil {
		return nil, fmt.Errorf("rng: hkdf expand: %w", err)
	}
	return out, nil
}

func (r *DeterministicRNG) uint64() (uint64, error) {
	b, err := r.nextBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// Int generates a random integer in range [0, max) using rejection
// sampling against the keystream to avoid modulo bias.
func (r *DeterministicRNG) Int(max int) (int, error) {
	if max <= 0 {
		return 0, fmt.Errorf("max must be positive, got %d", max)
	}
	bound := uint64(max)
	limit := (^uint64(0) / bound) * bound
	for {
		v, err := r.uint64()
		if err != nil {
			return 0, err
		}
		if v < limit {
			return int(v % bound), nil
		}
	}
}

// IntRange generates a random integer in range [min, max].
func (r *DeterministicRNG) IntRange(min, max int) (int, error) {
	if min > max {
		return 0, fmt.Errorf("min (%d) must be <= max (%d)", min, max)
	}
	n, err := r.Int(max - min + 1)
	if err != nil {
		return 0, err
	}
	return min + n, nil
}

// Intn is an alias for Int for convenience.
func (r *DeterministicRNG) Intn(max int) (int, error) {
	return r.Int(max)
}

// Float64 generates a random float64 in range [0.0, 1.0).
func (r *DeterministicRNG) Float64() (float64, error) {
	const precision = 1 << 53
	n, err := r.Int(precision)
	if err != nil {
		return 0, err
	}
	return float64(n) / float64(precision), nil
}

// Bytes fills b deterministically from the keystream.
func (r *DeterministicRNG) Bytes(b []byte) error {
	out, err := r.nextBytes(len(b))
	if err != nil {
		return err
	}
	copy(b, out)
	return nil
}

// Shuffle performs a deterministic Fisher-Yates shuffle.
func (r *DeterministicRNG) Shuffle(n int, swap func(i, j int)) error {
	for i := n - 1; i > 0; i-- {
		j, err := r.Int(i + 1)
		if err != nil {
			return err
		}
		swap(i, j)
	}
	return nil
}

// WeightedChoice selects an index based on weights, identically to
// CryptoRNG.WeightedChoice but backed by the deterministic keystream.
func (r *DeterministicRNG) WeightedChoice(weights []int) (int, error) {
	if len(weights) == 0 {
		return 0, fmt.Errorf("weights cannot be empty")
	}
	total := 0
	for _, w := range weights {
		if w < 0 {
			return 0, fmt.Errorf("weights must be non-negative")
		}
		total += w
	}
	if total == 0 {
		return 0, fmt.Errorf("total weight must be positive")
	}
	v, err := r.Int(total)
	if err != nil {
		return 0, err
	}
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if v < cumulative {
			return i, nil
		}
	}
	return len(weights) - 1, nil
}
