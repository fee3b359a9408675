package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicRNG_Deterministic(t *testing.T) {
	seed := DeriveSubSeed("a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2", 1)

	rng1 := NewDeterministicRNG(seed)
	rng2 := NewDeterministicRNG(seed)

	for i := 0; i < 50; i++ {
		v1, err := rng1.Int(1000)
		require.NoError(t, err)
		v2, err := rng2.Int(1000)
		require.NoError(t, err)
		assert.Equal(t, v1, v2, "Int() call %d should produce the same value for the same seed", i)
	}
}

func TestDeterministicRNG_DifferentSeedsDiverge(t *testing.T) {
	rng1 := NewDeterministicRNG(DeriveSubSeed("root-seed-one", 1))
	rng2 := NewDeterministicRNG(DeriveSubSeed("root-seed-two", 1))

	diverged := false
	for i := 0; i < 20; i++ {
		v1, err := rng1.Int(1_000_000)
		require.NoError(t, err)
		v2, err := rng2.Int(1_000_000)
		require.NoError(t, err)
		if v1 != v2 {
			diverged = true
			break
		}
	}
	assert.True(t, diverged, "different seeds should eventually diverge")
}

func TestDeterministicRNG_BlockBoundaryCrossing(t *testing.T) {
	// Draw enough bytes to force multiple HKDF-derived blocks and confirm
	// the keystream stays consistent across the block boundary.
	rng1 := NewDeterministicRNG("boundary-seed")
	rng2 := NewDeterministicRNG("boundary-seed")

	b1 := make([]byte, 100)
	b2 := make([]byte, 100)
	require.NoError(t, rng1.Bytes(b1))
	require.NoError(t, rng2.Bytes(b2))
	assert.Equal(t, b1, b2)
}

func TestDeterministicRNG_Int(t *testing.T) {
	rng := NewDeterministicRNG("int-seed")
	for i := 0; i < 200; i++ {
		v, err := rng.Int(50)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 50)
	}
}

func TestDeterministicRNG_IntRange(t *testing.T) {
	rng := NewDeterministicRNG("range-seed")
	for i := 0; i < 50; i++ {
		v, err := rng.IntRange(10, 20)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 10)
		assert.LessOrEqual(t, v, 20)
	}
}

func TestDeterministicRNG_Float64(t *testing.T) {
	rng := NewDeterministicRNG("float-seed")
	for i := 0; i < 50; i++ {
		v, err := rng.Float64()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestDeterministicRNG_Shuffle(t *testing.T) {
	rng1 := NewDeterministicRNG("shuffle-seed")
	rng2 := NewDeterministicRNG("shuffle-seed")

	s1 := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	s2 := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	require.NoError(t, rng1.Shuffle(len(s1), func(i, j int) { s1[i], s1[j] = s1[j], s1[i] }))
	require.NoError(t, rng2.Shuffle(len(s2), func(i, j int) { s2[i], s2[j] = s2[j], s2[i] }))

	assert.Equal(t, s1, s2)
}

func TestDeterministicRNG_WeightedChoice(t *testing.T) {
	weights := []int{10, 20, 30, 40}
	counts := make([]int, 4)

	for i := 0; i < 500; i++ {
		rng := NewDeterministicRNG(DeriveSubSeed("weighted-seed", i))
		idx, err := rng.WeightedChoice(weights)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 4)
		counts[idx]++
	}

	assert.Greater(t, counts[3], counts[0], "heavier weight should be chosen more often than the lightest")
}

func TestDeterministicRNG_ErrorCases(t *testing.T) {
	rng := NewDeterministicRNG("error-seed")

	_, err := rng.Int(0)
	assert.Error(t, err)

	_, err = rng.IntRange(10, 5)
	assert.Error(t, err)

	_, err = rng.WeightedChoice(nil)
	assert.Error(t, err)

	_, err = rng.WeightedChoice([]int{0, 0, 0})
	assert.Error(t, err)
}

func TestDeriveSubSeedDiffersPerStep(t *testing.T) {
	root := "deadbeefdeadbeefdeadbeefdeadbeef"
	seen := map[string]bool{}
	for step := 1; step <= 20; step++ {
		sub := DeriveSubSeed(root, step)
		assert.False(t, seen[sub], "sub-seed for step %d collided with an earlier step", step)
		seen[sub] = true
	}
}

func TestGenerateSeedProducesDistinctHexSeeds(t *testing.T) {
	seed1, err := GenerateSeed()
	require.NoError(t, err)
	seed2, err := GenerateSeed()
	require.NoError(t, err)

	assert.Len(t, seed1, 64)
	assert.NotEqual(t, seed1, seed2)
}
