package pipeline

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotmachine/backend/domain/gamestate"
	"github.com/slotmachine/backend/internal/game/multiplier"
	"github.com/slotmachine/backend/internal/game/symbols"
)

func testConfig() Config {
	return Config{
		Cols: 6, Rows: 5, MinMatch: 8,
		ScatterChance: 0.03,

		BaseWeights:      symbols.StandardWeights,
		FreeSpinsWeights: symbols.FreeSpinsWeights,

		MaxWinMultiplier: 5000,

		FreeSpinsSpinsAwarded: 15,
		RetriggerSpins:        5,

		BaseTriggerChance:    0.1,
		MinWinRequired:       0.01,
		CascadeTriggerChance: 0.1,
		MinMultipliers:       1,
		MaxMultipliers:       3,

		ValueTable:       multiplier.DefaultValueTable,
		CharacterWeights: multiplier.DefaultCharacterWeights,
	}
}

func basePlayerState() *gamestate.PlayerState {
	return gamestate.NewPlayerState(uuid.New())
}

func TestExecuteIsDeterministic(t *testing.T) {
	cfg := testConfig()
	state := basePlayerState()

	first, err := Execute("deterministic-seed-001", 1.0, state, cfg)
	require.NoError(t, err)
	second, err := Execute("deterministic-seed-001", 1.0, state, cfg)
	require.NoError(t, err)

	assert.Equal(t, first.InitialGridHash, second.InitialGridHash)
	assert.Equal(t, first.FinalGridHash, second.FinalGridHash)
	assert.Equal(t, first.FinalWin, second.FinalWin)
	assert.Equal(t, first.MultiplierSum, second.MultiplierSum)
	assert.Equal(t, len(first.CascadeSteps), len(second.CascadeSteps))
	assert.Equal(t, first.NextState.Mode, second.NextState.Mode)
	assert.Equal(t, first.NextState.FreeSpinsRemaining, second.NextState.FreeSpinsRemaining)
	assert.Equal(t, first.NextState.AccumulatedMultiplier, second.NextState.AccumulatedMultiplier)
}

func TestExecuteDifferentSeedsDiverge(t *testing.T) {
	cfg := testConfig()
	state := basePlayerState()

	a, err := Execute("seed-a", 1.0, state, cfg)
	require.NoError(t, err)
	b, err := Execute("seed-b", 1.0, state, cfg)
	require.NoError(t, err)

	assert.NotEqual(t, a.InitialGridHash, b.InitialGridHash)
}

func TestExecuteCascadeTerminates(t *testing.T) {
	cfg := testConfig()
	state := basePlayerState()

	for _, seed := range []string{"a", "b", "c", "d", "e"} {
		result, err := Execute(seed, 1.0, state, cfg)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(result.CascadeSteps), 20)
	}
}

func TestExecuteRespectsMaxWinCap(t *testing.T) {
	cfg := testConfig()
	cfg.MaxWinMultiplier = 1 // force the cap to bind on any non-zero win
	state := basePlayerState()

	for i := 0; i < 25; i++ {
		result, err := Execute(uuid.NewString(), 1.0, state, cfg)
		require.NoError(t, err)
		assert.LessOrEqual(t, result.FinalWin, 1.0*float64(cfg.MaxWinMultiplier))
	}
}

func TestExecuteFreeSpinsAccumulatedMultiplierNeverResetsOnRetrigger(t *testing.T) {
	cfg := testConfig()
	state := &gamestate.PlayerState{
		PlayerID:              uuid.New(),
		Mode:                  gamestate.ModeFreeSpins,
		FreeSpinsRemaining:    3,
		AccumulatedMultiplier: 2,
		Version:               1,
	}

	result, err := Execute("fs-seed", 1.0, state, cfg)
	require.NoError(t, err)

	// accumulated_multiplier is monotonic: the next value is always >= the
	// current one while free spins continue, and resets to 1 only once
	// FreeSpinsRemaining reaches zero.
	if result.NextState.Mode == gamestate.ModeFreeSpins {
		assert.GreaterOrEqual(t, result.NextState.AccumulatedMultiplier, state.AccumulatedMultiplier)
	} else {
		assert.Equal(t, 1, result.NextState.AccumulatedMultiplier)
	}
}

func TestExecuteBaseModeConsumesNoFreeSpin(t *testing.T) {
	cfg := testConfig()
	state := basePlayerState()

	result, err := Execute("base-seed", 1.0, state, cfg)
	require.NoError(t, err)

	if !result.FreeSpinTriggered {
		assert.Equal(t, gamestate.ModeBase, result.NextState.Mode)
		assert.Equal(t, 0, result.NextState.FreeSpinsRemaining)
		assert.Equal(t, 1, result.NextState.AccumulatedMultiplier)
	}
}
