// Package pipeline implements the Spin Pipeline Orchestrator (C8): it
// sequences the grid, cascade, free-spins, and multiplier components into
// one pure evaluation of a single spin, given a seed and the player's
// current state. It performs no I/O and owns no persistence - the Spin
// Controller (internal/controller), the replay verification in
// internal/service and the RTP simulator all call Execute, and it is the
// one source of spin truth for both live play and replay verification.
package pipeline

import (
	"fmt"

	"github.com/slotmachine/backend/domain/gamestate"
	"github.com/slotmachine/backend/internal/game/cascade"
	"github.com/slotmachine/backend/internal/game/freespins"
	"github.com/slotmachine/backend/internal/game/grid"
	"github.com/slotmachine/backend/internal/game/multiplier"
	"github.com/slotmachine/backend/internal/game/payout"
	"github.com/slotmachine/backend/internal/game/rng"
	"github.com/slotmachine/backend/internal/game/symbols"
)

// Config is the fixed set of game constants one Execute call evaluates
// against, built once from internal/config.Config.
type Config struct {
	Cols, Rows, MinMatch int
	ScatterChance        float64

	BaseWeights      symbols.WeightTable
	FreeSpinsWeights symbols.WeightTable

	MaxWinMultiplier int

	FreeSpinsSpinsAwarded int // FREE_SPINS_SCATTER_4_PLUS
	RetriggerSpins        int

	BaseTriggerChance    float64
	MinWinRequired       float64
	CascadeTriggerChance float64
	MinMultipliers       int
	MaxMultipliers       int

	ValueTable       []multiplier.WeightedValue
	CharacterWeights map[multiplier.CharacterTag]int
}

// Result is the full outcome of one pipeline evaluation: everything the
// Spin Controller needs to settle the wallet, CAS the player's next
// state, and persist the audit record.
type Result struct {
	RootSeed string

	InitialGrid     *grid.Grid
	InitialGridHash string
	FinalGrid       *grid.Grid
	FinalGridHash   string

	CascadeSteps     []cascade.Step
	MultiplierEvents []multiplier.Event

	BaseWin       float64 // cluster wins across all cascade steps, pre-cap
	ScatterCount  int
	ScatterPayout float64
	MultiplierSum int // M_total drawn this spin

	TotalWin float64 // BaseWin + ScatterPayout, before M_total is applied
	FinalWin float64 // after M_total, max-win cap, and rounding to 2dp
	Capped   bool

	FreeSpinTriggered    bool
	FreeSpinRetriggered  bool
	SpinsAwardedThisSpin int
	WasFreeSpinUsed      bool

	NextState *gamestate.PlayerState

	Audit *rng.AuditSink
}

// Execute runs the full spin algorithm per spec: generate grid, cascade,
// evaluate free spins and multipliers, cap the win, and compute the
// player's next state. state is read-only; the returned NextState is a
// fresh value the caller CASes in separately.
func Execute(seed string, bet float64, state *gamestate.PlayerState, cfg Config) (*Result, error) {
	audit := rng.NewAuditSink()
	root := rng.NewDeterministicRNG(seed)

	isFreeSpins := state.Mode == gamestate.ModeFreeSpins
	weights := cfg.BaseWeights
	if isFreeSpins {
		weights = cfg.FreeSpinsWeights
	}

	// 1. initial grid (C2)
	initial, err := grid.Generate(grid.Params{
		Cols: cfg.Cols, Rows: cfg.Rows, Weights: weights, ScatterChance: cfg.ScatterChance,
	}, root, audit)
	if err != nil {
		return nil, fmt.Errorf("pipeline: generate initial grid: %w", err)
	}
	initialHash, err := initial.Hash()
	if err != nil {
		return nil, fmt.Errorf("pipeline: hash initial grid: %w", err)
	}

	// 2. cascade loop (C5)
	cascadeResult, err := cascade.Execute(initial, cascade.Params{
		RootSeed:              seed,
		Bet:                   bet,
		MinMatch:              cfg.MinMatch,
		AccumulatedMultiplier: state.AccumulatedMultiplier,
		IsFreeSpins:           isFreeSpins,
		Weights:               weights,
		ScatterChance:         cfg.ScatterChance,
	}, audit)
	if err != nil {
		return nil, fmt.Errorf("pipeline: run cascade loop: %w", err)
	}
	final := cascadeResult.FinalGrid
	finalHash, err := final.Hash()
	if err != nil {
		return nil, fmt.Errorf("pipeline: hash final grid: %w", err)
	}
	baseWin := cascadeResult.TotalWin

	// 3. free-spins trigger/retrigger and scatter payout
	var (
		trigger      freespins.TriggerResult
		retrigger    freespins.RetriggerResult
		scatterCount int
	)
	if !isFreeSpins {
		trigger = freespins.CheckInitialAndFinalTrigger(initial, final, cfg.FreeSpinsSpinsAwarded)
		scatterCount = trigger.ScatterCount
	} else {
		retrigger = freespins.CheckRetrigger(final, state.FreeSpinsRemaining, cfg.RetriggerSpins)
		scatterCount = retrigger.ScatterCount
	}
	scatterPayout := payout.ScatterPayout(scatterCount, bet)

	// 4. multiplier engine (C6)
	events, mTotal, err := multiplier.Evaluate(multiplier.Params{
		CascadeCount:              len(cascadeResult.Steps),
		TotalWinBeforeMultipliers: baseWin + scatterPayout,
		Cols:                      cfg.Cols,
		Rows:                      cfg.Rows,
		CascadeTriggerChance:      cfg.CascadeTriggerChance,
		MinMultipliers:            cfg.MinMultipliers,
		MaxMultipliers:            cfg.MaxMultipliers,
		BaseTriggerChance:         cfg.BaseTriggerChance,
		MinWinRequired:            cfg.MinWinRequired,
		ValueTable:                cfg.ValueTable,
		CharacterWeights:          cfg.CharacterWeights,
	}, root, audit)
	if err != nil {
		return nil, fmt.Errorf("pipeline: evaluate multiplier engine: %w", err)
	}

	// 5. apply the multiplier total to this spin's win and cap/round.
	//
	// In base mode M_total multiplies the spin's win outright. In
	// free-spins mode the cascade loop already multiplied each step's win
	// by the PRE-spin accumulated_multiplier (step 2); "base_reconstructed"
	// backs that out so the FULL new multiplier (accumulated + M_total)
	// can be applied once, not stacked on top of the old one.
	totalWinBeforeMultipliers := baseWin + scatterPayout
	var rawFinalWin float64
	if !isFreeSpins {
		if mTotal > 0 {
			rawFinalWin = totalWinBeforeMultipliers * float64(mTotal)
		} else {
			rawFinalWin = totalWinBeforeMultipliers
		}
	} else {
		accum := state.AccumulatedMultiplier
		baseReconstructed := baseWin
		if accum > 0 {
			baseReconstructed = baseWin / float64(accum)
		}
		rawFinalWin = (baseReconstructed + scatterPayout) * float64(accum+mTotal)
	}

	finalWin := payout.ApplyMaxWinCap(rawFinalWin, bet, cfg.MaxWinMultiplier)
	capped := rawFinalWin > bet*float64(cfg.MaxWinMultiplier)

	// 6. compute next state
	next := &gamestate.PlayerState{
		PlayerID:              state.PlayerID,
		Mode:                  state.Mode,
		FreeSpinsRemaining:    state.FreeSpinsRemaining,
		AccumulatedMultiplier: state.AccumulatedMultiplier,
		Version:               state.Version,
	}
	if !isFreeSpins {
		if trigger.Triggered {
			next.EnterFreeSpins(trigger.SpinsAwarded)
		}
	} else {
		remaining := state.FreeSpinsRemaining - 1
		if remaining < 0 {
			remaining = 0
		}
		if retrigger.Retriggered {
			remaining += retrigger.AdditionalSpins
		}
		accumulated := state.AccumulatedMultiplier + mTotal
		mode := gamestate.ModeFreeSpins
		if remaining == 0 {
			mode = gamestate.ModeBase
			accumulated = 1
		}
		next.Mode = mode
		next.FreeSpinsRemaining = remaining
		next.AccumulatedMultiplier = accumulated
	}

	return &Result{
		RootSeed:             seed,
		InitialGrid:          initial,
		InitialGridHash:      initialHash,
		FinalGrid:            final,
		FinalGridHash:        finalHash,
		CascadeSteps:         cascadeResult.Steps,
		MultiplierEvents:     events,
		BaseWin:              baseWin,
		ScatterCount:         scatterCount,
		ScatterPayout:        scatterPayout,
		MultiplierSum:        mTotal,
		TotalWin:             totalWinBeforeMultipliers,
		FinalWin:             finalWin,
		Capped:               capped,
		FreeSpinTriggered:    trigger.Triggered,
		FreeSpinRetriggered:  retrigger.Retriggered,
		SpinsAwardedThisSpin: trigger.SpinsAwarded,
		WasFreeSpinUsed:      isFreeSpins,
		NextState:            next,
		Audit:                audit,
	}, nil
}
