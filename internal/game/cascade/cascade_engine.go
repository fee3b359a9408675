// Package cascade implements the Cascade Processor (C5): a state machine
// over the grid that removes winning clusters, drops survivors, and
// refills from the top, one step at a time, until no clusters remain.
package cascade

import (
	"github.com/slotmachine/backend/internal/game/cluster"
	"github.com/slotmachine/backend/internal/game/grid"
	"github.com/slotmachine/backend/internal/game/payout"
	"github.com/slotmachine/backend/internal/game/rng"
	"github.com/slotmachine/backend/internal/game/symbols"
)

// empty marks a cell cleared by a cluster removal, pending gravity/refill.
// It is not a member of symbols.AllSymbols.
const empty = symbols.Symbol("")

// MaxSteps is the hard cap on cascade iterations (spec.md §4.5 / §8).
const MaxSteps = 20

// Step is an immutable record of one cascade iteration.
type Step struct {
	Index                int               `json:"index"`
	Seed                 string            `json:"seed"`
	GridBefore           *grid.Grid        `json:"grid_before"`
	GridBeforeHash       string            `json:"grid_before_hash"`
	Clusters             []cluster.Cluster `json:"cluster_list"`
	GridAfterRemoval     *grid.Grid        `json:"grid_after_removal"`
	GridAfterRemovalHash string            `json:"grid_after_removal_hash"`
	DropPlan             []int             `json:"drop_plan"` // cells refilled per column
	NewSymbols           [][]symbols.Symbol `json:"new_symbols"`
	GridAfter            *grid.Grid        `json:"grid_after"`
	GridAfterHash        string            `json:"grid_after_hash"`
	CascadeWin           float64           `json:"cascade_win"`
	RunningTotal         float64           `json:"running_total"`
}

// Params configures one cascade-loop execution.
type Params struct {
	RootSeed              string
	Bet                   float64
	MinMatch              int
	AccumulatedMultiplier int // applied to each step's win, free spins only
	IsFreeSpins           bool
	Weights               symbols.WeightTable
	ScatterChance         float64
}

// Result is the outcome of running the cascade loop to completion.
type Result struct {
	Steps     []Step
	FinalGrid *grid.Grid
	TotalWin  float64 // sum of cascade_win across all steps, pre max-win-cap
}

// Execute runs the cascade loop (C5) starting from initialGrid until no
// clusters of size >= MinMatch remain, or MaxSteps is reached. It does NOT
// trigger or consume free spins/multipliers - that is C8's job; it does
// apply the current AccumulatedMultiplier to each step's win when
// IsFreeSpins, per spec.md §4.5 step 2.
func Execute(initialGrid *grid.Grid, p Params, audit *rng.AuditSink) (Result, error) {
	current := initialGrid.Clone()
	var steps []Step
	runningTotal := 0.0

	for stepNum := 1; stepNum <= MaxSteps; stepNum++ {
		clusters := cluster.Detect(current, p.MinMatch)
		if len(clusters) == 0 {
			break
		}

		gridBeforeHash, err := current.Hash()
		if err != nil {
			return Result{}, err
		}

		cascadeWin := 0.0
		for _, c := range clusters {
			cascadeWin += payout.ClusterPayout(c, p.Bet)
		}
		if p.IsFreeSpins && p.AccumulatedMultiplier > 1 {
			cascadeWin *= float64(p.AccumulatedMultiplier)
		}
		runningTotal += cascadeWin

		removed := removeClusters(current, clusters)
		removedHash, err := removed.Hash()
		if err != nil {
			return Result{}, err
		}

		subSeed := rng.DeriveSubSeed(p.RootSeed, stepNum)
		stepRNG := rng.NewDeterministicRNG(subSeed)

		dropped, dropPlan := applyGravity(removed)
		filled, newSymbols, err := refill(dropped, dropPlan, p.Weights, p.ScatterChance, stepRNG, audit)
		if err != nil {
			return Result{}, err
		}

		filledHash, err := filled.Hash()
		if err != nil {
			return Result{}, err
		}

		steps = append(steps, Step{
			Index:                stepNum,
			Seed:                 subSeed,
			GridBefore:           current,
			GridBeforeHash:       gridBeforeHash,
			Clusters:             clusters,
			GridAfterRemoval:     removed,
			GridAfterRemovalHash: removedHash,
			DropPlan:             dropPlan,
			NewSymbols:           newSymbols,
			GridAfter:            filled,
			GridAfterHash:        filledHash,
			CascadeWin:           cascadeWin,
			RunningTotal:         runningTotal,
		})

		current = filled
		audit.Emit("cascade", "step_complete", map[string]any{"step": stepNum, "cascade_win": cascadeWin})
	}

	return Result{Steps: steps, FinalGrid: current, TotalWin: runningTotal}, nil
}

// removeClusters clears every cell belonging to a detected cluster.
func removeClusters(g *grid.Grid, clusters []cluster.Cluster) *grid.Grid {
	out := g.Clone()
	for _, c := range clusters {
		for _, cell := range c.Cells {
			out.Set(cell.Col, cell.Row, empty)
		}
	}
	return out
}

// applyGravity compacts surviving cells downward within each column,
// preserving relative order, and returns the count of empty slots left at
// the top of each column (the drop plan).
func applyGravity(g *grid.Grid) (*grid.Grid, []int) {
	out := grid.New(g.Cols, g.Rows)
	dropPlan := make([]int, g.Cols)

	for c := 0; c < g.Cols; c++ {
		survivors := make([]symbols.Symbol, 0, g.Rows)
		for r := 0; r < g.Rows; r++ {
			if g.Get(c, r) != empty {
				survivors = append(survivors, g.Get(c, r))
			}
		}
		emptyCount := g.Rows - len(survivors)
		dropPlan[c] = emptyCount

		for r := 0; r < emptyCount; r++ {
			out.Set(c, r, empty)
		}
		for i, sym := range survivors {
			out.Set(c, emptyCount+i, sym)
		}
	}

	return out, dropPlan
}

// refill draws fresh symbols for the emptied top rows of each column,
// using the same distribution as the Grid Generator (C2) and the step's
// sub-seed.
func refill(g *grid.Grid, dropPlan []int, weights symbols.WeightTable, scatterChance float64, stepRNG rng.RNG, audit *rng.AuditSink) (*grid.Grid, [][]symbols.Symbol, error) {
	out := g.Clone()
	newSymbols := make([][]symbols.Symbol, g.Cols)
	syms, weightValues := weights.Ordered()

	for c := 0; c < g.Cols; c++ {
		count := dropPlan[c]
		col := make([]symbols.Symbol, 0, count)
		for i := 0; i < count; i++ {
			idx, err := stepRNG.WeightedChoice(weightValues)
			if err != nil {
				return nil, nil, err
			}
			sym := syms[idx]

			roll, err := stepRNG.Float64()
			if err != nil {
				return nil, nil, err
			}
			if roll < scatterChance {
				sym = symbols.Scatter
			}

			out.Set(c, i, sym)
			col = append(col, sym)
			audit.Emit("cascade", "refill_cell", map[string]any{"col": c, "row": i, "symbol": string(sym)})
		}
		newSymbols[c] = col
	}

	return out, newSymbols, nil
}
