// Package freespins implements the Free-Spins Engine (C7): scatter-count
// based triggering and retriggering. Free-spins state itself lives on
// PlayerState (domain/gamestate), not as a standalone session entity.
package freespins

import (
	"github.com/slotmachine/backend/internal/game/grid"
	"github.com/slotmachine/backend/internal/game/symbols"
)

// MinScattersToTrigger is the fixed scatter count required to enter free
// spins, per spec.md §4.7: strictly 4, not a sliding formula.
const MinScattersToTrigger = 4

// Position is a grid cell holding a scatter symbol.
type Position struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// TriggerResult is the outcome of checking a single grid for a free-spins
// trigger.
type TriggerResult struct {
	Triggered    bool `json:"triggered"`
	ScatterCount int  `json:"scatter_count"`
	SpinsAwarded int  `json:"spins_awarded"`
}

// CheckTrigger checks g for a free-spins trigger, awarding a fixed spin
// count (config.Scatter4Plus) regardless of how far above the 4-scatter
// floor the count lands.
func CheckTrigger(g *grid.Grid, spinsAwarded int) TriggerResult {
	count := CountScatters(g)
	if count >= MinScattersToTrigger {
		return TriggerResult{Triggered: true, ScatterCount: count, SpinsAwarded: spinsAwarded}
	}
	return TriggerResult{Triggered: false, ScatterCount: count}
}

// CountScatters counts scatter symbols across every cell of g.
func CountScatters(g *grid.Grid) int {
	count := 0
	for c := 0; c < g.Cols; c++ {
		for r := 0; r < g.Rows; r++ {
			if symbols.IsScatter(g.Get(c, r)) {
				count++
			}
		}
	}
	return count
}

// ScatterPositions returns the grid positions holding scatter symbols.
func ScatterPositions(g *grid.Grid) []Position {
	var positions []Position
	for c := 0; c < g.Cols; c++ {
		for r := 0; r < g.Rows; r++ {
			if symbols.IsScatter(g.Get(c, r)) {
				positions = append(positions, Position{Col: c, Row: r})
			}
		}
	}
	return positions
}

// CheckInitialAndFinalTrigger evaluates both the pre-cascade and
// post-cascade grids for a trigger, with the initial grid taking
// precedence when both qualify, per spec.md §4.7's initial-trigger-first
// resolution.
func CheckInitialAndFinalTrigger(initial, final *grid.Grid, spinsAwarded int) TriggerResult {
	if r := CheckTrigger(initial, spinsAwarded); r.Triggered {
		return r
	}
	return CheckTrigger(final, spinsAwarded)
}
