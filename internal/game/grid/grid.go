// Package grid implements the Grid Generator (C2): it produces a fully
// populated COLS×ROWS symbol grid from a seed and mode flags, and gives
// the grid its canonical hashable serialization for cascade/audit records.
package grid

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/slotmachine/backend/internal/game/rng"
	"github.com/slotmachine/backend/internal/game/symbols"
)

// Grid is indexed [col][row]; column is the gravity axis, row 0 is top.
type Grid struct {
	Cols  int
	Rows  int
	Cells [][]symbols.Symbol
}

// New allocates an empty grid of the given dimensions.
func New(cols, rows int) *Grid {
	cells := make([][]symbols.Symbol, cols)
	for c := range cells {
		cells[c] = make([]symbols.Symbol, rows)
	}
	return &Grid{Cols: cols, Rows: rows, Cells: cells}
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	out := New(g.Cols, g.Rows)
	for c := 0; c < g.Cols; c++ {
		copy(out.Cells[c], g.Cells[c])
	}
	return out
}

// Get returns the symbol at (col, row).
func (g *Grid) Get(col, row int) symbols.Symbol {
	return g.Cells[col][row]
}

// Set writes the symbol at (col, row).
func (g *Grid) Set(col, row int, sym symbols.Symbol) {
	g.Cells[col][row] = sym
}

// Params configures grid generation.
type Params struct {
	Cols          int
	Rows          int
	Weights       symbols.WeightTable
	ScatterChance float64
}

// Generate draws a fresh grid: per cell, sample a non-scatter symbol by
// weighted draw over Weights, then with probability ScatterChance replace
// it with the scatter (independent per cell), per spec.md §4.2.
func Generate(p Params, rngInstance rng.RNG, audit *rng.AuditSink) (*Grid, error) {
	g := New(p.Cols, p.Rows)
	syms, weights := p.Weights.Ordered()

	for c := 0; c < p.Cols; c++ {
		for r := 0; r < p.Rows; r++ {
			idx, err := rngInstance.WeightedChoice(weights)
			if err != nil {
				return nil, err
			}
			sym := syms[idx]

			roll, err := rngInstance.Float64()
			if err != nil {
				return nil, err
			}
			if roll < p.ScatterChance {
				sym = symbols.Scatter
			}

			g.Set(c, r, sym)
			audit.Emit("grid", "cell_draw", map[string]any{"col": c, "row": r, "symbol": string(sym)})
		}
	}
	return g, nil
}

// canonical is the wire shape used for hashing: nested ordered arrays
// [[col0_row0..col0_rowR-1],...].
func (g *Grid) canonical() [][]string {
	out := make([][]string, g.Cols)
	for c := 0; c < g.Cols; c++ {
		col := make([]string, g.Rows)
		for r := 0; r < g.Rows; r++ {
			col[r] = string(g.Cells[c][r])
		}
		out[c] = col
	}
	return out
}

// CanonicalJSON serializes the grid as nested ordered arrays with sorted
// keys (there are none to sort at this shape, but this is the canonical
// form referenced by every other hash in the pipeline).
func (g *Grid) CanonicalJSON() ([]byte, error) {
	return json.Marshal(g.canonical())
}

// Hash returns the SHA-256 hex digest of the canonical serialization, used
// for CascadeStep and SpinResult audit fields.
func (g *Grid) Hash() (string, error) {
	data, err := g.CanonicalJSON()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// CountScatters counts scatter cells across the whole grid.
func (g *Grid) CountScatters() int {
	count := 0
	for c := 0; c < g.Cols; c++ {
		for r := 0; r < g.Rows; r++ {
			if symbols.IsScatter(g.Cells[c][r]) {
				count++
			}
		}
	}
	return count
}
