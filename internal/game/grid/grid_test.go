package grid

import (
	"testing"

	"github.com/slotmachine/backend/internal/game/rng"
	"github.com/slotmachine/backend/internal/game/symbols"
)

func genParams() Params {
	return Params{
		Cols:          5,
		Rows:          4,
		Weights:       symbols.StandardWeights,
		ScatterChance: 0.1,
	}
}

func TestGenerateFillsEveryCell(t *testing.T) {
	p := genParams()
	g, err := Generate(p, rng.NewDeterministicRNG("seed-a"), rng.NewAuditSink())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if g.Cols != p.Cols || g.Rows != p.Rows {
		t.Fatalf("got %dx%d grid, want %dx%d", g.Cols, g.Rows, p.Cols, p.Rows)
	}
	for c := 0; c < g.Cols; c++ {
		for r := 0; r < g.Rows; r++ {
			if g.Get(c, r) == "" {
				t.Fatalf("cell (%d,%d) was never drawn", c, r)
			}
		}
	}
}

func TestGenerateIsDeterministicForSameSeed(t *testing.T) {
	p := genParams()
	g1, err := Generate(p, rng.NewDeterministicRNG("replay-seed"), rng.NewAuditSink())
	if err != nil {
		t.Fatalf("Generate 1: %v", err)
	}
	g2, err := Generate(p, rng.NewDeterministicRNG("replay-seed"), rng.NewAuditSink())
	if err != nil {
		t.Fatalf("Generate 2: %v", err)
	}

	h1, err := g1.Hash()
	if err != nil {
		t.Fatalf("hash 1: %v", err)
	}
	h2, err := g2.Hash()
	if err != nil {
		t.Fatalf("hash 2: %v", err)
	}
	if h1 != h2 {
		t.Fatalf("same seed produced different grid hashes: %s != %s", h1, h2)
	}
}

func TestHashChangesWithContent(t *testing.T) {
	g := New(2, 2)
	g.Set(0, 0, symbols.SymbolFa)
	h1, _ := g.Hash()

	g.Set(0, 0, symbols.SymbolBai)
	h2, _ := g.Hash()

	if h1 == h2 {
		t.Fatal("expected hash to change when grid contents change")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := New(2, 2)
	g.Set(0, 0, symbols.SymbolFa)
	clone := g.Clone()
	clone.Set(0, 0, symbols.SymbolBai)

	if g.Get(0, 0) != symbols.SymbolFa {
		t.Fatal("mutating the clone mutated the original")
	}
}

func TestCountScatters(t *testing.T) {
	g := New(2, 2)
	g.Set(0, 0, symbols.Scatter)
	g.Set(1, 1, symbols.Scatter)
	g.Set(0, 1, symbols.SymbolFa)

	if got := g.CountScatters(); got != 2 {
		t.Fatalf("CountScatters() = %d, want 2", got)
	}
}
