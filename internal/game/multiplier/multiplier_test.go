package multiplier

import (
	"testing"

	"github.com/slotmachine/backend/internal/game/rng"
)

func baseParams() Params {
	return Params{
		CascadeCount:              1,
		TotalWinBeforeMultipliers: 10,
		Cols:                      6,
		Rows:                      5,
		CascadeTriggerChance:      1.0,
		MinMultipliers:            2,
		MaxMultipliers:            4,
		BaseTriggerChance:         1.0,
		MinWinRequired:            1.0,
		ValueTable:                DefaultValueTable,
		CharacterWeights:          DefaultCharacterWeights,
	}
}

func TestEvaluateBothPhasesTriggerWhenChanceIsCertain(t *testing.T) {
	r := rng.NewDeterministicRNG("evaluate-both")
	events, total, err := Evaluate(baseParams(), r, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events (cascade_random + base_random), got %d", len(events))
	}
	if events[0].Kind != "cascade_random" {
		t.Fatalf("expected first event to be cascade_random, got %s", events[0].Kind)
	}
	if events[1].Kind != "base_random" {
		t.Fatalf("expected second event to be base_random, got %s", events[1].Kind)
	}
	if total <= 0 {
		t.Fatalf("expected positive additive total, got %d", total)
	}
}

func TestEvaluateCascadePhaseSkippedWithoutCascades(t *testing.T) {
	p := baseParams()
	p.CascadeCount = 0
	r := rng.NewDeterministicRNG("no-cascades")
	events, _, err := Evaluate(p, r, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, e := range events {
		if e.Kind == "cascade_random" {
			t.Fatal("did not expect a cascade_random event when cascade_count is 0")
		}
	}
}

func TestEvaluateNoTriggerBelowMinWin(t *testing.T) {
	p := baseParams()
	p.TotalWinBeforeMultipliers = 0
	r := rng.NewDeterministicRNG("below-min-win")
	events, total, err := Evaluate(p, r, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 0 || total != 0 {
		t.Fatalf("expected no events/total below MinWinRequired, got %d events, total %d", len(events), total)
	}
}

func TestEvaluateNeverTriggersWhenChanceIsZero(t *testing.T) {
	p := baseParams()
	p.CascadeTriggerChance = 0
	p.BaseTriggerChance = 0
	r := rng.NewDeterministicRNG("zero-chance")
	events, total, err := Evaluate(p, r, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 0 || total != 0 {
		t.Fatalf("expected no events when trigger chances are zero, got %d events, total %d", len(events), total)
	}
}

func TestEvaluateCascadeEventPlacesUniquePositions(t *testing.T) {
	r := rng.NewDeterministicRNG("unique-positions")
	events, _, err := Evaluate(baseParams(), r, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seen := make(map[[2]int]bool)
	for _, e := range events {
		for _, pos := range e.Positions {
			key := [2]int{pos.Col, pos.Row}
			if seen[key] {
				t.Fatalf("expected unique positions across events, got duplicate at %v", pos)
			}
			seen[key] = true
		}
	}
}

func TestEvaluateIsDeterministicForSameSeed(t *testing.T) {
	p := baseParams()
	r1 := rng.NewDeterministicRNG("replay-seed")
	r2 := rng.NewDeterministicRNG("replay-seed")

	events1, total1, err := Evaluate(p, r1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	events2, total2, err := Evaluate(p, r2, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total1 != total2 {
		t.Fatalf("replay total mismatch: %d vs %d", total1, total2)
	}
	if len(events1) != len(events2) {
		t.Fatalf("replay event count mismatch: %d vs %d", len(events1), len(events2))
	}
}

func TestFlatTableConvertsRepetitionToWeight(t *testing.T) {
	table := FlatTable([]int{2, 2, 2, 3, 5})
	weightFor := func(v int) int {
		for _, wv := range table {
			if wv.Value == v {
				return wv.Weight
			}
		}
		return -1
	}
	if weightFor(2) != 3 {
		t.Fatalf("expected weight 3 for value 2, got %d", weightFor(2))
	}
	if weightFor(3) != 1 {
		t.Fatalf("expected weight 1 for value 3, got %d", weightFor(3))
	}
	if weightFor(5) != 1 {
		t.Fatalf("expected weight 1 for value 5, got %d", weightFor(5))
	}
}
