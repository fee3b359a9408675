// Package multiplier implements the Multiplier Engine (C6): weighted
// random selection of additive multiplier values across two independent
// trigger phases, evaluated after the cascade loop completes.
package multiplier

import (
	"github.com/slotmachine/backend/internal/game/rng"
)

// WeightedValue is one entry of an explicit {value, weight} table.
type WeightedValue struct {
	Value  int
	Weight int
}

// DefaultValueTable is the weighted multiplier table used absent an
// operator-supplied override; it prefers small values with decreasing
// probability for larger ones.
var DefaultValueTable = []WeightedValue{
	{Value: 2, Weight: 50},
	{Value: 3, Weight: 30},
	{Value: 5, Weight: 15},
	{Value: 10, Weight: 4},
	{Value: 25, Weight: 1},
}

// FlatTable converts a legacy flat table (frequency = repetition count)
// into an explicit {value, weight} table, per spec.md §4.6's tolerance
// note for legacy inputs.
func FlatTable(values []int) []WeightedValue {
	counts := make(map[int]int)
	order := make([]int, 0)
	for _, v := range values {
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}
	out := make([]WeightedValue, 0, len(order))
	for _, v := range order {
		out = append(out, WeightedValue{Value: v, Weight: counts[v]})
	}
	return out
}

// CharacterTag is a cosmetic tag attached to a multiplier event; it has no
// payout effect.
type CharacterTag string

// Default character tags and weights.
const (
	TagA CharacterTag = "A"
	TagB CharacterTag = "B"
)

// DefaultCharacterWeights is the default {A:0.8, B:0.2} table, expressed
// as integer weights.
var DefaultCharacterWeights = map[CharacterTag]int{
	TagA: 80,
	TagB: 20,
}

// Position is a grid cell a multiplier value is placed on.
type Position struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Event is one MultiplierEvent, as defined in spec.md §3.
type Event struct {
	Kind         string     `json:"kind"` // base_random | cascade_random
	Values       []int      `json:"values"`
	Positions    []Position `json:"positions"`
	CharacterTag string     `json:"character_tag"`
}

// Params configures one evaluation of the multiplier engine for a single
// spin, combining both phases' configuration.
type Params struct {
	CascadeCount              int
	TotalWinBeforeMultipliers float64

	Cols int
	Rows int

	CascadeTriggerChance float64
	MinMultipliers       int
	MaxMultipliers       int

	BaseTriggerChance float64
	MinWinRequired    float64

	ValueTable       []WeightedValue
	CharacterWeights map[CharacterTag]int
}

// Evaluate runs both phases and returns the events produced plus the
// additive total M_total = sum of all values drawn this spin.
func Evaluate(p Params, rngInstance rng.RNG, audit *rng.AuditSink) ([]Event, int, error) {
	var events []Event
	total := 0
	usedCells := make(map[[2]int]bool)

	if p.CascadeCount >= 1 && p.TotalWinBeforeMultipliers >= p.MinWinRequired {
		roll, err := rngInstance.Float64()
		if err != nil {
			return nil, 0, err
		}
		if roll < p.CascadeTriggerChance {
			n, err := rngInstance.IntRange(p.MinMultipliers, p.MaxMultipliers)
			if err != nil {
				return nil, 0, err
			}
			values := make([]int, 0, n)
			positions := make([]Position, 0, n)
			for i := 0; i < n; i++ {
				v, err := drawValue(p.ValueTable, rngInstance)
				if err != nil {
					return nil, 0, err
				}
				values = append(values, v)
				total += v

				pos, err := drawUniqueCell(p.Cols, p.Rows, usedCells, rngInstance)
				if err != nil {
					return nil, 0, err
				}
				positions = append(positions, pos)
			}
			tag, err := drawTag(p.CharacterWeights, rngInstance)
			if err != nil {
				return nil, 0, err
			}
			events = append(events, Event{Kind: "cascade_random", Values: values, Positions: positions, CharacterTag: string(tag)})
			audit.Emit("multiplier", "cascade_random_trigger", map[string]any{"values": values})
		}
	}

	if p.TotalWinBeforeMultipliers >= p.MinWinRequired {
		roll, err := rngInstance.Float64()
		if err != nil {
			return nil, 0, err
		}
		if roll < p.BaseTriggerChance {
			v, err := drawValue(p.ValueTable, rngInstance)
			if err != nil {
				return nil, 0, err
			}
			pos, err := drawUniqueCell(p.Cols, p.Rows, usedCells, rngInstance)
			if err != nil {
				return nil, 0, err
			}
			tag, err := drawTag(p.CharacterWeights, rngInstance)
			if err != nil {
				return nil, 0, err
			}
			events = append(events, Event{Kind: "base_random", Values: []int{v}, Positions: []Position{pos}, CharacterTag: string(tag)})
			total += v
			audit.Emit("multiplier", "base_random_trigger", map[string]any{"value": v})
		}
	}

	return events, total, nil
}

func drawValue(table []WeightedValue, rngInstance rng.RNG) (int, error) {
	if len(table) == 0 {
		table = DefaultValueTable
	}
	weights := make([]int, len(table))
	for i, wv := range table {
		weights[i] = wv.Weight
	}
	idx, err := rngInstance.WeightedChoice(weights)
	if err != nil {
		return 0, err
	}
	return table[idx].Value, nil
}

func drawTag(weights map[CharacterTag]int, rngInstance rng.RNG) (CharacterTag, error) {
	if len(weights) == 0 {
		weights = DefaultCharacterWeights
	}
	tags := make([]CharacterTag, 0, len(weights))
	vals := make([]int, 0, len(weights))
	for _, t := range []CharacterTag{TagA, TagB} {
		if w, ok := weights[t]; ok {
			tags = append(tags, t)
			vals = append(vals, w)
		}
	}
	for t, w := range weights {
		found := false
		for _, existing := range tags {
			if existing == t {
				found = true
				break
			}
		}
		if !found {
			tags = append(tags, t)
			vals = append(vals, w)
		}
	}
	idx, err := rngInstance.WeightedChoice(vals)
	if err != nil {
		return "", err
	}
	return tags[idx], nil
}

func drawUniqueCell(cols, rows int, used map[[2]int]bool, rngInstance rng.RNG) (Position, error) {
	maxAttempts := cols * rows * 4
	for attempt := 0; attempt < maxAttempts; attempt++ {
		c, err := rngInstance.Int(cols)
		if err != nil {
			return Position{}, err
		}
		r, err := rngInstance.Int(rows)
		if err != nil {
			return Position{}, err
		}
		key := [2]int{c, r}
		if !used[key] {
			used[key] = true
			return Position{Col: c, Row: r}, nil
		}
	}
	// grid exhausted of unique cells; fall back to first free cell in
	// scan order rather than looping forever.
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			key := [2]int{c, r}
			if !used[key] {
				used[key] = true
				return Position{Col: c, Row: r}, nil
			}
		}
	}
	return Position{}, nil
}
