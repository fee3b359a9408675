package symbols

// WeightTable assigns a relative draw weight to each paying symbol. It
// never includes the scatter - scatter placement is an independent
// per-cell draw on top of the weighted symbol (spec.md §4.2).
type WeightTable map[Symbol]int

// StandardWeights is the default SYMBOL_WEIGHTS table.
var StandardWeights = WeightTable{
	SymbolFa:    4,
	SymbolZhong: 5,
	SymbolBai:   7,
	SymbolBawan: 9,

	SymbolWusuo:     12,
	SymbolWutong:    12,
	SymbolLiangsuo:  23,
	SymbolLiangtong: 23,
}

// BoostedWeights is an alternate profile favoring high-value symbols,
// selected at construction time by GameConfig.Profile = "boosted"
// (spec.md §9 design note: "configuration variant that swaps
// weights/chances at construction; the pipeline code is unchanged").
var BoostedWeights = WeightTable{
	SymbolFa:    10,
	SymbolZhong: 12,
	SymbolBai:   14,
	SymbolBawan: 14,

	SymbolWusuo:     10,
	SymbolWutong:    10,
	SymbolLiangsuo:  14,
	SymbolLiangtong: 14,
}

// FreeSpinsWeights is the weight profile used while mode=free_spins: it
// shifts mass toward high-value symbols relative to the base game, the
// same way the teacher's free-spin reel strips ran hotter than the base
// game's.
var FreeSpinsWeights = WeightTable{
	SymbolFa:    8,
	SymbolZhong: 9,
	SymbolBai:   11,
	SymbolBawan: 12,

	SymbolWusuo:     13,
	SymbolWutong:    14,
	SymbolLiangsuo:  16,
	SymbolLiangtong: 17,
}

// WeightsForProfile resolves the base-game weight table for a profile
// name, defaulting to StandardWeights for any unrecognized value.
func WeightsForProfile(profile string) WeightTable {
	if profile == "boosted" {
		return BoostedWeights
	}
	return StandardWeights
}

// Ordered returns the table's symbols and parallel weights in a fixed
// deterministic order, suitable for rng.RNG.WeightedChoice.
func (t WeightTable) Ordered() ([]Symbol, []int) {
	order := PayingSymbols()
	syms := make([]Symbol, 0, len(order))
	weights := make([]int, 0, len(order))
	for _, s := range order {
		w, ok := t[s]
		if !ok {
			continue
		}
		syms = append(syms, s)
		weights = append(weights, w)
	}
	return syms, weights
}
