package pipeline

import (
	"github.com/google/wire"

	"github.com/slotmachine/backend/internal/config"
	"github.com/slotmachine/backend/internal/game/multiplier"
	"github.com/slotmachine/backend/internal/game/symbols"
)

// ProviderSet is the Wire provider set for the pipeline's fixed
// configuration.
var ProviderSet = wire.NewSet(
	ProvideConfig,
)

// ProvideConfig builds the pipeline.Config the Spin Controller (C11) runs
// every spin against, resolving the base-game weight profile from
// GameConfig.Profile (spec.md §9's "configuration variant... swaps
// weights/chances at construction") and carrying the free-spins weight
// profile, paytables, and multiplier tables unchanged from their package
// defaults - none of spec.md §6's enumerated knobs have an operator
// override for those two tables yet, so the defaults are the single
// source of truth the RTP simulator also runs against.
func ProvideConfig(cfg *config.Config) Config {
	return Config{
		Cols:     cfg.Game.Cols,
		Rows:     cfg.Game.Rows,
		MinMatch: cfg.Game.MinMatch,

		ScatterChance: cfg.Game.ScatterChance,

		BaseWeights:      symbols.WeightsForProfile(cfg.Game.Profile),
		FreeSpinsWeights: symbols.FreeSpinsWeights,

		MaxWinMultiplier: cfg.Game.MaxWinMultiplier,

		FreeSpinsSpinsAwarded: cfg.Game.FreeSpins.Scatter4Plus,
		RetriggerSpins:        cfg.Game.FreeSpins.RetriggerSpins,

		BaseTriggerChance:    cfg.Game.RandomMultiplier.TriggerChance,
		MinWinRequired:       cfg.Game.RandomMultiplier.MinWinRequired,
		CascadeTriggerChance: cfg.Game.CascadeRandomMultiplier.TriggerChance,
		MinMultipliers:       cfg.Game.CascadeRandomMultiplier.MinMultipliers,
		MaxMultipliers:       cfg.Game.CascadeRandomMultiplier.MaxMultipliers,

		ValueTable:       multiplier.DefaultValueTable,
		CharacterWeights: multiplier.DefaultCharacterWeights,
	}
}
