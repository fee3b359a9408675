package controller

import (
	"time"

	"github.com/google/uuid"

	"github.com/slotmachine/backend/domain/gamestate"
	"github.com/slotmachine/backend/domain/spin"
	"github.com/slotmachine/backend/internal/game/cascade"
	"github.com/slotmachine/backend/internal/game/grid"
	"github.com/slotmachine/backend/internal/game/multiplier"
	"github.com/slotmachine/backend/internal/game/payout"
	"github.com/slotmachine/backend/internal/game/pipeline"
)

// buildSpinRecord translates one pipeline.Result into the durable
// spin.Spin audit record the Spin Controller persists and later replays.
func buildSpinRecord(spinID, playerID uuid.UUID, clientRequestID string, bet, balanceBefore, balanceAfter float64, seed string, preState *gamestate.PlayerState, r *pipeline.Result) *spin.Spin {
	return &spin.Spin{
		ID:              spinID,
		PlayerID:        playerID,
		ClientRequestID: clientRequestIDOrDefault(clientRequestID, spinID),

		BetAmount:     bet,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,

		RNGSeed: seed,

		Mode:                  string(preState.Mode),
		AccumulatedMultiplier: preState.AccumulatedMultiplier,

		InitialGrid: toSpinGrid(r.InitialGrid),
		FinalGrid:   toSpinGrid(r.FinalGrid),

		CascadeSteps:     toCascadeSteps(r.CascadeSteps, bet),
		MultiplierEvents: toMultiplierEvents(r.MultiplierEvents),

		BaseWin:       payout.Round2(r.BaseWin),
		TotalWin:      r.FinalWin,
		MaxWinCapped:  r.Capped,
		ScatterCount:  r.ScatterCount,
		ScatterPayout: payout.Round2(r.ScatterPayout),

		FreeSpinInfo: spin.FreeSpinInfo{
			Triggered:       r.FreeSpinTriggered,
			Retriggered:     r.FreeSpinRetriggered,
			SpinsAwarded:    r.SpinsAwardedThisSpin,
			SpinsRemaining:  r.NextState.FreeSpinsRemaining,
			WasFreeSpinUsed: r.WasFreeSpinUsed,
		},

		CreatedAt: time.Now().UTC(),
	}
}

// clientRequestIDOrDefault falls back to the spin's own ID when the
// caller submitted no idempotency key, keeping the uniqueIndex column
// satisfied without special-casing every read path for NULL.
func clientRequestIDOrDefault(clientRequestID string, spinID uuid.UUID) string {
	if clientRequestID != "" {
		return clientRequestID
	}
	return "auto:" + spinID.String()
}

func toSpinGrid(g *grid.Grid) spin.Grid {
	out := make(spin.Grid, g.Cols)
	for c := 0; c < g.Cols; c++ {
		col := make([]string, g.Rows)
		for r := 0; r < g.Rows; r++ {
			col[r] = string(g.Get(c, r))
		}
		out[c] = col
	}
	return out
}

func toCascadeSteps(steps []cascade.Step, bet float64) spin.CascadeSteps {
	out := make(spin.CascadeSteps, len(steps))
	for i, st := range steps {
		clusters := make([]spin.ClusterRecord, len(st.Clusters))
		for j, cl := range st.Clusters {
			cells := make([]spin.Position, len(cl.Cells))
			for k, cell := range cl.Cells {
				cells[k] = spin.Position{Col: cell.Col, Row: cell.Row}
			}
			clusters[j] = spin.ClusterRecord{
				Symbol: string(cl.Symbol),
				Size:   cl.Size(),
				Cells:  cells,
				Payout: payout.ClusterPayout(cl, bet),
			}
		}
		out[i] = spin.CascadeStepRecord{
			Index:                st.Index,
			Seed:                 st.Seed,
			GridBeforeHash:       st.GridBeforeHash,
			Clusters:             clusters,
			GridAfterRemovalHash: st.GridAfterRemovalHash,
			DropPlan:             st.DropPlan,
			GridAfterHash:        st.GridAfterHash,
			CascadeWin:           st.CascadeWin,
			RunningTotal:         st.RunningTotal,
		}
	}
	return out
}

func toMultiplierEvents(events []multiplier.Event) spin.MultiplierEvents {
	out := make(spin.MultiplierEvents, len(events))
	for i, e := range events {
		positions := make([]spin.Position, len(e.Positions))
		for j, p := range e.Positions {
			positions[j] = spin.Position{Col: p.Col, Row: p.Row}
		}
		out[i] = spin.MultiplierEventRecord{
			Kind:         e.Kind,
			Values:       e.Values,
			Positions:    positions,
			CharacterTag: e.CharacterTag,
		}
	}
	return out
}
