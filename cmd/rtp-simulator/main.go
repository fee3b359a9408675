// Command rtp-simulator runs the pure Spin Pipeline (C1-C8) in a tight
// loop against a fixed bet, accumulating RTP and hit-frequency
// statistics the way the teacher's own reel-strip simulator does,
// without touching a database, cache, or HTTP server: the pipeline is
// a pure function of (seed, bet, PlayerState, Config), so a simulator
// never needs more than those four inputs and a PlayerState it carries
// across iterations.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/slotmachine/backend/domain/gamestate"
	"github.com/slotmachine/backend/internal/config"
	"github.com/slotmachine/backend/internal/game/pipeline"
	"github.com/slotmachine/backend/internal/game/rng"
)

// SimulationStats holds the statistics from simulation.
type SimulationStats struct {
	TotalSpins             int     `json:"total_spins"`
	TotalWagered           float64 `json:"total_wagered"`
	TotalWon               float64 `json:"total_won"`
	RTP                    float64 `json:"rtp"`
	BaseGameWins           int     `json:"base_game_wins"`
	BaseGameTotalWon       float64 `json:"base_game_total_won"`
	BaseRTP                float64 `json:"base_rtp"`
	FreeSpinsTriggered     int     `json:"free_spins_triggered"`
	FreeSpinsTriggeredRate float64 `json:"free_spins_triggered_rate"`
	FreeSpinsTotalWon      float64 `json:"free_spins_total_won"`
	FreeRTP                float64 `json:"free_rtp"`
	FreeSpinsRetriggered   int     `json:"free_spins_retriggered"`
	MaxWin                 float64 `json:"max_win"`
	MaxWinSpin             int     `json:"max_win_spin"`

	// Hit frequency.
	NoWinSpins int `json:"no_win_spins"`
	SmallWins  int `json:"small_wins"`  // < 5x bet
	MediumWins int `json:"medium_wins"` // 5x - 20x bet
	BigWins    int `json:"big_wins"`    // 20x - 100x bet
	MegaWins   int `json:"mega_wins"`   // > 100x bet

	// Cascade statistics.
	TotalCascades     int     `json:"total_cascades"`
	MaxCascades       int     `json:"max_cascades"`
	AvgCascadesPerWin float64 `json:"avg_cascades_per_win"`

	// Free spins statistics.
	TotalFreeSpins      int     `json:"total_free_spins"`
	AvgFreeSpinsAwarded float64 `json:"avg_free_spins_awarded"`
	CappedSpins         int     `json:"capped_spins"`
}

func main() {
	numSpins := flag.Int("spins", 1000000, "Number of spins to simulate")
	betAmount := flag.Float64("bet", 1.0, "Bet amount per spin")
	progressInterval := flag.Int("progress", 100000, "Progress report interval")
	targetRTP := flag.Float64("target-rtp", 96.5, "Target RTP, as a percentage")
	playerId := flag.String("player-id", "b76f37bc-8014-41eb-a710-d105a8ae6293", "Player ID carried into the simulated PlayerState")
	flag.Parse()

	playerID, err := uuid.Parse(*playerId)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse player ID: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("╔════════════════════════════════════════════════════════════╗")
	fmt.Println("║         SLOT MACHINE RTP SIMULATOR                        ║")
	fmt.Println("╚════════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Spins:        %d\n", *numSpins)
	fmt.Printf("  Bet Amount:   %.2f\n", *betAmount)
	fmt.Printf("  Target RTP:   %.2f%%\n", *targetRTP)
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	pipelineCfg := pipeline.ProvideConfig(cfg)

	fmt.Println("Starting simulation...")
	fmt.Println()

	stats := runSimulation(pipelineCfg, playerID, *numSpins, *betAmount, *progressInterval)
	printResults(stats, *betAmount, *targetRTP)
}

// runSimulation drives the pipeline directly, carrying the PlayerState
// the pipeline returns from one spin into the next - exactly the state
// the Spin Controller would persist between real requests, just never
// written to a repository.
func runSimulation(cfg pipeline.Config, playerID uuid.UUID, numSpins int, betAmount float64, progressInterval int) SimulationStats {
	stats := SimulationStats{}
	state := gamestate.NewPlayerState(playerID)
	startTime := time.Now()

	for i := 0; i < numSpins; i++ {
		if (i+1)%progressInterval == 0 {
			elapsed := time.Since(startTime)
			spinsPerSec := float64(i+1) / elapsed.Seconds()
			remaining := time.Duration(float64(numSpins-i-1)/spinsPerSec) * time.Second

			fmt.Printf("Progress: %d/%d spins (%.1f%%) | %.0f spins/sec | ETA: %s\n",
				i+1, numSpins, float64(i+1)/float64(numSpins)*100, spinsPerSec, remaining.Round(time.Second))
		}

		wasFreeSpins := state.Mode == gamestate.ModeFreeSpins

		seed, err := rng.GenerateSeed()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate seed: %v\n", err)
			os.Exit(1)
		}

		result, err := pipeline.Execute(seed, betAmount, state, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error executing spin %d: %v\n", i+1, err)
			continue
		}
		state = result.NextState

		stats.TotalSpins++
		// A free spin costs nothing; only base-mode spins wager the bet.
		if !wasFreeSpins {
			stats.TotalWagered += betAmount
		}
		stats.TotalWon += result.FinalWin

		if wasFreeSpins {
			stats.TotalFreeSpins++
			stats.FreeSpinsTotalWon += result.FinalWin
		} else {
			stats.BaseGameTotalWon += result.FinalWin
			if result.FinalWin > 0 {
				stats.BaseGameWins++
			}
		}

		if result.FreeSpinTriggered {
			stats.FreeSpinsTriggered++
			stats.AvgFreeSpinsAwarded += float64(result.SpinsAwardedThisSpin)
		}
		if result.FreeSpinRetriggered {
			stats.FreeSpinsRetriggered++
		}
		if result.Capped {
			stats.CappedSpins++
		}

		if result.FinalWin > stats.MaxWin {
			stats.MaxWin = result.FinalWin
			stats.MaxWinSpin = i + 1
		}

		winMultiplier := result.FinalWin / betAmount
		switch {
		case result.FinalWin == 0:
			stats.NoWinSpins++
		case winMultiplier < 5:
			stats.SmallWins++
		case winMultiplier < 20:
			stats.MediumWins++
		case winMultiplier < 100:
			stats.BigWins++
		default:
			stats.MegaWins++
		}

		numCascades := len(result.CascadeSteps)
		stats.TotalCascades += numCascades
		if numCascades > stats.MaxCascades {
			stats.MaxCascades = numCascades
		}
	}

	if stats.TotalWagered > 0 {
		stats.RTP = (stats.TotalWon / stats.TotalWagered) * 100
		stats.BaseRTP = (stats.BaseGameTotalWon / stats.TotalWagered) * 100
		stats.FreeRTP = (stats.FreeSpinsTotalWon / stats.TotalWagered) * 100
	}
	if stats.BaseGameWins > 0 {
		stats.AvgCascadesPerWin = float64(stats.TotalCascades) / float64(stats.BaseGameWins)
	}
	if stats.FreeSpinsTriggered > 0 {
		stats.AvgFreeSpinsAwarded /= float64(stats.FreeSpinsTriggered)
		stats.FreeSpinsTriggeredRate = float64(stats.FreeSpinsTriggered) / float64(stats.TotalSpins) * 100
	}

	return stats
}

func printResults(stats SimulationStats, betAmount float64, targetRTP float64) {
	fmt.Println()
	fmt.Println("╔════════════════════════════════════════════════════════════╗")
	fmt.Println("║                    SIMULATION RESULTS                      ║")
	fmt.Println("╚════════════════════════════════════════════════════════════╝")
	fmt.Println()

	fmt.Println("═══ OVERALL STATISTICS ═══")
	fmt.Printf("Total Spins:           %d\n", stats.TotalSpins)
	fmt.Printf("Total Wagered:         %.2f\n", stats.TotalWagered)
	fmt.Printf("Total Won:             %.2f\n", stats.TotalWon)
	fmt.Printf("RTP:                   %.4f%% ", stats.RTP)

	diff := stats.RTP - targetRTP
	switch {
	case diff > -0.3 && diff < 0.3:
		fmt.Printf("✓ (target: %.2f%%)\n", targetRTP)
	case diff > -1.0 && diff < 1.0:
		fmt.Printf("⚠ (target: %.2f%%, diff: %+.2f%%)\n", targetRTP, diff)
	default:
		fmt.Printf("✗ (target: %.2f%%, diff: %+.2f%%)\n", targetRTP, diff)
	}
	fmt.Println()

	fmt.Println("═══ HIT FREQUENCY ═══")
	totalWinSpins := stats.SmallWins + stats.MediumWins + stats.BigWins + stats.MegaWins
	hitFrequency := float64(totalWinSpins) / float64(stats.TotalSpins) * 100

	fmt.Printf("Winning Spins:         %d (%.2f%%)\n", totalWinSpins, hitFrequency)
	fmt.Printf("No Win:                %d (%.2f%%)\n", stats.NoWinSpins,
		float64(stats.NoWinSpins)/float64(stats.TotalSpins)*100)
	fmt.Printf("Small Wins (<5x):      %d (%.2f%%)\n", stats.SmallWins,
		float64(stats.SmallWins)/float64(stats.TotalSpins)*100)
	fmt.Printf("Medium Wins (5-20x):   %d (%.2f%%)\n", stats.MediumWins,
		float64(stats.MediumWins)/float64(stats.TotalSpins)*100)
	fmt.Printf("Big Wins (20-100x):    %d (%.2f%%)\n", stats.BigWins,
		float64(stats.BigWins)/float64(stats.TotalSpins)*100)
	fmt.Printf("Mega Wins (>100x):     %d (%.2f%%)\n", stats.MegaWins,
		float64(stats.MegaWins)/float64(stats.TotalSpins)*100)
	fmt.Println()

	fmt.Println("═══ BASE GAME ═══")
	fmt.Printf("Base Game Wins:        %d (%.2f%%)\n", stats.BaseGameWins,
		float64(stats.BaseGameWins)/float64(stats.TotalSpins)*100)
	fmt.Printf("Base Game RTP:         %.4f%%\n", stats.BaseRTP)
	fmt.Printf("Avg Cascades/Win:      %.2f\n", stats.AvgCascadesPerWin)
	fmt.Printf("Max Cascades:          %d\n", stats.MaxCascades)
	fmt.Println()

	fmt.Println("═══ FREE SPINS ═══")
	fmt.Printf("Triggered:             %d times (%.4f%%)\n", stats.FreeSpinsTriggered, stats.FreeSpinsTriggeredRate)
	fmt.Printf("Retriggered:           %d times\n", stats.FreeSpinsRetriggered)
	fmt.Printf("Total Free Spins Run:  %d\n", stats.TotalFreeSpins)
	fmt.Printf("Avg Spins Awarded:     %.2f\n", stats.AvgFreeSpinsAwarded)
	fmt.Printf("Free Spins RTP:        %.4f%%\n", stats.FreeRTP)
	if stats.FreeSpinsTriggered > 0 {
		fmt.Printf("Avg Trigger Frequency: 1 in %.0f spins\n", float64(stats.TotalSpins)/float64(stats.FreeSpinsTriggered))
	}
	fmt.Println()

	fmt.Println("═══ MAX WIN ═══")
	maxWinMultiplier := stats.MaxWin / betAmount
	fmt.Printf("Max Win:               %.2f (%.1fx bet)\n", stats.MaxWin, maxWinMultiplier)
	fmt.Printf("Occurred at Spin:      %d\n", stats.MaxWinSpin)
	fmt.Printf("Capped Spins:          %d\n", stats.CappedSpins)
	fmt.Println()

	fmt.Println("═══ VOLATILITY INDICATORS ═══")
	if totalWinSpins > 0 {
		avgWin := stats.TotalWon / float64(totalWinSpins)
		fmt.Printf("Average Win:           %.2f (%.2fx bet)\n", avgWin, avgWin/betAmount)
		fmt.Printf("Max/Avg Win Ratio:     %.1fx\n", stats.MaxWin/avgWin)
	}

	volatility := "MEDIUM"
	switch {
	case maxWinMultiplier > 500:
		volatility = "HIGH"
	case maxWinMultiplier < 100:
		volatility = "LOW"
	}
	fmt.Printf("Volatility:            %s\n", volatility)
	fmt.Println()
}
