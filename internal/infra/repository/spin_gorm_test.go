package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/slotmachine/backend/domain/spin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupSpinTestDB creates an in-memory SQLite database for testing spins
func setupSpinTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to connect to test database")

	err = db.Exec(`
		CREATE TABLE spins (
			id TEXT PRIMARY KEY,
			player_id TEXT NOT NULL,
			client_request_id TEXT NOT NULL UNIQUE,
			bet_amount REAL NOT NULL,
			balance_before REAL NOT NULL,
			balance_after REAL NOT NULL,
			rng_seed TEXT NOT NULL,
			mode TEXT NOT NULL,
			accumulated_multiplier INTEGER DEFAULT 1,
			initial_grid TEXT NOT NULL,
			final_grid TEXT NOT NULL,
			cascade_steps TEXT,
			multiplier_events TEXT,
			base_win REAL DEFAULT 0.00,
			total_win REAL DEFAULT 0.00,
			max_win_capped INTEGER DEFAULT 0,
			scatter_count INTEGER DEFAULT 0,
			scatter_payout REAL DEFAULT 0.00,
			free_spin_info TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`).Error
	require.NoError(t, err, "Failed to create spins table")

	db.Exec("CREATE INDEX idx_spins_player_id ON spins(player_id)")
	db.Exec("CREATE INDEX idx_spins_mode ON spins(mode)")
	db.Exec("CREATE INDEX idx_spins_created_at ON spins(created_at)")

	return db
}

// createTestSpin creates a test spin with default values
func createTestSpin(playerID uuid.UUID, clientRequestID string) *spin.Spin {
	grid := spin.Grid{
		{"fa", "zhong", "bai", "bawan", "wusuo"},
		{"zhong", "bai", "bawan", "wusuo", "wutong"},
		{"bai", "bawan", "wusuo", "wutong", "liangsuo"},
		{"bawan", "wusuo", "wutong", "liangsuo", "liangtong"},
		{"wusuo", "wutong", "liangsuo", "liangtong", "fa"},
		{"wutong", "liangsuo", "liangtong", "fa", "zhong"},
	}

	return &spin.Spin{
		ID:              uuid.New(),
		PlayerID:        playerID,
		ClientRequestID: clientRequestID,
		BetAmount:       100.0,
		BalanceBefore:   10000.0,
		BalanceAfter:    9900.0,
		RNGSeed:         "deadbeef",
		Mode:            "base",
		InitialGrid:     grid,
		FinalGrid:       grid,
		CascadeSteps:    spin.CascadeSteps{},
		TotalWin:        0.0,
		ScatterCount:    0,
		CreatedAt:       time.Now().UTC(),
	}
}

func TestSpinGormRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("should create spin successfully", func(t *testing.T) {
		db := setupSpinTestDB(t)
		repo := NewSpinGormRepository(db)

		playerID := uuid.New()
		s := createTestSpin(playerID, "req-1")

		err := repo.Create(ctx, s)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, s.ID)

		var saved spin.Spin
		err = db.First(&saved, "id = ?", s.ID).Error
		require.NoError(t, err)
		assert.Equal(t, s.PlayerID, saved.PlayerID)
		assert.Equal(t, s.BetAmount, saved.BetAmount)
		assert.Equal(t, s.TotalWin, saved.TotalWin)
	})

	t.Run("should store grids and cascade steps as JSON", func(t *testing.T) {
		db := setupSpinTestDB(t)
		repo := NewSpinGormRepository(db)

		playerID := uuid.New()
		s := createTestSpin(playerID, "req-2")

		s.CascadeSteps = spin.CascadeSteps{
			{
				Index:          1,
				GridBeforeHash: "hash-before",
				Clusters: []spin.ClusterRecord{
					{Symbol: "fa", Size: 8, Payout: 5.0},
				},
				GridAfterHash: "hash-after",
				CascadeWin:    5.0,
				RunningTotal:  5.0,
			},
		}

		err := repo.Create(ctx, s)
		require.NoError(t, err)

		retrieved, err := repo.GetByID(ctx, s.ID)
		require.NoError(t, err)
		assert.Len(t, retrieved.InitialGrid, 6)
		assert.Len(t, retrieved.CascadeSteps, 1)
		assert.Equal(t, 1, retrieved.CascadeSteps[0].Index)
	})

	t.Run("should handle free spin info", func(t *testing.T) {
		db := setupSpinTestDB(t)
		repo := NewSpinGormRepository(db)

		playerID := uuid.New()
		s := createTestSpin(playerID, "req-3")
		s.Mode = "free_spins"
		s.AccumulatedMultiplier = 2
		s.FreeSpinInfo = spin.FreeSpinInfo{
			Triggered:      true,
			SpinsAwarded:   15,
			SpinsRemaining: 14,
		}

		err := repo.Create(ctx, s)
		require.NoError(t, err)

		retrieved, err := repo.GetByID(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, "free_spins", retrieved.Mode)
		assert.True(t, retrieved.FreeSpinInfo.Triggered)
		assert.Equal(t, 14, retrieved.FreeSpinInfo.SpinsRemaining)
	})
}

func TestSpinGormRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("should get spin by ID successfully", func(t *testing.T) {
		db := setupSpinTestDB(t)
		repo := NewSpinGormRepository(db)

		playerID := uuid.New()
		s := createTestSpin(playerID, "req-4")
		err := repo.Create(ctx, s)
		require.NoError(t, err)

		retrieved, err := repo.GetByID(ctx, s.ID)

		require.NoError(t, err)
		assert.NotNil(t, retrieved)
		assert.Equal(t, s.ID, retrieved.ID)
		assert.Equal(t, s.PlayerID, retrieved.PlayerID)
	})

	t.Run("should return error for non-existent ID", func(t *testing.T) {
		db := setupSpinTestDB(t)
		repo := NewSpinGormRepository(db)

		retrieved, err := repo.GetByID(ctx, uuid.New())

		assert.Error(t, err)
		assert.Nil(t, retrieved)
		assert.Equal(t, spin.ErrSpinNotFound, err)
	})
}

func TestSpinGormRepository_GetByClientRequestID(t *testing.T) {
	ctx := context.Background()

	t.Run("should find a spin by its idempotency key", func(t *testing.T) {
		db := setupSpinTestDB(t)
		repo := NewSpinGormRepository(db)

		playerID := uuid.New()
		s := createTestSpin(playerID, "idem-key-1")
		err := repo.Create(ctx, s)
		require.NoError(t, err)

		retrieved, err := repo.GetByClientRequestID(ctx, playerID, "idem-key-1")
		require.NoError(t, err)
		assert.Equal(t, s.ID, retrieved.ID)
	})

	t.Run("should not match another player's request id", func(t *testing.T) {
		db := setupSpinTestDB(t)
		repo := NewSpinGormRepository(db)

		playerID := uuid.New()
		s := createTestSpin(playerID, "idem-key-2")
		err := repo.Create(ctx, s)
		require.NoError(t, err)

		_, err = repo.GetByClientRequestID(ctx, uuid.New(), "idem-key-2")
		assert.Equal(t, spin.ErrSpinNotFound, err)
	})
}

func TestSpinGormRepository_GetByPlayer(t *testing.T) {
	ctx := context.Background()

	t.Run("should get spins by player successfully, newest first", func(t *testing.T) {
		db := setupSpinTestDB(t)
		repo := NewSpinGormRepository(db)

		playerID := uuid.New()

		s1 := createTestSpin(playerID, "req-p1")
		err := repo.Create(ctx, s1)
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		s2 := createTestSpin(playerID, "req-p2")
		err = repo.Create(ctx, s2)
		require.NoError(t, err)

		spins, err := repo.GetByPlayer(ctx, playerID, 10, 0)

		require.NoError(t, err)
		assert.Len(t, spins, 2)
		assert.Equal(t, s2.ID, spins[0].ID)
		assert.Equal(t, s1.ID, spins[1].ID)
	})

	t.Run("should paginate results", func(t *testing.T) {
		db := setupSpinTestDB(t)
		repo := NewSpinGormRepository(db)

		playerID := uuid.New()

		for i := 0; i < 5; i++ {
			s := createTestSpin(playerID, uuid.New().String())
			err := repo.Create(ctx, s)
			require.NoError(t, err)
			time.Sleep(5 * time.Millisecond)
		}

		page1, err := repo.GetByPlayer(ctx, playerID, 2, 0)
		require.NoError(t, err)
		assert.Len(t, page1, 2)

		page2, err := repo.GetByPlayer(ctx, playerID, 2, 2)
		require.NoError(t, err)
		assert.Len(t, page2, 2)

		assert.NotEqual(t, page1[0].ID, page2[0].ID)
	})
}

func TestSpinGormRepository_Count(t *testing.T) {
	ctx := context.Background()

	t.Run("should count spins for player successfully", func(t *testing.T) {
		db := setupSpinTestDB(t)
		repo := NewSpinGormRepository(db)

		playerID := uuid.New()

		for i := 0; i < 5; i++ {
			s := createTestSpin(playerID, uuid.New().String())
			err := repo.Create(ctx, s)
			require.NoError(t, err)
		}

		count, err := repo.Count(ctx, playerID)

		require.NoError(t, err)
		assert.Equal(t, int64(5), count)
	})

	t.Run("should return zero for player with no spins", func(t *testing.T) {
		db := setupSpinTestDB(t)
		repo := NewSpinGormRepository(db)

		count, err := repo.Count(ctx, uuid.New())

		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("should only count spins for specified player", func(t *testing.T) {
		db := setupSpinTestDB(t)
		repo := NewSpinGormRepository(db)

		player1ID := uuid.New()
		player2ID := uuid.New()

		for i := 0; i < 3; i++ {
			s := createTestSpin(player1ID, uuid.New().String())
			err := repo.Create(ctx, s)
			require.NoError(t, err)
		}
		for i := 0; i < 2; i++ {
			s := createTestSpin(player2ID, uuid.New().String())
			err := repo.Create(ctx, s)
			require.NoError(t, err)
		}

		count, err := repo.Count(ctx, player1ID)

		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})
}
