package spin

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Spin is the durable, append-only audit record of one spin: the full
// cascade trace plus every multiplier event, sufficient on its own to
// replay and re-verify the spin from its rng_seed.
type Spin struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	PlayerID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ClientRequestID string    `gorm:"type:varchar(128);uniqueIndex;not null"`

	BetAmount     float64 `gorm:"type:decimal(10,2);not null"`
	BalanceBefore float64 `gorm:"type:decimal(15,2);not null"`
	BalanceAfter  float64 `gorm:"type:decimal(15,2);not null"`

	RNGSeed string `gorm:"type:varchar(128);not null"`

	Mode                  string `gorm:"type:varchar(16);not null;index"` // base | free_spins
	AccumulatedMultiplier int    `gorm:"default:1"`

	InitialGrid Grid `gorm:"type:jsonb;not null"`
	FinalGrid   Grid `gorm:"type:jsonb;not null"`

	CascadeSteps     CascadeSteps     `gorm:"type:jsonb"`
	MultiplierEvents MultiplierEvents `gorm:"type:jsonb"`

	BaseWin         float64 `gorm:"type:decimal(15,2);default:0.00"`
	TotalWin        float64 `gorm:"type:decimal(15,2);default:0.00"`
	MaxWinCapped    bool    `gorm:"default:false"`
	ScatterCount    int     `gorm:"default:0"`
	ScatterPayout   float64 `gorm:"type:decimal(15,2);default:0.00"`

	FreeSpinInfo FreeSpinInfo `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP;index"`
}

// TableName specifies the table name for GORM
func (Spin) TableName() string {
	return "spins"
}

// Grid is the canonical nested-array serialization of a game grid:
// [[col0_row0..col0_rowR-1], ...].
type Grid [][]string

// Position is a grid cell.
type Position struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// ClusterRecord is a single paid cluster within one cascade step.
type ClusterRecord struct {
	Symbol string     `json:"symbol"`
	Size   int        `json:"size"`
	Cells  []Position `json:"cells"`
	Payout float64    `json:"payout"`
}

// CascadeStepRecord is the durable shape of one cascade.Step.
type CascadeStepRecord struct {
	Index                int             `json:"index"`
	Seed                 string          `json:"seed"`
	GridBeforeHash       string          `json:"grid_before_hash"`
	Clusters             []ClusterRecord `json:"clusters"`
	GridAfterRemovalHash string          `json:"grid_after_removal_hash"`
	DropPlan             []int           `json:"drop_plan"`
	GridAfterHash        string          `json:"grid_after_hash"`
	CascadeWin           float64         `json:"cascade_win"`
	RunningTotal         float64         `json:"running_total"`
}

// CascadeSteps is the ordered list of cascade steps for one spin.
type CascadeSteps []CascadeStepRecord

// MultiplierEventRecord is the durable shape of one multiplier.Event.
type MultiplierEventRecord struct {
	Kind         string     `json:"kind"`
	Values       []int      `json:"values"`
	Positions    []Position `json:"positions"`
	CharacterTag string     `json:"character_tag"`
}

// MultiplierEvents is the ordered list of multiplier events for one spin.
type MultiplierEvents []MultiplierEventRecord

// FreeSpinInfo records what this spin did to free-spins state: whether it
// triggered or retriggered a session, and the remaining count after this
// spin resolved.
type FreeSpinInfo struct {
	Triggered       bool `json:"triggered"`
	Retriggered     bool `json:"retriggered"`
	SpinsAwarded    int  `json:"spins_awarded,omitempty"`
	SpinsRemaining  int  `json:"spins_remaining"`
	WasFreeSpinUsed bool `json:"was_free_spin_used"`
}

// Scan implements sql.Scanner for Grid
func (g *Grid) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, g)
}

// Value implements driver.Valuer for Grid
func (g Grid) Value() (driver.Value, error) {
	return json.Marshal(g)
}

// Scan implements sql.Scanner for CascadeSteps
func (c *CascadeSteps) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, c)
}

// Value implements driver.Valuer for CascadeSteps
func (c CascadeSteps) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for MultiplierEvents
func (m *MultiplierEvents) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, m)
}

// Value implements driver.Valuer for MultiplierEvents
func (m MultiplierEvents) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan implements sql.Scanner for FreeSpinInfo
func (f *FreeSpinInfo) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, f)
}

// Value implements driver.Valuer for FreeSpinInfo
func (f FreeSpinInfo) Value() (driver.Value, error) {
	return json.Marshal(f)
}
