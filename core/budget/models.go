package budget

import (
	"time"

	"github.com/drodriguezm/tablero/core"
)

// Scopes: a target row covers either a whole week or one specific weekday.
const (
	ScopeWeekly = "WEEKLY"
	ScopeDaily  = "DAILY"
)

// BranchTarget is the branch singleton owner used for branch-wide targets,
// as opposed to a specific advisor or a position-wide aggregate.
const BranchTarget = "sucursal"

// positionTargetPrefix synthesizes the position-wide fallback target key.
const positionTargetPrefix = "pos:"

// PositionTarget returns the position-wide aggregate target key for a position.
func PositionTarget(position string) string { return positionTargetPrefix + position }

type Config struct {
	ID          string       `json:"id" db:"id"`
	IndicatorID string       `json:"indicator_id" db:"indicator_id"`
	TargetID    string       `json:"target_id" db:"target_id"` // BranchTarget, advisor id, or PositionTarget(...)
	Year        int          `json:"year" db:"year"`
	Week        int          `json:"week" db:"week"`
	Scope       string       `json:"scope" db:"scope"`
	DayOfWeek   core.Weekday `json:"day_of_week" db:"day_of_week"` // DAILY rows only
	Amount      float64      `json:"amount" db:"amount"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"` // UTC
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"` // UTC
}

func (c Config) IsWeekly() bool { return c.Scope == ScopeWeekly }
func (c Config) IsDaily() bool  { return c.Scope == ScopeDaily }

// NewConfig contains information needed to create a new budget Config row.
// Multiple DAILY rows may coexist per week (one per weekday); duplicate rows
// are tolerated downstream with last-write-wins semantics.
type NewConfig struct {
	IndicatorID string       `json:"indicator_id" validate:"required"`
	TargetID    string       `json:"target_id" validate:"required"`
	Year        int          `json:"year" validate:"required,gte=2000"`
	Week        int          `json:"week" validate:"required,gte=1,lte=53"`
	Scope       string       `json:"scope" validate:"required,budgetscope"`
	DayOfWeek   core.Weekday `json:"day_of_week" validate:"omitempty,gte=1,lte=7"`
	Amount      float64      `json:"amount" validate:"gte=0"`
}

func (nc *NewConfig) Validate() error {
	nc.TargetID = core.CleanString(nc.TargetID)
	if err := core.Validate.Struct(nc); err != nil {
		return err
	}
	if nc.Scope == ScopeDaily && !nc.DayOfWeek.Valid() {
		return core.NewValidationError(nil, core.FieldError{Field: "day_of_week", Error: "required for DAILY scope"})
	}
	return nil
}

// UpdateConfig defines what may be modified on an existing budget row.
type UpdateConfig struct {
	Amount    *float64      `json:"amount" validate:"omitempty,gte=0"`
	Scope     string        `json:"scope" validate:"omitempty,budgetscope"`
	DayOfWeek *core.Weekday `json:"day_of_week" validate:"omitempty,gte=1,lte=7"`
}

func (uc UpdateConfig) Validate() error { return core.Validate.Struct(uc) }
