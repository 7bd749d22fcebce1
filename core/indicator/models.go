package indicator

import (
	"time"

	"github.com/drodriguezm/tablero/core"
	"github.com/drodriguezm/tablero/core/advisor"
)

// Units
const (
	UnitCurrency   = "currency"
	UnitPercentage = "percentage"
	UnitCount      = "count"
)

// Legacy applicability values. AppliesTo (a role list) takes precedence
// whenever it is non-empty.
const (
	AppliesLoan        = "loan"
	AppliesAffiliation = "affiliation"
	AppliesBranch      = "branch"
	AppliesAll         = "all"
)

// Display groups
const (
	GroupColocacion = "COLOCACION"
	GroupCaptacion  = "CAPTACION"
	GroupTotalSan   = "TOTAL_SAN"
)

var (
	AllUnits         = []string{UnitCurrency, UnitPercentage, UnitCount}
	AllApplicability = []string{AppliesLoan, AppliesAffiliation, AppliesBranch, AppliesAll}
	AllGroups        = []string{GroupColocacion, GroupCaptacion, GroupTotalSan}
)

type Indicator struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Applicability string    `json:"applicability" db:"applicability"` // legacy single enum
	AppliesTo     []string  `json:"applies_to" db:"applies_to"`       // role list; wins when present
	Unit          string    `json:"unit" db:"unit"`
	LoanWeight    float64   `json:"loan_weight" db:"loan_weight"`
	AffilWeight   float64   `json:"affil_weight" db:"affil_weight"`
	IsCumulative  bool      `json:"is_cumulative" db:"is_cumulative"`
	IsAverage     bool      `json:"is_average" db:"is_average"`
	Group         string    `json:"group" db:"grp"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// AppliesToPosition reports whether the indicator applies to the given
// advisor position. The AppliesTo role list takes precedence over the
// legacy Applicability enum when non-empty.
func (ind Indicator) AppliesToPosition(position string) bool {
	if len(ind.AppliesTo) > 0 {
		for _, role := range ind.AppliesTo {
			if role == position {
				return true
			}
		}
		return false
	}
	switch ind.Applicability {
	case AppliesAll:
		return true
	case AppliesLoan:
		return position == advisor.PositionLoan
	case AppliesAffiliation:
		return position == advisor.PositionAffiliation
	}
	return false
}

// AppliesToBranch reports whether the indicator participates in branch-wide views.
func (ind Indicator) AppliesToBranch() bool {
	if len(ind.AppliesTo) > 0 {
		for _, role := range ind.AppliesTo {
			if role == AppliesBranch || role == AppliesAll {
				return true
			}
		}
		return false
	}
	return ind.Applicability == AppliesBranch || ind.Applicability == AppliesAll
}

// WeightFor returns the indicator's configured scoring weight for a position.
func (ind Indicator) WeightFor(position string) float64 {
	switch position {
	case advisor.PositionLoan:
		return ind.LoanWeight
	case advisor.PositionAffiliation:
		return ind.AffilWeight
	}
	return 0
}

// IsRate reports whether the indicator is a rate-type metric (percentage unit
// or averaged): these never accumulate deficits.
func (ind Indicator) IsRate() bool {
	return ind.IsAverage || ind.Unit == UnitPercentage
}

// NewIndicator contains information needed to create a new Indicator.
type NewIndicator struct {
	Name          string   `json:"name" validate:"required"`
	Applicability string   `json:"applicability" validate:"omitempty,applicability"`
	AppliesTo     []string `json:"applies_to"`
	Unit          string   `json:"unit" validate:"required,unit"`
	LoanWeight    float64  `json:"loan_weight" validate:"gte=0"`
	AffilWeight   float64  `json:"affil_weight" validate:"gte=0"`
	IsCumulative  bool     `json:"is_cumulative"`
	IsAverage     bool     `json:"is_average"`
	Group         string   `json:"group" validate:"omitempty,indgroup"`
}

func (ni *NewIndicator) Validate() error {
	ni.Name = core.CleanString(ni.Name)
	if ni.Applicability == "" && len(ni.AppliesTo) == 0 {
		ni.Applicability = AppliesAll
	}
	return core.Validate.Struct(ni)
}

// UpdateIndicator defines what information may be provided to modify an
// existing Indicator. Identity (ID) is immutable once created.
type UpdateIndicator struct {
	Name          string   `json:"name"`
	Applicability string   `json:"applicability" validate:"omitempty,applicability"`
	AppliesTo     []string `json:"applies_to"`
	Unit          string   `json:"unit" validate:"omitempty,unit"`
	LoanWeight    *float64 `json:"loan_weight" validate:"omitempty,gte=0"`
	AffilWeight   *float64 `json:"affil_weight" validate:"omitempty,gte=0"`
	IsCumulative  *bool    `json:"is_cumulative"`
	IsAverage     *bool    `json:"is_average"`
	Group         string   `json:"group" validate:"omitempty,indgroup"`
}

func (ui *UpdateIndicator) Validate(orig Indicator) error {
	name := core.CleanString(ui.Name)
	if name != "" {
		ui.Name = name
	} else {
		ui.Name = orig.Name
	}
	if ui.Unit == "" {
		ui.Unit = orig.Unit
	}
	if ui.Applicability == "" {
		ui.Applicability = orig.Applicability
	}
	return core.Validate.Struct(ui)
}
