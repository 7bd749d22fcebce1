package report

import (
	"math"

	"github.com/drodriguezm/tablero/core"
)

// Commitment is a day goal adjusted for the week so far: when the owner is
// behind, the shortfall is carried onto today's base target.
type Commitment struct {
	Amount    float64 `json:"amount"`
	IsDeficit bool    `json:"is_deficit"`
}

// DailyCommitment computes the adjusted goal for one indicator, one budget
// owner and one weekday of (year, week).
//
// Rate indicators (averages and percentages) never accumulate: their base day
// target is returned untouched. For cumulative indicators the weekdays before
// the reference day are folded (targets on one side, actuals on the other)
// and any shortfall is added on top of today's base, rounded up. Owners at or
// ahead of plan keep the base amount.
func (e *Engine) DailyCommitment(
	indicatorID, targetID, position string,
	year, week int,
	refDay core.Weekday,
) Commitment {
	base := e.Target(indicatorID, targetID, position, PeriodDay, year, week, 0, refDay)

	ind := e.inds[indicatorID]
	if ind.IsRate() {
		return Commitment{Amount: base}
	}

	var accumTarget, accumActual float64
	for d := core.Monday; d < refDay; d++ {
		accumTarget += e.Target(indicatorID, targetID, position, PeriodDay, year, week, 0, d)
		accumActual += e.ActualForTarget(indicatorID, targetID, PeriodDay, year, week, 0, d)
	}

	if diff := accumActual - accumTarget; diff < 0 {
		return Commitment{Amount: math.Ceil(base - diff), IsDeficit: true}
	}
	return Commitment{Amount: math.Ceil(base)}
}
