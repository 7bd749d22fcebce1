package report

import (
	"strings"

	"github.com/drodriguezm/tablero/core/budget"
	"github.com/drodriguezm/tablero/core/indicator"
)

// Period scopes for targets and actuals.
type Period string

const (
	PeriodDay       Period = "DAY"
	PeriodWeek      Period = "WEEK"
	PeriodTrimester Period = "TRIMESTER"
	PeriodYear      Period = "YEAR"
)

// Engine computes targets, actuals, adjusted commitments and composite
// scores over one Snapshot. Every method is total: missing or malformed rows
// contribute zero, nothing ever fails and the dashboard always renders.
type Engine struct {
	snap Snapshot
	inds map[string]indicator.Indicator
}

func NewEngine(snap Snapshot) *Engine {
	inds := make(map[string]indicator.Indicator, len(snap.Indicators))
	for _, ind := range snap.Indicators {
		inds[ind.ID] = ind
	}
	return &Engine{snap: snap, inds: inds}
}

func (e *Engine) Indicator(id string) (indicator.Indicator, bool) {
	ind, ok := e.inds[id]
	return ind, ok
}

// budgetRows returns every budget row for (indicator, target), falling back
// to the position-wide aggregate key when the specific target has none and
// the target is not the branch singleton.
func (e *Engine) budgetRows(indicatorID, targetID, position string) []budget.Config {
	rows := e.filterBudgets(indicatorID, targetID)
	if len(rows) == 0 && targetID != budget.BranchTarget && position != "" {
		rows = e.filterBudgets(indicatorID, budget.PositionTarget(position))
	}
	return rows
}

func (e *Engine) filterBudgets(indicatorID, targetID string) []budget.Config {
	var rows []budget.Config
	for _, b := range e.snap.Budgets {
		if b.IndicatorID == indicatorID && b.TargetID == targetID {
			rows = append(rows, b)
		}
	}
	return rows
}

// isPositionTarget reports whether targetID is a position-wide aggregate key,
// and extracts the position when it is.
func isPositionTarget(targetID string) (position string, ok bool) {
	const prefix = "pos:"
	if strings.HasPrefix(targetID, prefix) {
		return targetID[len(prefix):], true
	}
	return "", false
}
