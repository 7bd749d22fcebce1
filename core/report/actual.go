package report

import (
	"math"

	"github.com/drodriguezm/tablero/core"
	"github.com/drodriguezm/tablero/core/budget"
	"github.com/drodriguezm/tablero/core/record"
)

// Actual computes the observed amount for one indicator over the requested
// period. reportType selects individual or branch captures; advisorID narrows
// individual captures to one advisor ("" keeps them all).
//
// Defensive rules, in order:
//   - rows whose type/advisor-presence combination is inconsistent are
//     dropped; a branch view excludes every individual row even when its
//     advisor id is accidentally absent;
//   - per advisor, DAILY rows are deduplicated by weekday (last write wins);
//   - per advisor and week, WEEKLY rows are ignored once any DAILY row
//     exists, so stale weekly totals never survive daily recaptures.
//
// Cumulative indicators sum across advisors; averaged indicators divide the
// per-advisor sum by the count of advisors with any value. The result is
// rounded up once, at the very end.
func (e *Engine) Actual(
	indicatorID, reportType, advisorID string,
	period Period,
	year, week, quarter int,
	day core.Weekday,
) float64 {
	var allowed map[string]bool
	if advisorID != "" {
		allowed = map[string]bool{advisorID: true}
	}
	return e.actualFor(indicatorID, reportType, allowed, period, year, week, quarter, day)
}

// ActualForTarget computes the actual matching a budget owner: the branch
// singleton reads branch captures, a position-wide key reads individual
// captures of that position's advisors, anything else is an advisor id.
func (e *Engine) ActualForTarget(
	indicatorID, targetID string,
	period Period,
	year, week, quarter int,
	day core.Weekday,
) float64 {
	if targetID == budget.BranchTarget {
		return e.actualFor(indicatorID, record.TypeBranch, nil, period, year, week, quarter, day)
	}
	if position, ok := isPositionTarget(targetID); ok {
		allowed := make(map[string]bool)
		for _, adv := range e.snap.Advisors {
			if adv.Position == position {
				allowed[adv.ID] = true
			}
		}
		return e.actualFor(indicatorID, record.TypeIndividual, allowed, period, year, week, quarter, day)
	}
	return e.Actual(indicatorID, record.TypeIndividual, targetID, period, year, week, quarter, day)
}

type weekValues struct {
	daily     map[core.Weekday]float64
	weekly    float64
	hasWeekly bool
}

func (e *Engine) actualFor(
	indicatorID, reportType string,
	allowed map[string]bool,
	period Period,
	year, week, quarter int,
	day core.Weekday,
) float64 {
	firstWeek, lastWeek := week, week
	switch period {
	case PeriodTrimester:
		firstWeek, lastWeek = core.QuarterWeeks(quarter)
	case PeriodYear:
		firstWeek, lastWeek = 1, 53
	}

	// group by advisor (branch rows key on ""), then by week, keeping only
	// rows that carry a value for this indicator
	grouped := make(map[string]map[int]*weekValues)
	for _, r := range e.snap.Records {
		if r.Type != reportType || !r.Consistent() {
			continue
		}
		if r.Year != year || r.Week < firstWeek || r.Week > lastWeek {
			continue
		}
		key := r.AdvisorID.String
		if allowed != nil && !allowed[key] {
			continue
		}
		amount, ok := r.Values[indicatorID]
		if !ok {
			continue
		}

		weeks, ok := grouped[key]
		if !ok {
			weeks = make(map[int]*weekValues)
			grouped[key] = weeks
		}
		wv, ok := weeks[r.Week]
		if !ok {
			wv = &weekValues{daily: make(map[core.Weekday]float64)}
			weeks[r.Week] = wv
		}
		switch {
		case r.IsDaily() && r.DayOfWeek.Valid():
			wv.daily[r.DayOfWeek] = amount // last write wins
		case r.IsWeekly():
			wv.weekly, wv.hasWeekly = amount, true
		}
	}

	ind := e.inds[indicatorID]
	var total float64
	var contributors int
	for _, weeks := range grouped {
		value, has := periodValue(weeks, period, day)
		if !has {
			continue
		}
		total += value
		contributors++
	}
	if contributors == 0 {
		return 0
	}
	if ind.IsAverage {
		return math.Ceil(total / float64(contributors))
	}
	return math.Ceil(total)
}

// periodValue folds one advisor's weekly buckets into a period amount.
func periodValue(weeks map[int]*weekValues, period Period, day core.Weekday) (float64, bool) {
	if period == PeriodDay {
		for _, wv := range weeks { // single week in DAY scope
			v, ok := wv.daily[day]
			return v, ok
		}
		return 0, false
	}

	var total float64
	var has bool
	for _, wv := range weeks {
		switch {
		case len(wv.daily) > 0:
			for _, v := range wv.daily {
				total += v
			}
			has = true
		case wv.hasWeekly:
			total += wv.weekly
			has = true
		}
	}
	return total, has
}
