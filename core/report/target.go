package report

import (
	"github.com/drodriguezm/tablero/core"
	"github.com/drodriguezm/tablero/core/budget"
)

// Target computes the configured goal amount for one indicator and one owner
// over the requested period. Total over its inputs: no matching rows yields 0.
//
// Row selection per period:
//   - WEEK: a single WEEKLY row wins outright; otherwise DAILY rows are
//     deduplicated by weekday (last write wins) and summed.
//   - DAY: the DAILY row for the weekday wins; otherwise fall back to the
//     WEEKLY amount, as-is for averaged indicators, divided by 7 otherwise.
//   - TRIMESTER | YEAR: the WEEKLY amount per distinct week of the period
//     (deduplicated by week so duplicates never double-count), summed, or
//     averaged for averaged indicators.
func (e *Engine) Target(
	indicatorID, targetID, position string,
	period Period,
	year, week, quarter int,
	day core.Weekday,
) float64 {
	ind := e.inds[indicatorID]
	rows := e.budgetRows(indicatorID, targetID, position)
	if len(rows) == 0 {
		return 0
	}

	switch period {
	case PeriodWeek:
		return weekTarget(rows, year, week)

	case PeriodDay:
		weekly, hasWeekly, daily := weekRows(rows, year, week)
		if amount, ok := daily[day]; ok {
			return amount
		}
		if !hasWeekly {
			return 0
		}
		if ind.IsAverage {
			return weekly
		}
		return weekly / 7

	case PeriodTrimester, PeriodYear:
		first, last := 1, 53
		if period == PeriodTrimester {
			first, last = core.QuarterWeeks(quarter)
		}
		// the WEEKLY amount per distinct week; duplicates collapse last-wins
		weeklyByWeek := make(map[int]float64)
		for _, b := range rows {
			if b.Year == year && b.IsWeekly() && b.Week >= first && b.Week <= last {
				weeklyByWeek[b.Week] = b.Amount
			}
		}
		if len(weeklyByWeek) == 0 {
			return 0
		}
		var total float64
		for _, amount := range weeklyByWeek {
			total += amount
		}
		if ind.IsAverage {
			return total / float64(len(weeklyByWeek))
		}
		return total
	}
	return 0
}

// weekTarget resolves one week's goal: WEEKLY row preferred, else the sum of
// weekday-deduplicated DAILY rows.
func weekTarget(rows []budget.Config, year, week int) float64 {
	weekly, hasWeekly, daily := weekRows(rows, year, week)
	if hasWeekly {
		return weekly
	}
	var total float64
	for _, amount := range daily {
		total += amount
	}
	return total
}

// weekRows splits one (year, week)'s rows into the effective WEEKLY amount
// (last write wins; at most one row should exist but duplicates are
// tolerated) and the weekday-deduplicated DAILY amounts.
func weekRows(rows []budget.Config, year, week int) (weekly float64, hasWeekly bool, daily map[core.Weekday]float64) {
	daily = make(map[core.Weekday]float64)
	for _, b := range rows {
		if b.Year != year || b.Week != week {
			continue
		}
		switch {
		case b.IsWeekly():
			weekly, hasWeekly = b.Amount, true
		case b.IsDaily() && b.DayOfWeek.Valid():
			daily[b.DayOfWeek] = b.Amount
		}
	}
	return weekly, hasWeekly, daily
}
