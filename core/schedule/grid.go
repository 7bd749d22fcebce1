package schedule

import (
	"sort"
	"time"

	"github.com/drodriguezm/tablero/core"
	"github.com/drodriguezm/tablero/core/advisor"
)

// Run is one merged cell of a rendered grid row: Span consecutive slots
// sharing the same activity (ActivityID empty for unassigned stretches).
type Run struct {
	ActivityID string `json:"activity_id"`
	StartTime  string `json:"start_time"`
	Span       int    `json:"span"`
}

// MergeRuns collapses consecutive slots with the same activity id, and
// consecutive empty slots, into single runs. Empty is treated uniformly no
// matter what activity follows it.
func MergeRuns(slots []string, assigned map[string]string) []Run {
	var runs []Run
	for _, slot := range slots {
		actID := assigned[slot]
		if n := len(runs); n > 0 && runs[n-1].ActivityID == actID {
			runs[n-1].Span++
			continue
		}
		runs = append(runs, Run{ActivityID: actID, StartTime: slot, Span: 1})
	}
	return runs
}

// RowIndex maps a week's assignments for one advisor/day to slot -> activity.
func RowIndex(assignments []Assignment, advisorID string, day core.Weekday) map[string]string {
	row := make(map[string]string)
	for _, a := range assignments {
		if a.AdvisorID == advisorID && a.DayOfWeek == day {
			row[a.StartTime] = a.ActivityID
		}
	}
	return row
}

// CompliancePercent computes an advisor's protected-time compliance over one
// week: completed marks / planned protected slots. Zero planned slots yields
// 0, never a division by zero.
//
// weekDates maps each canonical weekday to its calendar date for the week
// under review; days absent from the map are skipped.
func CompliancePercent(
	advisorID string,
	assignments []Assignment,
	activities []Activity,
	marks []ComplianceMark,
	weekDates map[core.Weekday]time.Time,
) float64 {
	protected := make(map[string]bool, len(activities))
	for _, act := range activities {
		if act.IsProtected {
			protected[act.ID] = true
		}
	}

	done := make(map[string]bool, len(marks))
	for _, m := range marks {
		if m.AdvisorID == advisorID && m.Completed {
			done[complianceKey(m.Date, m.TimeSlot)] = true
		}
	}

	var planned, completed int
	for _, a := range assignments {
		if a.AdvisorID != advisorID || !protected[a.ActivityID] {
			continue
		}
		date, ok := weekDates[a.DayOfWeek]
		if !ok {
			continue
		}
		planned++
		if done[complianceKey(date, a.StartTime)] {
			completed++
		}
	}

	if planned == 0 {
		return 0
	}
	return float64(completed) / float64(planned)
}

func complianceKey(date time.Time, slot string) string {
	return date.Format("2006-01-02") + "|" + slot
}

// RankAdvisors orders advisors for printed rosters: advisors with an active
// blocking HR event today first, then opening shift, closing shift, then the
// rest. Stable within each group.
func RankAdvisors(advisors []advisor.Advisor, blockedToday map[string]bool) []advisor.Advisor {
	ranked := make([]advisor.Advisor, len(advisors))
	copy(ranked, advisors)

	prio := func(a advisor.Advisor) int {
		switch {
		case blockedToday[a.ID]:
			return 0
		case a.Shift == advisor.ShiftOpening:
			return 1
		case a.Shift == advisor.ShiftClosing:
			return 2
		}
		return 3
	}
	sort.SliceStable(ranked, func(i, j int) bool { return prio(ranked[i]) < prio(ranked[j]) })
	return ranked
}
