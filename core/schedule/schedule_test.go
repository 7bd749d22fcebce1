package schedule

import (
	"reflect"
	"testing"
	"time"

	"github.com/drodriguezm/tablero/core"
	"github.com/drodriguezm/tablero/core/advisor"
)

func TestTimeSlots(t *testing.T) {
	tests := []struct {
		name        string
		open, close string
		want        []string
	}{
		{name: "half day", open: "08:30", close: "11:00", want: []string{"08:30", "09:00", "09:30", "10:00", "10:30"}},
		{name: "close excluded", open: "20:30", close: "21:00", want: []string{"20:30"}},
		{name: "empty window", open: "09:00", close: "09:00", want: nil},
		{name: "bad open", open: "8h30", close: "21:00", want: nil},
		{name: "bad close", open: "08:30", close: "25:00", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeSlots(tt.open, tt.close); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TimeSlots() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBranchConfigEnvelope(t *testing.T) {
	bc := BranchConfig{
		Monday:  DayHours{Open: "09:00", Close: "18:00"},
		Tuesday: DayHours{Open: "08:30", Close: "17:00"},
		Friday:  DayHours{Open: "10:00", Close: "21:00"},
		Sunday:  DayHours{Open: "07:00", Close: "22:00", Closed: true}, // closed days are skipped
	}

	open, close := bc.Envelope()
	if open != "08:30" || close != "21:00" {
		t.Errorf("Envelope() = (%s, %s), want (08:30, 21:00)", open, close)
	}

	// all-closed config falls back to the configured default window
	open, close = BranchConfig{}.Envelope()
	if open != core.Conf.BranchOpenTime || close != core.Conf.BranchCloseTime {
		t.Errorf("Envelope() fallback = (%s, %s), want configured default", open, close)
	}
}

func TestMergeRuns(t *testing.T) {
	slots := []string{"09:00", "09:30", "10:00", "10:30", "11:00"}
	assigned := map[string]string{
		"09:00": "fenix",
		"09:30": "fenix",
		"10:00": "fenix",
	}

	// three consecutive slots with one activity then two empty slots merge
	// into exactly two cells
	want := []Run{
		{ActivityID: "fenix", StartTime: "09:00", Span: 3},
		{ActivityID: "", StartTime: "10:30", Span: 2},
	}
	if got := MergeRuns(slots, assigned); !reflect.DeepEqual(got, want) {
		t.Errorf("MergeRuns() = %v, want %v", got, want)
	}
}

func TestMergeRunsAlternating(t *testing.T) {
	slots := []string{"09:00", "09:30", "10:00"}
	assigned := map[string]string{"09:00": "a", "10:00": "b"}

	got := MergeRuns(slots, assigned)
	if len(got) != 3 {
		t.Fatalf("MergeRuns() produced %d runs, want 3", len(got))
	}
	for _, r := range got {
		if r.Span != 1 {
			t.Errorf("run %+v merged across differing activities", r)
		}
	}
}

func TestCompliancePercent(t *testing.T) {
	monday := time.Date(2021, 3, 8, 0, 0, 0, 0, time.UTC)
	weekDates := map[core.Weekday]time.Time{
		core.Monday:  monday,
		core.Tuesday: monday.AddDate(0, 0, 1),
	}
	activities := []Activity{
		{ID: "fenix", IsProtected: true},
		{ID: "desk"},
	}
	assignments := []Assignment{
		{AdvisorID: "adv1", DayOfWeek: core.Monday, StartTime: "09:00", ActivityID: "fenix"},
		{AdvisorID: "adv1", DayOfWeek: core.Tuesday, StartTime: "09:00", ActivityID: "fenix"},
		{AdvisorID: "adv1", DayOfWeek: core.Monday, StartTime: "10:00", ActivityID: "desk"}, // not protected
		{AdvisorID: "adv2", DayOfWeek: core.Monday, StartTime: "09:00", ActivityID: "fenix"},
	}
	marks := []ComplianceMark{
		{AdvisorID: "adv1", Date: monday, TimeSlot: "09:00", Completed: true},
		{AdvisorID: "adv1", Date: monday.AddDate(0, 0, 1), TimeSlot: "09:00", Completed: false},
	}

	if got := CompliancePercent("adv1", assignments, activities, marks, weekDates); got != 0.5 {
		t.Errorf("CompliancePercent() = %v, want 0.5", got)
	}
	// advisor with nothing protected planned: 0, not a division by zero
	if got := CompliancePercent("adv3", assignments, activities, marks, weekDates); got != 0 {
		t.Errorf("CompliancePercent() = %v, want 0 for zero planned slots", got)
	}
}

func TestRankAdvisors(t *testing.T) {
	advisors := []advisor.Advisor{
		{ID: "a", Shift: advisor.ShiftClosing},
		{ID: "b", Shift: advisor.ShiftOpening},
		{ID: "c", Shift: advisor.ShiftNone},
		{ID: "d", Shift: advisor.ShiftOpening},
		{ID: "e", Shift: advisor.ShiftClosing},
	}
	blocked := map[string]bool{"e": true}

	got := RankAdvisors(advisors, blocked)
	var order []string
	for _, a := range got {
		order = append(order, a.ID)
	}
	// blocked first, then opening (stable), closing, rest
	want := []string{"e", "b", "d", "a", "c"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("RankAdvisors() order = %v, want %v", order, want)
	}
}
