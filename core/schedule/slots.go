package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/drodriguezm/tablero/core"
)

const slotStep = 30 // minutes

// DefaultBranchConfig is the fail-open fallback: a fully-open seven-day week
// using the configured (or 08:30-21:00) window.
func DefaultBranchConfig() BranchConfig {
	day := DayHours{Open: core.Conf.BranchOpenTime, Close: core.Conf.BranchCloseTime}
	return BranchConfig{
		Monday:    day,
		Tuesday:   day,
		Wednesday: day,
		Thursday:  day,
		Friday:    day,
		Saturday:  day,
		Sunday:    day,
	}
}

// Envelope returns the global open/close window: the earliest opening and the
// latest closing across non-closed days. Falls back to the configured default
// window when every day is closed or unset.
func (bc BranchConfig) Envelope() (open, close string) {
	for d := core.Monday; d <= core.Sunday; d++ {
		h := bc.Hours(d)
		if h.Closed || h.Open == "" || h.Close == "" {
			continue
		}
		if open == "" || toMinutes(h.Open) < toMinutes(open) {
			open = h.Open
		}
		if close == "" || toMinutes(h.Close) > toMinutes(close) {
			close = h.Close
		}
	}
	if open == "" || close == "" {
		return core.Conf.BranchOpenTime, core.Conf.BranchCloseTime
	}
	return open, close
}

// TimeSlots produces the ordered half-hour slot axis from open up to, but not
// including, close. Unparseable input yields nil.
func TimeSlots(open, close string) []string {
	start, ok := parseHHMM(open)
	if !ok {
		return nil
	}
	end, ok := parseHHMM(close)
	if !ok {
		return nil
	}

	var slots []string
	for m := start; m < end; m += slotStep {
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return slots
}

func parseHHMM(s string) (minutes int, ok bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// toMinutes is parseHHMM for already-validated values; bad input sinks to 0.
func toMinutes(s string) int {
	m, _ := parseHHMM(s)
	return m
}
