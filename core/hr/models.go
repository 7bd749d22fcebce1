package hr

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/drodriguezm/tablero/core"
)

// Event types. Ranged blocking types suppress an advisor's schedule cells and
// their appearance in daily capture forms for the covered dates; dayoff blocks
// one weekday every week; recognition and activity never block.
const (
	TypeVacation    = "vacation"
	TypeIncapacity  = "incapacity"
	TypePermit      = "permit"
	TypeAbsence     = "absence"
	TypeDayOff      = "dayoff"
	TypeRecognition = "recognition"
	TypeActivity    = "activity"
)

var (
	AllTypes     = []string{TypeVacation, TypeIncapacity, TypePermit, TypeAbsence, TypeDayOff, TypeRecognition, TypeActivity}
	rangedTypes  = map[string]bool{TypeVacation: true, TypeIncapacity: true, TypePermit: true, TypeAbsence: true}
	blockedTypes = map[string]bool{TypeVacation: true, TypeIncapacity: true, TypePermit: true, TypeAbsence: true, TypeDayOff: true}
)

type Event struct {
	ID           string       `json:"id" db:"id"`
	AdvisorID    string       `json:"advisor_id" db:"advisor_id"`
	Type         string       `json:"type" db:"type"`
	StartDate    null.Time    `json:"start_date" db:"start_date"` // ranged types
	EndDate      null.Time    `json:"end_date" db:"end_date"`     // ranged types, inclusive
	RecurringDay core.Weekday `json:"recurring_day" db:"recurring_day"`
	Note         null.String  `json:"note" db:"note"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"` // UTC
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"` // UTC
}

func (e Event) IsRanged() bool   { return rangedTypes[e.Type] }
func (e Event) IsBlocking() bool { return blockedTypes[e.Type] }

// BlocksOn reports whether the event blocks the advisor's schedule on the
// given date. Non-blocking types (recognition, activity) never block.
func (e Event) BlocksOn(date time.Time) bool {
	if !e.IsBlocking() {
		return false
	}
	if e.Type == TypeDayOff {
		return e.RecurringDay.Valid() && core.WeekdayOf(date) == e.RecurringDay
	}
	if !e.StartDate.Valid || !e.EndDate.Valid {
		return false
	}
	d := dateOnly(date)
	return !d.Before(dateOnly(e.StartDate.Time)) && !d.After(dateOnly(e.EndDate.Time))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NewEvent contains information needed to record an HR event.
type NewEvent struct {
	AdvisorID    string       `json:"advisor_id" validate:"required"`
	Type         string       `json:"type" validate:"required,hrevent"`
	StartDate    null.Time    `json:"start_date"`
	EndDate      null.Time    `json:"end_date"`
	RecurringDay core.Weekday `json:"recurring_day" validate:"omitempty,gte=1,lte=7"`
	Note         null.String  `json:"note"`
}

func (ne *NewEvent) Validate() error {
	if err := core.Validate.Struct(ne); err != nil {
		return err
	}
	if rangedTypes[ne.Type] {
		if !ne.StartDate.Valid || !ne.EndDate.Valid {
			return core.NewValidationError(nil, core.FieldError{Field: "start_date", Error: "a date range is required for this event type"})
		}
		if ne.EndDate.Time.Before(ne.StartDate.Time) {
			return core.NewValidationError(nil, core.FieldError{Field: "end_date", Error: "must not precede start_date"})
		}
	}
	if ne.Type == TypeDayOff && !ne.RecurringDay.Valid() {
		return core.NewValidationError(nil, core.FieldError{Field: "recurring_day", Error: "required for dayoff events"})
	}
	return nil
}
