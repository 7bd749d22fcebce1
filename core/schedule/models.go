package schedule

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/drodriguezm/tablero/core"
)

// Activity is a named, colored category of schedule work. Protected (Fenix)
// activities participate in compliance tracking.
type Activity struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Color       string    `json:"color" db:"color"`
	IsProtected bool      `json:"is_protected" db:"is_protected"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// Assignment binds one advisor, one weekday and one half-hour start time to
// an activity. Uniquely keyed by (advisor, weekday, start); upserts replace
// the activity at that slot.
type Assignment struct {
	ID         string       `json:"id" db:"id"`
	AdvisorID  string       `json:"advisor_id" db:"advisor_id"`
	DayOfWeek  core.Weekday `json:"day_of_week" db:"day_of_week"`
	StartTime  string       `json:"start_time" db:"start_time"` // "HH:MM"
	ActivityID string       `json:"activity_id" db:"activity_id"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"` // UTC
	UpdatedAt  time.Time    `json:"updated_at" db:"updated_at"` // UTC
}

// DayHours is one weekday's operating window.
type DayHours struct {
	Open   string `json:"open" validate:"omitempty,hhmm"`
	Close  string `json:"close" validate:"omitempty,hhmm"`
	Closed bool   `json:"closed"`
}

// BranchConfig holds per-weekday opening/closing times. Index by canonical
// weekday via Hours().
type BranchConfig struct {
	Monday    DayHours `json:"monday"`
	Tuesday   DayHours `json:"tuesday"`
	Wednesday DayHours `json:"wednesday"`
	Thursday  DayHours `json:"thursday"`
	Friday    DayHours `json:"friday"`
	Saturday  DayHours `json:"saturday"`
	Sunday    DayHours `json:"sunday"`
}

func (bc BranchConfig) Hours(d core.Weekday) DayHours {
	switch d {
	case core.Monday:
		return bc.Monday
	case core.Tuesday:
		return bc.Tuesday
	case core.Wednesday:
		return bc.Wednesday
	case core.Thursday:
		return bc.Thursday
	case core.Friday:
		return bc.Friday
	case core.Saturday:
		return bc.Saturday
	case core.Sunday:
		return bc.Sunday
	}
	return DayHours{Closed: true}
}

func (bc BranchConfig) Validate() error { return core.Validate.Struct(bc) }

// ComplianceMark records whether a protected-time assignment was honored on a
// given date. Uniquely keyed by (advisor, date, slot).
type ComplianceMark struct {
	ID        string      `json:"id" db:"id"`
	AdvisorID string      `json:"advisor_id" db:"advisor_id"`
	Date      time.Time   `json:"date" db:"date"`
	TimeSlot  string      `json:"time_slot" db:"time_slot"` // "HH:MM"
	Completed bool        `json:"completed" db:"completed"`
	Note      null.String `json:"note" db:"note"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"` // UTC
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"` // UTC
}

// NewActivity contains information needed to create a new Activity.
type NewActivity struct {
	Name        string `json:"name" validate:"required"`
	Color       string `json:"color" validate:"required,hexcolor"`
	IsProtected bool   `json:"is_protected"`
}

func (na *NewActivity) Validate() error {
	na.Name = core.CleanString(na.Name)
	return core.Validate.Struct(na)
}

// UpdateActivity defines what may be modified on an existing Activity.
type UpdateActivity struct {
	Name        string `json:"name"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
	IsProtected *bool  `json:"is_protected"`
}

func (ua *UpdateActivity) Validate(orig Activity) error {
	name := core.CleanString(ua.Name)
	if name != "" {
		ua.Name = name
	} else {
		ua.Name = orig.Name
	}
	if ua.Color == "" {
		ua.Color = orig.Color
	}
	return core.Validate.Struct(ua)
}

// AssignSlot is an upsert request for one grid slot.
type AssignSlot struct {
	AdvisorID  string       `json:"advisor_id" validate:"required"`
	DayOfWeek  core.Weekday `json:"day_of_week" validate:"required,gte=1,lte=7"`
	StartTime  string       `json:"start_time" validate:"required,hhmm"`
	ActivityID string       `json:"activity_id" validate:"required"`
}

func (as AssignSlot) Validate() error { return core.Validate.Struct(as) }

// EraseSlot clears one grid slot; erasing an empty slot is a no-op.
type EraseSlot struct {
	AdvisorID string       `json:"advisor_id" validate:"required"`
	DayOfWeek core.Weekday `json:"day_of_week" validate:"required,gte=1,lte=7"`
	StartTime string       `json:"start_time" validate:"required,hhmm"`
}

func (es EraseSlot) Validate() error { return core.Validate.Struct(es) }

// ToggleCompliance upserts a compliance mark for (advisor, date, slot).
type ToggleCompliance struct {
	AdvisorID string      `json:"advisor_id" validate:"required"`
	Date      time.Time   `json:"date" validate:"required"`
	TimeSlot  string      `json:"time_slot" validate:"required,hhmm"`
	Completed bool        `json:"completed"`
	Note      null.String `json:"note"`
}

func (tc ToggleCompliance) Validate() error { return core.Validate.Struct(tc) }
