package record

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/drodriguezm/tablero/core"
)

// Report types
const (
	TypeIndividual = "individual" // tied to one advisor
	TypeBranch     = "sucursal"   // branch-wide capture
)

// Frequencies
const (
	FreqWeekly = "WEEKLY"
	FreqDaily  = "DAILY"
)

// Values maps indicator ids to observed amounts. The keys are identifiers,
// not field names: they must never go through any naming transformation, so
// the map is stored verbatim as JSONB.
type Values map[string]float64

func (v Values) Value() (driver.Value, error) {
	if v == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(v)
}

func (v *Values) Scan(src interface{}) error {
	if src == nil {
		*v = Values{}
		return nil
	}
	var data []byte
	switch s := src.(type) {
	case []byte:
		data = s
	case string:
		data = []byte(s)
	default:
		return errors.New("record: cannot scan values")
	}
	return json.Unmarshal(data, v)
}

type Data struct {
	ID        string       `json:"id" db:"id"`
	Type      string       `json:"type" db:"type"`
	AdvisorID null.String  `json:"advisor_id" db:"advisor_id"` // null for branch rows
	Year      int          `json:"year" db:"year"`
	Week      int          `json:"week" db:"week"`
	Frequency string       `json:"frequency" db:"frequency"`
	DayOfWeek core.Weekday `json:"day_of_week" db:"day_of_week"` // DAILY rows only
	Values    Values       `json:"values" db:"vals"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"` // UTC
	UpdatedAt time.Time    `json:"updated_at" db:"updated_at"` // UTC
}

// Consistent rejects the backend inconsistencies the aggregation engine must
// defend against: individual rows without an advisor and branch rows with one.
func (d Data) Consistent() bool {
	switch d.Type {
	case TypeIndividual:
		return d.AdvisorID.Valid && d.AdvisorID.String != ""
	case TypeBranch:
		return !d.AdvisorID.Valid || d.AdvisorID.String == ""
	}
	return false
}

func (d Data) IsWeekly() bool { return d.Frequency == FreqWeekly }
func (d Data) IsDaily() bool  { return d.Frequency == FreqDaily }

// NewData contains information needed to save an observed record.
type NewData struct {
	Type      string       `json:"type" validate:"required,reporttype"`
	AdvisorID null.String  `json:"advisor_id"`
	Year      int          `json:"year" validate:"required,gte=2000"`
	Week      int          `json:"week" validate:"required,gte=1,lte=53"`
	Frequency string       `json:"frequency" validate:"required,recordfreq"`
	DayOfWeek core.Weekday `json:"day_of_week" validate:"omitempty,gte=1,lte=7"`
	Values    Values       `json:"values" validate:"required"`
}

func (nd *NewData) Validate() error {
	if err := core.Validate.Struct(nd); err != nil {
		return err
	}
	if nd.Type == TypeIndividual && (!nd.AdvisorID.Valid || nd.AdvisorID.String == "") {
		return core.NewValidationError(nil, core.FieldError{Field: "advisor_id", Error: "required for individual records"})
	}
	if nd.Frequency == FreqDaily && !nd.DayOfWeek.Valid() {
		return core.NewValidationError(nil, core.FieldError{Field: "day_of_week", Error: "required for DAILY frequency"})
	}
	return nil
}

// UpdateData replaces the values of an existing record.
type UpdateData struct {
	Values Values `json:"values" validate:"required"`
}

func (ud UpdateData) Validate() error { return core.Validate.Struct(ud) }
