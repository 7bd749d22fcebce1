package advisor

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/drodriguezm/tablero/core"
)

// Positions
const (
	PositionLoan        = "loan"        // asesor de crédito
	PositionAffiliation = "affiliation" // asesor de afiliación
	PositionManager     = "manager"     // gerente de sucursal
)

// Shift preferences; used only for display ordering on printed rosters.
const (
	ShiftOpening = "opening"
	ShiftClosing = "closing"
	ShiftNone    = "none"
)

var (
	AllPositions = []string{PositionLoan, PositionAffiliation, PositionManager}
	AllShifts    = []string{ShiftOpening, ShiftClosing, ShiftNone}
)

type Advisor struct {
	ID         string      `json:"id" db:"id"`
	Name       string      `json:"name" db:"name"`
	Position   string      `json:"position" db:"position"`
	EmployeeNo null.String `json:"employee_no" db:"employee_no"`
	PhotoURL   null.String `json:"photo_url" db:"photo_url"`
	BirthDate  null.Time   `json:"birth_date" db:"birth_date"`
	HireDate   null.Time   `json:"hire_date" db:"hire_date"`
	Shift      string      `json:"shift" db:"shift"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"` // UTC
	UpdatedAt  time.Time   `json:"updated_at" db:"updated_at"` // UTC
}

func (a Advisor) IsLoan() bool        { return a.Position == PositionLoan }
func (a Advisor) IsAffiliation() bool { return a.Position == PositionAffiliation }

// NewAdvisor contains information needed to create a new Advisor.
type NewAdvisor struct {
	Name       string      `json:"name" validate:"required"`
	Position   string      `json:"position" validate:"required,position"`
	EmployeeNo null.String `json:"employee_no"`
	PhotoURL   null.String `json:"photo_url"`
	BirthDate  null.Time   `json:"birth_date"`
	HireDate   null.Time   `json:"hire_date"`
	Shift      string      `json:"shift" validate:"omitempty,shift"`
}

func (na *NewAdvisor) Validate() error {
	na.Name = core.CleanString(na.Name)
	if na.Shift == "" {
		na.Shift = ShiftNone
	}
	return core.Validate.Struct(na)
}

// UpdateAdvisor defines what information may be provided to modify an existing Advisor.
type UpdateAdvisor struct {
	Name       string      `json:"name"`
	Position   string      `json:"position" validate:"omitempty,position"`
	EmployeeNo null.String `json:"employee_no"`
	PhotoURL   null.String `json:"photo_url"`
	BirthDate  null.Time   `json:"birth_date"`
	HireDate   null.Time   `json:"hire_date"`
	Shift      string      `json:"shift" validate:"omitempty,shift"`
}

func (ua *UpdateAdvisor) Validate(orig Advisor) error {
	name := core.CleanString(ua.Name)
	if name != "" {
		ua.Name = name
	} else {
		ua.Name = orig.Name
	}
	if ua.Position == "" {
		ua.Position = orig.Position
	}
	if ua.Shift == "" {
		ua.Shift = orig.Shift
	}
	return core.Validate.Struct(ua)
}
