package indicator

import (
	"github.com/go-playground/validator/v10"

	"github.com/drodriguezm/tablero/core"
)

var (
	unitTag  = "unit"
	unitText = "invalid unit"

	applicabilityTag  = "applicability"
	applicabilityText = "invalid applicability"

	groupTag  = "indgroup"
	groupText = "invalid display group"
)

func init() {
	_ = core.Validate.RegisterValidation(unitTag, oneOfValidation(AllUnits))
	core.RegisterCustomTranslation(unitTag, unitText)

	_ = core.Validate.RegisterValidation(applicabilityTag, oneOfValidation(AllApplicability))
	core.RegisterCustomTranslation(applicabilityTag, applicabilityText)

	_ = core.Validate.RegisterValidation(groupTag, oneOfValidation(AllGroups))
	core.RegisterCustomTranslation(groupTag, groupText)
}

func oneOfValidation(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		for _, a := range allowed {
			if val == a {
				return true
			}
		}
		return false
	}
}
