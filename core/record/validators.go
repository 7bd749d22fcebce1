package record

import (
	"github.com/go-playground/validator/v10"

	"github.com/drodriguezm/tablero/core"
)

var (
	typeTag  = "reporttype"
	typeText = "invalid report type"

	freqTag  = "recordfreq"
	freqText = "invalid frequency"
)

func init() {
	_ = core.Validate.RegisterValidation(typeTag, func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		return val == TypeIndividual || val == TypeBranch
	})
	core.RegisterCustomTranslation(typeTag, typeText)

	_ = core.Validate.RegisterValidation(freqTag, func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		return val == FreqWeekly || val == FreqDaily
	})
	core.RegisterCustomTranslation(freqTag, freqText)
}
