package advisor

import (
	"github.com/go-playground/validator/v10"

	"github.com/drodriguezm/tablero/core"
)

var (
	positionTag  = "position"
	positionText = "invalid position"

	shiftTag  = "shift"
	shiftText = "invalid shift"
)

func init() {
	_ = core.Validate.RegisterValidation(positionTag, oneOfValidation(AllPositions))
	core.RegisterCustomTranslation(positionTag, positionText)

	_ = core.Validate.RegisterValidation(shiftTag, oneOfValidation(AllShifts))
	core.RegisterCustomTranslation(shiftTag, shiftText)
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
