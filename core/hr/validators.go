package hr

import (
	"github.com/go-playground/validator/v10"

	"github.com/drodriguezm/tablero/core"
)

var (
	eventTag  = "hrevent"
	eventText = "invalid event type"
)

func init() {
	_ = core.Validate.RegisterValidation(eventTag, func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		for _, t := range AllTypes {
			if val == t {
				return true
			}
		}
		return false
	})
	core.RegisterCustomTranslation(eventTag, eventText)
}
