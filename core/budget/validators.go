package budget

import (
	"github.com/go-playground/validator/v10"

	"github.com/drodriguezm/tablero/core"
)

var (
	scopeTag  = "budgetscope"
	scopeText = "invalid scope"
)

func init() {
	_ = core.Validate.RegisterValidation(scopeTag, scopeValidation)
	core.RegisterCustomTranslation(scopeTag, scopeText)
}

func scopeValidation(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	return val == ScopeWeekly || val == ScopeDaily
}
