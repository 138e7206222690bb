package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// knownIntervalUnits is the set of units the schedule interval math
// understands. The configured list may only narrow this set.
var knownIntervalUnits = map[string]bool{
	"minutes": true,
	"hours":   true,
	"days":    true,
	"weeks":   true,
}

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("interval_unit", isIntervalUnit); err != nil {
		return nil, nil, fmt.Errorf("failed to register interval_unit validation: %w", err)
	}
	if err := validate.RegisterTranslation("interval_unit", trans, func(ut ut.Translator) error {
		return ut.Add("interval_unit", "{0} must be one of minutes, hours, days, weeks", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("interval_unit", strings.TrimPrefix(fe.Namespace(), "Config."))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register interval_unit translation: %w", err)
	}

	return validate, trans, nil
}

func isIntervalUnit(fl validator.FieldLevel) bool {
	return knownIntervalUnits[fl.Field().String()]
}
