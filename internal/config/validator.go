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
	if err := validate.RegisterValidation("student_id", isStudentID); err != nil {
		return nil, nil, fmt.Errorf("failed to register student_id validation: %w", err)
	}
	if err := validate.RegisterTranslation("student_id", trans, func(ut ut.Translator) error {
		return ut.Add("student_id", "{0} must not contain spaces or slashes", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("student_id", fe.Field())
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register student_id translation: %w", err)
	}

	return validate, trans, nil
}

// isStudentID accepts an empty value (no default student) or an identifier
// that can be used verbatim as a path segment.
func isStudentID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	return !strings.ContainsAny(id, " \t/\\")
}
