package validator

import (
	"fmt"
	"regexp"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)

// registerCustomRules регистрирует кастомные функции валидации.
func registerCustomRules(v *validator.Validate) error {
	// 'username': буквы, цифры, '_', '.', '-'
	if err := v.RegisterValidation("username", validateUsername); err != nil {
		return fmt.Errorf("failed to register custom validation tag 'username': %w", err)
	}
	return nil
}

func validateUsername(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // пустые значения проверяет 'required'
	}
	return usernamePattern.MatchString(value)
}

var customMessages = map[string]string{
	"en": "{0} may only contain letters, digits, dots, dashes and underscores",
	"es": "{0} sólo puede contener letras, dígitos, puntos, guiones y guiones bajos",
}

func registerCustomTranslations(v *validator.Validate, trans ut.Translator, code string) error {
	msg, ok := customMessages[code]
	if !ok {
		return nil
	}
	err := v.RegisterTranslation("username", trans,
		func(ut ut.Translator) error {
			return ut.Add("username", msg, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("username", fe.Field())
			return t
		},
	)
	if err != nil {
		return fmt.Errorf("register username translation for %s: %w", code, err)
	}
	return nil
}
