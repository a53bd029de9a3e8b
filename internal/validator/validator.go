package validator

import (
	"fmt"
	"reflect"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	es_translations "github.com/go-playground/validator/v10/translations/es"
)

// ValidationError - кастомный тип ошибки с картой "поле" -> "сообщение".
type ValidationError struct {
	Errors map[string]string
}

// Error реализует стандартный интерфейс error.
func (e *ValidationError) Error() string {
	var errMsgs []string
	for field, msg := range e.Errors {
		errMsgs = append(errMsgs, fmt.Sprintf("field '%s': %s", field, msg))
	}
	return "Validation failed: " + strings.Join(errMsgs, "; ")
}

// Validator - наша обертка над go-playground/validator.
type Validator struct {
	validate *validator.Validate
}

// TranslatorSource отдает переводчик по коду языка (реализуется i18n.Bundle).
type TranslatorSource interface {
	Languages() []string
	Translator(locale string) ut.Translator
}

var defaultTranslations = map[string]func(*validator.Validate, ut.Translator) error{
	"en": en_translations.RegisterDefaultTranslations,
	"es": es_translations.RegisterDefaultTranslations,
}

// New создает Validator. Если передан источник переводов, сообщения об ошибках
// регистрируются для каждого его языка.
func New(translations TranslatorSource) (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Имена полей в ошибках берем из form/json тегов, а не из имен полей Go.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	if err := registerCustomRules(v); err != nil {
		return nil, err
	}

	if translations != nil {
		for _, code := range translations.Languages() {
			register, ok := defaultTranslations[code]
			if !ok {
				continue
			}
			trans := translations.Translator(code)
			if err := register(v, trans); err != nil {
				return nil, fmt.Errorf("register %s validation translations: %w", code, err)
			}
			if err := registerCustomTranslations(v, trans, code); err != nil {
				return nil, err
			}
		}
	}

	return &Validator{validate: v}, nil
}

// Validate выполняет валидацию с английскими сообщениями.
func (v *Validator) Validate(i interface{}) error {
	return v.ValidateLocalized(i, nil)
}

// ValidateLocalized выполняет валидацию; при trans != nil сообщения переводятся.
// Если есть ошибки, возвращает *ValidationError.
func (v *Validator) ValidateLocalized(i interface{}, trans ut.Translator) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Это какая-то другая ошибка (например, ошибка рефлексии)
		return err
	}

	customErrors := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		// первая ошибка поля важнее последующих
		if _, seen := customErrors[fe.Field()]; seen {
			continue
		}
		if trans != nil {
			customErrors[fe.Field()] = fe.Translate(trans)
		} else {
			customErrors[fe.Field()] = getErrorMessage(fe)
		}
	}

	return &ValidationError{Errors: customErrors}
}

// getErrorMessage - сообщения без переводчика.
func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "eqfield":
		return fmt.Sprintf("Must be equal to %s", fe.Param())
	case "username":
		return "Only letters, digits, dots, dashes and underscores are allowed"
	default:
		return fmt.Sprintf("Invalid value (failed on '%s' tag)", fe.Tag())
	}
}
