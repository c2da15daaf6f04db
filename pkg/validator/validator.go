// Package validator provides a unified validation component based on go-playground/validator.
// It offers global validator initialization, custom validation rules for the Haven API,
// and translated error messages suitable for JSON responses.
package validator

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator wraps go-playground/validator with tag-name resolution and translations.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
	mu       sync.RWMutex
}

var (
	globalValidator *Validator
	once            sync.Once
)

// Global returns the global validator instance.
// It initializes the validator on first call with default settings.
func Global() *Validator {
	once.Do(func() {
		globalValidator = New()
	})
	return globalValidator
}

// SetGlobal sets the global validator instance.
// Call during application initialization if custom configuration is needed.
func SetGlobal(v *Validator) {
	globalValidator = v
}

// New creates a new Validator instance with default configuration.
func New() *Validator {
	v := &Validator{
		validate: validator.New(),
	}

	// Use JSON tag names for error field names
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	v.trans, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v.validate, v.trans)

	v.registerCustomRules()

	return v
}

// registerCustomRules adds validation tags specific to the Haven API.
func (v *Validator) registerCustomRules() {
	// day: a calendar day in YYYY-MM-DD form.
	_ = v.RegisterValidationWithTranslation("day", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	}, "{0} must be a date in YYYY-MM-DD form")

	// ulid: a 26-character Crockford base32 identifier.
	_ = v.RegisterValidationWithTranslation("ulid", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) != 26 {
			return false
		}
		for _, r := range s {
			if !strings.ContainsRune("0123456789ABCDEFGHJKMNPQRSTVWXYZabcdefghjkmnpqrstvwxyz", r) {
				return false
			}
		}
		return true
	}, "{0} must be a valid identifier")
}

// Validate validates a struct and returns the raw validator error.
func (v *Validator) Validate(s interface{}) error {
	return v.validate.Struct(s)
}

// ValidateStruct validates a struct and returns translated validation errors,
// or nil if the struct is valid.
func (v *Validator) ValidateStruct(s interface{}) *ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return NewValidationError("unknown", "unknown", err.Error())
	}
	return v.translateErrors(verrs)
}

// ValidateVar validates a single variable against a tag expression.
func (v *Validator) ValidateVar(field interface{}, tag string) error {
	return v.validate.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (v *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return v.validate.RegisterValidation(tag, fn)
}

// RegisterValidationWithTranslation registers a custom validation together with
// its error message template. "{0}" in the message is replaced by the field name.
func (v *Validator) RegisterValidationWithTranslation(tag string, fn validator.Func, message string) error {
	if err := v.validate.RegisterValidation(tag, fn); err != nil {
		return err
	}

	return v.validate.RegisterTranslation(tag, v.trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, message, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, fe.Field())
			return t
		},
	)
}

// Engine returns the underlying validator.Validate instance.
func (v *Validator) Engine() *validator.Validate {
	return v.validate
}

func (v *Validator) translateErrors(errs validator.ValidationErrors) *ValidationErrors {
	result := &ValidationErrors{
		Errors: make([]FieldError, 0, len(errs)),
	}

	for _, err := range errs {
		result.Errors = append(result.Errors, FieldError{
			Field:   err.Field(),
			Tag:     err.Tag(),
			Value:   err.Value(),
			Param:   err.Param(),
			Message: err.Translate(v.trans),
		})
	}

	return result
}

// Struct validates a struct using the global validator and returns translated
// errors, or nil if the struct is valid.
func Struct(s interface{}) *ValidationErrors {
	return Global().ValidateStruct(s)
}

// Var validates a single variable using the global validator.
func Var(field interface{}, tag string) error {
	return Global().ValidateVar(field, tag)
}
