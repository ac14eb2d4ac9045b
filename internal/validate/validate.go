package validate

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// notblank rejects values that are only whitespace. "required" alone
	// lets "   " through, which matters for free-text customer fields.
	err := validate.RegisterValidation(
		"notblank",
		func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		},
	)
	if err != nil {
		log.Fatalf("failed to register 'notblank' validation: %v", err)
	}
}

// StructFields validates the struct tags on payload and returns a
// field -> failed rule map usable as a response body.
func StructFields(payload any) map[string]string {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"payload": err.Error()}
	}

	fieldErrors := make(map[string]string, len(validationErrors))
	for _, fieldError := range validationErrors {
		fieldErrors[fieldError.Field()] = fieldError.Tag()
	}

	return fieldErrors
}
