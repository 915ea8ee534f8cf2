package validation

import (
	"github.com/go-playground/validator/v10"
	"github.com/localvibe/localvibe-backend/internal/dto"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates v against its struct tags and returns the field-error
// list, or nil when the value is valid.
func Struct(v interface{}) []dto.FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []dto.FieldError{{Field: "body", Rule: "invalid"}}
	}
	fields := make([]dto.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, dto.FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return fields
}
