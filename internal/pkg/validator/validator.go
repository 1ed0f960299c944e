// Package validator checks request DTOs that carry validate tags and turns
// failures into a field map suitable for the error envelope.
package validator

import (
	playground "github.com/go-playground/validator/v10"
)

var validate = playground.New()

// Validate returns nil when the struct passes, otherwise a map of field name
// to the rule that failed.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(playground.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
