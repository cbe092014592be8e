package errors

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/go-playground/validator/v10"
)

// FieldViolation names one rejected input field.
type FieldViolation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// Validation converts a payload decode or validator failure into ErrValidation carrying
// details{"fields": [...]}. The cause is kept for logging only.
func Validation(err error, message string) *Error {
	out := WithDetails(ErrValidation, message, map[string]interface{}{"fields": violations(err)})
	out.Err = err
	return out
}

// InvalidField rejects a single field with the given rule.
func InvalidField(field, rule, param, message string) *Error {
	return WithDetails(ErrValidation, message, map[string]interface{}{
		"fields": []FieldViolation{{Field: field, Rule: rule, Param: param}},
	})
}

func violations(err error) []FieldViolation {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]FieldViolation, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldViolation{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
		}
		return out
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []FieldViolation{{Field: typeErr.Field, Rule: "type", Param: typeErr.Type.String()}}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return []FieldViolation{{Field: "body", Rule: "json"}}
	}
	return []FieldViolation{}
}
