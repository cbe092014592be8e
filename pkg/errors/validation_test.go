package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title   string `json:"title" validate:"required,max=5"`
	Version string `json:"version" validate:"max=3"`
}

func jsonNames() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	return v
}

func TestValidationListsFields(t *testing.T) {
	err := jsonNames().Struct(sample{Version: "1.0.0"})
	require.Error(t, err)

	out := Validation(err, "invalid submission payload")
	assert.Equal(t, http.StatusBadRequest, out.Status)
	assert.True(t, stderrors.Is(out, ErrValidation))
	assert.Equal(t, []FieldViolation{
		{Field: "title", Rule: "required"},
		{Field: "version", Rule: "max", Param: "3"},
	}, out.Details["fields"])

	raw, marshalErr := json.Marshal(out)
	require.NoError(t, marshalErr)
	assert.Contains(t, string(raw), `{"field":"version","rule":"max","param":"3"}`)
}

func TestValidationDecodeErrors(t *testing.T) {
	var target sample
	typeErr := json.Unmarshal([]byte(`{"title": 5}`), &target)
	assert.Equal(t, []FieldViolation{{Field: "title", Rule: "type", Param: "string"}}, Validation(typeErr, "bad").Details["fields"])

	syntaxErr := json.Unmarshal([]byte(`{"title"`), &target)
	assert.Equal(t, []FieldViolation{{Field: "body", Rule: "json"}}, Validation(syntaxErr, "bad").Details["fields"])
}

func TestInvalidField(t *testing.T) {
	out := InvalidField("doc_type", "oneof", "paper proposal", "invalid doc_type")
	assert.Equal(t, ErrValidation.Code, out.Code)
	assert.Equal(t, []FieldViolation{{Field: "doc_type", Rule: "oneof", Param: "paper proposal"}}, out.Details["fields"])
	assert.Nil(t, ErrValidation.Details)
}
