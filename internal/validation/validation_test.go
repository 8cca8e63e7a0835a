package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/jrsteele09/taskflow/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginForm struct {
	Username string `form:"username" validate:"required,notblank"`
	Password string `form:"password" validate:"required,max=8"`
}

func TestStruct_Valid(t *testing.T) {
	require.NoError(t, validation.New().Struct(loginForm{Username: "jdoe", Password: "secret"}))
}

func TestStruct_FieldErrorsKeyedByFormName(t *testing.T) {
	err := validation.New().Struct(loginForm{Username: "   ", Password: strings.Repeat("x", 9)})
	require.Error(t, err)

	var fieldErrs validation.FieldErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Equal(t, "this field cannot be blank", fieldErrs["username"])
	assert.Contains(t, fieldErrs["password"], "password must be a maximum of 8 characters")
	assert.Contains(t, err.Error(), "invalid input")
}

func TestStruct_Required(t *testing.T) {
	err := validation.New().Struct(loginForm{})

	var fieldErrs validation.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "username is a required field", fieldErrs["username"])
	assert.Equal(t, "password is a required field", fieldErrs["password"])
}
