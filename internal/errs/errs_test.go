package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundWrapsSentinel(t *testing.T) {
	err := NotFound("event", "42")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, `event "42": not found`, err.Error())
}

func TestValidationErrorThroughWrap(t *testing.T) {
	err := fmt.Errorf("sign up: %w", &ValidationError{Fields: []FieldError{
		{Field: "name", Message: "Name must be at least 2 characters long"},
		{Field: "password", Message: "Password must be at least 6 characters long"},
	}})

	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Len(t, ve.Fields, 2)
	assert.Equal(t, "Name must be at least 2 characters long", ve.Message("name"))
	assert.Empty(t, ve.Message("email"))
	assert.Contains(t, err.Error(), "password: Password must be at least 6 characters long")
}

func TestAsValidationRejectsOtherErrors(t *testing.T) {
	_, ok := AsValidation(ErrInvalidCredentials)
	assert.False(t, ok)
}
