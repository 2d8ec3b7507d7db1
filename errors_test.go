package raster

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "input", ErrInput.String())
	assert.Equal(t, "parameter_range", ErrParameterRange.String())
	assert.Equal(t, "resource_exhaustion", ErrResourceExhaustion.String())
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := newError(ErrInput, "LoadMesh", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "LoadMesh")
	assert.Contains(t, err.Error(), "input")
}

func TestErrorWithoutCause(t *testing.T) {
	err := newError(ErrParameterRange, "Clamp", nil)
	assert.Nil(t, err.Unwrap())
	assert.Contains(t, err.Error(), "parameter_range")
}
