package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatorAccumulatesWithoutAborting(t *testing.T) {
	var v Validator
	require.True(t, v.Ok())

	v.Report(InvalidValue, "Field", "out of range")
	v.Report(NullNotAllowed, "Other", "must not be null")

	require.False(t, v.Ok())
	require.Equal(t, 2, v.ErrorCount())
	require.True(t, v.HasKind(InvalidValue))
	require.True(t, v.HasKind(NullNotAllowed))
	require.False(t, v.HasKind(MissingObject))
	require.Equal(t, InvalidValue|NullNotAllowed, v.ErrorKinds())
}

func TestValidatorReset(t *testing.T) {
	var v Validator
	v.Report(InvalidCount, "x", "too many")
	v.Reset()
	require.True(t, v.Ok())
	require.Equal(t, 0, v.ErrorCount())
	require.Equal(t, NoError, v.ErrorKinds())
}
