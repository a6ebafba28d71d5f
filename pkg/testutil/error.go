package testutil

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/swap-whitelist/pkg/solana"
)

// AssertInstructionError verifies that the error is a failed instruction at
// the provided index whose cause matches expected.
func AssertInstructionError(t *testing.T, err error, index int, expected error) {
	require.Error(t, err)

	var ie solana.InstructionError
	require.True(t, errors.As(err, &ie), "expected an instruction error, got: %v", err)
	assert.Equal(t, index, ie.Index)
	assert.True(t, errors.Is(err, expected), "expected %v, got: %v", expected, err)
}

// AssertCustomError verifies that the failed instruction surfaced the numeric
// program error code.
func AssertCustomError(t *testing.T, err error, code uint32) {
	require.Error(t, err)

	var ie solana.InstructionError
	require.True(t, errors.As(err, &ie), "expected an instruction error, got: %v", err)
	require.NotNil(t, ie.CustomError())
	assert.EqualValues(t, code, *ie.CustomError())
}
