package solana

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testProgramError uint32

func (e testProgramError) Error() string {
	return "test program error"
}

func (e testProgramError) ProgramErrorCode() uint32 {
	return uint32(e)
}

func TestInstructionError_Keys(t *testing.T) {
	ie := InstructionError{
		Index: 2,
		Err:   errors.Wrap(InstructionErrorMissingRequiredSignature, "creator did not sign"),
	}

	assert.Equal(t, InstructionErrorMissingRequiredSignature, ie.ErrorKey())
	assert.Nil(t, ie.CustomError())
	assert.True(t, errors.Is(ie, InstructionErrorMissingRequiredSignature))
	assert.Contains(t, ie.Error(), "Instruction 2")

	ie = InstructionError{
		Index: 0,
		Err:   errors.New("boom"),
	}
	assert.Equal(t, InstructionErrorGenericError, ie.ErrorKey())
}

func TestInstructionError_Custom(t *testing.T) {
	ie := InstructionError{
		Index: 1,
		Err:   CustomError(3),
	}
	require.NotNil(t, ie.CustomError())
	assert.Equal(t, CustomError(3), *ie.CustomError())
	assert.Equal(t, InstructionErrorCustom, ie.ErrorKey())

	ie = InstructionError{
		Index: 1,
		Err:   errors.Wrap(testProgramError(5), "not whitelisted"),
	}
	require.NotNil(t, ie.CustomError())
	assert.Equal(t, CustomError(5), *ie.CustomError())
	assert.Equal(t, InstructionErrorCustom, ie.ErrorKey())
	assert.True(t, errors.Is(ie, testProgramError(5)))
}

func TestTransactionError(t *testing.T) {
	txErr := NewTransactionError(TransactionErrorSignatureFailure, errors.New("bad signature"))
	assert.Equal(t, TransactionErrorSignatureFailure, txErr.ErrorKey())
	assert.Nil(t, txErr.InstructionError())
	assert.Contains(t, txErr.Error(), "SignatureFailure")

	txErr = TransactionErrorFromInstructionError(&InstructionError{
		Index: 3,
		Err:   InstructionErrorInsufficientFunds,
	})
	assert.Equal(t, TransactionErrorInstructionError, txErr.ErrorKey())
	require.NotNil(t, txErr.InstructionError())
	assert.Equal(t, 3, txErr.InstructionError().Index)

	var err error = txErr
	assert.True(t, errors.Is(err, InstructionErrorInsufficientFunds))
}
