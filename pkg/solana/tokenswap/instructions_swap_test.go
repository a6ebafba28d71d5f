package tokenswap

import (
	"encoding/binary"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/swap-whitelist/pkg/solana"
)

func TestNewSwapInstruction(t *testing.T) {
	keys := generateKeys(t, 11)

	accounts := &SwapInstructionAccounts{
		Swap:                  keys[0],
		Authority:             keys[1],
		UserTransferAuthority: keys[2],
		Source:                keys[3],
		SwapSource:            keys[4],
		SwapDestination:       keys[5],
		Destination:           keys[6],
		PoolMint:              keys[7],
		PoolFee:               keys[8],
		TokenProgram:          keys[9],
	}

	ix := NewSwapInstruction(nil, accounts, &SwapInstructionArgs{AmountIn: 1000, MinimumAmountOut: 7})
	assert.EqualValues(t, PROGRAM_ID, ix.Program)
	require.Len(t, ix.Data, 17)
	assert.EqualValues(t, InstructionTypeSwap, ix.Data[0])
	assert.EqualValues(t, 1000, binary.LittleEndian.Uint64(ix.Data[1:]))
	assert.EqualValues(t, 7, binary.LittleEndian.Uint64(ix.Data[9:]))
	require.Len(t, ix.Accounts, 10)
	assert.True(t, ix.Accounts[2].IsSigner)
	assert.False(t, ix.Accounts[0].IsWritable)
	assert.True(t, ix.Accounts[3].IsWritable)

	accounts.HostFee = keys[10]
	ix = NewSwapInstruction(keys[10], accounts, &SwapInstructionArgs{AmountIn: 1, MinimumAmountOut: 1})
	assert.EqualValues(t, keys[10], ix.Program)
	require.Len(t, ix.Accounts, 11)
	assert.True(t, ix.Accounts[10].IsWritable)

	args, err := DecodeSwapInstructionArgs(ix.Data)
	require.NoError(t, err)
	assert.EqualValues(t, 1, args.AmountIn)
	assert.EqualValues(t, 1, args.MinimumAmountOut)

	_, err = DecodeSwapInstructionArgs(ix.Data[:10])
	assert.Equal(t, ErrInvalidInstructionData, err)
}

func TestGetSwapAuthorityAddress(t *testing.T) {
	assert.Equal(t, "SwaPpA9LAaLfeLi3a68M4DjnLqgtticKg6CnyNwgAC8", base58.Encode(PROGRAM_ID))

	swap := generateKeys(t, 1)[0]

	expected, bump, err := FindSwapAuthorityAddress(PROGRAM_ID, swap)
	require.NoError(t, err)

	actual, err := GetSwapAuthorityAddress(&GetSwapAuthorityAddressArgs{
		Swap:     swap,
		BumpSeed: bump,
	})
	require.NoError(t, err)
	assert.EqualValues(t, expected, actual)

	other, err := GetSwapAuthorityAddress(&GetSwapAuthorityAddressArgs{
		Program:  PROGRAM_ID,
		Swap:     swap,
		BumpSeed: bump - 1,
	})
	if err == nil {
		assert.NotEqualValues(t, expected, other)
	} else {
		assert.Equal(t, solana.ErrInvalidPublicKey, err)
	}
}
