package token

import (
	"crypto/ed25519"
	"encoding/binary"
	"testing"

	"github.com/mr-tron/base58/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/swap-whitelist/pkg/solana"
	"github.com/code-payments/swap-whitelist/pkg/solana/system"
)

func TestGetCommand_Error(t *testing.T) {
	cmd, err := GetCommand([]byte{})
	assert.Equal(t, CommandUnknown, cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing data")
}

func TestNativeMint(t *testing.T) {
	assert.Equal(t, "So11111111111111111111111111111111111111112", base58.Encode(NativeMint))
	assert.Equal(t, "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA", base58.Encode(ProgramKey))
	assert.Equal(t, "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL", base58.Encode(AssociatedTokenAccountProgramKey))
}

func TestTransfer(t *testing.T) {
	keys := generateKeys(t, 3)

	instruction := Transfer(keys[0], keys[1], keys[2], 123456789)

	expectedAmount := make([]byte, 8)
	binary.LittleEndian.PutUint64(expectedAmount, 123456789)

	assert.Equal(t, byte(CommandTransfer), instruction.Data[0])
	assert.Equal(t, expectedAmount, instruction.Data[1:])

	assert.False(t, instruction.Accounts[0].IsSigner)
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.False(t, instruction.Accounts[1].IsSigner)
	assert.True(t, instruction.Accounts[1].IsWritable)
	assert.True(t, instruction.Accounts[2].IsSigner)
	assert.False(t, instruction.Accounts[2].IsWritable)

	amount, err := DecodeAmountArgs(instruction.Data, CommandTransfer)
	require.NoError(t, err)
	assert.EqualValues(t, 123456789, amount)

	_, err = DecodeAmountArgs(instruction.Data, CommandApprove)
	assert.Equal(t, solana.ErrIncorrectInstruction, err)

	_, err = DecodeAmountArgs(instruction.Data[:5], CommandTransfer)
	assert.Error(t, err)
}

func TestApprove(t *testing.T) {
	keys := generateKeys(t, 3)

	instruction := Approve(keys[0], keys[1], keys[2], 50)
	assert.Equal(t, byte(CommandApprove), instruction.Data[0])
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.False(t, instruction.Accounts[1].IsWritable)
	assert.True(t, instruction.Accounts[2].IsSigner)

	amount, err := DecodeAmountArgs(instruction.Data, CommandApprove)
	require.NoError(t, err)
	assert.EqualValues(t, 50, amount)
}

func TestCloseAccount(t *testing.T) {
	keys := generateKeys(t, 3)

	instruction := CloseAccount(keys[0], keys[1], keys[2])
	assert.Equal(t, []byte{byte(CommandCloseAccount)}, instruction.Data)
	assert.EqualValues(t, keys[0], instruction.Accounts[0].PublicKey)
	assert.EqualValues(t, keys[1], instruction.Accounts[1].PublicKey)
	assert.EqualValues(t, keys[2], instruction.Accounts[2].PublicKey)
	assert.True(t, instruction.Accounts[2].IsSigner)
}

func TestSyncNative(t *testing.T) {
	keys := generateKeys(t, 1)

	instruction := SyncNative(keys[0])
	assert.Equal(t, []byte{17}, instruction.Data)
	require.Len(t, instruction.Accounts, 1)
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.False(t, instruction.Accounts[0].IsSigner)
}

func generateKeys(t *testing.T, amount int) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, amount)

	for i := 0; i < amount; i++ {
		pub, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)

		keys[i] = pub
	}

	return keys
}

func TestInitializeAccount(t *testing.T) {
	keys := generateKeys(t, 3)

	instruction := InitializeAccount(keys[0], keys[1], keys[2])

	assert.Equal(t, ProgramKey, instruction.Program)
	assert.Equal(t, []byte{byte(CommandInitializeAccount)}, instruction.Data)
	require.Len(t, instruction.Accounts, 4)

	assert.Equal(t, keys[0], instruction.Accounts[0].PublicKey)
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.Equal(t, keys[1], instruction.Accounts[1].PublicKey)
	assert.False(t, instruction.Accounts[1].IsWritable)
	assert.Equal(t, keys[2], instruction.Accounts[2].PublicKey)
	assert.False(t, instruction.Accounts[2].IsSigner)
	assert.Equal(t, system.RentSysVar, instruction.Accounts[3].PublicKey)
}
