package solana

import (
	"bytes"
	"crypto/ed25519"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Taken from: https://github.com/solana-labs/solana/blob/14339dec0a960e8161d1165b6a8e5cfb73e78f23/sdk/src/transaction.rs#L523
const rustGenerated = "AUc7Cbu+gZalFSGeSFdukHhP7oSGaSdmdNEd5ZokaSysdoMWfIOzjrAbdaBZZuDMAfyNAogAJdrhgVya+jthsgoBAAEDnON0wdcmjhYIDuXvd10F2qEjAyEAJGSe/CGhYbk+WWMBAQEEBQYHCAkJCQkJCQkJCQkJCQkJCQkIBwYFBAEBAQICAgQFBgcICQEBAQEBAQEBAQEBAQEBCQgHBgUEAgICAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABAgIAAQMBAgM="

// The above example does not have the correct public key encoded in the keypair.
// This is the above example with the correctly generated keypair.
const rustGeneratedAdjusted = "ATMfBMZ8phHEheLph8K9TJhRKhnE4qNZvWiXdUdJRmlTCRsQjWmW2CkQJeRHBCcsqFm2gynjL40M9mTe0Dxp4QIBAAEDfEya6wnC7f3Cv53qnOEywwIJ928rIdqAlfXYI1adXroBAQEEBQYHCAkJCQkJCQkJCQkJCQkJCQkIBwYFBAEBAQICAgQFBgcICQEBAQEBAQEBAQEBAQEBCQgHBgUEAgICAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABAgIAAQMBAgM="

func TestTransaction_CrossImpl(t *testing.T) {
	keypair := ed25519.PrivateKey{48, 83, 2, 1, 1, 48, 5, 6, 3, 43, 101, 112, 4, 34, 4, 32, 255, 101, 36, 24, 124, 23,
		167, 21, 132, 204, 155, 5, 185, 58, 121, 75, 156, 227, 116, 193, 215, 38, 142, 22, 8,
		14, 229, 239, 119, 93, 5, 218, 161, 35, 3, 33, 0, 36, 100, 158, 252, 33, 161, 97, 185,
		62, 89, 99}
	programID := ed25519.PublicKey{2, 2, 2, 4, 5, 6, 7, 8, 9, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 9, 8, 7, 6, 5, 4,
		2, 2, 2}
	to := ed25519.PublicKey{1, 1, 1, 4, 5, 6, 7, 8, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 8, 7, 6, 5, 4, 1, 1, 1}

	tx := NewTransaction(
		keypair.Public().(ed25519.PublicKey),
		NewInstruction(
			programID,
			[]byte{1, 2, 3},
			NewAccountMeta(keypair.Public().(ed25519.PublicKey), true),
			NewAccountMeta(to, false),
		),
	)
	require.NoError(t, tx.Sign(keypair))

	generated, err := base64.StdEncoding.DecodeString(rustGenerated)
	require.NoError(t, err)
	assert.Equal(t, generated, tx.Marshal())
}

func TestTransaction_GenerateValidCrossImpl(t *testing.T) {
	keypair := ed25519.NewKeyFromSeed([]byte{48, 83, 2, 1, 1, 48, 5, 6, 3, 43, 101, 112, 4, 34, 4, 32, 255, 101, 36, 24, 124, 23,
		167, 21, 132, 204, 155, 5, 185, 58, 121, 75})
	programID := ed25519.PublicKey{2, 2, 2, 4, 5, 6, 7, 8, 9, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 9, 8, 7, 6, 5, 4,
		2, 2, 2}
	to := ed25519.PublicKey{1, 1, 1, 4, 5, 6, 7, 8, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 8, 7, 6, 5, 4, 1, 1, 1}

	tx := NewTransaction(
		keypair.Public().(ed25519.PublicKey),
		NewInstruction(
			programID,
			[]byte{1, 2, 3},
			NewAccountMeta(keypair.Public().(ed25519.PublicKey), true),
			NewAccountMeta(to, false),
		),
	)
	require.NoError(t, tx.Sign(keypair))
	assert.Equal(t, rustGeneratedAdjusted, base64.StdEncoding.EncodeToString(tx.Marshal()))
}

func TestTransaction_MarshalRoundTrip(t *testing.T) {
	payer, payerKey, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	other, otherKey, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	program, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	readonly, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	tx := NewTransaction(
		payer,
		NewInstruction(
			program,
			[]byte{4, 5, 6},
			NewReadonlyAccountMeta(other, true),
			NewReadonlyAccountMeta(readonly, false),
			NewAccountMeta(payer, true),
		),
	)
	tx.SetBlockhash(Blockhash{1, 2, 3})
	require.NoError(t, tx.Sign(payerKey, otherKey))
	require.NoError(t, tx.VerifySignatures())

	var decoded Transaction
	require.NoError(t, decoded.Unmarshal(tx.Marshal()))
	assert.Equal(t, tx.Signatures, decoded.Signatures)
	assert.Equal(t, tx.Message.Header, decoded.Message.Header)
	assert.Equal(t, tx.Message.RecentBlockhash, decoded.Message.RecentBlockhash)
	assert.Len(t, decoded.Message.Accounts, 4)
	require.NoError(t, decoded.VerifySignatures())
}

func TestTransaction_Header(t *testing.T) {
	payer, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	signer, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	writable, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	readonly, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	program, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	tx := NewTransaction(
		payer,
		NewInstruction(
			program,
			nil,
			NewReadonlyAccountMeta(readonly, false),
			NewReadonlyAccountMeta(signer, true),
			NewAccountMeta(writable, false),
		),
	)

	m := tx.Message
	assert.EqualValues(t, 2, m.Header.NumSignatures)
	assert.EqualValues(t, 1, m.Header.NumReadonlySigned)
	assert.EqualValues(t, 2, m.Header.NumReadOnly)

	assert.EqualValues(t, payer, m.Accounts[0])
	assert.EqualValues(t, signer, m.Accounts[1])
	assert.EqualValues(t, writable, m.Accounts[2])
	assert.EqualValues(t, program, m.Accounts[4])

	ix, err := DecompileInstruction(m, 0)
	require.NoError(t, err)
	assert.EqualValues(t, program, ix.Program)
	require.Len(t, ix.Accounts, 3)

	assert.EqualValues(t, readonly, ix.Accounts[0].PublicKey)
	assert.False(t, ix.Accounts[0].IsSigner)
	assert.False(t, ix.Accounts[0].IsWritable)

	assert.EqualValues(t, signer, ix.Accounts[1].PublicKey)
	assert.True(t, ix.Accounts[1].IsSigner)
	assert.False(t, ix.Accounts[1].IsWritable)

	assert.EqualValues(t, writable, ix.Accounts[2].PublicKey)
	assert.False(t, ix.Accounts[2].IsSigner)
	assert.True(t, ix.Accounts[2].IsWritable)

	_, err = DecompileInstruction(m, 1)
	assert.Error(t, err)
}

func TestTransaction_VerifySignatures(t *testing.T) {
	payer, payerKey, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	signer, signerKey, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	program, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	tx := NewTransaction(
		payer,
		NewInstruction(program, []byte{1}, NewAccountMeta(signer, true)),
	)

	require.NoError(t, tx.Sign(payerKey))
	assert.ErrorIs(t, tx.VerifySignatures(), ErrMissingSignature)

	require.NoError(t, tx.Sign(signerKey))
	assert.NoError(t, tx.VerifySignatures())

	tx.Message.Instructions[0].Data = []byte{2}
	assert.ErrorIs(t, tx.VerifySignatures(), ErrInvalidSignature)

	_, outsiderKey, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	assert.Error(t, tx.Sign(outsiderKey))
}

func TestCompactLength(t *testing.T) {
	for _, v := range []int{0, 1, 0x7f, 0x80, 0x3fff, 0x4000, 0xffff} {
		var buf bytes.Buffer
		require.NoError(t, encodeLength(&buf, v))

		actual, err := decodeLength(&buf)
		require.NoError(t, err)
		assert.Equal(t, v, actual)
	}

	var buf bytes.Buffer
	assert.Error(t, encodeLength(&buf, 0x10000))

	_, err := decodeLength(bytes.NewBuffer([]byte{0x80, 0x80, 0x80}))
	assert.Error(t, err)
}
