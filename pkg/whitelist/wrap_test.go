package whitelist_test

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/swap-whitelist/pkg/solana"
	"github.com/code-payments/swap-whitelist/pkg/solana/token"
	"github.com/code-payments/swap-whitelist/pkg/testutil"
	"github.com/code-payments/swap-whitelist/pkg/whitelist"
)

func (e *testEnv) createAndWrapInstruction(t *testing.T, funder ed25519.PrivateKey, amount uint64) solana.Instruction {
	owner := testutil.PublicKey(funder)
	return whitelist.NewCreateAndWrapInstruction(
		e.ids.Whitelist,
		&whitelist.CreateAndWrapInstructionAccounts{
			Funder:                 owner,
			Holding:                e.nativeHolding(t, owner),
			NativeMint:             e.ids.NativeMint,
			SystemProgram:          e.ids.System,
			TokenProgram:           e.ids.Token,
			AssociatedTokenProgram: e.ids.AssociatedToken,
		},
		&whitelist.CreateAndWrapInstructionArgs{Amount: amount},
	)
}

func (e *testEnv) wrapInstruction(t *testing.T, funder ed25519.PrivateKey, amount uint64) solana.Instruction {
	owner := testutil.PublicKey(funder)
	return whitelist.NewWrapInstruction(
		e.ids.Whitelist,
		&whitelist.WrapInstructionAccounts{
			Funder:        owner,
			Holding:       e.nativeHolding(t, owner),
			SystemProgram: e.ids.System,
			TokenProgram:  e.ids.Token,
		},
		&whitelist.WrapInstructionArgs{Amount: amount},
	)
}

func (e *testEnv) unwrapInstruction(t *testing.T, owner ed25519.PrivateKey) solana.Instruction {
	pub := testutil.PublicKey(owner)
	return whitelist.NewUnwrapInstruction(
		e.ids.Whitelist,
		&whitelist.UnwrapInstructionAccounts{
			Owner:        pub,
			Holding:      e.nativeHolding(t, pub),
			TokenProgram: e.ids.Token,
		},
	)
}

func (e *testEnv) lamports(t *testing.T, address ed25519.PublicKey) uint64 {
	account, err := e.ln.GetAccount(e.ctx, address)
	require.NoError(t, err)
	if account == nil {
		return 0
	}
	return account.Lamports
}

func TestWrap_RoundTrip(t *testing.T) {
	env := setup(t)

	user := env.users[0]
	owner := testutil.PublicKey(user)
	holding := env.nativeHolding(t, owner)
	reserve := env.ln.Bank().Rent().MinimumBalance(token.AccountSize)

	_, err := env.ln.Submit(env.ctx, []ed25519.PrivateKey{user}, env.createAndWrapInstruction(t, user, 5_000_000))
	require.NoError(t, err)

	state, err := env.ln.GetTokenAccount(env.ctx, holding)
	require.NoError(t, err)
	assert.True(t, state.IsNativeHolding())
	assert.Equal(t, token.NativeMint, state.Mint)
	assert.EqualValues(t, owner, state.Owner)
	assert.EqualValues(t, reserve, *state.IsNative)
	assert.EqualValues(t, 5_000_000-reserve, state.Amount)
	assert.EqualValues(t, 5_000_000, env.lamports(t, holding))
	assert.EqualValues(t, fundedLamports-5_000_000, env.lamports(t, owner))

	_, err = env.ln.Submit(env.ctx, []ed25519.PrivateKey{user}, env.wrapInstruction(t, user, 1_000_000))
	require.NoError(t, err)

	state, err = env.ln.GetTokenAccount(env.ctx, holding)
	require.NoError(t, err)
	assert.EqualValues(t, 6_000_000-reserve, state.Amount)
	assert.EqualValues(t, fundedLamports-6_000_000, env.lamports(t, owner))

	_, err = env.ln.Submit(env.ctx, []ed25519.PrivateKey{user}, env.unwrapInstruction(t, user))
	require.NoError(t, err)

	assert.EqualValues(t, fundedLamports, env.lamports(t, owner))
	assert.Zero(t, env.lamports(t, holding))
}

func TestCreateAndWrap_BelowReserve(t *testing.T) {
	env := setup(t)

	user := env.users[1]
	owner := testutil.PublicKey(user)
	holding := env.nativeHolding(t, owner)
	reserve := env.ln.Bank().Rent().MinimumBalance(token.AccountSize)

	_, err := env.ln.Submit(env.ctx, []ed25519.PrivateKey{user}, env.createAndWrapInstruction(t, user, 1_000))
	require.NoError(t, err)

	state, err := env.ln.GetTokenAccount(env.ctx, holding)
	require.NoError(t, err)
	assert.Zero(t, state.Amount)
	assert.EqualValues(t, reserve, env.lamports(t, holding))
	assert.EqualValues(t, fundedLamports-reserve, env.lamports(t, owner))
}

func TestCreateAndWrap_Errors(t *testing.T) {
	env := setup(t)
	reserve := env.ln.Bank().Rent().MinimumBalance(token.AccountSize)

	t.Run("insufficient funds", func(t *testing.T) {
		poor := testutil.GenerateSolanaKeypair(t)
		require.NoError(t, env.ln.Fund(env.ctx, testutil.PublicKey(poor), reserve+1_000))

		_, err := env.ln.Submit(env.ctx, []ed25519.PrivateKey{poor}, env.createAndWrapInstruction(t, poor, 1_001))
		testutil.AssertInstructionError(t, err, 0, solana.InstructionErrorInsufficientFunds)
	})

	t.Run("holding of another wallet", func(t *testing.T) {
		user := env.users[2]
		ix := env.createAndWrapInstruction(t, user, 5_000_000)
		ix.Accounts[1].PublicKey = env.nativeHolding(t, testutil.PublicKey(env.users[3]))

		_, err := env.ln.Submit(env.ctx, []ed25519.PrivateKey{user}, ix)
		testutil.AssertInstructionError(t, err, 0, solana.InstructionErrorInvalidAccountData)
	})

	t.Run("wrong token program", func(t *testing.T) {
		user := env.users[2]
		ix := env.createAndWrapInstruction(t, user, 5_000_000)
		ix.Accounts[4].PublicKey = env.ids.Swap

		_, err := env.ln.Submit(env.ctx, []ed25519.PrivateKey{user}, ix)
		testutil.AssertInstructionError(t, err, 0, solana.InstructionErrorIncorrectProgramID)
	})

	t.Run("already created", func(t *testing.T) {
		user := env.users[4]
		_, err := env.ln.Submit(env.ctx, []ed25519.PrivateKey{user}, env.createAndWrapInstruction(t, user, 5_000_000))
		require.NoError(t, err)

		_, err = env.ln.Submit(env.ctx, []ed25519.PrivateKey{user}, env.createAndWrapInstruction(t, user, 5_000_000))
		testutil.AssertInstructionError(t, err, 0, solana.InstructionErrorAccountAlreadyInitialized)
		assert.EqualValues(t, fundedLamports-5_000_000, env.lamports(t, testutil.PublicKey(user)))
	})
}

func TestWrap_Errors(t *testing.T) {
	env := setup(t)
	user := env.users[0]

	_, err := env.ln.Submit(env.ctx, []ed25519.PrivateKey{user}, env.wrapInstruction(t, user, 1_000))
	testutil.AssertInstructionError(t, err, 0, solana.InstructionErrorUninitializedAccount)

	_, err = env.ln.Submit(env.ctx, []ed25519.PrivateKey{user}, env.wrapInstruction(t, user, fundedLamports+1))
	testutil.AssertInstructionError(t, err, 0, solana.InstructionErrorInsufficientFunds)

	_, err = env.ln.Submit(env.ctx, []ed25519.PrivateKey{user}, env.unwrapInstruction(t, user))
	testutil.AssertInstructionError(t, err, 0, solana.InstructionErrorIllegalOwner)

	assert.EqualValues(t, fundedLamports, env.lamports(t, testutil.PublicKey(user)))
}
