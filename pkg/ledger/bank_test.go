package ledger_test

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/swap-whitelist/pkg/ledger"
	"github.com/code-payments/swap-whitelist/pkg/ledger/memory"
	"github.com/code-payments/swap-whitelist/pkg/ledger/native"
	"github.com/code-payments/swap-whitelist/pkg/solana"
	"github.com/code-payments/swap-whitelist/pkg/solana/system"
	"github.com/code-payments/swap-whitelist/pkg/testutil"
)

type bankEnv struct {
	ctx   context.Context
	bank  *ledger.Bank
	payer ed25519.PrivateKey
}

func setupBank(t *testing.T, opts ...ledger.Option) *bankEnv {
	env := &bankEnv{
		ctx:   context.Background(),
		bank:  ledger.NewBank(memory.New(), opts...),
		payer: testutil.GenerateSolanaKeypair(t),
	}
	native.Register(env.bank)

	env.fund(t, testutil.PublicKey(env.payer), 1_000_000)
	return env
}

func (e *bankEnv) fund(t *testing.T, address ed25519.PublicKey, lamports uint64) {
	require.NoError(t, ledger.SetAccounts(e.ctx, e.bank.Store(), map[string]*ledger.Account{
		string(address): ledger.NewSystemAccount(lamports),
	}))
}

func (e *bankEnv) submit(t *testing.T, signers []ed25519.PrivateKey, instructions ...solana.Instruction) (*ledger.Result, error) {
	tx := solana.NewTransaction(testutil.PublicKey(signers[0]), instructions...)
	require.NoError(t, tx.Sign(signers...))
	return e.bank.Process(e.ctx, tx)
}

func (e *bankEnv) lamports(t *testing.T, address ed25519.PublicKey) uint64 {
	account, err := e.bank.GetAccount(e.ctx, address)
	if errors.Is(err, ledger.ErrAccountNotFound) {
		return 0
	}
	require.NoError(t, err)
	return account.Lamports
}

func TestBank_Transfer(t *testing.T) {
	env := setupBank(t)
	payer := testutil.PublicKey(env.payer)
	dest := testutil.GenerateSolanaKeys(t, 1)[0]

	result, err := env.submit(t, []ed25519.PrivateKey{env.payer}, system.Transfer(payer, dest, 400))
	require.NoError(t, err)
	assert.NotEmpty(t, result.RequestID)
	assert.EqualValues(t, 1, result.Slot)
	assert.NotEmpty(t, result.Logs)

	assert.EqualValues(t, 999_600, env.lamports(t, payer))
	assert.EqualValues(t, 400, env.lamports(t, dest))

	result, err = env.submit(t, []ed25519.PrivateKey{env.payer}, system.Transfer(payer, dest, 600))
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.Slot)
}

func TestBank_SignatureFailure(t *testing.T) {
	env := setupBank(t)
	payer := testutil.PublicKey(env.payer)
	dest := testutil.GenerateSolanaKeys(t, 1)[0]

	tx := solana.NewTransaction(payer, system.Transfer(payer, dest, 1))
	_, err := env.bank.Process(env.ctx, tx)
	require.Error(t, err)

	var txErr *solana.TransactionError
	require.True(t, errors.As(err, &txErr))
	assert.Equal(t, solana.TransactionErrorSignatureFailure, txErr.ErrorKey())

	tx = solana.NewTransaction(payer, system.Transfer(payer, dest, 1))
	require.NoError(t, tx.Sign(env.payer))
	tx.Signatures[0][0] ^= 0xff
	_, err = env.bank.Process(env.ctx, tx)
	assert.True(t, errors.Is(err, solana.ErrInvalidSignature))

	assert.EqualValues(t, 1_000_000, env.lamports(t, payer))
}

func TestBank_UnknownProgram(t *testing.T) {
	env := setupBank(t)

	ix := solana.NewInstruction(testutil.GenerateSolanaKeys(t, 1)[0], []byte{1})
	_, err := env.submit(t, []ed25519.PrivateKey{env.payer}, ix)

	var txErr *solana.TransactionError
	require.True(t, errors.As(err, &txErr))
	assert.Equal(t, solana.TransactionErrorProgramAccountNotFound, txErr.ErrorKey())
}

func TestBank_AllOrNothing(t *testing.T) {
	env := setupBank(t)
	payer := testutil.PublicKey(env.payer)
	dest := testutil.GenerateSolanaKeys(t, 1)[0]

	result, err := env.submit(
		t,
		[]ed25519.PrivateKey{env.payer},
		system.Transfer(payer, dest, 100),
		system.Transfer(payer, dest, 2_000_000),
	)
	testutil.AssertInstructionError(t, err, 1, native.SystemErrorResultWithNegativeLamports)
	testutil.AssertCustomError(t, err, uint32(native.SystemErrorResultWithNegativeLamports))
	assert.NotEmpty(t, result.Logs)

	assert.EqualValues(t, 1_000_000, env.lamports(t, payer))
	assert.Zero(t, env.lamports(t, dest))
}

func TestBank_DeletesEmptyAccounts(t *testing.T) {
	env := setupBank(t)
	payer := testutil.PublicKey(env.payer)

	drained := testutil.GenerateSolanaKeypair(t)
	env.fund(t, testutil.PublicKey(drained), 500)

	_, err := env.submit(
		t,
		[]ed25519.PrivateKey{env.payer, drained},
		system.Transfer(testutil.PublicKey(drained), payer, 500),
	)
	require.NoError(t, err)

	_, err = env.bank.GetAccount(env.ctx, testutil.PublicKey(drained))
	assert.True(t, errors.Is(err, ledger.ErrAccountNotFound))
	assert.EqualValues(t, 1_000_500, env.lamports(t, payer))
}

func TestBank_RuntimeRules(t *testing.T) {
	programID := testutil.GenerateSolanaKeys(t, 1)[0]

	for _, tc := range []struct {
		name     string
		writable bool
		mutate   ledger.ProgramFunc
		expected error
	}{
		{
			name:     "external data modified",
			writable: true,
			mutate: func(ctx *ledger.InvokeContext, _ []byte) error {
				ctx.Accounts()[0].Data = []byte{1}
				return nil
			},
			expected: solana.InstructionErrorExternalAccountDataModified,
		},
		{
			name:     "external lamport spend",
			writable: true,
			mutate: func(ctx *ledger.InvokeContext, _ []byte) error {
				ctx.Accounts()[0].Lamports -= 1
				ctx.Accounts()[1].Lamports += 1
				return nil
			},
			expected: solana.InstructionErrorExternalAccountLamportSpend,
		},
		{
			name:     "lamports minted",
			writable: true,
			mutate: func(ctx *ledger.InvokeContext, _ []byte) error {
				ctx.Accounts()[1].Lamports += 1
				return nil
			},
			expected: solana.InstructionErrorUnbalancedInstruction,
		},
		{
			name:     "owner reassigned",
			writable: true,
			mutate: func(ctx *ledger.InvokeContext, _ []byte) error {
				ctx.Accounts()[0].Owner = ctx.ProgramID()
				return nil
			},
			expected: solana.InstructionErrorModifiedProgramID,
		},
		{
			name:     "readonly data modified",
			writable: false,
			mutate: func(ctx *ledger.InvokeContext, _ []byte) error {
				ctx.Accounts()[1].Data = []byte{1}
				return nil
			},
			expected: solana.InstructionErrorReadonlyDataModified,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			env := setupBank(t)
			env.bank.RegisterProgram(programID, tc.mutate)

			owned := testutil.GenerateSolanaKeys(t, 1)[0]
			require.NoError(t, ledger.SetAccounts(env.ctx, env.bank.Store(), map[string]*ledger.Account{
				string(owned): {Lamports: 10, Owner: programID},
			}))

			meta := solana.NewAccountMeta(owned, false)
			if !tc.writable {
				meta = solana.NewReadonlyAccountMeta(owned, false)
			}
			ix := solana.NewInstruction(
				programID,
				nil,
				solana.NewAccountMeta(testutil.PublicKey(env.payer), true),
				meta,
			)

			_, err := env.submit(t, []ed25519.PrivateKey{env.payer}, ix)
			testutil.AssertInstructionError(t, err, 0, tc.expected)
		})
	}
}

func TestBank_OwnedAccountsMayChange(t *testing.T) {
	env := setupBank(t)
	programID := testutil.GenerateSolanaKeys(t, 1)[0]
	owned := testutil.GenerateSolanaKeys(t, 1)[0]

	require.NoError(t, ledger.SetAccounts(env.ctx, env.bank.Store(), map[string]*ledger.Account{
		string(owned): {Lamports: 10, Owner: programID},
	}))

	env.bank.RegisterProgram(programID, ledger.ProgramFunc(func(ctx *ledger.InvokeContext, data []byte) error {
		ctx.Log("writing %d bytes", len(data))
		info := ctx.Accounts()[0]
		info.Data = append([]byte{}, data...)
		info.Lamports -= 4
		ctx.Accounts()[1].Lamports += 4
		return nil
	}))

	payer := testutil.PublicKey(env.payer)
	result, err := env.submit(t, []ed25519.PrivateKey{env.payer}, solana.NewInstruction(
		programID,
		[]byte{1, 2, 3},
		solana.NewAccountMeta(owned, false),
		solana.NewAccountMeta(payer, true),
	))
	require.NoError(t, err)
	assert.Contains(t, result.Logs, "Program log: writing 3 bytes")

	account, err := env.bank.GetAccount(env.ctx, owned)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, account.Data)
	assert.EqualValues(t, 6, account.Lamports)
	assert.EqualValues(t, 1_000_004, env.lamports(t, payer))
}

func TestInvoke_Privileges(t *testing.T) {
	env := setupBank(t)
	programID := testutil.GenerateSolanaKeys(t, 1)[0]

	vault, bump, err := solana.FindProgramAddressAndBump(programID, []byte("vault"))
	require.NoError(t, err)
	env.fund(t, vault, 1_000)

	env.bank.RegisterProgram(programID, ledger.ProgramFunc(func(ctx *ledger.InvokeContext, data []byte) error {
		accounts := ctx.Accounts()
		from, to := accounts[0], accounts[1]

		ix := system.Transfer(from.Key, to.Key, 100)
		if data[0] == 1 {
			return ctx.Invoke(ix, [][]byte{[]byte("vault"), {bump}})
		}
		return ctx.Invoke(ix)
	}))

	payer := testutil.PublicKey(env.payer)
	ix := func(mode byte) solana.Instruction {
		return solana.NewInstruction(
			programID,
			[]byte{mode},
			solana.NewAccountMeta(vault, false),
			solana.NewAccountMeta(payer, true),
			solana.NewReadonlyAccountMeta(system.SystemAccount, false),
		)
	}

	_, err = env.submit(t, []ed25519.PrivateKey{env.payer}, ix(0))
	testutil.AssertInstructionError(t, err, 0, solana.InstructionErrorPrivilegeEscalation)

	_, err = env.submit(t, []ed25519.PrivateKey{env.payer}, ix(1))
	require.NoError(t, err)
	assert.EqualValues(t, 900, env.lamports(t, vault))
	assert.EqualValues(t, 1_000_100, env.lamports(t, payer))
}

func TestInvoke_ClockAndRent(t *testing.T) {
	env := setupBank(t,
		ledger.WithClock(ledger.FixedClock(1_234)),
		ledger.WithRent(ledger.Rent{LamportsPerByteYear: 1, ExemptionThreshold: 1}),
	)
	programID := testutil.GenerateSolanaKeys(t, 1)[0]

	var observed ledger.Clock
	var minimum uint64
	env.bank.RegisterProgram(programID, ledger.ProgramFunc(func(ctx *ledger.InvokeContext, data []byte) error {
		observed = ctx.Clock()
		minimum = ctx.Rent().MinimumBalance(10)
		return nil
	}))

	_, err := env.submit(t, []ed25519.PrivateKey{env.payer}, solana.NewInstruction(programID, nil))
	require.NoError(t, err)
	assert.EqualValues(t, 1_234, observed.UnixTimestamp)
	assert.EqualValues(t, 1, observed.Slot)
	assert.EqualValues(t, 138, minimum)
}

func TestDefaultRent(t *testing.T) {
	rent := ledger.DefaultRent()
	assert.EqualValues(t, 2_039_280, rent.MinimumBalance(165))
	assert.EqualValues(t, 3_410_400, rent.MinimumBalance(362))
	assert.True(t, rent.IsExempt(2_039_280, 165))
	assert.False(t, rent.IsExempt(2_039_279, 165))
}
