package localnet_test

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/swap-whitelist/pkg/ledger/memory"
	"github.com/code-payments/swap-whitelist/pkg/localnet"
	"github.com/code-payments/swap-whitelist/pkg/solana/system"
	"github.com/code-payments/swap-whitelist/pkg/solana/token"
	"github.com/code-payments/swap-whitelist/pkg/testutil"
	"github.com/code-payments/swap-whitelist/pkg/whitelist"
)

func TestNew_CustomNativeMint(t *testing.T) {
	ctx := context.Background()
	mint := testutil.GenerateSolanaKeys(t, 1)[0]

	v := viper.New()
	v.Set(whitelist.NativeMintConfigKey, base58.Encode(mint))

	ln, err := localnet.New(ctx, memory.New(), localnet.WithConfigProvider(whitelist.WithViperConfigs(v)))
	require.NoError(t, err)
	require.EqualValues(t, mint, ln.ProgramIDs().NativeMint)

	payer, wallet := testutil.GenerateSolanaKeypair(t), testutil.GenerateSolanaKeys(t, 1)[0]
	require.NoError(t, ln.Fund(ctx, testutil.PublicKey(payer), 1_000_000_000))

	create, holding, err := token.CreateAssociatedTokenAccount(testutil.PublicKey(payer), wallet, mint)
	require.NoError(t, err)

	reserve := ln.Bank().Rent().MinimumBalance(token.AccountSize)
	_, err = ln.Submit(
		ctx,
		[]ed25519.PrivateKey{payer},
		system.Transfer(testutil.PublicKey(payer), holding, reserve+250),
		create,
	)
	require.NoError(t, err)

	state, err := ln.GetTokenAccount(ctx, holding)
	require.NoError(t, err)
	assert.True(t, state.IsNativeHolding())
	assert.EqualValues(t, 250, state.Amount)
	assert.EqualValues(t, mint, state.Mint)
}

func TestNew_RejectsCustomSystemProgram(t *testing.T) {
	v := viper.New()
	v.Set(whitelist.SystemProgramIDConfigKey, base58.Encode(testutil.GenerateSolanaKeys(t, 1)[0]))

	_, err := localnet.New(context.Background(), memory.New(), localnet.WithConfigProvider(whitelist.WithViperConfigs(v)))
	assert.True(t, errors.Is(err, localnet.ErrUnsupportedSystemProgram))
}
