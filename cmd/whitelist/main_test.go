package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/swap-whitelist/pkg/ledger"
	"github.com/code-payments/swap-whitelist/pkg/solana/token"
	"github.com/code-payments/swap-whitelist/pkg/testutil"
	"github.com/code-payments/swap-whitelist/pkg/whitelist"
)

func execute(t *testing.T, args ...string) string {
	reset := testutil.DisableLogging()
	defer reset()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestEncodeDecode(t *testing.T) {
	encoded := strings.TrimSpace(execute(t, "encode", "swap", "--input", "5000", "--min-output", "5"))

	data, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, (&whitelist.SwapInstructionArgs{InputAmount: 5000, MinOutputAmount: 5}).Encode(), data)

	out := execute(t, "decode", "instruction", encoded)
	assert.Equal(t, "Swap: Swap{input_amount=5000,min_output_amount=5}\n", out)

	out = execute(t, "decode", "instruction", "0x03")
	assert.Equal(t, "Unwrap: Unwrap{}\n", out)

	encoded = strings.TrimSpace(execute(t, "encode", "wrap", "--amount", "42"))
	out = execute(t, "decode", "instruction", encoded)
	assert.Equal(t, "Wrap: Wrap{amount=42}\n", out)
}

func TestParseBytes(t *testing.T) {
	for _, input := range []string{"0x0102", "0102", "AQI="} {
		decoded, err := parseBytes(input)
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2}, decoded)
	}

	_, err := parseBytes("not bytes!")
	assert.Error(t, err)
}

func TestAddressConfig(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 2)

	expected, bump, err := whitelist.GetWhitelistConfigAddress(&whitelist.GetWhitelistConfigAddressArgs{
		Program:            whitelist.PROGRAM_ID,
		Creator:            keys[0],
		TargetTokenAccount: keys[1],
	})
	require.NoError(t, err)

	out := execute(t, "address", "config", "--creator", base58.Encode(keys[0]), "--target-token", base58.Encode(keys[1]))
	assert.Equal(t, fmt.Sprintf("address: %s\nbump: %d\n", base58.Encode(expected), bump), out)

	_, err = parseKey(creatorFlagName, base58.Encode(keys[0][:16]))
	assert.Error(t, err)
}

func TestLocalnetScenario(t *testing.T) {
	const amount = 5_000_000

	out := execute(t, "localnet", "--price", "1000000", "--amount", fmt.Sprint(amount))

	// The holding's rent reserve is not wrapped, and the pool prices the
	// target token at 1000 lamports.
	wrapped := amount - ledger.DefaultRent().MinimumBalance(token.AccountSize)
	received := fmt.Sprintf("received %d,", wrapped/1_000)

	assert.Contains(t, out, "pool: ")
	assert.Contains(t, out, "whitelist: ")
	assert.Equal(t, whitelist.MaxAuthorizedAddresses, strings.Count(out, received), out)
	assert.NotContains(t, out, "rejected")
}

func TestNewRelicConfig(t *testing.T) {
	ctx := context.Background()

	license, appName := newRelicConfig(ctx)
	assert.Empty(t, license)
	assert.Equal(t, defaultNewRelicAppName, appName)

	v.Set(newRelicAppConfigKey, "whitelist-staging")
	defer v.Set(newRelicAppConfigKey, "")

	_, appName = newRelicConfig(ctx)
	assert.Equal(t, "whitelist-staging", appName)
}
