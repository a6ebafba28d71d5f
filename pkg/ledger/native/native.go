// Package native emulates the builtin programs the whitelist program calls
// into, to the extent needed to run it against a local ledger.Bank.
package native

import (
	"bytes"
	"crypto/ed25519"

	"github.com/code-payments/swap-whitelist/pkg/ledger"
	"github.com/code-payments/swap-whitelist/pkg/solana"
	"github.com/code-payments/swap-whitelist/pkg/solana/system"
	"github.com/code-payments/swap-whitelist/pkg/solana/token"
	"github.com/code-payments/swap-whitelist/pkg/solana/tokenswap"
)

// Register installs every emulated program at its well known address.
func Register(bank *ledger.Bank) {
	bank.RegisterProgram(system.ProgramKey[:], SystemProgram)
	bank.RegisterProgram(token.ProgramKey, TokenProgram)
	bank.RegisterProgram(token.AssociatedTokenAccountProgramKey, AssociatedTokenProgram)
	bank.RegisterProgram(tokenswap.PROGRAM_ID, TokenSwapProgram)
}

func requireAccounts(ctx *ledger.InvokeContext, n int) ([]*ledger.AccountInfo, error) {
	accounts := ctx.Accounts()
	if len(accounts) < n {
		return nil, solana.InstructionErrorNotEnoughAccountKeys
	}
	return accounts, nil
}

func sameKey(a, b ed25519.PublicKey) bool {
	return bytes.Equal(a, b)
}
