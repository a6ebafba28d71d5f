package whitelist

import (
	"crypto/ed25519"

	"github.com/code-payments/swap-whitelist/pkg/solana"
	"github.com/code-payments/swap-whitelist/pkg/solana/system"
)

type InitWhitelistInstructionAccounts struct {
	Creator            ed25519.PublicKey
	Config             ed25519.PublicKey
	SwapPool           ed25519.PublicKey
	TargetMint         ed25519.PublicKey
	TargetTokenAccount ed25519.PublicKey
	NativeTokenAccount ed25519.PublicKey
	SystemProgram      ed25519.PublicKey
}

func NewInitWhitelistInstruction(
	program ed25519.PublicKey,
	accounts *InitWhitelistInstructionAccounts,
	args *InitWhitelistInstructionArgs,
) solana.Instruction {
	// Accounts expected by this instruction:
	//
	//   0. `[writable, signer]` Whitelist creator, funds the config account
	//   1. `[writable]` Whitelist config account
	//   2. `[]` Token swap pool
	//   3. `[]` Mint of the pool's target token
	//   4. `[]` Pool reserve holding the target token
	//   5. `[]` Pool reserve holding wrapped native currency
	//   6. `[]` System program
	return solana.NewInstruction(
		programOrDefault(program),
		args.Encode(),
		solana.NewAccountMeta(accounts.Creator, true),
		solana.NewAccountMeta(accounts.Config, false),
		solana.NewReadonlyAccountMeta(accounts.SwapPool, false),
		solana.NewReadonlyAccountMeta(accounts.TargetMint, false),
		solana.NewReadonlyAccountMeta(accounts.TargetTokenAccount, false),
		solana.NewReadonlyAccountMeta(accounts.NativeTokenAccount, false),
		solana.NewReadonlyAccountMeta(keyOrDefault(accounts.SystemProgram, system.SystemAccount), false),
	)
}

func programOrDefault(program ed25519.PublicKey) ed25519.PublicKey {
	return keyOrDefault(program, PROGRAM_ID)
}

func keyOrDefault(key, defaultKey ed25519.PublicKey) ed25519.PublicKey {
	if len(key) == 0 {
		return defaultKey
	}
	return key
}
