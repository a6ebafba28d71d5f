package whitelist

import (
	"crypto/ed25519"

	"github.com/code-payments/swap-whitelist/pkg/solana"
	"github.com/code-payments/swap-whitelist/pkg/solana/system"
	"github.com/code-payments/swap-whitelist/pkg/solana/token"
)

type CreateAndWrapInstructionAccounts struct {
	Funder                 ed25519.PublicKey
	Holding                ed25519.PublicKey
	NativeMint             ed25519.PublicKey
	SystemProgram          ed25519.PublicKey
	TokenProgram           ed25519.PublicKey
	AssociatedTokenProgram ed25519.PublicKey
	RentSysVar             ed25519.PublicKey
}

func NewCreateAndWrapInstruction(
	program ed25519.PublicKey,
	accounts *CreateAndWrapInstructionAccounts,
	args *CreateAndWrapInstructionArgs,
) solana.Instruction {
	// Accounts expected by this instruction:
	//
	//   0. `[writable, signer]` Funder and owner of the new holding
	//   1. `[writable]` Funder's associated native holding, not yet created
	//   2. `[]` Native mint
	//   3. `[]` System program
	//   4. `[]` Token program
	//   5. `[]` Associated token program
	//   6. `[]` Rent sysvar
	return solana.NewInstruction(
		programOrDefault(program),
		args.Encode(),
		solana.NewAccountMeta(accounts.Funder, true),
		solana.NewAccountMeta(accounts.Holding, false),
		solana.NewReadonlyAccountMeta(keyOrDefault(accounts.NativeMint, token.NativeMint), false),
		solana.NewReadonlyAccountMeta(keyOrDefault(accounts.SystemProgram, system.SystemAccount), false),
		solana.NewReadonlyAccountMeta(keyOrDefault(accounts.TokenProgram, token.ProgramKey), false),
		solana.NewReadonlyAccountMeta(keyOrDefault(accounts.AssociatedTokenProgram, token.AssociatedTokenAccountProgramKey), false),
		solana.NewReadonlyAccountMeta(keyOrDefault(accounts.RentSysVar, system.RentSysVar), false),
	)
}

type WrapInstructionAccounts struct {
	Funder        ed25519.PublicKey
	Holding       ed25519.PublicKey
	SystemProgram ed25519.PublicKey
	TokenProgram  ed25519.PublicKey
}

func NewWrapInstruction(
	program ed25519.PublicKey,
	accounts *WrapInstructionAccounts,
	args *WrapInstructionArgs,
) solana.Instruction {
	// Accounts expected by this instruction:
	//
	//   0. `[writable, signer]` Funder and owner of the holding
	//   1. `[writable]` Funder's associated native holding
	//   2. `[]` System program
	//   3. `[]` Token program
	return solana.NewInstruction(
		programOrDefault(program),
		args.Encode(),
		solana.NewAccountMeta(accounts.Funder, true),
		solana.NewAccountMeta(accounts.Holding, false),
		solana.NewReadonlyAccountMeta(keyOrDefault(accounts.SystemProgram, system.SystemAccount), false),
		solana.NewReadonlyAccountMeta(keyOrDefault(accounts.TokenProgram, token.ProgramKey), false),
	)
}

type UnwrapInstructionAccounts struct {
	Owner        ed25519.PublicKey
	Holding      ed25519.PublicKey
	TokenProgram ed25519.PublicKey
}

func NewUnwrapInstruction(
	program ed25519.PublicKey,
	accounts *UnwrapInstructionAccounts,
) solana.Instruction {
	// Accounts expected by this instruction:
	//
	//   0. `[writable, signer]` Holding owner, receives the closed balance
	//   1. `[writable]` Owner's associated native holding
	//   2. `[]` Token program
	return solana.NewInstruction(
		programOrDefault(program),
		(&UnwrapInstructionArgs{}).Encode(),
		solana.NewAccountMeta(accounts.Owner, true),
		solana.NewAccountMeta(accounts.Holding, false),
		solana.NewReadonlyAccountMeta(keyOrDefault(accounts.TokenProgram, token.ProgramKey), false),
	)
}
