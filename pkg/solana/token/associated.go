package token

import (
	"crypto/ed25519"

	"github.com/code-payments/swap-whitelist/pkg/solana"
	"github.com/code-payments/swap-whitelist/pkg/solana/system"
)

// AssociatedTokenAccountProgramKey  is the address of the associated token account program that should be used.
//
// Current key: ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL
var AssociatedTokenAccountProgramKey = ed25519.PublicKey{140, 151, 37, 143, 78, 36, 137, 241, 187, 61, 16, 41, 20, 142, 13, 131, 11, 90, 19, 153, 218, 255, 16, 132, 4, 142, 123, 216, 219, 233, 248, 89}

// GetAssociatedAccount returns the associated account address for an SPL token.
//
// Reference: https://spl.solana.com/associated-token-account#finding-the-associated-token-account-address
func GetAssociatedAccount(wallet, mint ed25519.PublicKey) (ed25519.PublicKey, error) {
	return GetAssociatedAccountWithPrograms(wallet, mint, AssociatedTokenAccountProgramKey, ProgramKey)
}

// GetAssociatedAccountWithPrograms derives the associated account address
// under explicit associated token and token program ids.
func GetAssociatedAccountWithPrograms(wallet, mint, associatedProgram, tokenProgram ed25519.PublicKey) (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(
		associatedProgram,
		wallet,
		tokenProgram,
		mint,
	)
}

type CreateAssociatedTokenAccountAccounts struct {
	Subsidizer ed25519.PublicKey
	Address    ed25519.PublicKey
	Wallet     ed25519.PublicKey
	Mint       ed25519.PublicKey

	SystemProgram     ed25519.PublicKey
	TokenProgram      ed25519.PublicKey
	AssociatedProgram ed25519.PublicKey
	RentSysVar        ed25519.PublicKey
}

// Reference: https://github.com/solana-labs/solana-program-library/blob/0639953c7dd0f5228c3ceda3ba68fece3b46ff1d/associated-token-account/program/src/lib.rs#L54
func NewCreateAssociatedTokenAccountInstruction(accounts *CreateAssociatedTokenAccountAccounts) solana.Instruction {
	// Accounts expected by this instruction:
	//
	//   0. `[writeable,signer]` Funding account (must be a system account)
	//   1. `[writeable]` Associated token account address to be created
	//   2. `[]` Wallet address for the new associated token account
	//   3. `[]` The token mint for the new associated token account
	//   4. `[]` System program
	//   5. `[]` SPL Token program
	//   6. `[]` Rent sysvar
	return solana.NewInstruction(
		accounts.AssociatedProgram,
		[]byte{},
		solana.NewAccountMeta(accounts.Subsidizer, true),
		solana.NewAccountMeta(accounts.Address, false),
		solana.NewReadonlyAccountMeta(accounts.Wallet, false),
		solana.NewReadonlyAccountMeta(accounts.Mint, false),
		solana.NewReadonlyAccountMeta(accounts.SystemProgram, false),
		solana.NewReadonlyAccountMeta(accounts.TokenProgram, false),
		solana.NewReadonlyAccountMeta(accounts.RentSysVar, false),
	)
}

// CreateAssociatedTokenAccount builds the create instruction against the
// default program ids.
func CreateAssociatedTokenAccount(subsidizer, wallet, mint ed25519.PublicKey) (solana.Instruction, ed25519.PublicKey, error) {
	addr, err := GetAssociatedAccount(wallet, mint)
	if err != nil {
		return solana.Instruction{}, nil, err
	}

	return NewCreateAssociatedTokenAccountInstruction(&CreateAssociatedTokenAccountAccounts{
		Subsidizer:        subsidizer,
		Address:           addr,
		Wallet:            wallet,
		Mint:              mint,
		SystemProgram:     system.ProgramKey[:],
		TokenProgram:      ProgramKey,
		AssociatedProgram: AssociatedTokenAccountProgramKey,
		RentSysVar:        system.RentSysVar,
	}), addr, nil
}
