package tokenswap

import (
	"crypto/ed25519"

	"github.com/code-payments/swap-whitelist/pkg/solana"
)

type GetSwapAuthorityAddressArgs struct {
	Program  ed25519.PublicKey
	Swap     ed25519.PublicKey
	BumpSeed uint8
}

// GetSwapAuthorityAddress derives the authority that owns the pool reserves,
// using the bump seed recorded in the pool state.
func GetSwapAuthorityAddress(args *GetSwapAuthorityAddressArgs) (ed25519.PublicKey, error) {
	program := args.Program
	if len(program) == 0 {
		program = PROGRAM_ID
	}

	return solana.CreateProgramAddress(
		program,
		args.Swap,
		[]byte{args.BumpSeed},
	)
}

// FindSwapAuthorityAddress is used when creating a pool to pick a bump seed.
func FindSwapAuthorityAddress(program, swap ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(program, swap)
}
