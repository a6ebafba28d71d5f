package whitelist

import (
	"crypto/ed25519"

	"github.com/code-payments/swap-whitelist/pkg/solana"
)

var (
	whitelistConfigPrefix = []byte("whitelistpda")
)

type GetWhitelistConfigAddressArgs struct {
	Program            ed25519.PublicKey
	Creator            ed25519.PublicKey
	TargetTokenAccount ed25519.PublicKey
}

// GetWhitelistConfigAddress finds the config address and the bump to pass to
// InitWhitelist.
func GetWhitelistConfigAddress(args *GetWhitelistConfigAddressArgs) (ed25519.PublicKey, uint8, error) {
	program := args.Program
	if len(program) == 0 {
		program = PROGRAM_ID
	}

	return solana.FindProgramAddressAndBump(
		program,
		whitelistConfigPrefix,
		args.Creator,
		args.TargetTokenAccount,
	)
}

// DeriveWhitelistConfigAddress computes the config address for an exact bump.
func DeriveWhitelistConfigAddress(program, creator, targetTokenAccount ed25519.PublicKey, bump uint8) (ed25519.PublicKey, error) {
	return solana.CreateProgramAddress(
		program,
		configSeeds(creator, targetTokenAccount, bump)...,
	)
}

func configSeeds(creator, targetTokenAccount ed25519.PublicKey, bump uint8) [][]byte {
	return [][]byte{
		whitelistConfigPrefix,
		creator,
		targetTokenAccount,
		{bump},
	}
}
