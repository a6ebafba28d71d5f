// Package whitelist implements the swap whitelist program: a gateway that lets
// a fixed set of addresses each perform a single native-to-token swap against
// a token swap pool, plus helpers that wrap and unwrap native currency.
package whitelist

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"

	"github.com/code-payments/swap-whitelist/pkg/solana/system"
	"github.com/code-payments/swap-whitelist/pkg/solana/token"
	"github.com/code-payments/swap-whitelist/pkg/solana/tokenswap"
)

var (
	PROGRAM_ADDRESS = mustBase58Decode("FSeLPB3DLwMfnQr6oG4YX9cdmGaZ2M99wCDt7TgGbzoF")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)

// ProgramIDs are the well known addresses the program validates the accounts
// it is handed against.
type ProgramIDs struct {
	Whitelist       ed25519.PublicKey
	Token           ed25519.PublicKey
	Swap            ed25519.PublicKey
	System          ed25519.PublicKey
	AssociatedToken ed25519.PublicKey
	NativeMint      ed25519.PublicKey
}

// DefaultProgramIDs returns the mainnet addresses.
func DefaultProgramIDs() ProgramIDs {
	return ProgramIDs{
		Whitelist:       PROGRAM_ID,
		Token:           token.ProgramKey,
		Swap:            tokenswap.PROGRAM_ID,
		System:          system.SystemAccount,
		AssociatedToken: token.AssociatedTokenAccountProgramKey,
		NativeMint:      token.NativeMint,
	}
}

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
