package whitelist

import (
	"crypto/ed25519"

	"github.com/code-payments/swap-whitelist/pkg/solana"
	"github.com/code-payments/swap-whitelist/pkg/solana/token"
	"github.com/code-payments/swap-whitelist/pkg/solana/tokenswap"
)

type SwapInstructionAccounts struct {
	User                  ed25519.PublicKey
	UserState             ed25519.PublicKey
	Config                ed25519.PublicKey
	SwapPool              ed25519.PublicKey
	SwapAuthority         ed25519.PublicKey
	UserTransferAuthority ed25519.PublicKey
	UserNativeHolding     ed25519.PublicKey
	UserTargetHolding     ed25519.PublicKey
	PoolNativeReserve     ed25519.PublicKey
	PoolTargetReserve     ed25519.PublicKey
	PoolMint              ed25519.PublicKey
	PoolFeeAccount        ed25519.PublicKey
	HostFeeAccount        ed25519.PublicKey
	TokenProgram          ed25519.PublicKey
	SwapProgram           ed25519.PublicKey
}

func NewSwapInstruction(
	program ed25519.PublicKey,
	accounts *SwapInstructionAccounts,
	args *SwapInstructionArgs,
) solana.Instruction {
	// Accounts expected by this instruction:
	//
	//   0. `[signer]` Whitelisted user
	//   1. `[writable]` User redemption state, allocated zeroed and owned by this program
	//   2. `[]` Whitelist config
	//   3. `[]` Token swap pool
	//   4. `[]` Swap authority
	//   5. `[signer]` User transfer authority
	//   6. `[writable]` User native holding, the swap source
	//   7. `[writable]` User target holding, the swap destination
	//   8. `[writable]` Pool native reserve
	//   9. `[writable]` Pool target reserve
	//  10. `[writable]` Pool mint
	//  11. `[writable]` Pool fee account
	//  12. `[writable]` Host fee account
	//  13. `[]` Token program
	//  14. `[]` Token swap program
	return solana.NewInstruction(
		programOrDefault(program),
		args.Encode(),
		solana.NewReadonlyAccountMeta(accounts.User, true),
		solana.NewAccountMeta(accounts.UserState, false),
		solana.NewReadonlyAccountMeta(accounts.Config, false),
		solana.NewReadonlyAccountMeta(accounts.SwapPool, false),
		solana.NewReadonlyAccountMeta(accounts.SwapAuthority, false),
		solana.NewReadonlyAccountMeta(accounts.UserTransferAuthority, true),
		solana.NewAccountMeta(accounts.UserNativeHolding, false),
		solana.NewAccountMeta(accounts.UserTargetHolding, false),
		solana.NewAccountMeta(accounts.PoolNativeReserve, false),
		solana.NewAccountMeta(accounts.PoolTargetReserve, false),
		solana.NewAccountMeta(accounts.PoolMint, false),
		solana.NewAccountMeta(accounts.PoolFeeAccount, false),
		solana.NewAccountMeta(accounts.HostFeeAccount, false),
		solana.NewReadonlyAccountMeta(keyOrDefault(accounts.TokenProgram, token.ProgramKey), false),
		solana.NewReadonlyAccountMeta(keyOrDefault(accounts.SwapProgram, tokenswap.PROGRAM_ID), false),
	)
}
