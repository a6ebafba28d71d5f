package tokenswap

import (
	"crypto/ed25519"

	"github.com/code-payments/swap-whitelist/pkg/solana"
	"github.com/code-payments/swap-whitelist/pkg/solana/binary"
)

const (
	SwapInstructionArgsSize = (8 + // amount_in
		8) // minimum_amount_out
)

type SwapInstructionArgs struct {
	AmountIn         uint64
	MinimumAmountOut uint64
}

type SwapInstructionAccounts struct {
	Swap                  ed25519.PublicKey
	Authority             ed25519.PublicKey
	UserTransferAuthority ed25519.PublicKey
	Source                ed25519.PublicKey
	SwapSource            ed25519.PublicKey
	SwapDestination       ed25519.PublicKey
	Destination           ed25519.PublicKey
	PoolMint              ed25519.PublicKey
	PoolFee               ed25519.PublicKey
	TokenProgram          ed25519.PublicKey
	HostFee               ed25519.PublicKey // optional
}

// Reference: https://github.com/solana-labs/solana-program-library/blob/master/token-swap/program/src/instruction.rs
func NewSwapInstruction(
	program ed25519.PublicKey,
	accounts *SwapInstructionAccounts,
	args *SwapInstructionArgs,
) solana.Instruction {
	// Accounts expected by this instruction:
	//
	//   0. `[]` Token-swap
	//   1. `[]` swap authority
	//   2. `[signer]` user transfer authority
	//   3. `[writable]` token_(A|B) SOURCE Account, amount is transferable by user transfer authority,
	//   4. `[writable]` token_(A|B) Base Account to swap INTO.  Must be the SOURCE token.
	//   5. `[writable]` token_(A|B) Base Account to swap FROM.  Must be the DESTINATION token.
	//   6. `[writable]` token_(A|B) DESTINATION Account assigned to USER as the owner.
	//   7. `[writable]` Pool token mint, to generate trading fees
	//   8. `[writable]` Fee account, to receive trading fees
	//   9. `[]` Token program id
	//   10. `[optional, writable]` Host fee account to receive additional trading fees
	var offset int

	data := make([]byte, 1+SwapInstructionArgsSize)
	putInstructionType(data, InstructionTypeSwap, &offset)
	binary.PutUint64(data[offset:], args.AmountIn, &offset)
	binary.PutUint64(data[offset:], args.MinimumAmountOut, &offset)

	metas := []solana.AccountMeta{
		solana.NewReadonlyAccountMeta(accounts.Swap, false),
		solana.NewReadonlyAccountMeta(accounts.Authority, false),
		solana.NewReadonlyAccountMeta(accounts.UserTransferAuthority, true),
		solana.NewAccountMeta(accounts.Source, false),
		solana.NewAccountMeta(accounts.SwapSource, false),
		solana.NewAccountMeta(accounts.SwapDestination, false),
		solana.NewAccountMeta(accounts.Destination, false),
		solana.NewAccountMeta(accounts.PoolMint, false),
		solana.NewAccountMeta(accounts.PoolFee, false),
		solana.NewReadonlyAccountMeta(accounts.TokenProgram, false),
	}
	if len(accounts.HostFee) > 0 {
		metas = append(metas, solana.NewAccountMeta(accounts.HostFee, false))
	}

	if len(program) == 0 {
		program = PROGRAM_ID
	}
	return solana.NewInstruction(program, data, metas...)
}

// DecodeSwapInstructionArgs parses the data of a swap instruction.
func DecodeSwapInstructionArgs(data []byte) (*SwapInstructionArgs, error) {
	if len(data) != 1+SwapInstructionArgsSize || InstructionType(data[0]) != InstructionTypeSwap {
		return nil, ErrInvalidInstructionData
	}

	offset := 1
	var args SwapInstructionArgs
	binary.GetUint64(data[offset:], &args.AmountIn, &offset)
	binary.GetUint64(data[offset:], &args.MinimumAmountOut, &offset)
	return &args, nil
}
