package native

import (
	"github.com/pkg/errors"

	"github.com/code-payments/swap-whitelist/pkg/ledger"
	"github.com/code-payments/swap-whitelist/pkg/solana"
	"github.com/code-payments/swap-whitelist/pkg/solana/token"
	"github.com/code-payments/swap-whitelist/pkg/solana/tokenswap"
)

// TokenSwapProgram emulates the Swap instruction of a constant price pool.
// Fees are not charged.
var TokenSwapProgram = ledger.ProgramFunc(executeTokenSwap)

func executeTokenSwap(ctx *ledger.InvokeContext, data []byte) error {
	args, err := tokenswap.DecodeSwapInstructionArgs(data)
	if err != nil {
		return errors.Wrap(tokenswap.InvalidInstruction, err.Error())
	}

	accounts, err := requireAccounts(ctx, 10)
	if err != nil {
		return err
	}
	swapInfo, authority, userAuthority := accounts[0], accounts[1], accounts[2]
	source, swapSource, swapDestination, destination := accounts[3], accounts[4], accounts[5], accounts[6]
	poolMint, poolFee, tokenProgram := accounts[7], accounts[8], accounts[9]

	if !swapInfo.IsOwnedBy(ctx.ProgramID()) {
		return errors.Wrapf(solana.InstructionErrorIncorrectProgramID, "swap %s", swapInfo)
	}

	var pool tokenswap.SwapAccount
	if err := pool.Unmarshal(swapInfo.Data); err != nil {
		return errors.Wrap(solana.InstructionErrorInvalidAccountData, err.Error())
	}
	if !pool.IsInitialized {
		return errors.Wrapf(solana.InstructionErrorUninitializedAccount, "swap %s", swapInfo)
	}

	expectedAuthority, err := tokenswap.GetSwapAuthorityAddress(&tokenswap.GetSwapAuthorityAddressArgs{
		Program:  ctx.ProgramID(),
		Swap:     swapInfo.Key,
		BumpSeed: pool.BumpSeed,
	})
	if err != nil || !sameKey(expectedAuthority, authority.Key) {
		return errors.Wrapf(tokenswap.InvalidProgramAddress, "authority %s", authority)
	}

	var aToB bool
	switch {
	case sameKey(swapSource.Key, pool.TokenA) && sameKey(swapDestination.Key, pool.TokenB):
		aToB = true
	case sameKey(swapSource.Key, pool.TokenB) && sameKey(swapDestination.Key, pool.TokenA):
	default:
		return errors.Wrapf(tokenswap.IncorrectSwapAccount, "reserves %s and %s", swapSource, swapDestination)
	}
	if sameKey(source.Key, swapSource.Key) || sameKey(destination.Key, swapDestination.Key) {
		return errors.Wrap(tokenswap.InvalidInput, "user accounts alias the pool reserves")
	}
	if !sameKey(poolMint.Key, pool.PoolMint) {
		return errors.Wrapf(tokenswap.IncorrectPoolMint, "mint %s", poolMint)
	}
	if !sameKey(poolFee.Key, pool.PoolFeeAccount) {
		return errors.Wrapf(tokenswap.IncorrectFeeAccount, "fee account %s", poolFee)
	}
	if !sameKey(tokenProgram.Key, pool.TokenProgramID) {
		return errors.Wrapf(tokenswap.IncorrectTokenProgramId, "token program %s", tokenProgram)
	}

	price, ok := pool.SwapCurve.ConstantPrice()
	if !ok || price == 0 {
		return errors.Wrapf(tokenswap.UnsupportedCurveType, "curve %d", pool.SwapCurve.CurveType)
	}

	// token_b_price is the amount of token A one token B costs. Any remainder
	// of the input that does not buy a whole unit is left with the user.
	var amountIn, amountOut uint64
	if aToB {
		amountOut = args.AmountIn / price
		amountIn = amountOut * price
	} else {
		amountIn = args.AmountIn
		amountOut = args.AmountIn * price
		if amountOut/price != amountIn {
			return tokenswap.CalculationFailure
		}
	}
	if amountOut == 0 {
		return tokenswap.ZeroTradingTokens
	}
	if amountOut < args.MinimumAmountOut {
		return errors.Wrapf(tokenswap.ExceededSlippage, "%d out, %d required", amountOut, args.MinimumAmountOut)
	}

	ctx.Log("Instruction: Swap %d in, %d out", amountIn, amountOut)

	deposit := token.Transfer(source.Key, swapSource.Key, userAuthority.Key, amountIn)
	deposit.Program = tokenProgram.Key
	if err := ctx.Invoke(deposit); err != nil {
		return err
	}

	withdraw := token.Transfer(swapDestination.Key, destination.Key, authority.Key, amountOut)
	withdraw.Program = tokenProgram.Key
	return ctx.Invoke(withdraw, [][]byte{swapInfo.Key, {pool.BumpSeed}})
}
