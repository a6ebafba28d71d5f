package whitelist

import (
	"github.com/code-payments/swap-whitelist/pkg/solana"
	"github.com/code-payments/swap-whitelist/pkg/solana/tokenswap"
)

func (inv *invocation) swap(args *SwapInstructionArgs) error {
	accounts, err := inv.accounts(15)
	if err != nil {
		return err
	}
	user, userStateInfo, configInfo := accounts[0], accounts[1], accounts[2]
	poolInfo, swapAuthority, transferAuthority := accounts[3], accounts[4], accounts[5]
	userNative, userTarget := accounts[6], accounts[7]
	poolNative, poolTarget, poolMint, poolFee, hostFee := accounts[8], accounts[9], accounts[10], accounts[11], accounts[12]
	tokenProgram, swapProgram := accounts[13], accounts[14]

	if !user.IsSigner {
		return inv.reject(solana.InstructionErrorMissingRequiredSignature, "user %s did not sign", user)
	}

	if !sameKey(swapProgram.Key, inv.ids.Swap) {
		return inv.reject(solana.InstructionErrorIncorrectProgramID, "unexpected swap program %s", swapProgram)
	}
	if !sameKey(tokenProgram.Key, inv.ids.Token) {
		return inv.reject(solana.InstructionErrorIncorrectProgramID, "unexpected token program %s", tokenProgram)
	}

	if !configInfo.IsOwnedBy(inv.ids.Whitelist) {
		return inv.reject(IncorrectStateAccount, "config %s is not owned by the program", configInfo)
	}
	if !userStateInfo.IsOwnedBy(inv.ids.Whitelist) {
		return inv.reject(IncorrectStateAccount, "user state %s is not owned by the program", userStateInfo)
	}

	if !poolInfo.IsOwnedBy(inv.ids.Swap) {
		return inv.reject(IncorrectStateAccount, "swap pool %s is not owned by the swap program", poolInfo)
	}
	for _, info := range accounts[6:12] {
		if !info.IsOwnedBy(inv.ids.Token) {
			return inv.reject(IncorrectStateAccount, "%s is not a token account", info)
		}
	}

	var config WhitelistConfigAccount
	if err := config.Unmarshal(configInfo.Data); err != nil {
		return inv.reject(solana.InstructionErrorInvalidAccountData, "config %s: %v", configInfo, err)
	}
	var userState UserRedemptionStateAccount
	if err := userState.Unmarshal(userStateInfo.Data); err != nil {
		return inv.reject(solana.InstructionErrorInvalidAccountData, "user state %s: %v", userStateInfo, err)
	}
	nativeHolding, err := inv.decodeHolding(userNative)
	if err != nil {
		return err
	}
	targetHolding, err := inv.decodeHolding(userTarget)
	if err != nil {
		return err
	}

	if !sameKey(nativeHolding.Owner, user.Key) {
		return inv.reject(solana.InstructionErrorIllegalOwner, "native holding %s is not owned by %s", userNative, user)
	}
	if !sameKey(targetHolding.Owner, user.Key) {
		return inv.reject(solana.InstructionErrorIllegalOwner, "target holding %s is not owned by %s", userTarget, user)
	}

	if !sameKey(nativeHolding.Mint, inv.ids.NativeMint) {
		return inv.reject(solana.InstructionErrorInvalidAccountData, "native holding %s has the wrong mint", userNative)
	}
	if !sameKey(targetHolding.Mint, config.TargetMint) {
		return inv.reject(solana.InstructionErrorInvalidAccountData, "target holding %s has the wrong mint", userTarget)
	}

	if !config.Initialized {
		return inv.reject(solana.InstructionErrorUninitializedAccount, "config %s is not initialized", configInfo)
	}
	if userState.Initialized {
		return inv.reject(solana.InstructionErrorAccountAlreadyInitialized, "user state %s was already redeemed", userStateInfo)
	}

	if !config.IsAuthorized(user.Key) {
		return inv.reject(AccountNotWhitelisted, "user %s is not whitelisted", user)
	}

	if nativeHolding.Amount < config.Price {
		return inv.reject(solana.InstructionErrorInsufficientFunds, "native holding %s has %d, price is %d", userNative, nativeHolding.Amount, config.Price)
	}

	if !sameKey(poolInfo.Key, config.SwapPool) {
		return inv.reject(solana.InstructionErrorInvalidAccountData, "swap pool %s is not the whitelisted pool", poolInfo)
	}

	// Independent of the user state flag, a non-empty target holding means
	// the user already holds the token.
	if targetHolding.Amount > 0 {
		return inv.reject(AccountAlreadyRedeemed, "target holding %s has a balance of %d", userTarget, targetHolding.Amount)
	}

	inv.ctx.Log("Swapping %d for at least %d", args.InputAmount, args.MinOutputAmount)
	err = inv.ports.Swap.Swap(
		&tokenswap.SwapInstructionAccounts{
			Swap:                  poolInfo.Key,
			Authority:             swapAuthority.Key,
			UserTransferAuthority: transferAuthority.Key,
			Source:                userNative.Key,
			SwapSource:            poolNative.Key,
			SwapDestination:       poolTarget.Key,
			Destination:           userTarget.Key,
			PoolMint:              poolMint.Key,
			PoolFee:               poolFee.Key,
			TokenProgram:          tokenProgram.Key,
			HostFee:               hostFee.Key,
		},
		args.InputAmount,
		args.MinOutputAmount,
	)
	if err != nil {
		inv.log.WithError(err).Info("swap failed")
		return err
	}

	userState = UserRedemptionStateAccount{
		Initialized:        true,
		RedeemedBy:         user.Key,
		RedeemedAt:         inv.ctx.Clock().UnixTimestamp,
		DelegatedAuthority: transferAuthority.Key,
	}
	userStateInfo.Data = userState.Marshal()

	inv.log.WithField("user", user.String()).Info("whitelist redeemed")
	recordWhitelistRedemptionEvent(inv.ctx.Context(), configInfo.Key, &userState, args.InputAmount)
	return nil
}
