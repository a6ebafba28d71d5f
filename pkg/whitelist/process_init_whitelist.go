package whitelist

import (
	"github.com/code-payments/swap-whitelist/pkg/solana"
	"github.com/code-payments/swap-whitelist/pkg/solana/tokenswap"
)

func (inv *invocation) initWhitelist(args *InitWhitelistInstructionArgs) error {
	accounts, err := inv.accounts(7)
	if err != nil {
		return err
	}
	creator, configInfo, poolInfo := accounts[0], accounts[1], accounts[2]
	targetMint, targetReserve, nativeReserve := accounts[3], accounts[4], accounts[5]
	systemProgram := accounts[6]

	if !poolInfo.IsOwnedBy(inv.ids.Swap) {
		return inv.reject(IncorrectPoolOwner, "swap pool %s is not owned by the swap program", poolInfo)
	}

	// An unknown version byte, including the zeroed data of a pool the swap
	// program allocated but never set up, reads as uninitialized.
	var pool tokenswap.SwapAccount
	if err := pool.Unmarshal(poolInfo.Data); err == tokenswap.ErrUnsupportedVersion {
		return inv.reject(PoolNotInitialized, "swap pool %s: %v", poolInfo, err)
	} else if err != nil {
		return inv.reject(solana.InstructionErrorInvalidAccountData, "swap pool %s: %v", poolInfo, err)
	}
	if !pool.IsInitialized {
		return inv.reject(PoolNotInitialized, "swap pool %s is not initialized", poolInfo)
	}

	if !targetReserve.IsOwnedBy(inv.ids.Token) {
		return inv.reject(solana.InstructionErrorInvalidAccountData, "target reserve %s is not a token account", targetReserve)
	}
	if !nativeReserve.IsOwnedBy(inv.ids.Token) {
		return inv.reject(solana.InstructionErrorInvalidAccountData, "native reserve %s is not a token account", nativeReserve)
	}

	swapAuthority, err := tokenswap.GetSwapAuthorityAddress(&tokenswap.GetSwapAuthorityAddressArgs{
		Program:  inv.ids.Swap,
		Swap:     poolInfo.Key,
		BumpSeed: pool.BumpSeed,
	})
	if err != nil {
		return inv.reject(solana.InstructionErrorInvalidSeeds, "swap authority of %s: %v", poolInfo, err)
	}

	targetHolding, err := inv.decodeHolding(targetReserve)
	if err != nil {
		return err
	}
	nativeHolding, err := inv.decodeHolding(nativeReserve)
	if err != nil {
		return err
	}
	if !sameKey(targetHolding.Owner, swapAuthority) {
		return inv.reject(IncorrectTokenOwner, "target reserve %s is not owned by the swap authority", targetReserve)
	}
	if !sameKey(nativeHolding.Owner, swapAuthority) {
		return inv.reject(IncorrectTokenOwner, "native reserve %s is not owned by the swap authority", nativeReserve)
	}

	if args.Price == 0 {
		return inv.reject(solana.InstructionErrorInvalidInstructionData, "price must be positive")
	}

	expected, err := DeriveWhitelistConfigAddress(inv.ids.Whitelist, creator.Key, targetReserve.Key, args.Bump)
	if err != nil {
		return inv.reject(solana.InstructionErrorInvalidSeeds, "bump %d: %v", args.Bump, err)
	}
	if !sameKey(expected, configInfo.Key) {
		return inv.reject(solana.InstructionErrorInvalidAccountData, "config %s does not match the derived address", configInfo)
	}

	if !creator.IsSigner {
		return inv.reject(solana.InstructionErrorMissingRequiredSignature, "creator %s did not sign", creator)
	}

	if !sameKey(systemProgram.Key, inv.ids.System) {
		return inv.reject(solana.InstructionErrorInvalidAccountData, "unexpected system program %s", systemProgram)
	}

	// A config that already went through allocation falls through to the
	// initialized check below.
	if !configInfo.IsOwnedBy(inv.ids.Whitelist) || len(configInfo.Data) != WhitelistConfigAccountSize {
		seeds := configSeeds(creator.Key, targetReserve.Key, args.Bump)

		inv.ctx.Log("Allocating config %s", configInfo)
		if err := inv.ports.System.Allocate(configInfo.Key, WhitelistConfigAccountSize, seeds); err != nil {
			return err
		}
		if err := inv.ports.System.Assign(configInfo.Key, inv.ids.Whitelist, seeds); err != nil {
			return err
		}

		lamports := inv.ctx.Rent().MinimumBalance(WhitelistConfigAccountSize)
		if err := inv.ports.System.Transfer(creator.Key, configInfo.Key, lamports); err != nil {
			return err
		}
	}

	var state WhitelistConfigAccount
	if err := state.Unmarshal(configInfo.Data); err != nil {
		return inv.reject(solana.InstructionErrorInvalidAccountData, "config %s: %v", configInfo, err)
	}
	if state.Initialized {
		return inv.reject(solana.InstructionErrorAccountAlreadyInitialized, "config %s is already initialized", configInfo)
	}

	state = WhitelistConfigAccount{
		Creator:             creator.Key,
		StorageBump:         args.Bump,
		AuthorizedAddresses: args.AuthorizedAddresses,
		Initialized:         true,
		SwapPool:            poolInfo.Key,
		TargetMint:          targetMint.Key,
		TargetTokenAccount:  targetReserve.Key,
		NativeTokenAccount:  nativeReserve.Key,
		Price:               args.Price,
	}
	configInfo.Data = state.Marshal()

	inv.log.WithField("config", configInfo.String()).Info("whitelist initialized")
	recordWhitelistInitializedEvent(inv.ctx.Context(), configInfo.Key, &state)
	return nil
}
