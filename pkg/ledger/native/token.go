package native

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/swap-whitelist/pkg/ledger"
	"github.com/code-payments/swap-whitelist/pkg/solana"
	"github.com/code-payments/swap-whitelist/pkg/solana/system"
	"github.com/code-payments/swap-whitelist/pkg/solana/token"
)

// TokenProgram emulates the token account subset of the token program. Mints
// are not modeled.
var TokenProgram = NewTokenProgram(token.NativeMint)

// NewTokenProgram returns a token program emulator that wraps lamports for
// holdings of nativeMint.
func NewTokenProgram(nativeMint ed25519.PublicKey) ledger.ProgramFunc {
	return func(ctx *ledger.InvokeContext, data []byte) error {
		return executeToken(ctx, nativeMint, data)
	}
}

func executeToken(ctx *ledger.InvokeContext, nativeMint ed25519.PublicKey, data []byte) error {
	command, err := token.GetCommand(data)
	if err != nil {
		return token.ErrorInvalidInstruction
	}

	switch command {
	case token.CommandInitializeAccount:
		return initializeAccount(ctx, nativeMint)
	case token.CommandTransfer:
		amount, err := token.DecodeAmountArgs(data, token.CommandTransfer)
		if err != nil {
			return errors.Wrap(token.ErrorInvalidInstruction, err.Error())
		}
		return transferTokens(ctx, amount)
	case token.CommandApprove:
		amount, err := token.DecodeAmountArgs(data, token.CommandApprove)
		if err != nil {
			return errors.Wrap(token.ErrorInvalidInstruction, err.Error())
		}
		return approve(ctx, amount)
	case token.CommandCloseAccount:
		return closeAccount(ctx)
	case token.CommandSyncNative:
		return syncNative(ctx)
	}

	return errors.Wrapf(token.ErrorInvalidInstruction, "unsupported token command %d", command)
}

func initializeAccount(ctx *ledger.InvokeContext, nativeMint ed25519.PublicKey) error {
	accounts, err := requireAccounts(ctx, 4)
	if err != nil {
		return err
	}
	holding, mint, owner := accounts[0], accounts[1], accounts[2]

	if !holding.IsOwnedBy(ctx.ProgramID()) {
		return errors.Wrapf(solana.InstructionErrorIncorrectProgramID, "account %s is not a token account", holding)
	}
	if len(holding.Data) != token.AccountSize {
		return errors.Wrapf(solana.InstructionErrorInvalidAccountData, "account %s", holding)
	}

	var existing token.Account
	if existing.Unmarshal(holding.Data); existing.IsInitialized() {
		return errors.Wrapf(token.ErrorAlreadyInUse, "account %s", holding)
	}

	reserve := ctx.Rent().MinimumBalance(token.AccountSize)
	if holding.Lamports < reserve {
		return errors.Wrapf(token.ErrorNotRentExempt, "account %s", holding)
	}

	state := &token.Account{
		Mint:  mint.Key,
		Owner: owner.Key,
		State: token.AccountStateInitialized,
	}
	if sameKey(mint.Key, nativeMint) {
		state = token.NewNativeAccount(owner.Key, holding.Lamports, reserve)
		state.Mint = mint.Key
	}

	holding.Data = state.Marshal()
	return nil
}

func transferTokens(ctx *ledger.InvokeContext, amount uint64) error {
	accounts, err := requireAccounts(ctx, 3)
	if err != nil {
		return err
	}
	sourceInfo, destInfo, authority := accounts[0], accounts[1], accounts[2]

	source, err := loadTokenAccount(ctx, sourceInfo)
	if err != nil {
		return err
	}
	dest, err := loadTokenAccount(ctx, destInfo)
	if err != nil {
		return err
	}

	if source.State == token.AccountStateFrozen || dest.State == token.AccountStateFrozen {
		return token.ErrorAccountFrozen
	}
	if source.Amount < amount {
		return errors.Wrapf(token.ErrorInsufficientFunds, "account %s holds %d", sourceInfo, source.Amount)
	}
	if !sameKey(source.Mint, dest.Mint) {
		return errors.Wrapf(token.ErrorMintMismatch, "accounts %s and %s", sourceInfo, destInfo)
	}

	switch {
	case len(source.Delegate) > 0 && sameKey(authority.Key, source.Delegate):
		if !authority.IsSigner {
			return errors.Wrapf(solana.InstructionErrorMissingRequiredSignature, "delegate %s", authority)
		}
		if source.DelegatedAmount < amount {
			return errors.Wrapf(token.ErrorInsufficientFunds, "delegated amount %d", source.DelegatedAmount)
		}
		source.DelegatedAmount -= amount
		if source.DelegatedAmount == 0 {
			source.Delegate = nil
		}
	case sameKey(authority.Key, source.Owner):
		if !authority.IsSigner {
			return errors.Wrapf(solana.InstructionErrorMissingRequiredSignature, "owner %s", authority)
		}
	default:
		return errors.Wrapf(token.ErrorOwnerMismatch, "authority %s", authority)
	}

	if sameKey(sourceInfo.Key, destInfo.Key) {
		sourceInfo.Data = source.Marshal()
		return nil
	}

	source.Amount -= amount
	dest.Amount += amount

	if source.IsNativeHolding() {
		if sourceInfo.Lamports < amount {
			return errors.Wrap(token.ErrorOverflow, "native lamports")
		}
		sourceInfo.Lamports -= amount
		destInfo.Lamports += amount
	}

	sourceInfo.Data = source.Marshal()
	destInfo.Data = dest.Marshal()
	return nil
}

func approve(ctx *ledger.InvokeContext, amount uint64) error {
	accounts, err := requireAccounts(ctx, 3)
	if err != nil {
		return err
	}
	sourceInfo, delegate, owner := accounts[0], accounts[1], accounts[2]

	source, err := loadTokenAccount(ctx, sourceInfo)
	if err != nil {
		return err
	}
	if !sameKey(owner.Key, source.Owner) {
		return errors.Wrapf(token.ErrorOwnerMismatch, "owner %s", owner)
	}
	if !owner.IsSigner {
		return errors.Wrapf(solana.InstructionErrorMissingRequiredSignature, "owner %s", owner)
	}

	source.Delegate = delegate.Key
	source.DelegatedAmount = amount
	sourceInfo.Data = source.Marshal()
	return nil
}

func closeAccount(ctx *ledger.InvokeContext) error {
	accounts, err := requireAccounts(ctx, 3)
	if err != nil {
		return err
	}
	holding, dest, authority := accounts[0], accounts[1], accounts[2]

	if sameKey(holding.Key, dest.Key) {
		return errors.Wrapf(solana.InstructionErrorInvalidAccountData, "account %s closed into itself", holding)
	}

	state, err := loadTokenAccount(ctx, holding)
	if err != nil {
		return err
	}
	if !state.IsNativeHolding() && state.Amount != 0 {
		return errors.Wrapf(token.ErrorNonNativeHasBalance, "account %s", holding)
	}

	closeAuthority := state.Owner
	if len(state.CloseAuthority) > 0 {
		closeAuthority = state.CloseAuthority
	}
	if !sameKey(authority.Key, closeAuthority) {
		return errors.Wrapf(token.ErrorOwnerMismatch, "authority %s", authority)
	}
	if !authority.IsSigner {
		return errors.Wrapf(solana.InstructionErrorMissingRequiredSignature, "authority %s", authority)
	}

	dest.Lamports += holding.Lamports
	holding.Lamports = 0
	holding.Data = nil
	holding.Owner = append([]byte{}, system.SystemAccount...)
	return nil
}

func syncNative(ctx *ledger.InvokeContext) error {
	accounts, err := requireAccounts(ctx, 1)
	if err != nil {
		return err
	}
	holding := accounts[0]

	state, err := loadTokenAccount(ctx, holding)
	if err != nil {
		return err
	}
	if !state.IsNativeHolding() {
		return errors.Wrapf(token.ErrorNonNativeNotSupported, "account %s", holding)
	}
	if holding.Lamports < *state.IsNative {
		return errors.Wrapf(token.ErrorOverflow, "account %s is below its reserve", holding)
	}

	state.Amount = holding.Lamports - *state.IsNative
	holding.Data = state.Marshal()
	return nil
}

func loadTokenAccount(ctx *ledger.InvokeContext, info *ledger.AccountInfo) (*token.Account, error) {
	if !info.IsOwnedBy(ctx.ProgramID()) {
		return nil, errors.Wrapf(solana.InstructionErrorIncorrectProgramID, "account %s is not a token account", info)
	}

	var state token.Account
	if !state.Unmarshal(info.Data) {
		return nil, errors.Wrapf(solana.InstructionErrorInvalidAccountData, "account %s", info)
	}
	if !state.IsInitialized() {
		return nil, errors.Wrapf(token.ErrorUninitializedState, "account %s", info)
	}
	return &state, nil
}
