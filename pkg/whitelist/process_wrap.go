package whitelist

import (
	"crypto/ed25519"
	"math"

	"github.com/code-payments/swap-whitelist/pkg/ledger"
	"github.com/code-payments/swap-whitelist/pkg/solana"
	"github.com/code-payments/swap-whitelist/pkg/solana/token"
)

// checkWrapping validates what CreateAndWrap and Wrap have in common. reserve
// is the extra balance the funder needs on top of amount.
func (inv *invocation) checkWrapping(funder, holding, systemProgram, tokenProgram *ledger.AccountInfo, amount, reserve uint64) error {
	if !funder.IsSigner {
		return inv.reject(solana.InstructionErrorMissingRequiredSignature, "funder %s did not sign", funder)
	}

	if amount > math.MaxUint64-reserve {
		return inv.reject(solana.InstructionErrorInsufficientFunds, "amount %d overflows", amount)
	}
	if funder.Lamports < amount+reserve {
		return inv.reject(solana.InstructionErrorInsufficientFunds, "funder %s holds %d, needs %d", funder, funder.Lamports, amount+reserve)
	}

	expected, err := inv.nativeHoldingAddress(funder)
	if err != nil {
		return err
	}
	if !sameKey(expected, holding.Key) {
		return inv.reject(solana.InstructionErrorInvalidAccountData, "holding %s is not the associated native holding of %s", holding, funder)
	}

	if !sameKey(tokenProgram.Key, inv.ids.Token) {
		return inv.reject(solana.InstructionErrorIncorrectProgramID, "unexpected token program %s", tokenProgram)
	}
	if !sameKey(systemProgram.Key, inv.ids.System) {
		return inv.reject(solana.InstructionErrorIncorrectProgramID, "unexpected system program %s", systemProgram)
	}

	return nil
}

func (inv *invocation) createAndWrap(args *CreateAndWrapInstructionArgs) error {
	accounts, err := inv.accounts(7)
	if err != nil {
		return err
	}
	funder, holding, nativeMint := accounts[0], accounts[1], accounts[2]
	systemProgram, tokenProgram, associatedProgram := accounts[3], accounts[4], accounts[5]

	reserve := inv.ctx.Rent().MinimumBalance(token.AccountSize)
	if err := inv.checkWrapping(funder, holding, systemProgram, tokenProgram, args.Amount, reserve); err != nil {
		return err
	}

	if !sameKey(associatedProgram.Key, inv.ids.AssociatedToken) {
		return inv.reject(solana.InstructionErrorIncorrectProgramID, "unexpected associated token program %s", associatedProgram)
	}
	if !sameKey(nativeMint.Key, inv.ids.NativeMint) {
		return inv.reject(solana.InstructionErrorIncorrectProgramID, "unexpected native mint %s", nativeMint)
	}
	if !holding.IsOwnedBy(inv.ids.System) {
		return inv.reject(solana.InstructionErrorAccountAlreadyInitialized, "holding %s already exists", holding)
	}

	inv.ctx.Log("Transferring %d lamports to %s", args.Amount, holding)
	if err := inv.ports.System.Transfer(funder.Key, holding.Key, args.Amount); err != nil {
		return err
	}
	return inv.ports.Token.CreateAssociatedAccount(funder.Key, holding.Key, funder.Key, nativeMint.Key)
}

func (inv *invocation) wrap(args *WrapInstructionArgs) error {
	accounts, err := inv.accounts(4)
	if err != nil {
		return err
	}
	funder, holding, systemProgram, tokenProgram := accounts[0], accounts[1], accounts[2], accounts[3]

	if err := inv.checkWrapping(funder, holding, systemProgram, tokenProgram, args.Amount, 0); err != nil {
		return err
	}

	if !holding.IsOwnedBy(inv.ids.Token) {
		return inv.reject(solana.InstructionErrorUninitializedAccount, "holding %s does not exist", holding)
	}

	inv.ctx.Log("Transferring %d lamports to %s", args.Amount, holding)
	if err := inv.ports.System.Transfer(funder.Key, holding.Key, args.Amount); err != nil {
		return err
	}
	return inv.ports.Token.SyncNative(holding.Key)
}

func (inv *invocation) unwrap(_ *UnwrapInstructionArgs) error {
	accounts, err := inv.accounts(3)
	if err != nil {
		return err
	}
	owner, holding, tokenProgram := accounts[0], accounts[1], accounts[2]

	if !owner.IsSigner {
		return inv.reject(solana.InstructionErrorMissingRequiredSignature, "owner %s did not sign", owner)
	}
	if !sameKey(tokenProgram.Key, inv.ids.Token) {
		return inv.reject(solana.InstructionErrorIncorrectProgramID, "unexpected token program %s", tokenProgram)
	}
	if !holding.IsOwnedBy(inv.ids.Token) {
		return inv.reject(solana.InstructionErrorIllegalOwner, "holding %s is not a token account", holding)
	}

	expected, err := inv.nativeHoldingAddress(owner)
	if err != nil {
		return err
	}
	if !sameKey(expected, holding.Key) {
		return inv.reject(solana.InstructionErrorInvalidAccountData, "holding %s is not the associated native holding of %s", holding, owner)
	}

	if holding.Lamports == 0 {
		return inv.reject(solana.InstructionErrorInsufficientFunds, "holding %s is empty", holding)
	}

	inv.ctx.Log("Closing %s", holding)
	return inv.ports.Token.CloseAccount(holding.Key, owner.Key, owner.Key)
}

func (inv *invocation) nativeHoldingAddress(wallet *ledger.AccountInfo) (ed25519.PublicKey, error) {
	address, err := token.GetAssociatedAccountWithPrograms(wallet.Key, inv.ids.NativeMint, inv.ids.AssociatedToken, inv.ids.Token)
	if err != nil {
		return nil, inv.reject(solana.InstructionErrorInvalidSeeds, "associated holding of %s: %v", wallet, err)
	}
	return address, nil
}
