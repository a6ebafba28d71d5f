package native

import (
	"github.com/pkg/errors"

	"github.com/code-payments/swap-whitelist/pkg/ledger"
	"github.com/code-payments/swap-whitelist/pkg/solana"
	"github.com/code-payments/swap-whitelist/pkg/solana/system"
	"github.com/code-payments/swap-whitelist/pkg/solana/token"
)

// AssociatedTokenProgram emulates Create, materializing the holding at the
// canonical address of a wallet and mint. Lamports already sitting at the
// address are kept, so a native holding funded beforehand starts out with
// that balance wrapped.
var AssociatedTokenProgram = ledger.ProgramFunc(executeAssociated)

func executeAssociated(ctx *ledger.InvokeContext, data []byte) error {
	if len(data) > 0 && data[0] != 0 {
		return errors.Wrapf(solana.InstructionErrorInvalidInstructionData, "unsupported associated token command %d", data[0])
	}

	accounts, err := requireAccounts(ctx, 7)
	if err != nil {
		return err
	}
	funder, holding, wallet, mint := accounts[0], accounts[1], accounts[2], accounts[3]
	systemProgram, tokenProgram := accounts[4], accounts[5]

	expected, bump, err := solana.FindProgramAddressAndBump(ctx.ProgramID(), wallet.Key, tokenProgram.Key, mint.Key)
	if err != nil {
		return errors.Wrap(solana.InstructionErrorInvalidSeeds, err.Error())
	}
	if !sameKey(expected, holding.Key) {
		return errors.Wrapf(solana.InstructionErrorInvalidSeeds, "associated address does not match seed derivation: %s", holding)
	}
	if holding.IsOwnedBy(tokenProgram.Key) {
		return errors.Wrapf(solana.InstructionErrorIllegalOwner, "account %s already exists", holding)
	}

	signerSeeds := [][]byte{wallet.Key, tokenProgram.Key, mint.Key, {bump}}

	required := ctx.Rent().MinimumBalance(token.AccountSize)
	if holding.Lamports < required {
		ix := system.Transfer(funder.Key, holding.Key, required-holding.Lamports)
		ix.Program = systemProgram.Key
		if err := ctx.Invoke(ix); err != nil {
			return err
		}
	}

	allocate := system.Allocate(holding.Key, token.AccountSize)
	allocate.Program = systemProgram.Key
	if err := ctx.Invoke(allocate, signerSeeds); err != nil {
		return err
	}

	assign := system.Assign(holding.Key, tokenProgram.Key)
	assign.Program = systemProgram.Key
	if err := ctx.Invoke(assign, signerSeeds); err != nil {
		return err
	}

	initialize := token.InitializeAccount(holding.Key, mint.Key, wallet.Key)
	initialize.Program = tokenProgram.Key
	return ctx.Invoke(initialize)
}
