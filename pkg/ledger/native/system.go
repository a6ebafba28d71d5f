package native

import (
	"github.com/pkg/errors"

	"github.com/code-payments/swap-whitelist/pkg/ledger"
	"github.com/code-payments/swap-whitelist/pkg/solana"
	"github.com/code-payments/swap-whitelist/pkg/solana/system"
)

// SystemError is the custom error space of the system program.
type SystemError uint32

const (
	SystemErrorAccountAlreadyInUse SystemError = iota
	SystemErrorResultWithNegativeLamports
	SystemErrorInvalidProgramId
	SystemErrorInvalidAccountDataLength
)

func (e SystemError) Error() string {
	switch e {
	case SystemErrorAccountAlreadyInUse:
		return "an account with the same address already exists"
	case SystemErrorResultWithNegativeLamports:
		return "account does not have enough SOL to perform the operation"
	case SystemErrorInvalidProgramId:
		return "cannot assign account to this program id"
	case SystemErrorInvalidAccountDataLength:
		return "length of requested data is invalid"
	}
	return "system program error"
}

func (e SystemError) ProgramErrorCode() uint32 {
	return uint32(e)
}

// SystemProgram emulates CreateAccount, Assign, Transfer and Allocate.
var SystemProgram = ledger.ProgramFunc(executeSystem)

func executeSystem(ctx *ledger.InvokeContext, data []byte) error {
	command, err := system.GetCommand(data)
	if err != nil {
		return errors.Wrap(solana.InstructionErrorInvalidInstructionData, err.Error())
	}

	switch command {
	case system.CommandCreateAccount:
		args, err := system.DecodeCreateAccountArgs(data)
		if err != nil {
			return errors.Wrap(solana.InstructionErrorInvalidInstructionData, err.Error())
		}

		accounts, err := requireAccounts(ctx, 2)
		if err != nil {
			return err
		}
		funder, created := accounts[0], accounts[1]

		if created.Lamports > 0 {
			return errors.Wrapf(SystemErrorAccountAlreadyInUse, "account %s", created)
		}
		if err := allocate(created, args.Size); err != nil {
			return err
		}
		if err := assign(created, args.Owner); err != nil {
			return err
		}
		return transfer(funder, created, args.Lamports)

	case system.CommandAssign:
		owner, err := system.DecodeAssignArgs(data)
		if err != nil {
			return errors.Wrap(solana.InstructionErrorInvalidInstructionData, err.Error())
		}

		accounts, err := requireAccounts(ctx, 1)
		if err != nil {
			return err
		}
		return assign(accounts[0], owner)

	case system.CommandTransfer:
		lamports, err := system.DecodeTransferArgs(data)
		if err != nil {
			return errors.Wrap(solana.InstructionErrorInvalidInstructionData, err.Error())
		}

		accounts, err := requireAccounts(ctx, 2)
		if err != nil {
			return err
		}
		return transfer(accounts[0], accounts[1], lamports)

	case system.CommandAllocate:
		size, err := system.DecodeAllocateArgs(data)
		if err != nil {
			return errors.Wrap(solana.InstructionErrorInvalidInstructionData, err.Error())
		}

		accounts, err := requireAccounts(ctx, 1)
		if err != nil {
			return err
		}
		return allocate(accounts[0], size)
	}

	return errors.Wrapf(solana.InstructionErrorInvalidInstructionData, "unsupported system command %d", command)
}

func allocate(account *ledger.AccountInfo, size uint64) error {
	if !account.IsSigner {
		return errors.Wrapf(solana.InstructionErrorMissingRequiredSignature, "allocate: account %s", account)
	}
	if len(account.Data) > 0 || !account.IsOwnedBy(system.SystemAccount) {
		return errors.Wrapf(SystemErrorAccountAlreadyInUse, "allocate: account %s", account)
	}
	if size > system.MaxPermittedDataLength {
		return errors.Wrapf(SystemErrorInvalidAccountDataLength, "allocate: size %d", size)
	}

	account.Data = make([]byte, size)
	return nil
}

func assign(account *ledger.AccountInfo, owner []byte) error {
	if account.IsOwnedBy(owner) {
		return nil
	}
	if !account.IsSigner {
		return errors.Wrapf(solana.InstructionErrorMissingRequiredSignature, "assign: account %s", account)
	}

	account.Owner = append([]byte{}, owner...)
	return nil
}

func transfer(from, to *ledger.AccountInfo, lamports uint64) error {
	if !from.IsSigner {
		return errors.Wrapf(solana.InstructionErrorMissingRequiredSignature, "transfer: account %s", from)
	}
	if len(from.Data) > 0 {
		return errors.Wrapf(solana.InstructionErrorInvalidArgument, "transfer: from %s must not carry data", from)
	}
	if lamports > from.Lamports {
		return errors.Wrapf(SystemErrorResultWithNegativeLamports, "transfer: %d lamports from %s holding %d", lamports, from, from.Lamports)
	}

	from.Lamports -= lamports
	to.Lamports += lamports
	return nil
}
