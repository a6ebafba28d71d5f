package system

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/code-payments/swap-whitelist/pkg/solana"
)

// ProgramKey is the address of the system program (all zeroes).
var ProgramKey [32]byte

// MaxPermittedDataLength is the largest allocation the system program permits.
//
// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/program/src/system_instruction.rs#L81
const MaxPermittedDataLength = 10 * 1024 * 1024

type Command uint32

const (
	CommandCreateAccount Command = iota
	CommandAssign
	CommandTransfer
	// nolint:varcheck,deadcode,unused
	CommandCreateAccountWithSeed
	// nolint:varcheck,deadcode,unused
	CommandAdvanceNonceAccount
	// nolint:varcheck,deadcode,unused
	CommandWithdrawNonceAccount
	// nolint:varcheck,deadcode,unused
	CommandInitializeNonceAccount
	// nolint:varcheck,deadcode,unused
	CommandAuthorizeNonceAccount
	CommandAllocate
)

// GetCommand returns the command encoded in the first four bytes of the
// instruction data.
func GetCommand(data []byte) (Command, error) {
	if len(data) < 4 {
		return 0, errors.Wrap(solana.ErrIncorrectInstruction, "system instruction missing command")
	}

	return Command(binary.LittleEndian.Uint32(data)), nil
}

// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/system_instruction.rs#L58-L72
func CreateAccount(funder, address, owner ed25519.PublicKey, lamports, size uint64) solana.Instruction {
	// # Account references
	//   0. [WRITE, SIGNER] Funding account
	//   1. [WRITE, SIGNER] New account
	//
	// CreateAccount {
	//   // Number of lamports to transfer to the new account
	//   lamports: u64,
	//   // Number of bytes of memory to allocate
	//   space: u64,
	//
	//   //Address of program that will own the new account
	//   owner: Pubkey,
	// }
	//
	data := make([]byte, 4+2*8+32)
	binary.LittleEndian.PutUint32(data, uint32(CommandCreateAccount))
	binary.LittleEndian.PutUint64(data[4:], lamports)
	binary.LittleEndian.PutUint64(data[4+8:], size)
	copy(data[4+2*8:], owner)

	return solana.NewInstruction(
		ProgramKey[:],
		data,
		solana.NewAccountMeta(funder, true),
		solana.NewAccountMeta(address, true),
	)
}

type CreateAccountArgs struct {
	Lamports uint64
	Size     uint64
	Owner    ed25519.PublicKey
}

func DecodeCreateAccountArgs(data []byte) (*CreateAccountArgs, error) {
	if err := expectCommand(data, CommandCreateAccount, 4+2*8+32); err != nil {
		return nil, err
	}

	return &CreateAccountArgs{
		Lamports: binary.LittleEndian.Uint64(data[4:]),
		Size:     binary.LittleEndian.Uint64(data[4+8:]),
		Owner:    ed25519.PublicKey(append([]byte(nil), data[4+2*8:4+2*8+32]...)),
	}, nil
}

// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/program/src/system_instruction.rs#L84-L91
func Assign(address, owner ed25519.PublicKey) solana.Instruction {
	// # Account references
	//   0. [WRITE, SIGNER] Assigned account public key
	//
	// Assign {
	//   owner: Pubkey,
	// }
	data := make([]byte, 4+32)
	binary.LittleEndian.PutUint32(data, uint32(CommandAssign))
	copy(data[4:], owner)

	return solana.NewInstruction(
		ProgramKey[:],
		data,
		solana.NewAccountMeta(address, true),
	)
}

func DecodeAssignArgs(data []byte) (ed25519.PublicKey, error) {
	if err := expectCommand(data, CommandAssign, 4+32); err != nil {
		return nil, err
	}

	return ed25519.PublicKey(append([]byte(nil), data[4:4+32]...)), nil
}

// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/program/src/system_instruction.rs#L93-L98
func Transfer(from, to ed25519.PublicKey, lamports uint64) solana.Instruction {
	// # Account references
	//   0. [WRITE, SIGNER] Funding account
	//   1. [WRITE] Recipient account
	//
	// Transfer {
	//   lamports: u64,
	// }
	data := make([]byte, 4+8)
	binary.LittleEndian.PutUint32(data, uint32(CommandTransfer))
	binary.LittleEndian.PutUint64(data[4:], lamports)

	return solana.NewInstruction(
		ProgramKey[:],
		data,
		solana.NewAccountMeta(from, true),
		solana.NewAccountMeta(to, false),
	)
}

func DecodeTransferArgs(data []byte) (uint64, error) {
	if err := expectCommand(data, CommandTransfer, 4+8); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint64(data[4:]), nil
}

// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/program/src/system_instruction.rs#L186-L193
func Allocate(address ed25519.PublicKey, size uint64) solana.Instruction {
	// # Account references
	//   0. [WRITE, SIGNER] New account
	//
	// Allocate {
	//   space: u64,
	// }
	data := make([]byte, 4+8)
	binary.LittleEndian.PutUint32(data, uint32(CommandAllocate))
	binary.LittleEndian.PutUint64(data[4:], size)

	return solana.NewInstruction(
		ProgramKey[:],
		data,
		solana.NewAccountMeta(address, true),
	)
}

func DecodeAllocateArgs(data []byte) (uint64, error) {
	if err := expectCommand(data, CommandAllocate, 4+8); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint64(data[4:]), nil
}

func expectCommand(data []byte, expected Command, size int) error {
	command, err := GetCommand(data)
	if err != nil {
		return err
	}
	if command != expected {
		return solana.ErrIncorrectInstruction
	}
	if len(data) != size {
		return errors.Errorf("invalid instruction data size: %d (expected %d)", len(data), size)
	}
	return nil
}
