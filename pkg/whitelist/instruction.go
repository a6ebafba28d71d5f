package whitelist

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/swap-whitelist/pkg/solana/binary"
)

const (
	InitWhitelistInstructionArgsSize = (1 + // bump
		8 + // price
		MaxAuthorizedAddresses*ed25519.PublicKeySize) // authorized_addresses

	CreateAndWrapInstructionArgsSize = 8 // amount
	WrapInstructionArgsSize          = 8 // amount
	UnwrapInstructionArgsSize        = 0

	SwapInstructionArgsSize = (8 + // input_amount
		8) // min_output_amount
)

// Instruction is one of the decoded program commands:
// *InitWhitelistInstructionArgs, *CreateAndWrapInstructionArgs,
// *WrapInstructionArgs, *UnwrapInstructionArgs or *SwapInstructionArgs.
type Instruction interface {
	Type() InstructionType
	Encode() []byte
}

type InitWhitelistInstructionArgs struct {
	Bump                uint8
	Price               uint64
	AuthorizedAddresses [MaxAuthorizedAddresses]ed25519.PublicKey
}

type CreateAndWrapInstructionArgs struct {
	Amount uint64
}

type WrapInstructionArgs struct {
	Amount uint64
}

type UnwrapInstructionArgs struct {
}

type SwapInstructionArgs struct {
	InputAmount     uint64
	MinOutputAmount uint64
}

// DecodeInstruction parses instruction data. Payload bytes past the fields of
// a command are ignored.
func DecodeInstruction(data []byte) (Instruction, error) {
	if len(data) == 0 {
		return nil, errors.Wrap(InvalidInstruction, "empty instruction data")
	}

	offset := 1
	switch t := InstructionType(data[0]); t {
	case InstructionTypeInitWhitelist:
		if err := binary.CheckLen(data, offset, InitWhitelistInstructionArgsSize); err != nil {
			return nil, errors.Wrap(InvalidInstruction, err.Error())
		}

		var args InitWhitelistInstructionArgs
		binary.GetUint8(data[offset:], &args.Bump, &offset)
		binary.GetUint64(data[offset:], &args.Price, &offset)
		for i := range args.AuthorizedAddresses {
			binary.GetKey32(data[offset:], &args.AuthorizedAddresses[i], &offset)
		}
		return &args, nil

	case InstructionTypeCreateAndWrap:
		if err := binary.CheckLen(data, offset, CreateAndWrapInstructionArgsSize); err != nil {
			return nil, errors.Wrap(InvalidInstruction, err.Error())
		}

		var args CreateAndWrapInstructionArgs
		binary.GetUint64(data[offset:], &args.Amount, &offset)
		return &args, nil

	case InstructionTypeWrap:
		if err := binary.CheckLen(data, offset, WrapInstructionArgsSize); err != nil {
			return nil, errors.Wrap(InvalidInstruction, err.Error())
		}

		var args WrapInstructionArgs
		binary.GetUint64(data[offset:], &args.Amount, &offset)
		return &args, nil

	case InstructionTypeUnwrap:
		return &UnwrapInstructionArgs{}, nil

	case InstructionTypeSwap:
		if err := binary.CheckLen(data, offset, SwapInstructionArgsSize); err != nil {
			return nil, errors.Wrap(InvalidInstruction, err.Error())
		}

		var args SwapInstructionArgs
		binary.GetUint64(data[offset:], &args.InputAmount, &offset)
		binary.GetUint64(data[offset:], &args.MinOutputAmount, &offset)
		return &args, nil

	default:
		return nil, errors.Wrapf(InvalidInstruction, "unknown instruction type %d", t)
	}
}

func (args *InitWhitelistInstructionArgs) Type() InstructionType {
	return InstructionTypeInitWhitelist
}

func (args *InitWhitelistInstructionArgs) Encode() []byte {
	var offset int
	data := make([]byte, 1+InitWhitelistInstructionArgsSize)

	putInstructionType(data, InstructionTypeInitWhitelist, &offset)
	binary.PutUint8(data[offset:], args.Bump, &offset)
	binary.PutUint64(data[offset:], args.Price, &offset)
	for _, address := range args.AuthorizedAddresses {
		binary.PutKey32(data[offset:], address, &offset)
	}
	return data
}

func (args *InitWhitelistInstructionArgs) String() string {
	addresses := make([]string, len(args.AuthorizedAddresses))
	for i, address := range args.AuthorizedAddresses {
		addresses[i] = encodeKey(address)
	}
	return fmt.Sprintf("InitWhitelist{bump=%d,price=%d,authorized_addresses=%v}", args.Bump, args.Price, addresses)
}

func (args *CreateAndWrapInstructionArgs) Type() InstructionType {
	return InstructionTypeCreateAndWrap
}

func (args *CreateAndWrapInstructionArgs) Encode() []byte {
	return amountData(InstructionTypeCreateAndWrap, args.Amount)
}

func (args *CreateAndWrapInstructionArgs) String() string {
	return fmt.Sprintf("CreateAndWrap{amount=%d}", args.Amount)
}

func (args *WrapInstructionArgs) Type() InstructionType {
	return InstructionTypeWrap
}

func (args *WrapInstructionArgs) Encode() []byte {
	return amountData(InstructionTypeWrap, args.Amount)
}

func (args *WrapInstructionArgs) String() string {
	return fmt.Sprintf("Wrap{amount=%d}", args.Amount)
}

func (args *UnwrapInstructionArgs) Type() InstructionType {
	return InstructionTypeUnwrap
}

func (args *UnwrapInstructionArgs) Encode() []byte {
	return []byte{byte(InstructionTypeUnwrap)}
}

func (args *UnwrapInstructionArgs) String() string {
	return "Unwrap{}"
}

func (args *SwapInstructionArgs) Type() InstructionType {
	return InstructionTypeSwap
}

func (args *SwapInstructionArgs) Encode() []byte {
	var offset int
	data := make([]byte, 1+SwapInstructionArgsSize)

	putInstructionType(data, InstructionTypeSwap, &offset)
	binary.PutUint64(data[offset:], args.InputAmount, &offset)
	binary.PutUint64(data[offset:], args.MinOutputAmount, &offset)
	return data
}

func (args *SwapInstructionArgs) String() string {
	return fmt.Sprintf("Swap{input_amount=%d,min_output_amount=%d}", args.InputAmount, args.MinOutputAmount)
}

func amountData(t InstructionType, amount uint64) []byte {
	var offset int
	data := make([]byte, 1+8)

	putInstructionType(data, t, &offset)
	binary.PutUint64(data[offset:], amount, &offset)
	return data
}

func encodeKey(key ed25519.PublicKey) string {
	if len(key) == 0 {
		return base58.Encode(make([]byte, ed25519.PublicKeySize))
	}
	return base58.Encode(key)
}
