package tokenswap

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

var (
	ErrInvalidAccountData     = errors.New("unexpected account data")
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
	ErrUnsupportedVersion     = errors.New("unsupported swap version")
)

var (
	PROGRAM_ADDRESS = mustBase58Decode("SwaPpA9LAaLfeLi3a68M4DjnLqgtticKg6CnyNwgAC8")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)

// SwapError mirrors the token swap program's custom error codes.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/master/token-swap/program/src/error.rs
type SwapError uint32

const (
	AlreadyInUse SwapError = iota
	InvalidProgramAddress
	InvalidOwner
	InvalidOutputOwner
	ExpectedMint
	ExpectedAccount
	EmptySupply
	InvalidSupply
	RepeatedMint
	InvalidDelegate
	InvalidInput
	IncorrectSwapAccount
	IncorrectPoolMint
	InvalidOutput
	CalculationFailure
	InvalidInstruction
	ExceededSlippage
	InvalidCloseAuthority
	InvalidFreezeAuthority
	IncorrectFeeAccount
	ZeroTradingTokens
	FeeCalculationFailure
	ConversionFailure
	InvalidFee
	IncorrectTokenProgramId
	UnsupportedCurveType
	InvalidCurve
	UnsupportedCurveOperation
)

func (e SwapError) Error() string {
	switch e {
	case InvalidProgramAddress:
		return "invalid program address generated from bump seed and key"
	case InvalidOwner:
		return "input account owner is not the program address"
	case InvalidDelegate:
		return "token account has a delegate"
	case InvalidInput:
		return "invalid input"
	case IncorrectSwapAccount:
		return "address of the provided swap token account is incorrect"
	case IncorrectPoolMint:
		return "address of the provided pool token mint is incorrect"
	case InvalidOutput:
		return "invalid output"
	case CalculationFailure:
		return "general calculation failure due to overflow or underflow"
	case InvalidInstruction:
		return "invalid instruction"
	case ExceededSlippage:
		return "swap instruction exceeds desired slippage limit"
	case IncorrectFeeAccount:
		return "pool fee token account incorrect"
	case ZeroTradingTokens:
		return "given pool token amount results in zero trading tokens"
	case IncorrectTokenProgramId:
		return "the provided token program does not match the token program expected by the swap"
	case UnsupportedCurveType:
		return "the provided curve type is not supported by the program owner"
	}
	return "token swap error"
}

func (e SwapError) ProgramErrorCode() uint32 {
	return uint32(e)
}

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
