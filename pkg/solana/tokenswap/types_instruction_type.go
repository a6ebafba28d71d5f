package tokenswap

type InstructionType uint8

const (
	InstructionTypeInitialize InstructionType = iota
	InstructionTypeSwap
	InstructionTypeDepositAllTokenTypes
	InstructionTypeWithdrawAllTokenTypes
	InstructionTypeDepositSingleTokenTypeExactAmountIn
	InstructionTypeWithdrawSingleTokenTypeExactAmountOut
)

func putInstructionType(dst []byte, v InstructionType, offset *int) {
	dst[*offset] = uint8(v)
	*offset += 1
}
