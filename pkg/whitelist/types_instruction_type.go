package whitelist

type InstructionType uint8

const (
	InstructionTypeInitWhitelist InstructionType = iota
	InstructionTypeCreateAndWrap
	InstructionTypeWrap
	InstructionTypeUnwrap
	InstructionTypeSwap
)

func (t InstructionType) String() string {
	switch t {
	case InstructionTypeInitWhitelist:
		return "InitWhitelist"
	case InstructionTypeCreateAndWrap:
		return "CreateAndWrap"
	case InstructionTypeWrap:
		return "Wrap"
	case InstructionTypeUnwrap:
		return "Unwrap"
	case InstructionTypeSwap:
		return "Swap"
	}
	return "Unknown"
}

func putInstructionType(dst []byte, v InstructionType, offset *int) {
	dst[*offset] = uint8(v)
	*offset += 1
}
