package whitelist

import (
	"github.com/pkg/errors"
)

var ErrInvalidAccountData = errors.New("unexpected account data")

// WhitelistError is the custom error code space of the program.
type WhitelistError uint32

const (
	InvalidInstruction WhitelistError = iota
	IncorrectPoolOwner
	IncorrectStateAccount
	IncorrectTokenOwner
	PoolNotInitialized
	AccountNotWhitelisted
	AccountAlreadyRedeemed
)

func (e WhitelistError) Error() string {
	switch e {
	case InvalidInstruction:
		return "invalid instruction data"
	case IncorrectPoolOwner:
		return "incorrect pool owner"
	case IncorrectStateAccount:
		return "incorrect account owner"
	case IncorrectTokenOwner:
		return "token account owner is not the swap authority"
	case PoolNotInitialized:
		return "token swap account is not initialized"
	case AccountNotWhitelisted:
		return "account is not allowed to swap"
	case AccountAlreadyRedeemed:
		return "account has already redeemed"
	}
	return "whitelist error"
}

func (e WhitelistError) ProgramErrorCode() uint32 {
	return uint32(e)
}
