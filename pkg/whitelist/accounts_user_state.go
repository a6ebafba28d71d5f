package whitelist

import (
	"crypto/ed25519"
	"fmt"
	"time"

	"github.com/code-payments/swap-whitelist/pkg/solana/binary"
)

const (
	UserRedemptionStateAccountSize = (1 + // initialized
		32 + // redeemed_by
		8 + // redeemed_at
		32) // delegated_authority
)

// UserRedemptionStateAccount marks a completed redemption. The account is
// allocated zeroed by the client ahead of the swap.
type UserRedemptionStateAccount struct {
	Initialized        bool
	RedeemedBy         ed25519.PublicKey
	RedeemedAt         int64
	DelegatedAuthority ed25519.PublicKey
}

func (obj *UserRedemptionStateAccount) Marshal() []byte {
	data := make([]byte, UserRedemptionStateAccountSize)

	var offset int
	binary.PutBool(data[offset:], obj.Initialized, &offset)
	binary.PutKey32(data[offset:], obj.RedeemedBy, &offset)
	binary.PutInt64(data[offset:], obj.RedeemedAt, &offset)
	binary.PutKey32(data[offset:], obj.DelegatedAuthority, &offset)

	return data
}

func (obj *UserRedemptionStateAccount) Unmarshal(data []byte) error {
	if len(data) != UserRedemptionStateAccountSize {
		return ErrInvalidAccountData
	}
	if !isBool(data[0]) {
		return ErrInvalidAccountData
	}

	var offset int
	binary.GetBool(data[offset:], &obj.Initialized, &offset)
	binary.GetKey32(data[offset:], &obj.RedeemedBy, &offset)
	binary.GetInt64(data[offset:], &obj.RedeemedAt, &offset)
	binary.GetKey32(data[offset:], &obj.DelegatedAuthority, &offset)

	return nil
}

func (obj *UserRedemptionStateAccount) String() string {
	return fmt.Sprintf(
		"UserRedemptionState{initialized=%t,redeemed_by=%s,redeemed_at=%s,delegated_authority=%s}",
		obj.Initialized,
		encodeKey(obj.RedeemedBy),
		time.Unix(obj.RedeemedAt, 0).UTC().Format(time.RFC3339),
		encodeKey(obj.DelegatedAuthority),
	)
}
