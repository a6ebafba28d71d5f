package whitelist

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/code-payments/swap-whitelist/pkg/solana/binary"
)

// MaxAuthorizedAddresses is the fixed number of address slots in a whitelist.
const MaxAuthorizedAddresses = 6

const (
	WhitelistConfigAccountSize = (32 + // creator
		1 + // storage_bump
		MaxAuthorizedAddresses*32 + // authorized_addresses
		1 + // initialized
		32 + // swap_pool
		32 + // target_mint
		32 + // target_token_account
		32 + // native_token_account
		8) // price
)

// WhitelistConfigAccount is the per whitelist configuration, stored at the
// address derived from the creator and the pool's target token reserve.
type WhitelistConfigAccount struct {
	Creator             ed25519.PublicKey
	StorageBump         uint8
	AuthorizedAddresses [MaxAuthorizedAddresses]ed25519.PublicKey
	Initialized         bool
	SwapPool            ed25519.PublicKey
	TargetMint          ed25519.PublicKey
	TargetTokenAccount  ed25519.PublicKey
	NativeTokenAccount  ed25519.PublicKey
	Price               uint64
}

func (obj *WhitelistConfigAccount) Marshal() []byte {
	data := make([]byte, WhitelistConfigAccountSize)

	var offset int
	binary.PutKey32(data[offset:], obj.Creator, &offset)
	binary.PutUint8(data[offset:], obj.StorageBump, &offset)
	for _, address := range obj.AuthorizedAddresses {
		binary.PutKey32(data[offset:], address, &offset)
	}
	binary.PutBool(data[offset:], obj.Initialized, &offset)
	binary.PutKey32(data[offset:], obj.SwapPool, &offset)
	binary.PutKey32(data[offset:], obj.TargetMint, &offset)
	binary.PutKey32(data[offset:], obj.TargetTokenAccount, &offset)
	binary.PutKey32(data[offset:], obj.NativeTokenAccount, &offset)
	binary.PutUint64(data[offset:], obj.Price, &offset)

	return data
}

func (obj *WhitelistConfigAccount) Unmarshal(data []byte) error {
	if len(data) != WhitelistConfigAccountSize {
		return ErrInvalidAccountData
	}

	var offset int
	binary.GetKey32(data[offset:], &obj.Creator, &offset)
	binary.GetUint8(data[offset:], &obj.StorageBump, &offset)
	for i := range obj.AuthorizedAddresses {
		binary.GetKey32(data[offset:], &obj.AuthorizedAddresses[i], &offset)
	}
	if !isBool(data[offset]) {
		return ErrInvalidAccountData
	}
	binary.GetBool(data[offset:], &obj.Initialized, &offset)
	binary.GetKey32(data[offset:], &obj.SwapPool, &offset)
	binary.GetKey32(data[offset:], &obj.TargetMint, &offset)
	binary.GetKey32(data[offset:], &obj.TargetTokenAccount, &offset)
	binary.GetKey32(data[offset:], &obj.NativeTokenAccount, &offset)
	binary.GetUint64(data[offset:], &obj.Price, &offset)

	return nil
}

// IsAuthorized reports whether address occupies one of the whitelist slots.
func (obj *WhitelistConfigAccount) IsAuthorized(address ed25519.PublicKey) bool {
	for _, authorized := range obj.AuthorizedAddresses {
		if bytes.Equal(authorized, address) {
			return true
		}
	}
	return false
}

func (obj *WhitelistConfigAccount) String() string {
	addresses := make([]string, len(obj.AuthorizedAddresses))
	for i, address := range obj.AuthorizedAddresses {
		addresses[i] = encodeKey(address)
	}

	return fmt.Sprintf(
		"WhitelistConfig{creator=%s,storage_bump=%d,authorized_addresses=%v,initialized=%t,swap_pool=%s,target_mint=%s,target_token_account=%s,native_token_account=%s,price=%d}",
		encodeKey(obj.Creator),
		obj.StorageBump,
		addresses,
		obj.Initialized,
		encodeKey(obj.SwapPool),
		encodeKey(obj.TargetMint),
		encodeKey(obj.TargetTokenAccount),
		encodeKey(obj.NativeTokenAccount),
		obj.Price,
	)
}

func isBool(b byte) bool {
	return b == 0 || b == 1
}
