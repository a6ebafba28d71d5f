package tokenswap

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/code-payments/swap-whitelist/pkg/solana/binary"
)

const (
	SwapVersionV1 uint8 = 1
)

type CurveType uint8

const (
	CurveTypeConstantProduct CurveType = iota
	CurveTypeConstantPrice
	CurveTypeStable
	CurveTypeOffset
)

const (
	FeesSize = 8 * 8

	SwapCurveSize = (1 + // curve_type
		32) // calculator

	SwapAccountSize = (1 + // version
		1 + // is_initialized
		1 + // bump_seed
		32 + // token_program_id
		32 + // token_a
		32 + // token_b
		32 + // pool_mint
		32 + // token_a_mint
		32 + // token_b_mint
		32 + // pool_fee_account
		FeesSize + // fees
		SwapCurveSize) // swap_curve
)

type Fees struct {
	TradeFeeNumerator           uint64
	TradeFeeDenominator         uint64
	OwnerTradeFeeNumerator      uint64
	OwnerTradeFeeDenominator    uint64
	OwnerWithdrawFeeNumerator   uint64
	OwnerWithdrawFeeDenominator uint64
	HostFeeNumerator            uint64
	HostFeeDenominator          uint64
}

type SwapCurve struct {
	CurveType  CurveType
	Calculator [32]byte
}

// ConstantPrice returns the token B price of a constant price curve.
func (c SwapCurve) ConstantPrice() (uint64, bool) {
	if c.CurveType != CurveTypeConstantPrice {
		return 0, false
	}

	var price uint64
	var offset int
	binary.GetUint64(c.Calculator[:], &price, &offset)
	return price, true
}

// NewConstantPriceCurve builds a constant price curve for the given token B price.
func NewConstantPriceCurve(tokenBPrice uint64) SwapCurve {
	curve := SwapCurve{CurveType: CurveTypeConstantPrice}
	var offset int
	binary.PutUint64(curve.Calculator[:], tokenBPrice, &offset)
	return curve
}

// SwapAccount is the versioned SwapV1 pool state.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/master/token-swap/program/src/state.rs
type SwapAccount struct {
	Version        uint8
	IsInitialized  bool
	BumpSeed       uint8
	TokenProgramID ed25519.PublicKey
	TokenA         ed25519.PublicKey
	TokenB         ed25519.PublicKey
	PoolMint       ed25519.PublicKey
	TokenAMint     ed25519.PublicKey
	TokenBMint     ed25519.PublicKey
	PoolFeeAccount ed25519.PublicKey
	Fees           Fees
	SwapCurve      SwapCurve
}

func (obj *SwapAccount) Marshal() []byte {
	data := make([]byte, SwapAccountSize)

	var offset int
	binary.PutUint8(data[offset:], obj.Version, &offset)
	binary.PutBool(data[offset:], obj.IsInitialized, &offset)
	binary.PutUint8(data[offset:], obj.BumpSeed, &offset)
	binary.PutKey32(data[offset:], obj.TokenProgramID, &offset)
	binary.PutKey32(data[offset:], obj.TokenA, &offset)
	binary.PutKey32(data[offset:], obj.TokenB, &offset)
	binary.PutKey32(data[offset:], obj.PoolMint, &offset)
	binary.PutKey32(data[offset:], obj.TokenAMint, &offset)
	binary.PutKey32(data[offset:], obj.TokenBMint, &offset)
	binary.PutKey32(data[offset:], obj.PoolFeeAccount, &offset)
	for _, v := range obj.Fees.values() {
		binary.PutUint64(data[offset:], v, &offset)
	}
	binary.PutUint8(data[offset:], uint8(obj.SwapCurve.CurveType), &offset)
	copy(data[offset:], obj.SwapCurve.Calculator[:])

	return data
}

func (obj *SwapAccount) Unmarshal(data []byte) error {
	if len(data) < SwapAccountSize {
		return ErrInvalidAccountData
	}
	if data[0] != SwapVersionV1 {
		return ErrUnsupportedVersion
	}

	var offset int
	binary.GetUint8(data[offset:], &obj.Version, &offset)
	binary.GetBool(data[offset:], &obj.IsInitialized, &offset)
	binary.GetUint8(data[offset:], &obj.BumpSeed, &offset)
	binary.GetKey32(data[offset:], &obj.TokenProgramID, &offset)
	binary.GetKey32(data[offset:], &obj.TokenA, &offset)
	binary.GetKey32(data[offset:], &obj.TokenB, &offset)
	binary.GetKey32(data[offset:], &obj.PoolMint, &offset)
	binary.GetKey32(data[offset:], &obj.TokenAMint, &offset)
	binary.GetKey32(data[offset:], &obj.TokenBMint, &offset)
	binary.GetKey32(data[offset:], &obj.PoolFeeAccount, &offset)
	fees := make([]uint64, 8)
	for i := range fees {
		binary.GetUint64(data[offset:], &fees[i], &offset)
	}
	obj.Fees.setValues(fees)

	var curveType uint8
	binary.GetUint8(data[offset:], &curveType, &offset)
	obj.SwapCurve.CurveType = CurveType(curveType)
	copy(obj.SwapCurve.Calculator[:], data[offset:offset+32])

	return nil
}

func (obj *SwapAccount) String() string {
	return fmt.Sprintf(
		"SwapV1{is_initialized=%t,bump_seed=%d,token_program=%s,token_a=%s,token_b=%s,pool_mint=%s,token_a_mint=%s,token_b_mint=%s,pool_fee_account=%s,curve_type=%d}",
		obj.IsInitialized,
		obj.BumpSeed,
		base58.Encode(obj.TokenProgramID),
		base58.Encode(obj.TokenA),
		base58.Encode(obj.TokenB),
		base58.Encode(obj.PoolMint),
		base58.Encode(obj.TokenAMint),
		base58.Encode(obj.TokenBMint),
		base58.Encode(obj.PoolFeeAccount),
		obj.SwapCurve.CurveType,
	)
}

func (f Fees) values() []uint64 {
	return []uint64{
		f.TradeFeeNumerator,
		f.TradeFeeDenominator,
		f.OwnerTradeFeeNumerator,
		f.OwnerTradeFeeDenominator,
		f.OwnerWithdrawFeeNumerator,
		f.OwnerWithdrawFeeDenominator,
		f.HostFeeNumerator,
		f.HostFeeDenominator,
	}
}

func (f *Fees) setValues(v []uint64) {
	f.TradeFeeNumerator = v[0]
	f.TradeFeeDenominator = v[1]
	f.OwnerTradeFeeNumerator = v[2]
	f.OwnerTradeFeeDenominator = v[3]
	f.OwnerWithdrawFeeNumerator = v[4]
	f.OwnerWithdrawFeeDenominator = v[5]
	f.HostFeeNumerator = v[6]
	f.HostFeeDenominator = v[7]
}
