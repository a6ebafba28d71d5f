package localnet

import (
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/swap-whitelist/pkg/ledger"
	"github.com/code-payments/swap-whitelist/pkg/metrics"
	"github.com/code-payments/swap-whitelist/pkg/solana/token"
	"github.com/code-payments/swap-whitelist/pkg/solana/tokenswap"
)

// mintSize is the length of an spl mint. Mints are only ever checked for
// ownership here, so their contents are left zeroed.
const mintSize = 82

// CreatePoolArgs describes a constant price pool trading the native mint
// (token A) against a target mint (token B).
type CreatePoolArgs struct {
	// TokenBPrice is the amount of native tokens one target token costs.
	TokenBPrice     uint64
	NativeLiquidity uint64
	TargetLiquidity uint64

	// TargetMint is generated when nil.
	TargetMint ed25519.PublicKey
}

// Pool holds the addresses of a seeded pool.
type Pool struct {
	Swap          ed25519.PublicKey
	Authority     ed25519.PublicKey
	BumpSeed      uint8
	NativeReserve ed25519.PublicKey
	TargetReserve ed25519.PublicKey
	TargetMint    ed25519.PublicKey
	PoolMint      ed25519.PublicKey
	PoolFee       ed25519.PublicKey
	HostFee       ed25519.PublicKey
}

// CreatePool seeds an initialized pool as genesis state.
func (l *Localnet) CreatePool(ctx context.Context, args *CreatePoolArgs) (*Pool, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "CreatePool")
	defer tracer.End()

	if args.TokenBPrice == 0 {
		return nil, errors.New("token b price must be positive")
	}

	pool := &Pool{
		Swap:          newAddress(),
		NativeReserve: newAddress(),
		TargetReserve: newAddress(),
		TargetMint:    args.TargetMint,
		PoolMint:      newAddress(),
		PoolFee:       newAddress(),
		HostFee:       newAddress(),
	}
	if len(pool.TargetMint) == 0 {
		pool.TargetMint = newAddress()
	}

	var err error
	pool.Authority, pool.BumpSeed, err = tokenswap.FindSwapAuthorityAddress(l.ids.Swap, pool.Swap)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive swap authority")
	}

	rent := l.bank.Rent()
	reserve := rent.MinimumBalance(token.AccountSize)

	swapState := &tokenswap.SwapAccount{
		Version:        tokenswap.SwapVersionV1,
		IsInitialized:  true,
		BumpSeed:       pool.BumpSeed,
		TokenProgramID: l.ids.Token,
		TokenA:         pool.NativeReserve,
		TokenB:         pool.TargetReserve,
		PoolMint:       pool.PoolMint,
		TokenAMint:     l.ids.NativeMint,
		TokenBMint:     pool.TargetMint,
		PoolFeeAccount: pool.PoolFee,
		SwapCurve:      tokenswap.NewConstantPriceCurve(args.TokenBPrice),
	}

	nativeLamports := reserve + args.NativeLiquidity
	nativeReserve := token.NewNativeAccount(pool.Authority, nativeLamports, reserve)
	nativeReserve.Mint = l.ids.NativeMint

	targetReserve := &token.Account{
		Mint:   pool.TargetMint,
		Owner:  pool.Authority,
		Amount: args.TargetLiquidity,
		State:  token.AccountStateInitialized,
	}
	feeOwner := newAddress()
	poolFee := &token.Account{
		Mint:  pool.PoolMint,
		Owner: feeOwner,
		State: token.AccountStateInitialized,
	}
	hostFee := &token.Account{
		Mint:  pool.PoolMint,
		Owner: feeOwner,
		State: token.AccountStateInitialized,
	}

	accounts := map[string]*ledger.Account{
		string(pool.Swap):          l.programAccount(l.ids.Swap, swapState.Marshal()),
		string(pool.NativeReserve): l.tokenAccount(nativeLamports, nativeReserve),
		string(pool.TargetReserve): l.tokenAccount(reserve, targetReserve),
		string(pool.PoolFee):       l.tokenAccount(reserve, poolFee),
		string(pool.HostFee):       l.tokenAccount(reserve, hostFee),
		string(pool.PoolMint):      l.programAccount(l.ids.Token, make([]byte, mintSize)),
		string(pool.TargetMint):    l.programAccount(l.ids.Token, make([]byte, mintSize)),
	}
	if err := ledger.SetAccounts(ctx, l.bank.Store(), accounts); err != nil {
		return nil, errors.Wrap(err, "failed to seed pool accounts")
	}

	return pool, nil
}

// CreateTokenHolding seeds an initialized holding at the associated address
// of owner and mint. Native holdings carry amount lamports above the reserve.
func (l *Localnet) CreateTokenHolding(ctx context.Context, owner, mint ed25519.PublicKey, amount uint64) (ed25519.PublicKey, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "CreateTokenHolding")
	defer tracer.End()

	address, err := token.GetAssociatedAccountWithPrograms(owner, mint, l.ids.AssociatedToken, l.ids.Token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive associated account")
	}

	reserve := l.bank.Rent().MinimumBalance(token.AccountSize)

	var account *ledger.Account
	if mint.Equal(l.ids.NativeMint) {
		state := token.NewNativeAccount(owner, reserve+amount, reserve)
		state.Mint = mint
		account = l.tokenAccount(reserve+amount, state)
	} else {
		account = l.tokenAccount(reserve, &token.Account{
			Mint:   mint,
			Owner:  owner,
			Amount: amount,
			State:  token.AccountStateInitialized,
		})
	}

	if err := ledger.SetAccounts(ctx, l.bank.Store(), map[string]*ledger.Account{string(address): account}); err != nil {
		return nil, errors.Wrap(err, "failed to seed holding")
	}
	return address, nil
}

// GetTokenAccount loads and decodes the token account at the address.
func (l *Localnet) GetTokenAccount(ctx context.Context, address ed25519.PublicKey) (*token.Account, error) {
	account, err := l.bank.GetAccount(ctx, address)
	if err != nil {
		return nil, err
	}

	var state token.Account
	if !state.Unmarshal(account.Data) {
		return nil, errors.Errorf("account has %d bytes of data, not a token account", len(account.Data))
	}
	return &state, nil
}

func (l *Localnet) tokenAccount(lamports uint64, state *token.Account) *ledger.Account {
	return &ledger.Account{
		Lamports: lamports,
		Data:     state.Marshal(),
		Owner:    l.ids.Token,
	}
}

func (l *Localnet) programAccount(owner ed25519.PublicKey, data []byte) *ledger.Account {
	return &ledger.Account{
		Lamports: l.bank.Rent().MinimumBalance(uint64(len(data))),
		Data:     data,
		Owner:    owner,
	}
}

func newAddress() ed25519.PublicKey {
	pub, _, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return pub
}
