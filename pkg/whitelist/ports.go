package whitelist

import (
	"crypto/ed25519"

	"github.com/code-payments/swap-whitelist/pkg/ledger"
	"github.com/code-payments/swap-whitelist/pkg/solana"
	"github.com/code-payments/swap-whitelist/pkg/solana/system"
	"github.com/code-payments/swap-whitelist/pkg/solana/token"
	"github.com/code-payments/swap-whitelist/pkg/solana/tokenswap"
)

//go:generate mockgen -destination=mocks/mock_ports.go -package=mocks -source=ports.go

// SystemProgram allocates and funds accounts. Seeds, when provided, sign for
// an address derived from the whitelist program.
type SystemProgram interface {
	Allocate(address ed25519.PublicKey, size uint64, signerSeeds [][]byte) error
	Assign(address, owner ed25519.PublicKey, signerSeeds [][]byte) error
	Transfer(from, to ed25519.PublicKey, lamports uint64) error
}

// TokenProgram manages native currency holdings.
type TokenProgram interface {
	CreateAssociatedAccount(funder, holding, wallet, mint ed25519.PublicKey) error
	SyncNative(holding ed25519.PublicKey) error
	CloseAccount(holding, destination, owner ed25519.PublicKey) error
}

// SwapEngine executes a swap against a token swap pool.
type SwapEngine interface {
	Swap(accounts *tokenswap.SwapInstructionAccounts, amountIn, minAmountOut uint64) error
}

// Ports are the collaborators an instruction calls into.
type Ports struct {
	System SystemProgram
	Token  TokenProgram
	Swap   SwapEngine
}

// PortsFactory binds the collaborators to a single invocation.
type PortsFactory func(ctx *ledger.InvokeContext, ids ProgramIDs) *Ports

// NewInvokerPorts returns collaborators that issue cross program invocations
// to the configured program ids.
func NewInvokerPorts(ctx *ledger.InvokeContext, ids ProgramIDs) *Ports {
	return &Ports{
		System: &systemInvoker{ctx: ctx, ids: ids},
		Token:  &tokenInvoker{ctx: ctx, ids: ids},
		Swap:   &swapInvoker{ctx: ctx, ids: ids},
	}
}

type systemInvoker struct {
	ctx *ledger.InvokeContext
	ids ProgramIDs
}

func (s *systemInvoker) Allocate(address ed25519.PublicKey, size uint64, signerSeeds [][]byte) error {
	ix := system.Allocate(address, size)
	ix.Program = s.ids.System
	return invoke(s.ctx, ix, signerSeeds)
}

func (s *systemInvoker) Assign(address, owner ed25519.PublicKey, signerSeeds [][]byte) error {
	ix := system.Assign(address, owner)
	ix.Program = s.ids.System
	return invoke(s.ctx, ix, signerSeeds)
}

func (s *systemInvoker) Transfer(from, to ed25519.PublicKey, lamports uint64) error {
	ix := system.Transfer(from, to, lamports)
	ix.Program = s.ids.System
	return invoke(s.ctx, ix, nil)
}

type tokenInvoker struct {
	ctx *ledger.InvokeContext
	ids ProgramIDs
}

func (t *tokenInvoker) CreateAssociatedAccount(funder, holding, wallet, mint ed25519.PublicKey) error {
	ix := token.NewCreateAssociatedTokenAccountInstruction(&token.CreateAssociatedTokenAccountAccounts{
		Subsidizer:        funder,
		Address:           holding,
		Wallet:            wallet,
		Mint:              mint,
		SystemProgram:     t.ids.System,
		TokenProgram:      t.ids.Token,
		AssociatedProgram: t.ids.AssociatedToken,
		RentSysVar:        system.RentSysVar,
	})
	return invoke(t.ctx, ix, nil)
}

func (t *tokenInvoker) SyncNative(holding ed25519.PublicKey) error {
	ix := token.SyncNative(holding)
	ix.Program = t.ids.Token
	return invoke(t.ctx, ix, nil)
}

func (t *tokenInvoker) CloseAccount(holding, destination, owner ed25519.PublicKey) error {
	ix := token.CloseAccount(holding, destination, owner)
	ix.Program = t.ids.Token
	return invoke(t.ctx, ix, nil)
}

type swapInvoker struct {
	ctx *ledger.InvokeContext
	ids ProgramIDs
}

func (s *swapInvoker) Swap(accounts *tokenswap.SwapInstructionAccounts, amountIn, minAmountOut uint64) error {
	ix := tokenswap.NewSwapInstruction(s.ids.Swap, accounts, &tokenswap.SwapInstructionArgs{
		AmountIn:         amountIn,
		MinimumAmountOut: minAmountOut,
	})
	return invoke(s.ctx, ix, nil)
}

func invoke(ctx *ledger.InvokeContext, ix solana.Instruction, signerSeeds [][]byte) error {
	if len(signerSeeds) == 0 {
		return ctx.Invoke(ix)
	}
	return ctx.Invoke(ix, signerSeeds)
}
