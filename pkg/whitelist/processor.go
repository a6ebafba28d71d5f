package whitelist

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/swap-whitelist/pkg/ledger"
	"github.com/code-payments/swap-whitelist/pkg/metrics"
	"github.com/code-payments/swap-whitelist/pkg/solana"
	"github.com/code-payments/swap-whitelist/pkg/solana/token"
)

const (
	metricsStructName = "whitelist.program"
)

// Program executes whitelist instructions. It is stateless across
// invocations; everything it reads or writes lives in the accounts handed to
// it.
type Program struct {
	log      *logrus.Entry
	conf     *conf
	newPorts PortsFactory
}

type Option func(p *Program)

// WithPorts overrides how collaborators are bound to an invocation.
func WithPorts(factory PortsFactory) Option {
	return func(p *Program) {
		p.newPorts = factory
	}
}

func NewProgram(configProvider ConfigProvider, opts ...Option) *Program {
	p := &Program{
		log:      logrus.StandardLogger().WithField("program", "whitelist"),
		conf:     configProvider(),
		newPorts: NewInvokerPorts,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// ProgramIDs returns the well known addresses the program is configured with.
func (p *Program) ProgramIDs(ctx context.Context) ProgramIDs {
	return p.conf.programIDs(ctx)
}

func (p *Program) Execute(ctx *ledger.InvokeContext, data []byte) error {
	ids := p.conf.programIDs(ctx.Context())
	if !bytes.Equal(ctx.ProgramID(), ids.Whitelist) {
		return errors.Wrapf(solana.InstructionErrorIncorrectProgramID, "invoked as %s", base58.Encode(ctx.ProgramID()))
	}

	ix, err := DecodeInstruction(data)
	if err != nil {
		p.log.WithError(err).Debug("failed to decode instruction")
		metrics.RecordCount(ctx.Context(), "WhitelistRejected", 1)
		return err
	}

	tracer := metrics.TraceMethodCall(ctx.Context(), metricsStructName, ix.Type().String())
	defer tracer.End()

	inv := &invocation{
		ctx:         ctx,
		ids:         ids,
		ports:       p.newPorts(ctx, ids),
		instruction: ix.Type(),
		log:         p.log.WithField("method", ix.Type().String()),
	}

	ctx.Log("Instruction: %s", ix.Type())

	switch args := ix.(type) {
	case *InitWhitelistInstructionArgs:
		err = inv.initWhitelist(args)
	case *CreateAndWrapInstructionArgs:
		err = inv.createAndWrap(args)
	case *WrapInstructionArgs:
		err = inv.wrap(args)
	case *UnwrapInstructionArgs:
		err = inv.unwrap(args)
	case *SwapInstructionArgs:
		err = inv.swap(args)
	default:
		err = errors.Wrapf(InvalidInstruction, "unhandled instruction %T", ix)
	}

	if err != nil {
		tracer.OnError(err)
		metrics.RecordCount(ctx.Context(), "WhitelistRejected", 1)
		return err
	}
	return nil
}

// invocation carries the state of a single instruction being processed.
type invocation struct {
	ctx         *ledger.InvokeContext
	ids         ProgramIDs
	ports       *Ports
	instruction InstructionType
	log         *logrus.Entry
}

func (inv *invocation) accounts(n int) ([]*ledger.AccountInfo, error) {
	accounts := inv.ctx.Accounts()
	if len(accounts) < n {
		return nil, inv.reject(solana.InstructionErrorNotEnoughAccountKeys, "expected %d accounts, got %d", n, len(accounts))
	}
	return accounts, nil
}

// reject records why the instruction failed and returns err annotated with
// the reason.
func (inv *invocation) reject(err error, format string, args ...interface{}) error {
	reason := fmt.Sprintf(format, args...)

	inv.log.WithError(err).Debug(reason)
	inv.ctx.Log("%s: %s", inv.instruction, reason)
	return errors.Wrap(err, reason)
}

func (inv *invocation) decodeHolding(info *ledger.AccountInfo) (*token.Account, error) {
	var state token.Account
	if !state.Unmarshal(info.Data) {
		return nil, inv.reject(solana.InstructionErrorInvalidAccountData, "%s is not a token account", info)
	}
	if !state.IsInitialized() {
		return nil, inv.reject(solana.InstructionErrorUninitializedAccount, "token account %s is not initialized", info)
	}
	return &state, nil
}

func sameKey(a, b ed25519.PublicKey) bool {
	return bytes.Equal(a, b)
}
