// Package localnet runs the whitelist program against an in-process ledger,
// alongside emulations of the system, token, associated token and token swap
// programs it calls into.
package localnet

import (
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/swap-whitelist/pkg/ledger"
	"github.com/code-payments/swap-whitelist/pkg/ledger/native"
	"github.com/code-payments/swap-whitelist/pkg/metrics"
	"github.com/code-payments/swap-whitelist/pkg/solana"
	"github.com/code-payments/swap-whitelist/pkg/solana/system"
	"github.com/code-payments/swap-whitelist/pkg/whitelist"
)

const (
	metricsStructName = "localnet"
)

type options struct {
	ledgerOpts     []ledger.Option
	whitelistOpts  []whitelist.Option
	configProvider whitelist.ConfigProvider
}

type Option func(o *options)

// WithLedgerOptions forwards options to the underlying bank.
func WithLedgerOptions(opts ...ledger.Option) Option {
	return func(o *options) {
		o.ledgerOpts = append(o.ledgerOpts, opts...)
	}
}

// WithWhitelistOptions forwards options to the whitelist program.
func WithWhitelistOptions(opts ...whitelist.Option) Option {
	return func(o *options) {
		o.whitelistOpts = append(o.whitelistOpts, opts...)
	}
}

// WithConfigProvider sets where program ids are read from. Defaults to the
// well known ids.
func WithConfigProvider(provider whitelist.ConfigProvider) Option {
	return func(o *options) {
		o.configProvider = provider
	}
}

// Localnet is a single node ledger with every program the whitelist flow
// touches registered at the configured ids.
type Localnet struct {
	log     *logrus.Entry
	bank    *ledger.Bank
	program *whitelist.Program
	ids     whitelist.ProgramIDs
}

// ErrUnsupportedSystemProgram is returned by New when the configured system
// program id is not the one ledger accounts are owned by.
var ErrUnsupportedSystemProgram = errors.New("localnet only runs the system program at its well known id")

func New(ctx context.Context, store ledger.Store, opts ...Option) (*Localnet, error) {
	o := &options{
		configProvider: whitelist.WithDefaults(),
	}
	for _, opt := range opts {
		opt(o)
	}

	program := whitelist.NewProgram(o.configProvider, o.whitelistOpts...)
	ids := program.ProgramIDs(ctx)
	if !ids.System.Equal(system.SystemAccount) {
		return nil, errors.Wrapf(ErrUnsupportedSystemProgram, "configured %s", base58.Encode(ids.System))
	}

	bank := ledger.NewBank(store, o.ledgerOpts...)
	bank.RegisterProgram(ids.System, native.SystemProgram)
	bank.RegisterProgram(ids.Token, native.NewTokenProgram(ids.NativeMint))
	bank.RegisterProgram(ids.AssociatedToken, native.AssociatedTokenProgram)
	bank.RegisterProgram(ids.Swap, native.TokenSwapProgram)
	bank.RegisterProgram(ids.Whitelist, program)

	return &Localnet{
		log:     logrus.StandardLogger().WithField("type", "localnet"),
		bank:    bank,
		program: program,
		ids:     ids,
	}, nil
}

func (l *Localnet) Bank() *ledger.Bank {
	return l.bank
}

func (l *Localnet) ProgramIDs() whitelist.ProgramIDs {
	return l.ids
}

// GetAccount returns the committed account, or nil if the address is empty.
func (l *Localnet) GetAccount(ctx context.Context, address ed25519.PublicKey) (*ledger.Account, error) {
	account, err := l.bank.GetAccount(ctx, address)
	if err == ledger.ErrAccountNotFound {
		return nil, nil
	}
	return account, err
}

// Fund credits lamports to an address outside of any transaction, creating a
// system account if nothing exists there yet.
func (l *Localnet) Fund(ctx context.Context, address ed25519.PublicKey, lamports uint64) error {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Fund")
	defer tracer.End()

	return l.bank.Store().Update(ctx, func(tx ledger.Tx) error {
		account, err := tx.GetAccount(address)
		if err == ledger.ErrAccountNotFound {
			account = ledger.NewSystemAccount(0)
		} else if err != nil {
			return err
		}

		account.Lamports += lamports
		return tx.PutAccount(address, account)
	})
}

// Submit compiles the instructions into a transaction paid for by the first
// signer, signs it with every signer and processes it.
func (l *Localnet) Submit(ctx context.Context, signers []ed25519.PrivateKey, instructions ...solana.Instruction) (*ledger.Result, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Submit")
	defer tracer.End()

	if len(signers) == 0 {
		return nil, errors.New("at least one signer is required")
	}

	payer := signers[0].Public().(ed25519.PublicKey)
	tx := solana.NewTransaction(payer, instructions...)
	if err := tx.Sign(signers...); err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	result, err := l.bank.Process(ctx, tx)

	log := l.log.WithFields(logrus.Fields{
		"method": "Submit",
		"payer":  base58.Encode(payer),
	})
	if result != nil {
		log = log.WithFields(logrus.Fields{
			"request": result.RequestID,
			"slot":    result.Slot,
		})
		for _, line := range result.Logs {
			log.Trace(line)
		}
	}
	if err != nil {
		log.WithError(err).Debug("transaction failed")
		return result, err
	}

	log.Debug("transaction processed")
	return result, nil
}
