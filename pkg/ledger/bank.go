package ledger

import (
	"context"
	"crypto/ed25519"
	"sync"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/swap-whitelist/pkg/metrics"
	"github.com/code-payments/swap-whitelist/pkg/solana"
)

const (
	metricsStructName = "ledger.bank"
)

// Result describes a processed request.
type Result struct {
	RequestID string
	Slot      uint64
	Logs      []string
}

type request struct {
	id    string
	clock Clock
	logs  []string
}

// Bank executes signed transactions against a Store. Requests are processed
// one at a time, and each is committed all-or-nothing.
type Bank struct {
	log   *logrus.Entry
	store Store
	rent  Rent
	clock ClockSource

	mu       sync.Mutex
	slot     uint64
	programs map[string]Program
}

type Option func(b *Bank)

// WithRent overrides the default rent parameters.
func WithRent(rent Rent) Option {
	return func(b *Bank) {
		b.rent = rent
	}
}

// WithClock overrides the wall clock.
func WithClock(clock ClockSource) Option {
	return func(b *Bank) {
		b.clock = clock
	}
}

func NewBank(store Store, opts ...Option) *Bank {
	b := &Bank{
		log:      logrus.StandardLogger().WithField("type", "ledger/bank"),
		store:    store,
		rent:     DefaultRent(),
		clock:    WallClock,
		programs: make(map[string]Program),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// RegisterProgram makes program executable at the address.
func (b *Bank) RegisterProgram(address ed25519.PublicKey, program Program) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.programs[string(address)] = program
}

func (b *Bank) Rent() Rent {
	return b.rent
}

func (b *Bank) Store() Store {
	return b.store
}

// GetAccount returns the committed account at the address.
func (b *Bank) GetAccount(ctx context.Context, address ed25519.PublicKey) (*Account, error) {
	return b.store.GetAccount(ctx, address)
}

// Process verifies and executes the transaction. On failure no account is
// modified and a *solana.TransactionError is returned alongside the partial
// result, which carries the program logs.
func (b *Bank) Process(ctx context.Context, tx solana.Transaction) (*Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ctx, end := metrics.StartTransaction(ctx, "ledger.Process")
	defer end()

	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Process")
	defer tracer.End()

	b.slot++
	req := &request{
		id:    uuid.New().String(),
		clock: b.clock(b.slot),
	}
	result := &Result{
		RequestID: req.id,
		Slot:      b.slot,
	}

	log := b.log.WithFields(logrus.Fields{
		"method":  "Process",
		"request": req.id,
		"slot":    b.slot,
	})

	err := b.process(ctx, log, req, tx)
	result.Logs = req.logs
	if err != nil {
		tracer.OnError(err)
		log.WithError(err).Debug("request failed")
		return result, err
	}

	log.Trace("request committed")
	return result, nil
}

func (b *Bank) process(ctx context.Context, log *logrus.Entry, req *request, tx solana.Transaction) error {
	if err := tx.VerifySignatures(); err != nil {
		return solana.NewTransactionError(solana.TransactionErrorSignatureFailure, err)
	}

	instructions := make([]solana.Instruction, len(tx.Message.Instructions))
	for i := range tx.Message.Instructions {
		ix, err := solana.DecompileInstruction(tx.Message, i)
		if err != nil {
			return solana.NewTransactionError(solana.TransactionErrorSanitizeFailure, err)
		}

		if _, ok := b.programs[string(ix.Program)]; !ok {
			return solana.NewTransactionError(
				solana.TransactionErrorProgramAccountNotFound,
				errors.Errorf("program %s", base58.Encode(ix.Program)),
			)
		}

		instructions[i] = ix
	}

	err := b.store.Update(ctx, func(stx Tx) error {
		loaded := make(map[string]*Account, len(tx.Message.Accounts))
		for _, key := range tx.Message.Accounts {
			account, err := stx.GetAccount(key)
			if errors.Is(err, ErrAccountNotFound) {
				account = NewSystemAccount(0)
			} else if err != nil {
				return errors.Wrapf(err, "failed to load account %s", base58.Encode(key))
			}

			loaded[string(key)] = account
		}

		for i, ix := range instructions {
			accounts := make([]*AccountInfo, len(ix.Accounts))
			for j, meta := range ix.Accounts {
				accounts[j] = &AccountInfo{
					Key:        meta.PublicKey,
					IsSigner:   meta.IsSigner,
					IsWritable: meta.IsWritable,
					Account:    loaded[string(meta.PublicKey)],
				}
			}

			invokeCtx := &InvokeContext{
				ctx:      ctx,
				bank:     b,
				req:      req,
				depth:    1,
				log:      log.WithField("instruction", i),
				program:  ix.Program,
				accounts: accounts,
			}
			if err := invokeCtx.execute(b.programs[string(ix.Program)], ix.Data); err != nil {
				return solana.TransactionErrorFromInstructionError(&solana.InstructionError{
					Index: i,
					Err:   err,
				})
			}
		}

		for i, key := range tx.Message.Accounts {
			if !tx.Message.IsWritable(i) {
				continue
			}

			account := loaded[string(key)]
			if account.Lamports == 0 {
				if err := stx.DeleteAccount(key); err != nil {
					return errors.Wrapf(err, "failed to delete account %s", base58.Encode(key))
				}
				continue
			}

			if err := stx.PutAccount(key, account); err != nil {
				return errors.Wrapf(err, "failed to store account %s", base58.Encode(key))
			}
		}

		return nil
	})
	if err == nil {
		return nil
	}

	var txErr *solana.TransactionError
	if errors.As(err, &txErr) {
		return txErr
	}
	return errors.Wrap(err, "failed to commit request")
}

func (b *Bank) program(address ed25519.PublicKey) (Program, bool) {
	program, ok := b.programs[string(address)]
	return program, ok
}
