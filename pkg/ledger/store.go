package ledger

import (
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"
)

var (
	ErrAccountNotFound = errors.New("account not found")
)

// Store persists accounts. Update runs fn against a consistent view and
// commits every write it made only if fn returns nil.
type Store interface {
	// GetAccount returns the committed account at the address, or
	// ErrAccountNotFound.
	GetAccount(ctx context.Context, address ed25519.PublicKey) (*Account, error)

	// Update applies fn atomically. A non-nil error from fn discards all
	// of its writes.
	Update(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the view of the store within Update. Accounts returned by GetAccount
// are copies; writes must go through PutAccount.
type Tx interface {
	GetAccount(address ed25519.PublicKey) (*Account, error)
	PutAccount(address ed25519.PublicKey, account *Account) error
	DeleteAccount(address ed25519.PublicKey) error
}

// SetAccounts writes accounts outside of any transaction processing. It is
// used to seed genesis state.
func SetAccounts(ctx context.Context, store Store, accounts map[string]*Account) error {
	return store.Update(ctx, func(tx Tx) error {
		for address, account := range accounts {
			if err := tx.PutAccount(ed25519.PublicKey(address), account); err != nil {
				return err
			}
		}
		return nil
	})
}
