package memory

import (
	"context"
	"crypto/ed25519"
	"sync"

	"github.com/code-payments/swap-whitelist/pkg/ledger"
)

type store struct {
	mu       sync.RWMutex
	accounts map[string]*ledger.Account
}

// New returns an in memory ledger.Store.
func New() ledger.Store {
	return &store{
		accounts: make(map[string]*ledger.Account),
	}
}

func (s *store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = make(map[string]*ledger.Account)
}

// GetAccount implements ledger.Store.GetAccount
func (s *store) GetAccount(_ context.Context, address ed25519.PublicKey) (*ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[string(address)]
	if !ok {
		return nil, ledger.ErrAccountNotFound
	}
	return account.Clone(), nil
}

// Update implements ledger.Store.Update
func (s *store) Update(_ context.Context, fn func(tx ledger.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &tx{
		committed: s.accounts,
		staged:    make(map[string]*ledger.Account),
		deleted:   make(map[string]struct{}),
	}
	if err := fn(tx); err != nil {
		return err
	}

	for address := range tx.deleted {
		delete(s.accounts, address)
	}
	for address, account := range tx.staged {
		s.accounts[address] = account
	}
	return nil
}

type tx struct {
	committed map[string]*ledger.Account
	staged    map[string]*ledger.Account
	deleted   map[string]struct{}
}

func (t *tx) GetAccount(address ed25519.PublicKey) (*ledger.Account, error) {
	key := string(address)

	if _, ok := t.deleted[key]; ok {
		return nil, ledger.ErrAccountNotFound
	}
	if account, ok := t.staged[key]; ok {
		return account.Clone(), nil
	}
	if account, ok := t.committed[key]; ok {
		return account.Clone(), nil
	}
	return nil, ledger.ErrAccountNotFound
}

func (t *tx) PutAccount(address ed25519.PublicKey, account *ledger.Account) error {
	key := string(address)

	delete(t.deleted, key)
	t.staged[key] = account.Clone()
	return nil
}

func (t *tx) DeleteAccount(address ed25519.PublicKey) error {
	key := string(address)

	delete(t.staged, key)
	t.deleted[key] = struct{}{}
	return nil
}
