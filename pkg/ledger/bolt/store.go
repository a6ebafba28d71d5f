package bolt

import (
	"context"
	"crypto/ed25519"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/code-payments/swap-whitelist/pkg/ledger"
)

var (
	bucketAccounts = []byte("accounts")
)

// Store is a ledger.Store persisted in a single BoltDB file.
type Store struct {
	db *bolt.DB
}

// New opens (or creates) the database at path.
func New(path string, options *bolt.Options) (*Store, error) {
	if options == nil {
		options = &bolt.Options{Timeout: time.Second}
	} else if options.Timeout == 0 {
		options.Timeout = time.Second
	}

	db, err := bolt.Open(path, 0o600, options)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open ledger database")
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketAccounts)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to create accounts bucket")
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) reset() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketAccounts); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketAccounts)
		return err
	})
}

// GetAccount implements ledger.Store.GetAccount
func (s *Store) GetAccount(_ context.Context, address ed25519.PublicKey) (*ledger.Account, error) {
	var account *ledger.Account
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		account, err = get(tx.Bucket(bucketAccounts), address)
		return err
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// Update implements ledger.Store.Update
func (s *Store) Update(_ context.Context, fn func(tx ledger.Tx) error) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return fn(&boltTx{bucket: tx.Bucket(bucketAccounts)})
	})
}

type boltTx struct {
	bucket *bolt.Bucket
}

func (t *boltTx) GetAccount(address ed25519.PublicKey) (*ledger.Account, error) {
	return get(t.bucket, address)
}

func (t *boltTx) PutAccount(address ed25519.PublicKey, account *ledger.Account) error {
	return t.bucket.Put(address, account.Marshal())
}

func (t *boltTx) DeleteAccount(address ed25519.PublicKey) error {
	return t.bucket.Delete(address)
}

func get(bucket *bolt.Bucket, address ed25519.PublicKey) (*ledger.Account, error) {
	raw := bucket.Get(address)
	if raw == nil {
		return nil, ledger.ErrAccountNotFound
	}

	// Values are only valid for the life of the bolt transaction, Unmarshal
	// copies what it keeps.
	var account ledger.Account
	if err := account.Unmarshal(raw); err != nil {
		return nil, err
	}
	return &account, nil
}
