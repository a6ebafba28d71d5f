package tests

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/swap-whitelist/pkg/ledger"
	"github.com/code-payments/swap-whitelist/pkg/testutil"
)

func RunTests(t *testing.T, s ledger.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s ledger.Store){
		testRoundTrip,
		testDelete,
		testRollback,
		testReadYourWrites,
		testSetAccounts,
	} {
		tf(t, s)
		teardown()
	}
}

func testRoundTrip(t *testing.T, s ledger.Store) {
	t.Run("testRoundTrip", func(t *testing.T) {
		ctx := context.Background()

		address := testutil.GenerateSolanaKeys(t, 1)[0]
		owner := testutil.GenerateSolanaKeys(t, 1)[0]

		_, err := s.GetAccount(ctx, address)
		assert.Equal(t, ledger.ErrAccountNotFound, err)

		expected := &ledger.Account{
			Lamports:   12345,
			Data:       []byte{1, 2, 3, 4},
			Owner:      owner,
			Executable: true,
		}
		require.NoError(t, s.Update(ctx, func(tx ledger.Tx) error {
			return tx.PutAccount(address, expected)
		}))

		actual, err := s.GetAccount(ctx, address)
		require.NoError(t, err)
		assertEquivalentAccounts(t, expected, actual)

		// Mutating a returned account must not leak into the store.
		actual.Lamports = 1
		actual.Data[0] = 0xff

		actual, err = s.GetAccount(ctx, address)
		require.NoError(t, err)
		assertEquivalentAccounts(t, expected, actual)

		expected.Lamports = 999
		expected.Data = append(expected.Data, 5)
		require.NoError(t, s.Update(ctx, func(tx ledger.Tx) error {
			return tx.PutAccount(address, expected)
		}))

		actual, err = s.GetAccount(ctx, address)
		require.NoError(t, err)
		assertEquivalentAccounts(t, expected, actual)
	})
}

func testDelete(t *testing.T, s ledger.Store) {
	t.Run("testDelete", func(t *testing.T) {
		ctx := context.Background()

		address := testutil.GenerateSolanaKeys(t, 1)[0]

		// Deleting something that was never stored is not an error.
		require.NoError(t, s.Update(ctx, func(tx ledger.Tx) error {
			return tx.DeleteAccount(address)
		}))

		require.NoError(t, s.Update(ctx, func(tx ledger.Tx) error {
			return tx.PutAccount(address, ledger.NewSystemAccount(10))
		}))

		require.NoError(t, s.Update(ctx, func(tx ledger.Tx) error {
			return tx.DeleteAccount(address)
		}))

		_, err := s.GetAccount(ctx, address)
		assert.Equal(t, ledger.ErrAccountNotFound, err)
	})
}

func testRollback(t *testing.T, s ledger.Store) {
	t.Run("testRollback", func(t *testing.T) {
		ctx := context.Background()

		keys := testutil.GenerateSolanaKeys(t, 2)
		existing, created := keys[0], keys[1]

		require.NoError(t, s.Update(ctx, func(tx ledger.Tx) error {
			return tx.PutAccount(existing, ledger.NewSystemAccount(100))
		}))

		errAbort := errors.New("abort")
		err := s.Update(ctx, func(tx ledger.Tx) error {
			if err := tx.PutAccount(existing, ledger.NewSystemAccount(1)); err != nil {
				return err
			}
			if err := tx.PutAccount(created, ledger.NewSystemAccount(2)); err != nil {
				return err
			}
			return errAbort
		})
		assert.Equal(t, errAbort, err)

		actual, err := s.GetAccount(ctx, existing)
		require.NoError(t, err)
		assert.EqualValues(t, 100, actual.Lamports)

		_, err = s.GetAccount(ctx, created)
		assert.Equal(t, ledger.ErrAccountNotFound, err)

		err = s.Update(ctx, func(tx ledger.Tx) error {
			if err := tx.DeleteAccount(existing); err != nil {
				return err
			}
			return errAbort
		})
		assert.Equal(t, errAbort, err)

		_, err = s.GetAccount(ctx, existing)
		assert.NoError(t, err)
	})
}

func testReadYourWrites(t *testing.T, s ledger.Store) {
	t.Run("testReadYourWrites", func(t *testing.T) {
		ctx := context.Background()

		address := testutil.GenerateSolanaKeys(t, 1)[0]

		require.NoError(t, s.Update(ctx, func(tx ledger.Tx) error {
			_, err := tx.GetAccount(address)
			assert.Equal(t, ledger.ErrAccountNotFound, err)

			require.NoError(t, tx.PutAccount(address, ledger.NewSystemAccount(7)))

			account, err := tx.GetAccount(address)
			require.NoError(t, err)
			assert.EqualValues(t, 7, account.Lamports)

			require.NoError(t, tx.DeleteAccount(address))

			_, err = tx.GetAccount(address)
			assert.Equal(t, ledger.ErrAccountNotFound, err)

			return tx.PutAccount(address, ledger.NewSystemAccount(8))
		}))

		account, err := s.GetAccount(ctx, address)
		require.NoError(t, err)
		assert.EqualValues(t, 8, account.Lamports)
	})
}

func testSetAccounts(t *testing.T, s ledger.Store) {
	t.Run("testSetAccounts", func(t *testing.T) {
		ctx := context.Background()

		keys := testutil.GenerateSolanaKeys(t, 3)
		accounts := make(map[string]*ledger.Account)
		for i, key := range keys {
			accounts[string(key)] = ledger.NewSystemAccount(uint64(i + 1))
		}
		require.NoError(t, ledger.SetAccounts(ctx, s, accounts))

		for i, key := range keys {
			actual, err := s.GetAccount(ctx, key)
			require.NoError(t, err)
			assert.EqualValues(t, i+1, actual.Lamports)
			assert.True(t, actual.IsOwnedBy(accounts[string(key)].Owner))
		}
	})
}

func assertEquivalentAccounts(t *testing.T, obj1, obj2 *ledger.Account) {
	assert.Equal(t, obj1.Lamports, obj2.Lamports)
	assert.Equal(t, obj1.Data, obj2.Data)
	assert.Equal(t, ed25519.PublicKey(obj1.Owner), ed25519.PublicKey(obj2.Owner))
	assert.Equal(t, obj1.Executable, obj2.Executable)
}
