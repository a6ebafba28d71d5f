package bolt

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/code-payments/swap-whitelist/pkg/ledger/tests"
)

func TestLedgerBoltStore(t *testing.T) {
	testStore, err := New(filepath.Join(t.TempDir(), "ledger.db"), nil)
	require.NoError(t, err)
	defer testStore.Close()

	teardown := func() {
		require.NoError(t, testStore.reset())
	}
	tests.RunTests(t, testStore, teardown)
}
