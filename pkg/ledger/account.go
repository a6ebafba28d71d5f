package ledger

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/swap-whitelist/pkg/solana/binary"
	"github.com/code-payments/swap-whitelist/pkg/solana/system"
)

const accountHeaderSize = (8 + // lamports
	1 + // executable
	32) // owner

// Account is the persisted state at a single address.
type Account struct {
	Lamports   uint64
	Data       []byte
	Owner      ed25519.PublicKey
	Executable bool
}

// NewSystemAccount returns an empty, system owned account holding lamports.
func NewSystemAccount(lamports uint64) *Account {
	return &Account{
		Lamports: lamports,
		Owner:    system.SystemAccount,
	}
}

func (a *Account) Clone() *Account {
	cloned := &Account{
		Lamports:   a.Lamports,
		Executable: a.Executable,
	}
	if a.Data != nil {
		cloned.Data = append([]byte{}, a.Data...)
	}
	if a.Owner != nil {
		cloned.Owner = append(ed25519.PublicKey{}, a.Owner...)
	}
	return cloned
}

// IsOwnedBy reports whether program owns the account.
func (a *Account) IsOwnedBy(program ed25519.PublicKey) bool {
	return bytes.Equal(a.Owner, program)
}

func (a *Account) Marshal() []byte {
	b := make([]byte, accountHeaderSize+len(a.Data))

	var offset int
	binary.PutUint64(b[offset:], a.Lamports, &offset)
	binary.PutBool(b[offset:], a.Executable, &offset)
	binary.PutKey32(b[offset:], a.Owner, &offset)
	copy(b[offset:], a.Data)

	return b
}

func (a *Account) Unmarshal(b []byte) error {
	if err := binary.CheckLen(b, 0, accountHeaderSize); err != nil {
		return errors.Wrap(err, "invalid account encoding")
	}

	var offset int
	binary.GetUint64(b[offset:], &a.Lamports, &offset)
	binary.GetBool(b[offset:], &a.Executable, &offset)
	binary.GetKey32(b[offset:], &a.Owner, &offset)
	a.Data = append([]byte{}, b[offset:]...)

	return nil
}
