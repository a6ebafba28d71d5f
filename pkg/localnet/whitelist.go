package localnet

import (
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/swap-whitelist/pkg/solana"
	"github.com/code-payments/swap-whitelist/pkg/solana/system"
	"github.com/code-payments/swap-whitelist/pkg/whitelist"
)

// NewUserState generates a fresh redemption record key and the instruction
// that creates it, rent exempt and owned by the whitelist program. The record
// key must co-sign the transaction carrying the instruction.
func (l *Localnet) NewUserState(payer ed25519.PublicKey) (ed25519.PrivateKey, solana.Instruction, error) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, solana.Instruction{}, errors.Wrap(err, "failed to generate user state key")
	}

	size := uint64(whitelist.UserRedemptionStateAccountSize)
	ix := system.CreateAccount(payer, pub, l.ids.Whitelist, l.bank.Rent().MinimumBalance(size), size)
	ix.Program = l.ids.System

	return priv, ix, nil
}

// GetWhitelistConfig loads and decodes the config record at the address.
func (l *Localnet) GetWhitelistConfig(ctx context.Context, address ed25519.PublicKey) (*whitelist.WhitelistConfigAccount, error) {
	account, err := l.bank.GetAccount(ctx, address)
	if err != nil {
		return nil, err
	}

	var config whitelist.WhitelistConfigAccount
	if err := config.Unmarshal(account.Data); err != nil {
		return nil, err
	}
	return &config, nil
}

// GetUserState loads and decodes the redemption record at the address.
func (l *Localnet) GetUserState(ctx context.Context, address ed25519.PublicKey) (*whitelist.UserRedemptionStateAccount, error) {
	account, err := l.bank.GetAccount(ctx, address)
	if err != nil {
		return nil, err
	}

	var state whitelist.UserRedemptionStateAccount
	if err := state.Unmarshal(account.Data); err != nil {
		return nil, err
	}
	return &state, nil
}
