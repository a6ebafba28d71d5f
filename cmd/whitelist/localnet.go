package main

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"io"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/code-payments/swap-whitelist/pkg/ledger"
	"github.com/code-payments/swap-whitelist/pkg/ledger/bolt"
	"github.com/code-payments/swap-whitelist/pkg/ledger/memory"
	"github.com/code-payments/swap-whitelist/pkg/localnet"
	"github.com/code-payments/swap-whitelist/pkg/solana/token"
	"github.com/code-payments/swap-whitelist/pkg/whitelist"
)

const (
	dbFlagName          = "db"
	localnetFundingFlag = "funding"
)

var (
	localnetFlags struct {
		db      string
		price   uint64
		funding uint64
		amount  uint64
	}

	localnetCmd = &cobra.Command{
		Use:   "localnet",
		Short: "run a whitelist redemption end to end against a local ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext()

			var store ledger.Store = memory.New()
			if localnetFlags.db != "" {
				boltStore, err := bolt.New(localnetFlags.db, nil)
				if err != nil {
					return err
				}
				defer boltStore.Close()
				store = boltStore
			}

			ln, err := localnet.New(ctx, store, localnet.WithConfigProvider(configProvider()))
			if err != nil {
				return err
			}
			return runScenario(ctx, cmd.OutOrStdout(), ln)
		},
	}
)

func init() {
	localnetCmd.Flags().StringVar(&localnetFlags.db, dbFlagName, "", "bolt database path; in memory when empty")
	localnetCmd.Flags().Uint64Var(&localnetFlags.price, priceFlagName, 1_000_000, "whitelist price, in lamports")
	localnetCmd.Flags().Uint64Var(&localnetFlags.funding, localnetFundingFlag, 10_000_000_000, "lamports given to every generated wallet")
	localnetCmd.Flags().Uint64Var(&localnetFlags.amount, amountFlagName, 5_000_000, "lamports each user wraps before swapping")

	rootCmd.AddCommand(localnetCmd)
}

// runScenario creates a pool and a whitelist, then has every whitelisted user
// wrap native currency and redeem once.
func runScenario(ctx context.Context, out io.Writer, ln *localnet.Localnet) error {
	ids := ln.ProgramIDs()

	creator, err := newKeypair()
	if err != nil {
		return err
	}
	if err := ln.Fund(ctx, pub(creator), localnetFlags.funding); err != nil {
		return err
	}

	pool, err := ln.CreatePool(ctx, &localnet.CreatePoolArgs{
		TokenBPrice:     1_000,
		NativeLiquidity: 1_000_000_000,
		TargetLiquidity: 1_000_000,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "pool: %s\n", base58.Encode(pool.Swap))

	configAddress, bump, err := whitelist.GetWhitelistConfigAddress(&whitelist.GetWhitelistConfigAddressArgs{
		Program:            ids.Whitelist,
		Creator:            pub(creator),
		TargetTokenAccount: pool.TargetReserve,
	})
	if err != nil {
		return err
	}

	users := make([]ed25519.PrivateKey, whitelist.MaxAuthorizedAddresses)
	initArgs := &whitelist.InitWhitelistInstructionArgs{
		Bump:  bump,
		Price: localnetFlags.price,
	}
	for i := range users {
		if users[i], err = newKeypair(); err != nil {
			return err
		}
		if err := ln.Fund(ctx, pub(users[i]), localnetFlags.funding); err != nil {
			return err
		}
		initArgs.AuthorizedAddresses[i] = pub(users[i])
	}

	_, err = ln.Submit(ctx, []ed25519.PrivateKey{creator}, whitelist.NewInitWhitelistInstruction(
		ids.Whitelist,
		&whitelist.InitWhitelistInstructionAccounts{
			Creator:            pub(creator),
			Config:             configAddress,
			SwapPool:           pool.Swap,
			TargetMint:         pool.TargetMint,
			TargetTokenAccount: pool.TargetReserve,
			NativeTokenAccount: pool.NativeReserve,
			SystemProgram:      ids.System,
		},
		initArgs,
	))
	if err != nil {
		return errors.Wrap(err, "failed to initialize whitelist")
	}
	fmt.Fprintf(out, "whitelist: %s\n", base58.Encode(configAddress))

	for _, user := range users {
		holding, err := token.GetAssociatedAccountWithPrograms(pub(user), ids.NativeMint, ids.AssociatedToken, ids.Token)
		if err != nil {
			return err
		}
		target, err := ln.CreateTokenHolding(ctx, pub(user), pool.TargetMint, 0)
		if err != nil {
			return err
		}

		_, err = ln.Submit(ctx, []ed25519.PrivateKey{user}, whitelist.NewCreateAndWrapInstruction(
			ids.Whitelist,
			&whitelist.CreateAndWrapInstructionAccounts{
				Funder:                 pub(user),
				Holding:                holding,
				NativeMint:             ids.NativeMint,
				SystemProgram:          ids.System,
				TokenProgram:           ids.Token,
				AssociatedTokenProgram: ids.AssociatedToken,
			},
			&whitelist.CreateAndWrapInstructionArgs{Amount: localnetFlags.amount},
		))
		if err != nil {
			return errors.Wrapf(err, "failed to wrap for %s", base58.Encode(pub(user)))
		}

		native, err := ln.GetTokenAccount(ctx, holding)
		if err != nil {
			return err
		}

		stateKey, createState, err := ln.NewUserState(pub(user))
		if err != nil {
			return err
		}

		_, err = ln.Submit(ctx, []ed25519.PrivateKey{user, stateKey}, createState, whitelist.NewSwapInstruction(
			ids.Whitelist,
			&whitelist.SwapInstructionAccounts{
				User:                  pub(user),
				UserState:             pub(stateKey),
				Config:                configAddress,
				SwapPool:              pool.Swap,
				SwapAuthority:         pool.Authority,
				UserTransferAuthority: pub(user),
				UserNativeHolding:     holding,
				UserTargetHolding:     target,
				PoolNativeReserve:     pool.NativeReserve,
				PoolTargetReserve:     pool.TargetReserve,
				PoolMint:              pool.PoolMint,
				PoolFeeAccount:        pool.PoolFee,
				HostFeeAccount:        pool.HostFee,
				TokenProgram:          ids.Token,
				SwapProgram:           ids.Swap,
			},
			&whitelist.SwapInstructionArgs{
				InputAmount:     native.Amount,
				MinOutputAmount: 1,
			},
		))
		if err != nil {
			fmt.Fprintf(out, "user %s: rejected: %v\n", base58.Encode(pub(user)), err)
			continue
		}

		state, err := ln.GetUserState(ctx, pub(stateKey))
		if err != nil {
			return err
		}
		received, err := ln.GetTokenAccount(ctx, target)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "user %s: received %d, %s\n", base58.Encode(pub(user)), received.Amount, state)
	}

	return nil
}

func newKeypair() (ed25519.PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate keypair")
	}
	return priv, nil
}

func pub(key ed25519.PrivateKey) ed25519.PublicKey {
	return key.Public().(ed25519.PublicKey)
}
