package main

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/code-payments/swap-whitelist/pkg/solana/token"
	"github.com/code-payments/swap-whitelist/pkg/whitelist"
)

const (
	creatorFlagName     = "creator"
	targetTokenFlagName = "target-token"
	walletFlagName      = "wallet"
	programFlagName     = "program"
)

var (
	addressCmd = &cobra.Command{
		Use:   "address",
		Short: "derive program addresses",
	}

	addressConfigFlags struct {
		creator     string
		targetToken string
		program     string
	}

	addressConfigCmd = &cobra.Command{
		Use:   "config",
		Short: "derive the whitelist config address and bump",
		RunE: func(cmd *cobra.Command, args []string) error {
			creator, err := parseKey(creatorFlagName, addressConfigFlags.creator)
			if err != nil {
				return err
			}
			targetToken, err := parseKey(targetTokenFlagName, addressConfigFlags.targetToken)
			if err != nil {
				return err
			}

			program := programIDs(commandContext()).Whitelist
			if addressConfigFlags.program != "" {
				if program, err = parseKey(programFlagName, addressConfigFlags.program); err != nil {
					return err
				}
			}

			address, bump, err := whitelist.GetWhitelistConfigAddress(&whitelist.GetWhitelistConfigAddressArgs{
				Program:            program,
				Creator:            creator,
				TargetTokenAccount: targetToken,
			})
			if err != nil {
				return errors.Wrap(err, "failed to derive config address")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "address: %s\nbump: %d\n", base58.Encode(address), bump)
			return nil
		},
	}

	addressHoldingFlags struct {
		wallet string
	}

	addressHoldingCmd = &cobra.Command{
		Use:   "holding",
		Short: "derive the associated native holding of a wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			wallet, err := parseKey(walletFlagName, addressHoldingFlags.wallet)
			if err != nil {
				return err
			}

			ids := programIDs(commandContext())
			address, err := token.GetAssociatedAccountWithPrograms(wallet, ids.NativeMint, ids.AssociatedToken, ids.Token)
			if err != nil {
				return errors.Wrap(err, "failed to derive holding address")
			}

			fmt.Fprintln(cmd.OutOrStdout(), base58.Encode(address))
			return nil
		},
	}
)

func init() {
	addressConfigCmd.Flags().StringVar(&addressConfigFlags.creator, creatorFlagName, "", "base58 creator address")
	addressConfigCmd.Flags().StringVar(&addressConfigFlags.targetToken, targetTokenFlagName, "", "base58 address of the pool's target token reserve")
	addressConfigCmd.Flags().StringVar(&addressConfigFlags.program, programFlagName, "", "base58 whitelist program id; configured id when empty")
	_ = addressConfigCmd.MarkFlagRequired(creatorFlagName)
	_ = addressConfigCmd.MarkFlagRequired(targetTokenFlagName)

	addressHoldingCmd.Flags().StringVar(&addressHoldingFlags.wallet, walletFlagName, "", "base58 wallet address")
	_ = addressHoldingCmd.MarkFlagRequired(walletFlagName)

	addressCmd.AddCommand(addressConfigCmd)
	addressCmd.AddCommand(addressHoldingCmd)
	rootCmd.AddCommand(addressCmd)
}

func parseKey(name, value string) (ed25519.PublicKey, error) {
	decoded, err := base58.Decode(value)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid --%s", name)
	}
	if len(decoded) != ed25519.PublicKeySize {
		return nil, errors.Errorf("invalid --%s: expected %d bytes, got %d", name, ed25519.PublicKeySize, len(decoded))
	}
	return decoded, nil
}
