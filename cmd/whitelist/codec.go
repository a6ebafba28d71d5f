package main

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/code-payments/swap-whitelist/pkg/whitelist"
)

const (
	bumpFlagName      = "bump"
	priceFlagName     = "price"
	addressesFlagName = "addresses"
	amountFlagName    = "amount"
	inputFlagName     = "input"
	minOutputFlagName = "min-output"
)

var (
	decodeCmd = &cobra.Command{
		Use:   "decode",
		Short: "decode instruction data and program records",
	}

	decodeInstructionCmd = &cobra.Command{
		Use:   "instruction <hex|base64>",
		Short: "decode whitelist instruction data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := parseBytes(args[0])
			if err != nil {
				return err
			}

			ix, err := whitelist.DecodeInstruction(data)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", ix.Type(), ix)
			return nil
		},
	}

	decodeConfigCmd = &cobra.Command{
		Use:   "config <hex|base64>",
		Short: "decode a whitelist config record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := parseBytes(args[0])
			if err != nil {
				return err
			}

			var config whitelist.WhitelistConfigAccount
			if err := config.Unmarshal(data); err != nil {
				return errors.Wrapf(err, "expected %d bytes, got %d", whitelist.WhitelistConfigAccountSize, len(data))
			}

			fmt.Fprintln(cmd.OutOrStdout(), config.String())
			return nil
		},
	}

	decodeUserCmd = &cobra.Command{
		Use:   "user <hex|base64>",
		Short: "decode a user redemption record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := parseBytes(args[0])
			if err != nil {
				return err
			}

			var state whitelist.UserRedemptionStateAccount
			if err := state.Unmarshal(data); err != nil {
				return errors.Wrapf(err, "expected %d bytes, got %d", whitelist.UserRedemptionStateAccountSize, len(data))
			}

			fmt.Fprintln(cmd.OutOrStdout(), state.String())
			return nil
		},
	}

	encodeCmd = &cobra.Command{
		Use:   "encode",
		Short: "encode whitelist instruction data as base64",
	}

	encodeInitFlags struct {
		bump      uint8
		price     uint64
		addresses []string
	}

	encodeInitCmd = &cobra.Command{
		Use:   "init",
		Short: "encode InitWhitelist",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(encodeInitFlags.addresses) > whitelist.MaxAuthorizedAddresses {
				return errors.Errorf("at most %d addresses fit in a whitelist", whitelist.MaxAuthorizedAddresses)
			}

			ixArgs := &whitelist.InitWhitelistInstructionArgs{
				Bump:  encodeInitFlags.bump,
				Price: encodeInitFlags.price,
			}
			for i, address := range encodeInitFlags.addresses {
				key, err := parseKey(addressesFlagName, address)
				if err != nil {
					return err
				}
				ixArgs.AuthorizedAddresses[i] = key
			}
			for i := len(encodeInitFlags.addresses); i < whitelist.MaxAuthorizedAddresses; i++ {
				ixArgs.AuthorizedAddresses[i] = make(ed25519.PublicKey, ed25519.PublicKeySize)
			}

			return printInstruction(cmd, ixArgs)
		},
	}

	encodeAmountFlags struct {
		amount uint64
	}

	encodeCreateAndWrapCmd = &cobra.Command{
		Use:   "create-and-wrap",
		Short: "encode CreateAndWrap",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printInstruction(cmd, &whitelist.CreateAndWrapInstructionArgs{Amount: encodeAmountFlags.amount})
		},
	}

	encodeWrapCmd = &cobra.Command{
		Use:   "wrap",
		Short: "encode Wrap",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printInstruction(cmd, &whitelist.WrapInstructionArgs{Amount: encodeAmountFlags.amount})
		},
	}

	encodeUnwrapCmd = &cobra.Command{
		Use:   "unwrap",
		Short: "encode Unwrap",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printInstruction(cmd, &whitelist.UnwrapInstructionArgs{})
		},
	}

	encodeSwapFlags struct {
		input     uint64
		minOutput uint64
	}

	encodeSwapCmd = &cobra.Command{
		Use:   "swap",
		Short: "encode Swap",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printInstruction(cmd, &whitelist.SwapInstructionArgs{
				InputAmount:     encodeSwapFlags.input,
				MinOutputAmount: encodeSwapFlags.minOutput,
			})
		},
	}
)

func init() {
	decodeCmd.AddCommand(decodeInstructionCmd)
	decodeCmd.AddCommand(decodeConfigCmd)
	decodeCmd.AddCommand(decodeUserCmd)
	rootCmd.AddCommand(decodeCmd)

	encodeInitCmd.Flags().Uint8Var(&encodeInitFlags.bump, bumpFlagName, 0, "config address bump")
	encodeInitCmd.Flags().Uint64Var(&encodeInitFlags.price, priceFlagName, 0, "minimum native holding balance, in lamports")
	encodeInitCmd.Flags().StringSliceVar(&encodeInitFlags.addresses, addressesFlagName, nil, "base58 authorized addresses")
	_ = encodeInitCmd.MarkFlagRequired(bumpFlagName)
	_ = encodeInitCmd.MarkFlagRequired(priceFlagName)

	for _, cmd := range []*cobra.Command{encodeCreateAndWrapCmd, encodeWrapCmd} {
		cmd.Flags().Uint64Var(&encodeAmountFlags.amount, amountFlagName, 0, "lamports to wrap")
		_ = cmd.MarkFlagRequired(amountFlagName)
	}

	encodeSwapCmd.Flags().Uint64Var(&encodeSwapFlags.input, inputFlagName, 0, "native amount to swap")
	encodeSwapCmd.Flags().Uint64Var(&encodeSwapFlags.minOutput, minOutputFlagName, 0, "minimum target amount to receive")
	_ = encodeSwapCmd.MarkFlagRequired(inputFlagName)

	encodeCmd.AddCommand(encodeInitCmd)
	encodeCmd.AddCommand(encodeCreateAndWrapCmd)
	encodeCmd.AddCommand(encodeWrapCmd)
	encodeCmd.AddCommand(encodeUnwrapCmd)
	encodeCmd.AddCommand(encodeSwapCmd)
	rootCmd.AddCommand(encodeCmd)
}

func printInstruction(cmd *cobra.Command, ix whitelist.Instruction) error {
	fmt.Fprintln(cmd.OutOrStdout(), base64.StdEncoding.EncodeToString(ix.Encode()))
	return nil
}

// parseBytes accepts hex (optionally 0x prefixed) or standard base64.
func parseBytes(value string) ([]byte, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(value), "0x")
	if decoded, err := hex.DecodeString(trimmed); err == nil {
		return decoded, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(value))
	if err != nil {
		return nil, errors.New("input is neither hex nor base64")
	}
	return decoded, nil
}
