package main

import (
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
	"github.com/iov-one/wallet/x/multisig"
	"github.com/spf13/cobra"
)

func (c *cli) encodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the call data of a wallet governance function",
		Long: `Print the call data of a wallet governance function. Submit it with the
wallet itself as the destination to change the owners or the requirement.`,
	}
	cmd.AddCommand(
		encodeAddressCmd("add-owner <owner>", "Add an owner", 1, func(a []wallet.Address) wallet.Msg {
			return &multisig.AddOwnerMsg{Owner: a[0]}
		}),
		encodeAddressCmd("remove-owner <owner>", "Remove an owner", 1, func(a []wallet.Address) wallet.Msg {
			return &multisig.RemoveOwnerMsg{Owner: a[0]}
		}),
		encodeAddressCmd("replace-owner <owner> <new owner>", "Replace an owner, keeping its position", 2, func(a []wallet.Address) wallet.Msg {
			return &multisig.ReplaceOwnerMsg{Owner: a[0], NewOwner: a[1]}
		}),
		&cobra.Command{
			Use:   "change-requirement <required>",
			Short: "Change the number of required confirmations",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := strconv.ParseUint(args[0], 10, 64)
				if err != nil {
					return errors.Wrapf(errors.ErrInput, "required %q", args[0])
				}
				return printCall(cmd, &multisig.ChangeRequirementMsg{Required: n})
			},
		},
	)
	return cmd
}

func encodeAddressCmd(use, short string, n int, build func([]wallet.Address) wallet.Msg) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(n),
		RunE: func(cmd *cobra.Command, args []string) error {
			addrs := make([]wallet.Address, len(args))
			for i, s := range args {
				a, err := wallet.ParseAddress(s)
				if err != nil {
					return err
				}
				addrs[i] = a
			}
			return printCall(cmd, build(addrs))
		},
	}
}

func printCall(cmd *cobra.Command, msg wallet.Msg) error {
	data, err := multisig.EncodeCall(msg)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(data))
	return nil
}
