package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
	"github.com/iov-one/wallet/x/multisig"
	"github.com/spf13/cobra"
)

func (c *cli) ownersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "owners",
		Short: "Print the wallet address, owners and required confirmations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withEngine(cmd, false, func(ctx wallet.Context, e *multisig.Engine) error {
				owners, err := e.Owners(ctx)
				if err != nil {
					return err
				}
				required, err := e.Required(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), multisig.Configuration{
					Address:  e.Address(),
					Owners:   owners,
					Required: required,
				})
			})
		},
	}
}

func (c *cli) transactionsCmd() *cobra.Command {
	var (
		from, to          uint64
		pending, executed bool
	)
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List transactions",
		Long: `List transactions in ascending ID order, one per line: the ID, the status,
the destination and the value.

Use --from and --to to select the window [from, to) of the filtered list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withEngine(cmd, false, func(ctx wallet.Context, e *multisig.Engine) error {
				ids, err := e.TransactionIDs(ctx, from, to, pending, executed)
				if err != nil {
					return err
				}
				for _, id := range ids {
					t, err := e.Transaction(ctx, id)
					if err != nil {
						return err
					}
					status := "pending"
					if t.Executed {
						status = "executed"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%d\n", id, status, t.Destination, t.Value)
				}
				return nil
			})
		},
	}
	cmd.Flags().Uint64Var(&from, "from", 0, "first position of the window")
	cmd.Flags().Uint64Var(&to, "to", math.MaxUint64, "end position of the window, excluded")
	cmd.Flags().BoolVar(&pending, "pending", true, "include pending transactions")
	cmd.Flags().BoolVar(&executed, "executed", true, "include executed transactions")
	return cmd
}

type transactionView struct {
	ID            uint64           `json:"id"`
	Destination   wallet.Address   `json:"destination"`
	Value         uint64           `json:"value"`
	Data          string           `json:"data"`
	Executed      bool             `json:"executed"`
	Confirmations []wallet.Address `json:"confirmations"`
	Confirmed     bool             `json:"confirmed"`
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <transaction id>",
		Short: "Print a transaction with the owners that confirmed it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.withEngine(cmd, false, func(ctx wallet.Context, e *multisig.Engine) error {
				t, err := e.Transaction(ctx, id)
				if err != nil {
					return err
				}
				confirmations, err := e.Confirmations(ctx, id)
				if err != nil {
					return err
				}
				confirmed, err := e.IsConfirmed(ctx, id)
				if err != nil {
					return err
				}
				view := transactionView{
					ID:            id,
					Destination:   t.Destination,
					Value:         t.Value,
					Executed:      t.Executed,
					Confirmations: confirmations,
					Confirmed:     confirmed,
				}
				if len(t.Data) > 0 {
					view.Data = hexutil.Encode(t.Data)
				}
				return printJSON(cmd.OutOrStdout(), view)
			})
		},
	}
}

func printJSON(w io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}
