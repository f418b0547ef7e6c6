package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/crypto"
	"github.com/iov-one/wallet/errors"
	"github.com/iov-one/wallet/x/multisig"
	"github.com/spf13/cobra"
)

func (c *cli) keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new private key and print its address",
		Long: `Generate a new private key and print its address.

The key is written to the file given with --key. This command fails if the
file already exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.keyPath()
			if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
				return errors.Wrapf(errors.ErrInput, "create key directory: %s", err)
			}
			key := crypto.GenPrivKeyEd25519()
			if err := crypto.SaveKey(path, key); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key.PublicKey().Address())
			return nil
		},
	}
}

func (c *cli) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Deploy the wallet described by the genesis file",
		Long: `Deploy the wallet described by the "multisig" section of the genesis file
and print the wallet address.

	{
	  "multisig": {
	    "address": "0x...",
	    "owners": ["0x...", "0x..."],
	    "required": 2
	  }
	}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := ioutil.ReadFile(c.genesisPath())
			if err != nil {
				return errors.Wrapf(errors.ErrNotFound, "genesis: %s", err)
			}
			var opts wallet.Options
			if err := json.Unmarshal(raw, &opts); err != nil {
				return errors.Wrapf(errors.ErrInput, "genesis: %s", err)
			}

			db, err := c.openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			kv := db.Adapter()
			if err := (multisig.Initializer{}).FromGenesis(opts, kv); err != nil {
				return err
			}
			conf, err := multisig.LoadConfiguration(kv)
			if err != nil {
				return err
			}
			if _, err := db.Commit(); err != nil {
				return err
			}
			c.logger.Info("wallet deployed", "address", conf.Address, "owners", len(conf.Owners), "required", conf.Required)
			fmt.Fprintln(cmd.OutOrStdout(), conf.Address)
			return nil
		},
	}
}

func (c *cli) submitCmd() *cobra.Command {
	var (
		value uint64
		data  string
	)
	cmd := &cobra.Command{
		Use:   "submit <destination>",
		Short: "Submit a transaction and print its ID",
		Long: `Submit a transaction and print its ID. The submission counts as the
confirmation of the sender.

Use "self" as the destination to call the wallet itself, for example with the
call data created by the encode command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := decodeHex(data)
			if err != nil {
				return err
			}
			return c.withEngine(cmd, true, func(ctx wallet.Context, e *multisig.Engine) error {
				destination, err := parseDestination(args[0], e)
				if err != nil {
					return err
				}
				id, err := e.Submit(ctx, destination, value, payload)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
				return nil
			})
		},
	}
	cmd.Flags().Uint64Var(&value, "value", 0, "value transferred with the call")
	cmd.Flags().StringVar(&data, "data", "", "hex encoded call data")
	return cmd
}

func (c *cli) confirmCmd() *cobra.Command {
	return c.transactionCmd("confirm", "Confirm a transaction, executing it when enough owners did",
		func(ctx wallet.Context, e *multisig.Engine, id uint64) error {
			return e.Confirm(ctx, id)
		})
}

func (c *cli) revokeCmd() *cobra.Command {
	return c.transactionCmd("revoke", "Revoke a confirmation of a pending transaction",
		func(ctx wallet.Context, e *multisig.Engine, id uint64) error {
			return e.Revoke(ctx, id)
		})
}

func (c *cli) executeCmd() *cobra.Command {
	return c.transactionCmd("execute", "Execute a confirmed transaction",
		func(ctx wallet.Context, e *multisig.Engine, id uint64) error {
			return e.Execute(ctx, id)
		})
}

// transactionCmd returns a command calling fn with the transaction ID given
// as the only argument.
func (c *cli) transactionCmd(use, short string, fn func(wallet.Context, *multisig.Engine, uint64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <transaction id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.withEngine(cmd, true, func(ctx wallet.Context, e *multisig.Engine) error {
				return fn(ctx, e, id)
			})
		},
	}
}

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInput, "transaction id %q", s)
	}
	return id, nil
}

func parseDestination(s string, e *multisig.Engine) (wallet.Address, error) {
	if s == "self" {
		return e.Address(), nil
	}
	addr, err := wallet.ParseAddress(s)
	if err != nil {
		return nil, err
	}
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "destination")
	}
	return addr, nil
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "call data: %s", err)
	}
	return b, nil
}
