package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagHome     = "home"
	flagLogLevel = "log-level"
	flagKey      = "key"
	flagGenesis  = "genesis"
	flagEvents   = "events"

	envPrefix = "WALLETD"
)

// cli holds the configuration shared by all commands.
type cli struct {
	v      *viper.Viper
	logger log.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{
		v:      viper.New(),
		logger: log.NewNopLogger(),
	}

	root := &cobra.Command{
		Use:               "walletd",
		Short:             "Multisig wallet kept in a local database",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	fl := root.PersistentFlags()
	fl.String(flagHome, defaultHome(), "directory to store files under")
	fl.String(flagLogLevel, "info", "log level, one of debug, info, error or none")
	fl.String(flagKey, "", "private key file used to authenticate, defaults to <home>/key.json")
	fl.String(flagGenesis, "", "genesis file, defaults to <home>/genesis.json")
	fl.String(flagEvents, "multisig.event EXISTS", "query selecting the events printed after a call")

	root.AddCommand(
		c.keygenCmd(),
		c.initCmd(),
		c.submitCmd(),
		c.confirmCmd(),
		c.revokeCmd(),
		c.executeCmd(),
		c.encodeCmd(),
		c.ownersCmd(),
		c.transactionsCmd(),
		c.showCmd(),
		versionCmd(),
	)
	return root
}

func defaultHome() string {
	return filepath.Join(os.ExpandEnv("$HOME"), ".walletd")
}

// setup binds flags, environment and the optional config file and creates
// the logger. It runs before every command.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	if err := c.v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	c.v.SetConfigName("config")
	c.v.AddConfigPath(c.home())
	if err := c.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return errors.Wrapf(errors.ErrInput, "config: %s", err)
		}
	}

	opt, err := log.AllowLevel(c.v.GetString(flagLogLevel))
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	logger := log.NewTMLogger(log.NewSyncWriter(cmd.ErrOrStderr()))
	c.logger = log.NewFilter(logger, opt).With("module", "walletd")
	return nil
}

func (c *cli) home() string {
	return c.v.GetString(flagHome)
}

func (c *cli) keyPath() string {
	if p := c.v.GetString(flagKey); p != "" {
		return p
	}
	return filepath.Join(c.home(), "key.json")
}

func (c *cli) genesisPath() string {
	if p := c.v.GetString(flagGenesis); p != "" {
		return p
	}
	return filepath.Join(c.home(), "genesis.json")
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), wallet.Version())
		},
	}
}
