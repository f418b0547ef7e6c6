package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/crypto"
	"github.com/iov-one/wallet/errors"
	"github.com/iov-one/wallet/events"
	"github.com/iov-one/wallet/store/iavl"
	"github.com/iov-one/wallet/x"
	"github.com/iov-one/wallet/x/multisig"
	"github.com/spf13/cobra"
)

// keyAuth authenticates every call with the condition of the loaded key.
type keyAuth struct {
	cond wallet.Condition
}

var _ x.Authenticator = keyAuth{}

func (a keyAuth) GetConditions(wallet.Context) []wallet.Condition {
	if a.cond == nil {
		return nil
	}
	return []wallet.Condition{a.cond}
}

func (a keyAuth) HasAddress(_ wallet.Context, addr wallet.Address) bool {
	return a.cond != nil && a.cond.Address().Equals(addr)
}

// logCaller accepts every external call and logs it. There is no network
// behind walletd to forward the call to.
type logCaller struct{}

var _ multisig.Caller = logCaller{}

func (logCaller) Call(ctx wallet.Context, destination wallet.Address, value uint64, data []byte) ([]byte, error) {
	wallet.GetLogger(ctx).Info("external call",
		"destination", destination,
		"value", value,
		"data", fmt.Sprintf("%X", data))
	return nil, nil
}

// openStore opens the database kept in the home directory.
func (c *cli) openStore() (*iavl.CommitStore, error) {
	dir := filepath.Join(c.home(), "data")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "create %s: %s", dir, err)
	}
	return iavl.NewCommitStore(dir, "wallet")
}

// withEngine opens the deployed wallet and runs fn. When write is true the
// caller is authenticated with the configured key and all changes made by
// fn are committed. Events matching the events query are printed once the
// changes were committed.
func (c *cli) withEngine(cmd *cobra.Command, write bool, fn func(wallet.Context, *multisig.Engine) error) error {
	db, err := c.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	var auth keyAuth
	if write {
		key, err := crypto.LoadKey(c.keyPath())
		if err != nil {
			return err
		}
		auth.cond = key.PublicKey().Condition()
	}

	bus, err := events.NewBus("multisig", c.logger)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	results := make(chan wallet.Event, events.DefaultCapacity)
	if err := bus.Subscribe(ctx, c.v.GetString(flagEvents), results); err != nil {
		_ = bus.Stop()
		return err
	}
	collected := make(chan []wallet.Event, 1)
	go func() {
		var all []wallet.Event
		for e := range results {
			all = append(all, e)
		}
		collected <- all
	}()

	err = c.run(wallet.WithLogger(ctx, c.logger), db, auth, bus, write, fn)

	if stopErr := bus.Stop(); stopErr != nil {
		c.logger.Error("cannot stop event bus", "err", stopErr)
	}
	published := <-collected
	if err != nil {
		return err
	}
	printEvents(cmd.OutOrStdout(), published)
	return nil
}

func (c *cli) run(ctx wallet.Context, db *iavl.CommitStore, auth keyAuth, sink wallet.EventSink, write bool, fn func(wallet.Context, *multisig.Engine) error) error {
	e, err := multisig.Open(db.Adapter(), auth,
		multisig.WithCaller(logCaller{}),
		multisig.WithEventSink(sink))
	if err != nil {
		return errors.Wrap(err, "open wallet")
	}
	if err := fn(ctx, e); err != nil {
		return err
	}
	if !write {
		return nil
	}
	id, err := db.Commit()
	if err != nil {
		return err
	}
	c.logger.Debug("state committed", "version", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return nil
}

// printEvents writes one line per event: its name followed by sorted
// attributes.
func printEvents(w io.Writer, evs []wallet.Event) {
	for _, e := range evs {
		attrs := e.Attributes()
		keys := make([]string, 0, len(attrs))
		for k := range attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		line := []string{e.Name()}
		for _, k := range keys {
			line = append(line, k+"="+attrs[k])
		}
		fmt.Fprintln(w, strings.Join(line, " "))
	}
}
