package multisig

import (
	"context"
	"testing"

	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/wallettest"
	"github.com/iov-one/wallet/wallettest/assert"
)

// newContextWithAuth creates a context with perms as signers
func newContextWithAuth(perms ...wallet.Condition) (wallet.Context, *wallettest.CtxAuth) {
	auth := &wallettest.CtxAuth{Key: "authKey"}
	return auth.SetConditions(context.Background(), perms...), auth
}

// addresses returns the address of each condition
func addresses(perms ...wallet.Condition) []wallet.Address {
	addrs := make([]wallet.Address, len(perms))
	for i, p := range perms {
		addrs[i] = p.Address()
	}
	return addrs
}

// deploy stores a wallet configuration with given owners.
func deploy(t testing.TB, db wallet.KVStore, required uint64, owners ...wallet.Condition) *Configuration {
	t.Helper()
	conf := &Configuration{
		Address:  DefaultAddress,
		Owners:   addresses(owners...),
		Required: required,
	}
	assert.Nil(t, saveConfiguration(db, conf))
	return conf
}

// mustEncode returns the call data of a governance message.
func mustEncode(t testing.TB, msg wallet.Msg) []byte {
	t.Helper()
	data, err := EncodeCall(msg)
	assert.Nil(t, err)
	return data
}

// eventNames returns the name of each event, in order.
func eventNames(events []wallet.Event) []string {
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = e.Name()
	}
	return names
}
