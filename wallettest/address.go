package wallettest

import (
	"testing"

	"github.com/iov-one/wallet"
)

// ParseAddress takes an address in a human readable format and returns its
// binary representation. This function is a test helper that is using
// wallet.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) wallet.Address {
	t.Helper()

	addr, err := wallet.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
