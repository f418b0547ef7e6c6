/*
Walletd keeps a multisig wallet in a local iavl database and runs one wallet
call per invocation.

	walletd keygen --key alice.json
	walletd init --genesis genesis.json
	walletd submit self --data $(walletd encode add-owner 0x594F...) --key alice.json
	walletd confirm 0 --key bob.json
	walletd show 0

Every flag of the root command can also be set with a WALLETD_ prefixed
environment variable (WALLETD_HOME, WALLETD_LOG_LEVEL, ...) or in a config
file stored in the home directory.
*/
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
