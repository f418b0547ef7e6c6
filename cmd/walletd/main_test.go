package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
	"github.com/iov-one/wallet/wallettest/assert"
	"github.com/iov-one/wallet/x/multisig"
)

// walletd runs a single command against given home directory and returns
// its standard output.
func walletd(t testing.TB, home string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--home", home, "--log-level", "none"}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func mustWalletd(t testing.TB, home string, args ...string) string {
	t.Helper()
	out, err := walletd(t, home, args...)
	if err != nil {
		t.Fatalf("walletd %s: %+v", strings.Join(args, " "), err)
	}
	return out
}

func tempHome(t testing.TB) string {
	t.Helper()
	home, err := ioutil.TempDir("", "walletd")
	assert.Nil(t, err)
	t.Cleanup(func() { os.RemoveAll(home) })
	return home
}

func TestInitFromGenesis(t *testing.T) {
	home := tempHome(t)

	out := mustWalletd(t, home, "init", "--genesis", "testdata/genesis.json")
	assert.Equal(t, "7A6E2C9B0EFC4CDB93D4DE2B6B4F4B9C2D6D3B11\n", out)

	var conf multisig.Configuration
	assert.Nil(t, json.Unmarshal([]byte(mustWalletd(t, home, "owners")), &conf))
	assert.Equal(t, uint64(3), conf.Required)
	assert.Equal(t, 5, len(conf.Owners))
	assert.Equal(t, "594F5804EB71D66B16753D7247D7DD031245FBE7", conf.Owners[0].String())
	assert.Equal(t, "6633B7233B63521B4697BBE92100CF4A1BF70829", conf.Owners[4].String())

	_, err := walletd(t, home, "init", "--genesis", "testdata/genesis.json")
	assert.IsErr(t, errors.ErrDuplicate, err)

	assert.Equal(t, "", mustWalletd(t, home, "transactions"))
}

func TestCommandsRequireDeployedWallet(t *testing.T) {
	home := tempHome(t)

	_, err := walletd(t, home, "owners")
	assert.IsErr(t, errors.ErrNotFound, err)

	_, err = walletd(t, home, "init", "--genesis", filepath.Join(home, "missing.json"))
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestKeygen(t *testing.T) {
	home := tempHome(t)
	keyPath := filepath.Join(home, "keys", "alice.json")

	out := mustWalletd(t, home, "keygen", "--key", keyPath)
	addr, err := wallet.ParseAddress(strings.TrimSpace(out))
	assert.Nil(t, err)
	assert.Nil(t, addr.Validate())

	_, err = walletd(t, home, "keygen", "--key", keyPath)
	assert.IsErr(t, errors.ErrDuplicate, err)
}

func TestOwnerAdditionFlow(t *testing.T) {
	home := tempHome(t)

	keys := make([]string, 3)
	owners := make([]string, 3)
	for i := range keys {
		keys[i] = filepath.Join(home, fmt.Sprintf("owner%d.json", i))
		owners[i] = strings.TrimSpace(mustWalletd(t, home, "keygen", "--key", keys[i]))
	}
	newOwner := "0x594F5804Eb71d66B16753D7247D7DD031245fBE7"

	genesis := fmt.Sprintf(`{"multisig": {"address": "0x0000000000000000000000000000000000000abc", "owners": ["%s"], "required": 2}}`,
		strings.Join(owners, `", "`))
	assert.Nil(t, ioutil.WriteFile(filepath.Join(home, "genesis.json"), []byte(genesis), 0600))
	mustWalletd(t, home, "init")

	data := strings.TrimSpace(mustWalletd(t, home, "encode", "add-owner", newOwner))
	assert.Equal(t, "0x7065cb48", data[:10])

	out := mustWalletd(t, home, "submit", "self", "--data", data, "--key", keys[0])
	assert.Equal(t, strings.Join([]string{
		"0",
		"Submission transaction_id=0",
		"Confirmation sender=" + owners[0] + " transaction_id=0",
	}, "\n")+"\n", out)

	// A key that is not an owner cannot confirm.
	stranger := filepath.Join(home, "stranger.json")
	mustWalletd(t, home, "keygen", "--key", stranger)
	_, err := walletd(t, home, "confirm", "0", "--key", stranger)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	out = mustWalletd(t, home, "confirm", "0", "--key", keys[1], "--events", "multisig.event = 'Execution'")
	assert.Equal(t, "Execution transaction_id=0\n", out)

	var conf multisig.Configuration
	assert.Nil(t, json.Unmarshal([]byte(mustWalletd(t, home, "owners")), &conf))
	assert.Equal(t, 4, len(conf.Owners))
	assert.Equal(t, "594F5804EB71D66B16753D7247D7DD031245FBE7", conf.Owners[3].String())

	var view transactionView
	assert.Nil(t, json.Unmarshal([]byte(mustWalletd(t, home, "show", "0")), &view))
	assert.Equal(t, true, view.Executed)
	assert.Equal(t, true, view.Confirmed)
	assert.Equal(t, data, view.Data)
	assert.Equal(t, 2, len(view.Confirmations))

	_, err = walletd(t, home, "execute", "0", "--key", keys[2])
	assert.IsErr(t, errors.ErrState, err)
	_, err = walletd(t, home, "revoke", "0", "--key", keys[0])
	assert.IsErr(t, errors.ErrState, err)

	// An external payment stays pending until the second confirmation.
	dest := "0x886351b3135E66523BA495f27EdE6982D6936E41"
	assert.Equal(t, "1\n", mustWalletd(t, home, "submit", dest, "--value", "7", "--key", keys[2], "--events", "multisig.event = 'None'"))
	mustWalletd(t, home, "revoke", "1", "--key", keys[2])

	out = mustWalletd(t, home, "transactions")
	assert.Equal(t, strings.Join([]string{
		"0\texecuted\t0000000000000000000000000000000000000ABC\t0",
		"1\tpending\t886351B3135E66523BA495F27EDE6982D6936E41\t7",
	}, "\n")+"\n", out)

	out = mustWalletd(t, home, "transactions", "--executed=false")
	assert.Equal(t, "1\tpending\t886351B3135E66523BA495F27EDE6982D6936E41\t7\n", out)
}

func TestEncode(t *testing.T) {
	home := tempHome(t)

	out := mustWalletd(t, home, "encode", "change-requirement", "2")
	assert.Equal(t, "0xba51a6df0000000000000000000000000000000000000000000000000000000000000002\n", out)

	_, err := walletd(t, home, "encode", "change-requirement", "0")
	assert.IsErr(t, errors.ErrInput, err)

	_, err = walletd(t, home, "encode", "add-owner", "0xnothex")
	assert.IsErr(t, errors.ErrInput, err)
}

func TestConfiguration(t *testing.T) {
	home := tempHome(t)

	_, err := walletd(t, home, "version", "--log-level", "verbose")
	assert.IsErr(t, errors.ErrInput, err)

	// Flags can be provided through the environment.
	os.Setenv("WALLETD_GENESIS", "testdata/genesis.json")
	defer os.Unsetenv("WALLETD_GENESIS")
	out := mustWalletd(t, home, "init")
	assert.Equal(t, "7A6E2C9B0EFC4CDB93D4DE2B6B4F4B9C2D6D3B11\n", out)

	out = mustWalletd(t, home, "version")
	assert.Equal(t, wallet.Version()+"\n", out)
}
