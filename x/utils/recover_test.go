package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
	"github.com/iov-one/wallet/store"
	"github.com/iov-one/wallet/wallettest"
	"github.com/iov-one/wallet/wallettest/assert"
	"github.com/tendermint/tendermint/libs/log"
)

type panicHandler struct{}

func (panicHandler) Deliver(wallet.Context, wallet.KVStore, wallet.Tx) (*wallet.DeliverResult, error) {
	panic("boom")
}

func TestRecovery(t *testing.T) {
	ctx := context.Background()
	db := store.MemStore()

	_, err := NewRecovery().Deliver(ctx, db, &wallettest.Tx{}, panicHandler{})
	assert.IsErr(t, errors.ErrPanic, err)

	h := &wallettest.Handler{}
	_, err = NewRecovery().Deliver(ctx, db, &wallettest.Tx{}, h)
	assert.Nil(t, err)
	assert.Equal(t, 1, h.DeliverCallCount())
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := wallet.WithLogger(context.Background(), log.NewTMLogger(&buf))
	db := store.MemStore()
	tx := &wallettest.Tx{Msg: &wallettest.Msg{RoutePath: "demo/path"}}

	h := &wallettest.Handler{DeliverResult: wallet.DeliverResult{Log: "all good"}}
	_, err := NewLogging().Deliver(ctx, db, tx, h)
	assert.Nil(t, err)
	if out := buf.String(); !strings.Contains(out, "all good") || !strings.Contains(out, "demo/path") {
		t.Fatalf("unexpected log output: %s", out)
	}

	buf.Reset()
	h = &wallettest.Handler{DeliverErr: errors.ErrUnauthorized}
	_, err = NewLogging().Deliver(ctx, db, tx, h)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	if out := buf.String(); !strings.Contains(out, "unauthorized") {
		t.Fatalf("error not logged: %s", out)
	}
}
