package x

import (
	"context"
	"testing"

	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/wallettest"
	"github.com/iov-one/wallet/wallettest/assert"
)

func TestAuth(t *testing.T) {
	a := wallettest.NewCondition()
	b := wallettest.NewCondition()
	c := wallettest.NewCondition()

	ctx1 := &wallettest.CtxAuth{Key: "foo"}
	ctx2 := &wallettest.CtxAuth{Key: "bar"}

	cases := map[string]struct {
		ctx          wallet.Context
		auth         Authenticator
		mainSigner   wallet.Condition
		wantInCtx    wallet.Condition
		wantNotInCtx wallet.Condition
		wantAll      []wallet.Condition
	}{
		"empty context": {
			ctx:          context.Background(),
			auth:         &wallettest.Auth{},
			wantNotInCtx: b,
		},
		"signer a": {
			ctx:          context.Background(),
			auth:         &wallettest.Auth{Signer: a},
			mainSigner:   a,
			wantInCtx:    a,
			wantNotInCtx: b,
			wantAll:      []wallet.Condition{a},
		},
		"signer b": {
			ctx: context.Background(),
			auth: ChainAuth(
				&wallettest.Auth{Signer: b},
				&wallettest.Auth{Signer: a}),
			mainSigner:   b,
			wantInCtx:    b,
			wantNotInCtx: c,
			wantAll:      []wallet.Condition{b, a},
		},
		"ctxAuth checks what is set by same key": {
			ctx:          ctx1.SetConditions(context.Background(), a, b),
			auth:         ctx1,
			mainSigner:   a,
			wantInCtx:    b,
			wantNotInCtx: c,
			wantAll:      []wallet.Condition{a, b},
		},
		"ctxAuth with different key sees nothing": {
			ctx:          ctx1.SetConditions(context.Background(), a, b),
			auth:         ctx2,
			wantNotInCtx: a,
		},
		"chained ctxAuth sees multiple keys": {
			ctx:          ctx2.SetConditions(ctx1.SetConditions(context.Background(), a), c),
			auth:         ChainAuth(ctx1, ctx2),
			mainSigner:   a,
			wantInCtx:    c,
			wantNotInCtx: b,
			wantAll:      []wallet.Condition{a, c},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.mainSigner, MainSigner(tc.ctx, tc.auth))
			if tc.wantInCtx != nil && !tc.auth.HasAddress(tc.ctx, tc.wantInCtx.Address()) {
				t.Fatal("condition not found in the context")
			}
			if tc.wantNotInCtx != nil && tc.auth.HasAddress(tc.ctx, tc.wantNotInCtx.Address()) {
				t.Fatal("unexpected condition found in the context")
			}
			assert.Equal(t, tc.wantAll, tc.auth.GetConditions(tc.ctx))

			addrs := GetAddresses(tc.ctx, tc.auth)
			assert.Equal(t, len(tc.wantAll), len(addrs))
			for i, c := range tc.wantAll {
				assert.Equal(t, c.Address(), addrs[i])
			}
		})
	}
}
