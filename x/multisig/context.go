package multisig

import (
	"context"

	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
)

type contextKey int // local to the multisig module

const (
	contextKeySelfCall contextKey = iota
	contextKeyEngineCall
)

// withSelfCall is a private method, as only the executor of this module
// can mark a call as originating from the wallet itself.
func withSelfCall(ctx wallet.Context, addr wallet.Address) wallet.Context {
	return context.WithValue(ctx, contextKeySelfCall, addr)
}

// requireSelfCall returns ErrUnauthorized unless the context carries the
// self-call tag of given wallet.
func requireSelfCall(ctx wallet.Context, conf *Configuration) error {
	val, _ := ctx.Value(contextKeySelfCall).(wallet.Address)
	if val == nil || !val.Equals(conf.Address) {
		return errors.Wrap(errors.ErrUnauthorized, "only the wallet can change its owners")
	}
	return nil
}

// withEngineCall marks the context as being processed by the engine.
func withEngineCall(ctx wallet.Context) wallet.Context {
	return context.WithValue(ctx, contextKeyEngineCall, true)
}

// inEngineCall returns true if the context was created while processing an
// engine call.
func inEngineCall(ctx wallet.Context) bool {
	val, _ := ctx.Value(contextKeyEngineCall).(bool)
	return val
}
