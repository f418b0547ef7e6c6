package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different
// paths and then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]wallet.Handler
}

var _ wallet.Registry = (*Router)(nil)
var _ wallet.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]wallet.Handler),
	}
}

// Handle adds a new Handler for the given path. This function panics if a
// handler for given path is already registered.
//
// Path should be constructed using following rule:
// "<extension name>/<message name>". For example,
// "multisig/submit"
func (r *Router) Handle(path string, h wallet.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the registered Handler for this path. If no path is found,
// returns a noSuchPath Handler. This method always returns a non nil Handler.
func (r *Router) Handler(path string) wallet.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Deliver dispatches to the handler registered for the path of the
// transaction message.
func (r *Router) Deliver(ctx wallet.Context, db wallet.KVStore, tx wallet.Tx) (*wallet.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.Handler(msg.Path()).Deliver(ctx, db, tx)
}

// notFoundHandler always returns ErrNotFound error regardless of the
// arguments.
type notFoundHandler string

func (path notFoundHandler) Deliver(wallet.Context, wallet.KVStore, wallet.Tx) (*wallet.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", path)
}
