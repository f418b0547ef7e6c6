package multisig

import (
	"sync"

	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/app"
	"github.com/iov-one/wallet/errors"
	"github.com/iov-one/wallet/orm"
	"github.com/iov-one/wallet/x"
	"github.com/iov-one/wallet/x/utils"
)

// DefaultAddress is the wallet identity used when none is configured.
var DefaultAddress = wallet.NewCondition("multisig", "wallet", []byte{0}).Address()

// Engine is a deployed wallet bound to a store. All calls are processed one
// at a time and each of them is atomic: a failing call does not modify the
// store.
//
// Events of a successful call are published to the event sink after the
// store was updated.
type Engine struct {
	mu      sync.Mutex
	db      wallet.CacheableKVStore
	address wallet.Address
	handler wallet.Handler
	sink    wallet.EventSink
	query   *Querier
}

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	caller Caller
	sink   wallet.EventSink
}

// WithCaller sets the Caller used to perform calls to destinations other
// than the wallet itself. By default NopCaller is used.
func WithCaller(c Caller) Option {
	return func(ec *engineConfig) {
		ec.caller = c
	}
}

// WithEventSink sets the observer of committed events. By default all
// events are dropped.
func WithEventSink(s wallet.EventSink) Option {
	return func(ec *engineConfig) {
		ec.sink = s
	}
}

// New deploys a new wallet in given store. Nothing is written if the
// configuration is not valid or a wallet already exists in the store.
//
// If the configuration does not declare an address, DefaultAddress is used.
func New(db wallet.CacheableKVStore, auth x.Authenticator, conf Configuration, opts ...Option) (*Engine, error) {
	if len(conf.Address) == 0 {
		conf.Address = DefaultAddress
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	switch _, err := LoadConfiguration(db); {
	case err == nil:
		return nil, errors.Wrap(errors.ErrDuplicate, "wallet already deployed")
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}

	cache := db.CacheWrap()
	if err := saveConfiguration(cache, &conf); err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write configuration")
	}
	return newEngine(db, auth, conf.Address, opts), nil
}

// Open returns an engine for a wallet that was already deployed in given
// store. ErrNotFound is returned if there is none.
func Open(db wallet.CacheableKVStore, auth x.Authenticator, opts ...Option) (*Engine, error) {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, err
	}
	return newEngine(db, auth, conf.Address, opts), nil
}

func newEngine(db wallet.CacheableKVStore, auth x.Authenticator, address wallet.Address, opts []Option) *Engine {
	ec := engineConfig{
		caller: NopCaller{},
		sink:   wallet.NopSink{},
	}
	for _, fn := range opts {
		fn(&ec)
	}

	router := app.NewRouter()
	RegisterRoutes(router, auth, ec.caller)

	return &Engine{
		db:      db,
		address: address,
		handler: app.ChainDecorators(
			utils.NewLogging(),
			utils.NewRecovery(),
			utils.NewSavepoint(),
		).WithHandler(router),
		sink:  ec.sink,
		query: NewQuerier(),
	}
}

// Address returns the identity of the wallet.
func (e *Engine) Address() wallet.Address {
	return e.address
}

// Submit proposes a transaction in the name of the authenticated owner and
// returns its ID. The sender's confirmation is recorded and, if it is
// enough, the transaction is executed.
func (e *Engine) Submit(ctx wallet.Context, destination wallet.Address, value uint64, data []byte) (uint64, error) {
	res, err := e.deliver(ctx, &SubmitTransactionMsg{
		Destination: destination,
		Value:       value,
		Data:        data,
	})
	if err != nil {
		return 0, err
	}
	id, err := orm.DecodeSequence(res.Data)
	if err != nil {
		return 0, errors.Wrap(err, "transaction id")
	}
	return id, nil
}

// Confirm records the confirmation of the authenticated owner. The
// transaction is executed if this confirmation reaches the threshold.
func (e *Engine) Confirm(ctx wallet.Context, id uint64) error {
	_, err := e.deliver(ctx, &ConfirmTransactionMsg{TransactionID: id})
	return err
}

// Revoke withdraws the confirmation of the authenticated owner.
func (e *Engine) Revoke(ctx wallet.Context, id uint64) error {
	_, err := e.deliver(ctx, &RevokeConfirmationMsg{TransactionID: id})
	return err
}

// Execute executes a transaction that has enough confirmations. A failing
// call is not an error and results in an ExecutionFailure event.
func (e *Engine) Execute(ctx wallet.Context, id uint64) error {
	_, err := e.deliver(ctx, &ExecuteTransactionMsg{TransactionID: id})
	return err
}

// Invoke delivers a governance call that does not come from an executed
// transaction. This is how a direct call to the wallet functions is
// handled. It always fails with ErrUnauthorized once decoded, because
// only the wallet itself can change its owners.
func (e *Engine) Invoke(ctx wallet.Context, data []byte) error {
	msg, err := DecodeCall(data)
	if err != nil {
		return err
	}
	_, err = e.deliver(ctx, msg)
	return err
}

func (e *Engine) deliver(ctx wallet.Context, msg wallet.Msg) (*wallet.DeliverResult, error) {
	if inEngineCall(ctx) {
		return nil, errors.Wrap(ErrReentrant, msg.Path())
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx = withEngineCall(ctx)
	res, err := e.handler.Deliver(ctx, e.db, wallet.NewTx(msg))
	if err != nil {
		return nil, err
	}
	for _, ev := range res.Events {
		if err := e.sink.Publish(ctx, ev); err != nil {
			wallet.GetLogger(ctx).Error("cannot publish event", "event", ev.Name(), "err", err)
		}
	}
	return res, nil
}

// read runs fn while holding the engine lock.
func (e *Engine) read(ctx wallet.Context, fn func(db wallet.ReadOnlyKVStore) error) error {
	if inEngineCall(ctx) {
		return errors.Wrap(ErrReentrant, "query")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.db)
}
