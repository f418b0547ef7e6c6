package multisig

import (
	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/app"
	"github.com/iov-one/wallet/errors"
)

// Caller performs the call of an executed transaction which destination is
// not the wallet itself. Returning an error marks the execution as failed.
//
// The context passed to Call must be used for any call back into the
// engine, so that re-entrant calls are detected.
type Caller interface {
	Call(ctx wallet.Context, destination wallet.Address, value uint64, data []byte) ([]byte, error)
}

// NopCaller is a Caller that accepts every call and does nothing.
type NopCaller struct{}

var _ Caller = NopCaller{}

func (NopCaller) Call(wallet.Context, wallet.Address, uint64, []byte) ([]byte, error) {
	return nil, nil
}

// executor implements confirmation and execution of transactions. It is
// shared by all handlers that can trigger execution.
type executor struct {
	txs    *TransactionLog
	confs  *ConfirmationTracker
	caller Caller
	// governance delivers decoded self-calls to the owner registry.
	governance wallet.Handler
}

func newExecutor(txs *TransactionLog, confs *ConfirmationTracker, caller Caller) *executor {
	if caller == nil {
		caller = NopCaller{}
	}
	r := app.NewRouter()
	registerGovernanceRoutes(r)
	return &executor{
		txs:        txs,
		confs:      confs,
		caller:     caller,
		governance: r,
	}
}

// confirmAndMaybeExecute records the confirmation of given owner and
// executes the transaction if this confirmation made it reach the
// threshold. This is the only way a confirmation is recorded. Confirmations
// of an executed transaction are frozen.
func (e *executor) confirmAndMaybeExecute(ctx wallet.Context, db wallet.KVStore, conf *Configuration, id uint64, owner wallet.Address) ([]wallet.Event, error) {
	t, err := e.txs.Get(db, id)
	if err != nil {
		return nil, err
	}
	if t.Executed {
		return nil, errors.Wrapf(errors.ErrState, "transaction %d already executed", id)
	}
	if err := e.confs.Confirm(db, id, owner); err != nil {
		return nil, err
	}
	events := []wallet.Event{ConfirmationEvent{Sender: owner, TransactionID: id}}

	n, err := e.confs.Count(db, id, conf.Owners)
	if err != nil {
		return nil, err
	}
	if n < conf.Required {
		return events, nil
	}
	res, err := e.run(ctx, db, conf, id, t)
	if err != nil {
		return nil, err
	}
	return append(events, res...), nil
}

// executeTransaction executes a transaction on explicit request. Unlike an
// execution triggered by a confirmation, not meeting the preconditions is
// an error.
func (e *executor) executeTransaction(ctx wallet.Context, db wallet.KVStore, conf *Configuration, id uint64) ([]wallet.Event, error) {
	t, err := e.txs.Get(db, id)
	if err != nil {
		return nil, err
	}
	if t.Executed {
		return nil, errors.Wrapf(errors.ErrState, "transaction %d already executed", id)
	}
	n, err := e.confs.Count(db, id, conf.Owners)
	if err != nil {
		return nil, err
	}
	if n < conf.Required {
		return nil, errors.Wrapf(errors.ErrState, "transaction %d has %d out of %d required confirmations", id, n, conf.Required)
	}
	return e.run(ctx, db, conf, id, t)
}

// run performs the call of a transaction that meets all preconditions. A
// failing call is not an error. Instead all changes made by the call are
// discarded and an ExecutionFailure event is returned. An error is returned
// only if the state cannot be updated.
func (e *executor) run(ctx wallet.Context, db wallet.KVStore, conf *Configuration, id uint64, t *Transaction) ([]wallet.Event, error) {
	logger := wallet.GetLogger(ctx).With("transaction_id", id)

	var (
		events  []wallet.Event
		callErr error
	)
	if t.Destination.Equals(conf.Address) {
		events, callErr = e.selfCall(ctx, db, conf, t.Data)
	} else {
		_, callErr = e.caller.Call(ctx, t.Destination, t.Value, t.Data)
	}
	if callErr != nil {
		logger.Error("transaction execution failed", "destination", t.Destination, "err", callErr)
		return []wallet.Event{ExecutionFailureEvent{TransactionID: id}}, nil
	}

	if err := e.txs.MarkExecuted(db, id); err != nil {
		return nil, err
	}
	logger.Info("transaction executed", "destination", t.Destination)
	return append(events, ExecutionEvent{TransactionID: id}), nil
}

// selfCall decodes the transaction data as a governance call and delivers
// it to the owner registry on a savepoint, so that a failing call leaves no
// trace.
func (e *executor) selfCall(ctx wallet.Context, db wallet.KVStore, conf *Configuration, data []byte) ([]wallet.Event, error) {
	msg, err := DecodeCall(data)
	if err != nil {
		return nil, err
	}
	cstore, ok := db.(wallet.CacheableKVStore)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "self-call requires a cacheable store")
	}
	cache := cstore.CacheWrap()
	res, err := e.governance.Deliver(withSelfCall(ctx, conf.Address), cache, wallet.NewTx(msg))
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write savepoint")
	}
	return res.Events, nil
}
