package multisig

import (
	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
	"github.com/iov-one/wallet/orm"
	"github.com/iov-one/wallet/x"
)

// RegisterRoutes will instantiate and register all handlers in this
// package. Given caller performs the calls of executed transactions that
// are not self-calls. If nil, NopCaller is used.
func RegisterRoutes(r wallet.Registry, auth x.Authenticator, caller Caller) {
	txs := NewTransactionLog()
	confs := NewConfirmationTracker(txs)
	exec := newExecutor(txs, confs, caller)

	r.Handle(pathSubmitTransactionMsg, SubmitTransactionHandler{auth: auth, exec: exec})
	r.Handle(pathConfirmTransactionMsg, ConfirmTransactionHandler{auth: auth, exec: exec})
	r.Handle(pathRevokeConfirmationMsg, RevokeConfirmationHandler{auth: auth, exec: exec})
	r.Handle(pathExecuteTransactionMsg, ExecuteTransactionHandler{auth: auth, exec: exec})
	registerGovernanceRoutes(r)
}

// requireOwner returns the configuration and the address of the main
// signer, which must be a current owner.
func requireOwner(ctx wallet.Context, db wallet.ReadOnlyKVStore, auth x.Authenticator) (*Configuration, wallet.Address, error) {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, nil, err
	}
	signer := x.MainSigner(ctx, auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	sender := signer.Address()
	if !conf.IsOwner(sender) {
		return nil, nil, errors.Wrapf(errors.ErrUnauthorized, "%s is not an owner", sender)
	}
	return conf, sender, nil
}

type SubmitTransactionHandler struct {
	auth x.Authenticator
	exec *executor
}

var _ wallet.Handler = SubmitTransactionHandler{}

func (h SubmitTransactionHandler) Deliver(ctx wallet.Context, db wallet.KVStore, tx wallet.Tx) (*wallet.DeliverResult, error) {
	conf, sender, err := requireOwner(ctx, db, h.auth)
	if err != nil {
		return nil, err
	}
	var msg *SubmitTransactionMsg
	if err := wallet.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	id, err := h.exec.txs.Append(db, msg.Destination, msg.Value, msg.Data)
	if err != nil {
		return nil, err
	}
	events, err := h.exec.confirmAndMaybeExecute(ctx, db, conf, id, sender)
	if err != nil {
		return nil, err
	}
	return &wallet.DeliverResult{
		Data:   orm.EncodeSequence(id),
		Events: append([]wallet.Event{SubmissionEvent{TransactionID: id}}, events...),
	}, nil
}

type ConfirmTransactionHandler struct {
	auth x.Authenticator
	exec *executor
}

var _ wallet.Handler = ConfirmTransactionHandler{}

func (h ConfirmTransactionHandler) Deliver(ctx wallet.Context, db wallet.KVStore, tx wallet.Tx) (*wallet.DeliverResult, error) {
	conf, sender, err := requireOwner(ctx, db, h.auth)
	if err != nil {
		return nil, err
	}
	var msg *ConfirmTransactionMsg
	if err := wallet.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	events, err := h.exec.confirmAndMaybeExecute(ctx, db, conf, msg.TransactionID, sender)
	if err != nil {
		return nil, err
	}
	return &wallet.DeliverResult{Events: events}, nil
}

type RevokeConfirmationHandler struct {
	auth x.Authenticator
	exec *executor
}

var _ wallet.Handler = RevokeConfirmationHandler{}

func (h RevokeConfirmationHandler) Deliver(ctx wallet.Context, db wallet.KVStore, tx wallet.Tx) (*wallet.DeliverResult, error) {
	_, sender, err := requireOwner(ctx, db, h.auth)
	if err != nil {
		return nil, err
	}
	var msg *RevokeConfirmationMsg
	if err := wallet.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	t, err := h.exec.txs.Get(db, msg.TransactionID)
	if err != nil {
		return nil, err
	}
	if t.Executed {
		return nil, errors.Wrapf(errors.ErrState, "transaction %d already executed", msg.TransactionID)
	}
	if err := h.exec.confs.Revoke(db, msg.TransactionID, sender); err != nil {
		return nil, err
	}
	return &wallet.DeliverResult{
		Events: []wallet.Event{RevocationEvent{Sender: sender, TransactionID: msg.TransactionID}},
	}, nil
}

type ExecuteTransactionHandler struct {
	auth x.Authenticator
	exec *executor
}

var _ wallet.Handler = ExecuteTransactionHandler{}

func (h ExecuteTransactionHandler) Deliver(ctx wallet.Context, db wallet.KVStore, tx wallet.Tx) (*wallet.DeliverResult, error) {
	conf, _, err := requireOwner(ctx, db, h.auth)
	if err != nil {
		return nil, err
	}
	var msg *ExecuteTransactionMsg
	if err := wallet.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	events, err := h.exec.executeTransaction(ctx, db, conf, msg.TransactionID)
	if err != nil {
		return nil, err
	}
	return &wallet.DeliverResult{Events: events}, nil
}
