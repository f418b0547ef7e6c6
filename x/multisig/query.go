package multisig

import (
	"github.com/iov-one/wallet"
)

// Querier provides read only projections of the wallet state. It never
// modifies the store.
type Querier struct {
	txs   *TransactionLog
	confs *ConfirmationTracker
}

func NewQuerier() *Querier {
	txs := NewTransactionLog()
	return &Querier{
		txs:   txs,
		confs: NewConfirmationTracker(txs),
	}
}

// TransactionCount returns the number of transactions matching the filter.
// Use pending to include transactions that were not executed and executed
// to include those that were.
func (q *Querier) TransactionCount(db wallet.ReadOnlyKVStore, pending, executed bool) (uint64, error) {
	var n uint64
	err := q.txs.Each(db, func(_ uint64, t *Transaction) error {
		if matches(t, pending, executed) {
			n++
		}
		return nil
	})
	return n, err
}

// TransactionIDs returns the IDs of the transactions matching the filter,
// in ascending order, at positions [from, to) of the filtered list. A
// window outside of the list returns an empty result.
func (q *Querier) TransactionIDs(db wallet.ReadOnlyKVStore, from, to uint64, pending, executed bool) ([]uint64, error) {
	ids := []uint64{}
	var pos uint64
	err := q.txs.Each(db, func(id uint64, t *Transaction) error {
		if !matches(t, pending, executed) {
			return nil
		}
		if pos >= from && pos < to {
			ids = append(ids, id)
		}
		pos++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func matches(t *Transaction, pending, executed bool) bool {
	return (pending && !t.Executed) || (executed && t.Executed)
}

// Transaction returns the transaction with given ID or ErrNotFound.
func (q *Querier) Transaction(db wallet.ReadOnlyKVStore, id uint64) (*Transaction, error) {
	return q.txs.Get(db, id)
}

// Confirmations returns the current owners that confirmed given
// transaction, in the owner set order.
func (q *Querier) Confirmations(db wallet.ReadOnlyKVStore, id uint64) ([]wallet.Address, error) {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, err
	}
	if _, err := q.txs.Get(db, id); err != nil {
		return nil, err
	}
	return q.confs.Confirmers(db, id, conf.Owners)
}

// ConfirmationCount returns the number of current owners that confirmed
// given transaction.
func (q *Querier) ConfirmationCount(db wallet.ReadOnlyKVStore, id uint64) (uint64, error) {
	confirmers, err := q.Confirmations(db, id)
	if err != nil {
		return 0, err
	}
	return uint64(len(confirmers)), nil
}

// IsConfirmed returns true if given transaction has enough confirmations
// from current owners to be executed.
func (q *Querier) IsConfirmed(db wallet.ReadOnlyKVStore, id uint64) (bool, error) {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return false, err
	}
	n, err := q.ConfirmationCount(db, id)
	if err != nil {
		return false, err
	}
	return n >= conf.Required, nil
}

// TransactionCount returns the number of transactions matching the filter.
func (e *Engine) TransactionCount(ctx wallet.Context, pending, executed bool) (n uint64, err error) {
	err = e.read(ctx, func(db wallet.ReadOnlyKVStore) error {
		n, err = e.query.TransactionCount(db, pending, executed)
		return err
	})
	return n, err
}

// TransactionIDs returns a window [from, to) of the IDs of transactions
// matching the filter.
func (e *Engine) TransactionIDs(ctx wallet.Context, from, to uint64, pending, executed bool) (ids []uint64, err error) {
	err = e.read(ctx, func(db wallet.ReadOnlyKVStore) error {
		ids, err = e.query.TransactionIDs(db, from, to, pending, executed)
		return err
	})
	return ids, err
}

func (e *Engine) Transaction(ctx wallet.Context, id uint64) (t *Transaction, err error) {
	err = e.read(ctx, func(db wallet.ReadOnlyKVStore) error {
		t, err = e.query.Transaction(db, id)
		return err
	})
	return t, err
}

func (e *Engine) Confirmations(ctx wallet.Context, id uint64) (owners []wallet.Address, err error) {
	err = e.read(ctx, func(db wallet.ReadOnlyKVStore) error {
		owners, err = e.query.Confirmations(db, id)
		return err
	})
	return owners, err
}

func (e *Engine) ConfirmationCount(ctx wallet.Context, id uint64) (n uint64, err error) {
	err = e.read(ctx, func(db wallet.ReadOnlyKVStore) error {
		n, err = e.query.ConfirmationCount(db, id)
		return err
	})
	return n, err
}

func (e *Engine) IsConfirmed(ctx wallet.Context, id uint64) (ok bool, err error) {
	err = e.read(ctx, func(db wallet.ReadOnlyKVStore) error {
		ok, err = e.query.IsConfirmed(db, id)
		return err
	})
	return ok, err
}

// Owners returns the current owner set.
func (e *Engine) Owners(ctx wallet.Context) (owners []wallet.Address, err error) {
	err = e.read(ctx, func(db wallet.ReadOnlyKVStore) error {
		conf, err := LoadConfiguration(db)
		if err != nil {
			return err
		}
		owners = conf.Owners
		return nil
	})
	return owners, err
}

// Required returns the number of confirmations needed for execution.
func (e *Engine) Required(ctx wallet.Context) (n uint64, err error) {
	err = e.read(ctx, func(db wallet.ReadOnlyKVStore) error {
		conf, err := LoadConfiguration(db)
		if err != nil {
			return err
		}
		n = conf.Required
		return nil
	})
	return n, err
}

func (e *Engine) IsOwner(ctx wallet.Context, a wallet.Address) (ok bool, err error) {
	err = e.read(ctx, func(db wallet.ReadOnlyKVStore) error {
		conf, err := LoadConfiguration(db)
		if err != nil {
			return err
		}
		ok = conf.IsOwner(a)
		return nil
	})
	return ok, err
}
