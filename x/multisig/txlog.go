package multisig

import (
	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
	"github.com/iov-one/wallet/orm"
)

// TransactionLog is the append only store of submitted transactions.
// Transactions are identified by a sequence number starting at 0.
type TransactionLog struct {
	bucket orm.ModelBucket
	ids    orm.Sequence
}

// NewTransactionLog returns a log that keeps transactions in the "txs"
// bucket.
func NewTransactionLog() *TransactionLog {
	return &TransactionLog{
		bucket: orm.NewModelBucket("txs", &Transaction{}),
		ids:    orm.NewSequence("txs", "id"),
	}
}

// Append stores a new, not executed transaction and returns its ID.
func (l *TransactionLog) Append(db wallet.KVStore, destination wallet.Address, value uint64, data []byte) (uint64, error) {
	next, err := l.ids.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "acquire transaction id")
	}
	// Sequence starts counting at 1.
	id := next - 1
	t := Transaction{
		Destination: destination,
		Value:       value,
		Data:        data,
	}
	if err := l.bucket.Put(db, orm.EncodeSequence(id), &t); err != nil {
		return 0, errors.Wrap(err, "store transaction")
	}
	return id, nil
}

// Get returns the transaction with given ID or ErrNotFound.
func (l *TransactionLog) Get(db wallet.ReadOnlyKVStore, id uint64) (*Transaction, error) {
	var t Transaction
	if err := l.bucket.One(db, orm.EncodeSequence(id), &t); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "transaction %d", id)
		}
		return nil, err
	}
	return &t, nil
}

// MarkExecuted flips the executed flag of a transaction. This is the only
// change a transaction goes through after it was appended.
func (l *TransactionLog) MarkExecuted(db wallet.KVStore, id uint64) error {
	t, err := l.Get(db, id)
	if err != nil {
		return err
	}
	if t.Executed {
		return errors.Wrapf(errors.ErrState, "transaction %d already executed", id)
	}
	t.Executed = true
	if err := l.bucket.Put(db, orm.EncodeSequence(id), t); err != nil {
		return errors.Wrap(err, "store transaction")
	}
	return nil
}

// Len returns the number of transactions ever appended.
func (l *TransactionLog) Len(db wallet.ReadOnlyKVStore) (uint64, error) {
	return l.ids.Latest(db)
}

// Each calls fn for all transactions in the ID order. Iteration stops at the
// first error returned by fn.
func (l *TransactionLog) Each(db wallet.ReadOnlyKVStore, fn func(id uint64, t *Transaction) error) error {
	it, err := l.bucket.Prefix(db, nil)
	if err != nil {
		return err
	}
	defer it.Release()

	for {
		var t Transaction
		switch key, err := it.LoadNext(&t); {
		case err == nil:
			id, err := orm.DecodeSequence(key)
			if err != nil {
				return errors.Wrap(err, "transaction id")
			}
			if err := fn(id, &t); err != nil {
				return err
			}
		case errors.ErrIteratorDone.Is(err):
			return nil
		default:
			return errors.Wrap(err, "load transaction")
		}
	}
}
