package multisig

import (
	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
	"github.com/iov-one/wallet/orm"
)

// ConfirmationTracker records which owners agreed to which transaction.
//
// Confirmations are counted against the owner set given by the caller, so
// that confirmations of removed owners stop counting without being deleted.
type ConfirmationTracker struct {
	bucket orm.ModelBucket
	txs    *TransactionLog
}

// NewConfirmationTracker returns a tracker that keeps confirmations in the
// "confs" bucket. Transaction existence is checked against given log.
func NewConfirmationTracker(txs *TransactionLog) *ConfirmationTracker {
	return &ConfirmationTracker{
		bucket: orm.NewModelBucket("confs", &Confirmation{}),
		txs:    txs,
	}
}

// confirmationKey is the transaction ID followed by the owner address. All
// confirmations of a transaction share the ID prefix.
func confirmationKey(id uint64, owner wallet.Address) []byte {
	return append(orm.EncodeSequence(id), owner...)
}

// Confirm records the confirmation of given owner. It fails if the
// transaction does not exist or the owner already confirmed it.
func (c *ConfirmationTracker) Confirm(db wallet.KVStore, id uint64, owner wallet.Address) error {
	if _, err := c.txs.Get(db, id); err != nil {
		return err
	}
	switch ok, err := c.IsConfirmed(db, id, owner); {
	case err != nil:
		return err
	case ok:
		return errors.Wrapf(errors.ErrState, "transaction %d already confirmed by %s", id, owner)
	}
	if err := c.bucket.Put(db, confirmationKey(id, owner), &Confirmation{Owner: owner}); err != nil {
		return errors.Wrap(err, "store confirmation")
	}
	return nil
}

// Revoke removes the confirmation of given owner. It fails if the
// transaction does not exist or the owner did not confirm it.
func (c *ConfirmationTracker) Revoke(db wallet.KVStore, id uint64, owner wallet.Address) error {
	if _, err := c.txs.Get(db, id); err != nil {
		return err
	}
	err := c.bucket.Delete(db, confirmationKey(id, owner))
	if errors.ErrNotFound.Is(err) {
		return errors.Wrapf(errors.ErrState, "transaction %d not confirmed by %s", id, owner)
	}
	return err
}

// IsConfirmed returns true if given address confirmed the transaction,
// regardless of its current membership.
func (c *ConfirmationTracker) IsConfirmed(db wallet.ReadOnlyKVStore, id uint64, owner wallet.Address) (bool, error) {
	switch err := c.bucket.Has(db, confirmationKey(id, owner)); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// Confirmers returns the owners that confirmed the transaction, in the
// order of given owner set.
func (c *ConfirmationTracker) Confirmers(db wallet.ReadOnlyKVStore, id uint64, owners []wallet.Address) ([]wallet.Address, error) {
	var res []wallet.Address
	for _, o := range owners {
		ok, err := c.IsConfirmed(db, id, o)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, o)
		}
	}
	return res, nil
}

// Count returns the number of owners from given owner set that confirmed
// the transaction.
func (c *ConfirmationTracker) Count(db wallet.ReadOnlyKVStore, id uint64, owners []wallet.Address) (uint64, error) {
	confirmers, err := c.Confirmers(db, id, owners)
	if err != nil {
		return 0, err
	}
	return uint64(len(confirmers)), nil
}
