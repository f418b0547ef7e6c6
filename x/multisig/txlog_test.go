package multisig

import (
	"testing"

	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
	"github.com/iov-one/wallet/store"
	"github.com/iov-one/wallet/wallettest"
	"github.com/iov-one/wallet/wallettest/assert"
)

func TestTransactionLog(t *testing.T) {
	db := store.MemStore()
	log := NewTransactionLog()
	dest := wallettest.NewCondition().Address()

	n, err := log.Len(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), n)

	for want := uint64(0); want < 3; want++ {
		id, err := log.Append(db, dest, want, []byte{byte(want)})
		assert.Nil(t, err)
		assert.Equal(t, want, id)
	}

	n, err = log.Len(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(3), n)

	got, err := log.Get(db, 1)
	assert.Nil(t, err)
	assert.Equal(t, &Transaction{Destination: dest, Value: 1, Data: []byte{1}}, got)

	_, err = log.Get(db, 3)
	assert.IsErr(t, errors.ErrNotFound, err)

	assert.Nil(t, log.MarkExecuted(db, 1))
	assert.IsErr(t, errors.ErrState, log.MarkExecuted(db, 1))
	assert.IsErr(t, errors.ErrNotFound, log.MarkExecuted(db, 7))

	got, err = log.Get(db, 1)
	assert.Nil(t, err)
	assert.Equal(t, true, got.Executed)

	var ids []uint64
	var executed []bool
	err = log.Each(db, func(id uint64, t *Transaction) error {
		ids = append(ids, id)
		executed = append(executed, t.Executed)
		return nil
	})
	assert.Nil(t, err)
	assert.Equal(t, []uint64{0, 1, 2}, ids)
	assert.Equal(t, []bool{false, true, false}, executed)
}

func TestTransactionLogRejectsInvalidDestination(t *testing.T) {
	db := store.MemStore()
	log := NewTransactionLog()

	_, err := log.Append(db, nil, 1, nil)
	assert.IsErr(t, errors.ErrEmpty, err)

	// A rejected append still consumes the id unless the caller discards
	// the changes, which is what the savepoint of every operation does.
	cache := db.CacheWrap()
	_, err = log.Append(cache, wallet.Address("short"), 1, nil)
	assert.IsErr(t, errors.ErrInput, err)
	cache.Discard()

	id, err := log.Append(db, wallettest.NewCondition().Address(), 0, nil)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), id)
}

func TestConfirmationTracker(t *testing.T) {
	db := store.MemStore()
	log := NewTransactionLog()
	confs := NewConfirmationTracker(log)

	a := wallettest.NewCondition().Address()
	b := wallettest.NewCondition().Address()
	c := wallettest.NewCondition().Address()
	owners := []wallet.Address{a, b, c}

	id, err := log.Append(db, wallettest.NewCondition().Address(), 0, nil)
	assert.Nil(t, err)
	other, err := log.Append(db, wallettest.NewCondition().Address(), 0, nil)
	assert.Nil(t, err)

	assert.IsErr(t, errors.ErrNotFound, confs.Confirm(db, 99, a))
	assert.IsErr(t, errors.ErrNotFound, confs.Revoke(db, 99, a))

	assert.Nil(t, confs.Confirm(db, id, c))
	assert.Nil(t, confs.Confirm(db, id, a))
	assert.IsErr(t, errors.ErrState, confs.Confirm(db, id, a))
	assert.Nil(t, confs.Confirm(db, other, b))

	n, err := confs.Count(db, id, owners)
	assert.Nil(t, err)
	assert.Equal(t, uint64(2), n)

	// Owner set order, not confirmation order.
	confirmers, err := confs.Confirmers(db, id, owners)
	assert.Nil(t, err)
	assert.Equal(t, []wallet.Address{a, c}, confirmers)

	// Confirmations of addresses outside of the owner set do not count.
	n, err = confs.Count(db, id, []wallet.Address{b, c})
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), n)

	assert.IsErr(t, errors.ErrState, confs.Revoke(db, id, b))
	assert.Nil(t, confs.Revoke(db, id, a))
	ok, err := confs.IsConfirmed(db, id, a)
	assert.Nil(t, err)
	assert.Equal(t, false, ok)

	// Confirmations of other transactions are not affected.
	ok, err = confs.IsConfirmed(db, other, b)
	assert.Nil(t, err)
	assert.Equal(t, true, ok)
}
