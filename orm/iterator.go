package orm

import (
	"reflect"

	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
)

// ModelIterator over a domain of keys in ascending order. End is exclusive.
// CONTRACT: No writes may happen within a domain while an iterator exists over it.
type ModelIterator interface {
	// LoadNext loads the current value into the passed destination and
	// moves the iterator to the next key. Returned key does not contain
	// the bucket prefix.
	// ErrIteratorDone is returned when there are no more entities.
	LoadNext(dest Model) ([]byte, error)

	// Release releases the Iterator.
	Release()
}

type modelIterator struct {
	// this is the raw KVStoreIterator
	iterator wallet.Iterator
	// this is the bucketPrefix to strip from each key
	bucketPrefix []byte
	model        reflect.Type
}

var _ ModelIterator = (*modelIterator)(nil)

func (i *modelIterator) LoadNext(dest Model) ([]byte, error) {
	if !i.iterator.Valid() {
		return nil, errors.ErrIteratorDone
	}
	if !reflect.TypeOf(dest).AssignableTo(i.model) {
		return nil, errors.Wrapf(errors.ErrType, "%v cannot be represented as %T", i.model, dest)
	}
	key := append([]byte(nil), i.iterator.Key()[len(i.bucketPrefix):]...)
	if err := dest.Unmarshal(i.iterator.Value()); err != nil {
		return nil, errors.Wrapf(err, "cannot unmarshal into %T", dest)
	}
	if err := i.iterator.Next(); err != nil {
		return nil, errors.Wrap(err, "iterator next")
	}
	return key, nil
}

func (i *modelIterator) Release() {
	i.iterator.Close()
}
