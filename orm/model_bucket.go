package orm

import (
	"reflect"

	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
)

// Model is impelemented by any entity that can be stored using ModelBucket.
type Model interface {
	wallet.Persistent
	Validate() error
}

// ModelBucket is implemented by buckets that operates on Models.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db wallet.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key exists. It
	// returns ErrNotFound otherwise.
	Has(db wallet.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database.
	Put(db wallet.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db wallet.KVStore, key []byte) error

	// Prefix returns an iterator over all entities which key starts with
	// given prefix, in ascending key order. Use nil to iterate over the
	// whole bucket.
	Prefix(db wallet.ReadOnlyKVStore, prefix []byte) (ModelIterator, error)
}

// NewModelBucket returns a ModelBucket instance that stores entities of the
// same type as given model under keys prefixed with the bucket name.
//
// Bucket name must be unique within the store and cannot contain the ":"
// character.
func NewModelBucket(name string, m Model) ModelBucket {
	return &modelBucket{
		prefix: []byte(name + ":"),
		model:  reflect.TypeOf(m),
	}
}

type modelBucket struct {
	prefix []byte
	model  reflect.Type
}

func (mb *modelBucket) dbKey(key []byte) []byte {
	return append(append(make([]byte, 0, len(mb.prefix)+len(key)), mb.prefix...), key...)
}

func (mb *modelBucket) One(db wallet.ReadOnlyKVStore, key []byte, dest Model) error {
	if !reflect.TypeOf(dest).AssignableTo(mb.model) {
		return errors.Wrapf(errors.ErrType, "%v cannot be represented as %T", mb.model, dest)
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot get from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal into %T", dest)
	}
	return nil
}

func (mb *modelBucket) Has(db wallet.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot query the database")
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%v not in the store", mb.model)
	}
	return nil
}

func (mb *modelBucket) Put(db wallet.KVStore, key []byte, m Model) error {
	if !reflect.TypeOf(m).AssignableTo(mb.model) {
		return errors.Wrapf(errors.ErrType, "cannot store %T in %v bucket", m, mb.model)
	}
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal")
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db wallet.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	if err := db.Delete(mb.dbKey(key)); err != nil {
		return errors.Wrap(err, "cannot delete from the database")
	}
	return nil
}

func (mb *modelBucket) Prefix(db wallet.ReadOnlyKVStore, prefix []byte) (ModelIterator, error) {
	start := mb.dbKey(prefix)
	it, err := db.Iterator(start, prefixEnd(start))
	if err != nil {
		return nil, errors.Wrap(err, "cannot create iterator")
	}
	return &modelIterator{
		iterator:     it,
		bucketPrefix: mb.prefix,
		model:        mb.model,
	}, nil
}

// prefixEnd returns the smallest key that is greater than all keys starting
// with given prefix. Nil is returned if there is no such key.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
