package multisig

import (
	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
	"github.com/iov-one/wallet/orm"
)

// MaxOwners is the maximum number of owners a wallet can have.
const MaxOwners = 50

// Configuration is the state of the owner registry. There is a single
// configuration per store.
type Configuration struct {
	// Address is the identity of the wallet. A transaction with this
	// destination is a self-call.
	Address wallet.Address `json:"address"`
	// Owners is the ordered set of identities allowed to act.
	Owners []wallet.Address `json:"owners"`
	// Required is the number of confirmations needed to execute a
	// transaction.
	Required uint64 `json:"required"`
}

var _ orm.Model = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error) {
	var e orm.Encoder
	e.Bytes(1, c.Address)
	for _, o := range c.Owners {
		e.RepeatedBytes(2, o)
	}
	e.Uint64(3, c.Required)
	return e.Result(), nil
}

func (c *Configuration) Unmarshal(raw []byte) error {
	*c = Configuration{}
	return orm.Decode(raw, func(f orm.Field) error {
		switch f.Num {
		case 1:
			c.Address = f.Bytes
		case 2:
			c.Owners = append(c.Owners, f.Bytes)
		case 3:
			c.Required = f.Varint
		}
		return nil
	})
}

func (c *Configuration) Validate() error {
	var errs error
	if c.Address.IsZero() {
		errs = errors.AppendField(errs, "Address", errors.ErrEmpty)
	} else {
		errs = errors.AppendField(errs, "Address", c.Address.Validate())
	}

	switch n := len(c.Owners); {
	case n == 0:
		errs = errors.AppendField(errs, "Owners", errors.ErrEmpty)
	case n > MaxOwners:
		errs = errors.Append(errs, errors.Field("Owners", errors.ErrInput, "more than %d owners", MaxOwners))
	}
	for i, o := range c.Owners {
		if o.IsZero() {
			errs = errors.Append(errs, errors.Field("Owners", errors.ErrEmpty, "owner %d is the zero address", i))
			continue
		}
		if err := o.Validate(); err != nil {
			errs = errors.Append(errs, errors.Field("Owners", err, "owner %d", i))
			continue
		}
		if c.indexOf(o) != i {
			errs = errors.Append(errs, errors.Field("Owners", errors.ErrDuplicate, "owner %s", o))
		}
	}

	if c.Required == 0 || c.Required > uint64(len(c.Owners)) {
		errs = errors.Append(errs, errors.Field("Required", errors.ErrInput,
			"must be between 1 and %d, got %d", len(c.Owners), c.Required))
	}
	return errs
}

// indexOf returns the position of given address in the owner set or -1.
func (c *Configuration) indexOf(a wallet.Address) int {
	for i, o := range c.Owners {
		if o.Equals(a) {
			return i
		}
	}
	return -1
}

// IsOwner returns true if given address is a member of the owner set.
func (c *Configuration) IsOwner(a wallet.Address) bool {
	return c.indexOf(a) >= 0
}

// Transaction is a call proposed by one of the owners.
type Transaction struct {
	Destination wallet.Address
	Value       uint64
	Data        []byte
	Executed    bool
}

var _ orm.Model = (*Transaction)(nil)

func (t *Transaction) Marshal() ([]byte, error) {
	var e orm.Encoder
	e.Bytes(1, t.Destination)
	e.Uint64(2, t.Value)
	e.Bytes(3, t.Data)
	e.Bool(4, t.Executed)
	return e.Result(), nil
}

func (t *Transaction) Unmarshal(raw []byte) error {
	*t = Transaction{}
	return orm.Decode(raw, func(f orm.Field) error {
		switch f.Num {
		case 1:
			t.Destination = f.Bytes
		case 2:
			t.Value = f.Varint
		case 3:
			t.Data = f.Bytes
		case 4:
			t.Executed = f.Varint != 0
		}
		return nil
	})
}

func (t *Transaction) Validate() error {
	if t.Destination.IsZero() {
		return errors.Field("Destination", errors.ErrEmpty, "required")
	}
	return errors.Field("Destination", t.Destination.Validate(), "")
}

// Confirmation is the agreement of a single owner to a transaction.
type Confirmation struct {
	Owner wallet.Address
}

var _ orm.Model = (*Confirmation)(nil)

func (c *Confirmation) Marshal() ([]byte, error) {
	var e orm.Encoder
	e.Bytes(1, c.Owner)
	return e.Result(), nil
}

func (c *Confirmation) Unmarshal(raw []byte) error {
	*c = Confirmation{}
	return orm.Decode(raw, func(f orm.Field) error {
		if f.Num == 1 {
			c.Owner = f.Bytes
		}
		return nil
	})
}

func (c *Confirmation) Validate() error {
	return errors.Field("Owner", c.Owner.Validate(), "")
}
