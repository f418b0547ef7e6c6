package multisig

import (
	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
	"github.com/iov-one/wallet/orm"
)

const (
	pathSubmitTransactionMsg  = "multisig/submit"
	pathConfirmTransactionMsg = "multisig/confirm"
	pathRevokeConfirmationMsg = "multisig/revoke"
	pathExecuteTransactionMsg = "multisig/execute"
	pathAddOwnerMsg           = "multisig/add_owner"
	pathRemoveOwnerMsg        = "multisig/remove_owner"
	pathReplaceOwnerMsg       = "multisig/replace_owner"
	pathChangeRequirementMsg  = "multisig/change_requirement"
)

var _ wallet.Msg = (*SubmitTransactionMsg)(nil)

// SubmitTransactionMsg proposes a new transaction. The sender confirms it
// implicitly.
type SubmitTransactionMsg struct {
	Destination wallet.Address
	Value       uint64
	Data        []byte
}

func (SubmitTransactionMsg) Path() string {
	return pathSubmitTransactionMsg
}

func (m *SubmitTransactionMsg) Validate() error {
	if m.Destination.IsZero() {
		return errors.Field("Destination", errors.ErrEmpty, "required")
	}
	return errors.Field("Destination", m.Destination.Validate(), "")
}

func (m *SubmitTransactionMsg) Marshal() ([]byte, error) {
	var e orm.Encoder
	e.Bytes(1, m.Destination)
	e.Uint64(2, m.Value)
	e.Bytes(3, m.Data)
	return e.Result(), nil
}

func (m *SubmitTransactionMsg) Unmarshal(raw []byte) error {
	*m = SubmitTransactionMsg{}
	return orm.Decode(raw, func(f orm.Field) error {
		switch f.Num {
		case 1:
			m.Destination = f.Bytes
		case 2:
			m.Value = f.Varint
		case 3:
			m.Data = f.Bytes
		}
		return nil
	})
}

var _ wallet.Msg = (*ConfirmTransactionMsg)(nil)

// ConfirmTransactionMsg adds the confirmation of the sender to a
// transaction.
type ConfirmTransactionMsg struct {
	TransactionID uint64
}

func (ConfirmTransactionMsg) Path() string {
	return pathConfirmTransactionMsg
}

func (*ConfirmTransactionMsg) Validate() error {
	return nil
}

func (m *ConfirmTransactionMsg) Marshal() ([]byte, error) {
	return marshalTransactionID(m.TransactionID), nil
}

func (m *ConfirmTransactionMsg) Unmarshal(raw []byte) error {
	return unmarshalTransactionID(raw, &m.TransactionID)
}

var _ wallet.Msg = (*RevokeConfirmationMsg)(nil)

// RevokeConfirmationMsg withdraws the confirmation of the sender from a
// transaction that was not executed yet.
type RevokeConfirmationMsg struct {
	TransactionID uint64
}

func (RevokeConfirmationMsg) Path() string {
	return pathRevokeConfirmationMsg
}

func (*RevokeConfirmationMsg) Validate() error {
	return nil
}

func (m *RevokeConfirmationMsg) Marshal() ([]byte, error) {
	return marshalTransactionID(m.TransactionID), nil
}

func (m *RevokeConfirmationMsg) Unmarshal(raw []byte) error {
	return unmarshalTransactionID(raw, &m.TransactionID)
}

var _ wallet.Msg = (*ExecuteTransactionMsg)(nil)

// ExecuteTransactionMsg executes a confirmed transaction. Use it to retry a
// transaction which call failed, or one that became executable after the
// owner set changed.
type ExecuteTransactionMsg struct {
	TransactionID uint64
}

func (ExecuteTransactionMsg) Path() string {
	return pathExecuteTransactionMsg
}

func (*ExecuteTransactionMsg) Validate() error {
	return nil
}

func (m *ExecuteTransactionMsg) Marshal() ([]byte, error) {
	return marshalTransactionID(m.TransactionID), nil
}

func (m *ExecuteTransactionMsg) Unmarshal(raw []byte) error {
	return unmarshalTransactionID(raw, &m.TransactionID)
}

func marshalTransactionID(id uint64) []byte {
	var e orm.Encoder
	e.Uint64(1, id)
	return e.Result()
}

func unmarshalTransactionID(raw []byte, id *uint64) error {
	*id = 0
	return orm.Decode(raw, func(f orm.Field) error {
		if f.Num == 1 {
			*id = f.Varint
		}
		return nil
	})
}

var _ wallet.Msg = (*AddOwnerMsg)(nil)

// AddOwnerMsg appends an owner to the owner set.
type AddOwnerMsg struct {
	Owner wallet.Address
}

func (AddOwnerMsg) Path() string {
	return pathAddOwnerMsg
}

func (m *AddOwnerMsg) Validate() error {
	return validateOwner("Owner", m.Owner)
}

func (m *AddOwnerMsg) Marshal() ([]byte, error) {
	var e orm.Encoder
	e.Bytes(1, m.Owner)
	return e.Result(), nil
}

func (m *AddOwnerMsg) Unmarshal(raw []byte) error {
	*m = AddOwnerMsg{}
	return orm.Decode(raw, func(f orm.Field) error {
		if f.Num == 1 {
			m.Owner = f.Bytes
		}
		return nil
	})
}

var _ wallet.Msg = (*RemoveOwnerMsg)(nil)

// RemoveOwnerMsg removes an owner from the owner set.
type RemoveOwnerMsg struct {
	Owner wallet.Address
}

func (RemoveOwnerMsg) Path() string {
	return pathRemoveOwnerMsg
}

func (m *RemoveOwnerMsg) Validate() error {
	return errors.Field("Owner", m.Owner.Validate(), "")
}

func (m *RemoveOwnerMsg) Marshal() ([]byte, error) {
	var e orm.Encoder
	e.Bytes(1, m.Owner)
	return e.Result(), nil
}

func (m *RemoveOwnerMsg) Unmarshal(raw []byte) error {
	*m = RemoveOwnerMsg{}
	return orm.Decode(raw, func(f orm.Field) error {
		if f.Num == 1 {
			m.Owner = f.Bytes
		}
		return nil
	})
}

var _ wallet.Msg = (*ReplaceOwnerMsg)(nil)

// ReplaceOwnerMsg replaces an owner with a new one, keeping its position in
// the owner set.
type ReplaceOwnerMsg struct {
	Owner    wallet.Address
	NewOwner wallet.Address
}

func (ReplaceOwnerMsg) Path() string {
	return pathReplaceOwnerMsg
}

func (m *ReplaceOwnerMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	errs = errors.Append(errs, validateOwner("NewOwner", m.NewOwner))
	return errs
}

func (m *ReplaceOwnerMsg) Marshal() ([]byte, error) {
	var e orm.Encoder
	e.Bytes(1, m.Owner)
	e.Bytes(2, m.NewOwner)
	return e.Result(), nil
}

func (m *ReplaceOwnerMsg) Unmarshal(raw []byte) error {
	*m = ReplaceOwnerMsg{}
	return orm.Decode(raw, func(f orm.Field) error {
		switch f.Num {
		case 1:
			m.Owner = f.Bytes
		case 2:
			m.NewOwner = f.Bytes
		}
		return nil
	})
}

var _ wallet.Msg = (*ChangeRequirementMsg)(nil)

// ChangeRequirementMsg sets the number of confirmations required to execute
// a transaction.
type ChangeRequirementMsg struct {
	Required uint64
}

func (ChangeRequirementMsg) Path() string {
	return pathChangeRequirementMsg
}

func (m *ChangeRequirementMsg) Validate() error {
	if m.Required == 0 {
		return errors.Field("Required", errors.ErrInput, "must be greater than zero")
	}
	return nil
}

func (m *ChangeRequirementMsg) Marshal() ([]byte, error) {
	var e orm.Encoder
	e.Uint64(1, m.Required)
	return e.Result(), nil
}

func (m *ChangeRequirementMsg) Unmarshal(raw []byte) error {
	*m = ChangeRequirementMsg{}
	return orm.Decode(raw, func(f orm.Field) error {
		if f.Num == 1 {
			m.Required = f.Varint
		}
		return nil
	})
}

// validateOwner returns an error if given address cannot become an owner.
func validateOwner(field string, a wallet.Address) error {
	if a.IsZero() {
		return errors.Field(field, errors.ErrEmpty, "zero address")
	}
	return errors.Field(field, a.Validate(), "")
}
