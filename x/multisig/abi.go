package multisig

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
)

// governanceABI describes the functions a self-call can invoke. Call data is
// the 4 byte selector of the function signature followed by the ABI encoded
// arguments.
const governanceABI = `[
	{"type": "function", "name": "addOwner", "inputs": [{"name": "owner", "type": "address"}], "outputs": []},
	{"type": "function", "name": "removeOwner", "inputs": [{"name": "owner", "type": "address"}], "outputs": []},
	{"type": "function", "name": "replaceOwner", "inputs": [{"name": "owner", "type": "address"}, {"name": "newOwner", "type": "address"}], "outputs": []},
	{"type": "function", "name": "changeRequirement", "inputs": [{"name": "_required", "type": "uint256"}], "outputs": []}
]`

const (
	methodAddOwner          = "addOwner"
	methodRemoveOwner       = "removeOwner"
	methodReplaceOwner      = "replaceOwner"
	methodChangeRequirement = "changeRequirement"
)

var governance abi.ABI

func init() {
	parsed, err := abi.JSON(strings.NewReader(governanceABI))
	if err != nil {
		panic(err)
	}
	governance = parsed
}

// EncodeCall returns the call data of a governance message. Submit it as
// the data of a transaction which destination is the wallet address.
func EncodeCall(msg wallet.Msg) ([]byte, error) {
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid message")
	}
	var (
		data []byte
		err  error
	)
	switch m := msg.(type) {
	case *AddOwnerMsg:
		data, err = governance.Pack(methodAddOwner, toCommon(m.Owner))
	case *RemoveOwnerMsg:
		data, err = governance.Pack(methodRemoveOwner, toCommon(m.Owner))
	case *ReplaceOwnerMsg:
		data, err = governance.Pack(methodReplaceOwner, toCommon(m.Owner), toCommon(m.NewOwner))
	case *ChangeRequirementMsg:
		data, err = governance.Pack(methodChangeRequirement, new(big.Int).SetUint64(m.Required))
	default:
		return nil, errors.Wrapf(errors.ErrType, "%T is not a governance message", msg)
	}
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot pack: %s", err)
	}
	return data, nil
}

// DecodeCall returns the governance message encoded in given call data. The
// message is not validated.
func DecodeCall(data []byte) (wallet.Msg, error) {
	if len(data) < 4 {
		return nil, errors.Wrap(errors.ErrInput, "call data too short")
	}
	method, err := governance.MethodById(data[:4])
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "unknown method %x", data[:4])
	}
	args, err := method.Inputs.UnpackValues(data[4:])
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot unpack %s arguments: %s", method.Name, err)
	}

	switch method.Name {
	case methodAddOwner:
		return &AddOwnerMsg{Owner: fromCommon(args[0])}, nil
	case methodRemoveOwner:
		return &RemoveOwnerMsg{Owner: fromCommon(args[0])}, nil
	case methodReplaceOwner:
		return &ReplaceOwnerMsg{Owner: fromCommon(args[0]), NewOwner: fromCommon(args[1])}, nil
	case methodChangeRequirement:
		n, ok := args[0].(*big.Int)
		if !ok {
			return nil, errors.Wrapf(errors.ErrType, "unexpected argument %T", args[0])
		}
		if !n.IsUint64() {
			return nil, errors.Wrapf(errors.ErrOverflow, "required %s", n)
		}
		return &ChangeRequirementMsg{Required: n.Uint64()}, nil
	default:
		return nil, errors.Wrapf(errors.ErrHuman, "no message for method %s", method.Name)
	}
}

func toCommon(a wallet.Address) common.Address {
	return common.BytesToAddress(a)
}

func fromCommon(v interface{}) wallet.Address {
	a, ok := v.(common.Address)
	if !ok {
		return nil
	}
	return wallet.Address(a.Bytes())
}
