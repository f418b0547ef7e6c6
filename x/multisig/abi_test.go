package multisig

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
	"github.com/iov-one/wallet/wallettest"
	"github.com/iov-one/wallet/wallettest/assert"
)

func TestCallRoundtrip(t *testing.T) {
	a := wallettest.NewCondition().Address()
	b := wallettest.NewCondition().Address()

	cases := map[string]struct {
		msg      wallet.Msg
		selector string
	}{
		"add owner": {
			msg:      &AddOwnerMsg{Owner: a},
			selector: "7065cb48",
		},
		"remove owner": {
			msg: &RemoveOwnerMsg{Owner: a},
		},
		"replace owner": {
			msg: &ReplaceOwnerMsg{Owner: a, NewOwner: b},
		},
		"change requirement": {
			msg:      &ChangeRequirementMsg{Required: 2},
			selector: "ba51a6df",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			data, err := EncodeCall(tc.msg)
			assert.Nil(t, err)
			if tc.selector != "" {
				assert.Equal(t, tc.selector, hex.EncodeToString(data[:4]))
			}
			got, err := DecodeCall(data)
			assert.Nil(t, err)
			assert.Equal(t, tc.msg, got)
		})
	}
}

func TestEncodeCallFailures(t *testing.T) {
	_, err := EncodeCall(&SubmitTransactionMsg{Destination: DefaultAddress})
	assert.IsErr(t, errors.ErrType, err)

	_, err = EncodeCall(&AddOwnerMsg{})
	assert.IsErr(t, errors.ErrEmpty, err)

	_, err = EncodeCall(&ChangeRequirementMsg{Required: 0})
	assert.IsErr(t, errors.ErrInput, err)
}

func TestDecodeCallFailures(t *testing.T) {
	tooBig, err := governance.Pack(methodChangeRequirement, new(big.Int).Lsh(big.NewInt(1), 64))
	assert.Nil(t, err)

	valid, err := governance.Pack(methodAddOwner, common.HexToAddress("0x594F5804Eb71d66B16753D7247D7DD031245fBE7"))
	assert.Nil(t, err)

	cases := map[string]struct {
		data    []byte
		wantErr *errors.Error
	}{
		"empty":                {data: nil, wantErr: errors.ErrInput},
		"too short":            {data: []byte{0x70, 0x65}, wantErr: errors.ErrInput},
		"unknown selector":     {data: []byte{1, 2, 3, 4}, wantErr: errors.ErrInput},
		"truncated arguments":  {data: valid[:20], wantErr: errors.ErrInput},
		"requirement overflow": {data: tooBig, wantErr: errors.ErrOverflow},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := DecodeCall(tc.data)
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestDecodeCallAcceptsEVMAddresses(t *testing.T) {
	owner, err := wallet.ParseAddress("0x594F5804Eb71d66B16753D7247D7DD031245fBE7")
	assert.Nil(t, err)
	data, err := EncodeCall(&AddOwnerMsg{Owner: owner})
	assert.Nil(t, err)

	msg, err := DecodeCall(data)
	assert.Nil(t, err)
	assert.Equal(t, "594F5804EB71D66B16753D7247D7DD031245FBE7", msg.(*AddOwnerMsg).Owner.String())
}
