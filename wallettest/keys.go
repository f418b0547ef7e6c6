package wallettest

import (
	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/crypto"
)

func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns a new, random signature condition. Use its address
// as an owner identity.
func NewCondition() wallet.Condition {
	return NewKey().PublicKey().Condition()
}
