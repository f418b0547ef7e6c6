package wallettest

import "github.com/iov-one/wallet"

// Tx represents a wallet transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg wallet.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ wallet.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (wallet.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg represents a wallet message.
type Msg struct {
	// Path returned by the path method, consumed by the router.
	RoutePath string
	// Serialized represents the serialized form of this message.
	Serialized []byte
	// Err if set is returned by any method call.
	Err error
}

var _ wallet.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}
