package multisig

import (
	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
	"github.com/iov-one/wallet/gconf"
)

// Initializer fulfils the Initializer interface to deploy a wallet from the
// "multisig" section of a genesis file.
//
//   "multisig": {
//     "address": "0x...",
//     "owners": ["0x...", "0x..."],
//     "required": 2
//   }
type Initializer struct{}

var _ wallet.Initializer = Initializer{}

// FromGenesis deploys the wallet described by the genesis file. It fails if
// a wallet already exists in the store.
func (Initializer) FromGenesis(opts wallet.Options, db wallet.KVStore) error {
	switch ok, err := gconf.Exists(db, configurationPkg); {
	case err != nil:
		return err
	case ok:
		return errors.Wrap(errors.ErrDuplicate, "wallet already deployed")
	}
	var conf Configuration
	if err := gconf.InitConfig(db, opts, configurationPkg, &conf); err != nil {
		return errors.Wrap(err, "init multisig")
	}
	return nil
}
