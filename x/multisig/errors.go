package multisig

import (
	"github.com/iov-one/wallet/errors"
)

// ErrReentrant is returned when the engine is called from within an
// operation that is still being processed, for example by a Caller that
// calls back into the wallet.
// multisig takes 1040-1049
var ErrReentrant = errors.Register(1040, "re-entrant call")
