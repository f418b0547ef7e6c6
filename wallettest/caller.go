package wallettest

import (
	"sync"

	"github.com/iov-one/wallet"
)

// Call is a single recorded invocation of the Caller mock.
type Call struct {
	Destination wallet.Address
	Value       uint64
	Data        []byte
}

// Caller is a mock of the external call primitive used by the wallet when
// executing a transaction whose destination is not the wallet itself.
//
// Set Err to make every call fail. Set Fn to provide a custom behaviour, for
// example to call back into the wallet. All calls are recorded regardless of
// their result.
type Caller struct {
	Err error
	Fn  func(ctx wallet.Context, destination wallet.Address, value uint64, data []byte) ([]byte, error)

	mu    sync.Mutex
	calls []Call
}

func (c *Caller) Call(ctx wallet.Context, destination wallet.Address, value uint64, data []byte) ([]byte, error) {
	c.mu.Lock()
	c.calls = append(c.calls, Call{Destination: destination, Value: value, Data: data})
	c.mu.Unlock()

	if c.Err != nil {
		return nil, c.Err
	}
	if c.Fn != nil {
		return c.Fn(ctx, destination, value, data)
	}
	return nil, nil
}

// Calls returns all recorded invocations in order.
func (c *Caller) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

// CallCount returns the number of recorded invocations.
func (c *Caller) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}
