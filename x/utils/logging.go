package utils

import (
	"time"

	"github.com/iov-one/wallet"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ wallet.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx wallet.Context, store wallet.KVStore, tx wallet.Tx, next wallet.Handler) (*wallet.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil && res != nil {
		resLog = res.Log
	}
	logDuration(ctx, start, wallet.GetPath(tx), resLog, err)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx wallet.Context, start time.Time, path, msg string, err error) {
	delta := time.Since(start)
	logger := wallet.GetLogger(ctx).With("path", path, "duration", delta/time.Microsecond)

	// Although message can be empty, we still want to emit a log entry
	// because it contains other relevant information beside the message.
	if err != nil {
		logger.Error(msg, "err", err)
	} else {
		logger.Info(msg)
	}
}
