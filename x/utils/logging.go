package utils

import (
	"time"

	"github.com/iov-one/idm"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ idm.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> info, success -> debug
func (r Logging) Check(ctx idm.Context, store idm.KVStore, tx idm.Tx, next idm.Checker) (*idm.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil && res != nil {
		resLog = res.Log
	}
	logDuration(ctx, start, resLog, 0, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx idm.Context, store idm.KVStore, tx idm.Tx, next idm.Deliverer) (*idm.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var (
		resLog string
		events int
	)
	if err == nil && res != nil {
		resLog = res.Log
		events = len(res.Events)
	}
	logDuration(ctx, start, resLog, events, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx idm.Context, start time.Time, msg string, events int, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := idm.GetLogger(ctx).With("duration", delta/time.Microsecond)

	if err != nil {
		logger = logger.With("err", err)
	}
	if events > 0 {
		logger = logger.With("events", events)
	}

	// Although message can be empty, we still want to emit a log entry
	// because it contains other relevant information beside the message.
	switch {
	case err != nil:
		logger.Error(msg)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
