package utils

import (
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
)

// Recovery converts a panic raised while processing a transaction into an
// ErrPanic failure of that transaction, so a faulty handler cannot halt
// the node. Recovered panics are logged with the message path.
type Recovery struct{}

var _ idm.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx idm.Context, store idm.KVStore, tx idm.Tx, next idm.Checker) (_ *idm.CheckResult, err error) {
	defer guard(ctx, tx, &err)
	return next.Check(ctx, store, tx)
}

func (Recovery) Deliver(ctx idm.Context, store idm.KVStore, tx idm.Tx, next idm.Deliverer) (_ *idm.DeliverResult, err error) {
	defer guard(ctx, tx, &err)
	return next.Deliver(ctx, store, tx)
}

// guard must be deferred directly for recover to take effect.
func guard(ctx idm.Context, tx idm.Tx, err *error) {
	r := recover()
	if r == nil {
		return
	}
	*err = errors.Wrapf(errors.ErrPanic, "%v", r)
	idm.GetLogger(ctx).Error("Recovered from panic", "path", msgPath(tx), "panic", r)
}

func msgPath(tx idm.Tx) string {
	if tx == nil {
		return ""
	}
	msg, err := tx.GetMsg()
	if err != nil || msg == nil {
		return ""
	}
	return msg.Path()
}
