package idmtest

import "github.com/iov-one/idm"

// Decorator is a mock implementation of the idm.Decorator interface.
//
// Set CheckErr or DeliverErr to make the decorator fail before the wrapped
// handler is called. Every call is counted, whatever its result.
type Decorator struct {
	checkCall   int
	CheckErr    error
	deliverCall int
	DeliverErr  error
}

var _ idm.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx idm.Context, db idm.KVStore, tx idm.Tx, next idm.Checker) (*idm.CheckResult, error) {
	d.checkCall++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx idm.Context, db idm.KVStore, tx idm.Tx, next idm.Deliverer) (*idm.DeliverResult, error) {
	d.deliverCall++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// WriteDecorator writes the given key and value to the store either before
// or after calling the wrapped handler. When After is set, nothing is
// written if the handler fails.
type WriteDecorator struct {
	Key   []byte
	Value []byte
	After bool
}

var _ idm.Decorator = WriteDecorator{}

func (d WriteDecorator) Check(ctx idm.Context, db idm.KVStore, tx idm.Tx, next idm.Checker) (*idm.CheckResult, error) {
	if !d.After {
		if err := db.Set(d.Key, d.Value); err != nil {
			return nil, err
		}
	}
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if d.After {
		if err := db.Set(d.Key, d.Value); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (d WriteDecorator) Deliver(ctx idm.Context, db idm.KVStore, tx idm.Tx, next idm.Deliverer) (*idm.DeliverResult, error) {
	if !d.After {
		if err := db.Set(d.Key, d.Value); err != nil {
			return nil, err
		}
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if d.After {
		if err := db.Set(d.Key, d.Value); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Decorate returns a handler that calls the decorator around h.
func Decorate(h idm.Handler, d idm.Decorator) idm.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn idm.Handler
	dc idm.Decorator
}

var _ idm.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
