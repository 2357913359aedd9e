package idmtest

import "github.com/iov-one/idm"

// Handler is a mock implementation of the idm.Handler interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding
// method. Each method call is counted.
type Handler struct {
	checkCall   int
	CheckResult idm.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult idm.DeliverResult
	DeliverErr    error
}

var _ idm.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler is a mock handler that writes the given key and value to the
// store on every call, and then returns the configured error. It is useful
// to test that failed handlers leave no trace in the store.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ idm.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) Check(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &idm.CheckResult{}, nil
}

func (h *WriteHandler) Deliver(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &idm.DeliverResult{}, nil
}

// PanicHandler always panics.
type PanicHandler struct {
	Msg string
}

var _ idm.Handler = PanicHandler{}

func (p PanicHandler) Check(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.CheckResult, error) {
	panic(p.Msg)
}

func (p PanicHandler) Deliver(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.DeliverResult, error) {
	panic(p.Msg)
}
