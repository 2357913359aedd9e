package idmtest

import "github.com/iov-one/idm"

// Tx represents an idm transaction.
// Transaction represents a single message that is to be processed within this
// transaction.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg idm.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ idm.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (idm.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg represents an idm message.
// Message is a request processed by the application within a single
// transaction.
type Msg struct {
	// RoutePath returned by the path method, consumed by the router.
	RoutePath string
	// Err if set is returned by the Validate method.
	Err error
}

var _ idm.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
