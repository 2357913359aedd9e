package idm

import (
	"reflect"

	"github.com/iov-one/idm/errors"
)

// Msg is message for the ledger to take an action
// (Make a state transition). It is just the request, and
// must be validated by the Handlers. All authentication
// information is in the wrapping Tx.
type Msg interface {
	// Path returns the message path.
	// This is used by the Router to locate the proper Handler.
	// Msg should be created alongside the Handler that corresponds to them.
	//
	// Multiple types may have the same value, and will end up at the
	// same Handler.
	//
	// Must be alphanumeric [0-9A-Za-z_\-/]+
	Path() string

	// Validate performs a sanity checks on this message. It returns an
	// error if at least one of the checks fails.
	Validate() error
}

// Tx represent the data sent from the user to the chain.
// It includes the actual message, along with information needed
// to authenticate the sender (cryptographic signatures),
// and anything else needed to pass through middleware.
type Tx interface {
	// GetMsg returns the action we wish to communicate
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if no message
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// TxDecoder can parse bytes into a Tx
type TxDecoder func(txBytes []byte) (Tx, error)

// LoadMsg extracts the message represented by given transaction into given
// destination. Before returning message validation method is called.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrState, "nil message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr {
		return errors.Wrap(errors.ErrType, "destination must be a pointer")
	}
	if dest.IsNil() {
		return errors.Wrap(errors.ErrType, "destination is nil")
	}
	src := reflect.ValueOf(msg)
	if src.Kind() == reflect.Ptr {
		src = src.Elem()
	}
	if !src.Type().AssignableTo(dest.Elem().Type()) {
		return errors.Wrapf(errors.ErrType, "want %T message, got %T", destination, msg)
	}
	dest.Elem().Set(src)
	return nil
}

// ExtractMsg returns the only message held by the given container. A
// container is a pointer to a structure where every message kind is
// represented by its own pointer field and at most one of them is set.
// Fields that are not messages are ignored.
func ExtractMsg(container interface{}) (Msg, error) {
	if container == nil {
		return nil, errors.Wrap(errors.ErrInput, "container is nil")
	}
	v := reflect.ValueOf(container)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return nil, errors.Wrapf(errors.ErrInput, "container must be a non nil pointer, got %T", container)
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInput, "container must point to a struct, got %T", container)
	}

	var found Msg
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() != reflect.Ptr || f.IsNil() || !f.CanInterface() {
			continue
		}
		msg, ok := f.Interface().(Msg)
		if !ok {
			continue
		}
		if found != nil {
			return nil, errors.Wrapf(errors.ErrInput, "more than one message: %T and %T", found, msg)
		}
		found = msg
	}
	if found == nil {
		return nil, errors.Wrap(errors.ErrState, "no message")
	}
	return found, nil
}
