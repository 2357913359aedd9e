package orm

import (
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/idm/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	proto.Message
	// Validate returns error if the model is not in a valid state to save
	// to the db (eg. field missing, out of range, ...)
	Validate() error
}

// ModelSlicePtr represents a pointer to a slice of models. Think of it as
// *[]Model Because of Go type system, using []Model type would not work for
// us. Instead we use a placeholder type and the validation is done during
// the runtime.
type ModelSlicePtr interface{}

// newModel returns a new, zero value instance of the same type as given
// model.
func newModel(m Model) Model {
	return reflect.New(reflect.TypeOf(m).Elem()).Interface().(Model)
}

// sameType returns an error if both models are not of the same type.
func sameType(want, got Model) error {
	if reflect.TypeOf(want) != reflect.TypeOf(got) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %T", want, got)
	}
	return nil
}
