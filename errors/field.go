package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field ties err to a message attribute, for example Role or Owners.2.
// Nested attributes use dot notation and list elements their index.
// It returns nil when err is nil. A stack trace is attached only if err
// does not carry one yet.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{parent: err, field: fieldName, desc: description}
}

// AppendField adds the error of a single attribute to an accumulated
// validation result. Both arguments may be nil.
func AppendField(errorsOrNil error, fieldName string, fieldErrOrNil error) error {
	return Append(errorsOrNil, Field(fieldName, fieldErrOrNil, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (err *fieldError) Error() string {
	if err.desc == "" {
		return fmt.Sprintf("field %q: %s", err.field, err.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", err.field, err.desc, err.parent)
}

func (err *fieldError) Cause() error  { return err.parent }
func (err *fieldError) Field() string { return err.field }

type fielder interface {
	Field() string
}

// FieldErrors collects the outermost errors created for fieldName,
// descending through wraps and multi errors.
func FieldErrors(err error, fieldName string) []error {
	for !isNilErr(err) {
		if f, ok := err.(fielder); ok && f.Field() == fieldName {
			return []error{err}
		}
		switch e := err.(type) {
		case unpacker:
			var res []error
			for _, child := range e.Unpack() {
				res = append(res, FieldErrors(child, fieldName)...)
			}
			return res
		case causer:
			err = e.Cause()
		default:
			return nil
		}
	}
	return nil
}
