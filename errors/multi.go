package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no errors are provided, nil is returned. A single non nil error is
// returned as it is. Multi errors are flattened.
func Append(errs ...error) error {
	var all []error
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			all = append(all, m...)
		} else {
			all = append(all, e)
		}
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	}
	return multiErr(all)
}

// multiErr holds more than one error. It never contains nil values or another
// multiErr.
type multiErr []error

func (m multiErr) Error() string {
	points := make([]string, len(m))
	for i, err := range m {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(m), strings.Join(points, "\n\t"))
}

// ABCICode returns the code of the first error, consistent with the fail
// fast approach.
func (m multiErr) ABCICode() uint32 {
	return abciCode(m[0])
}

// Cause returns the first error so that kind tests work for the fail fast
// result.
func (m multiErr) Cause() error {
	return m[0]
}

// Unpack returns all clubbed errors.
func (m multiErr) Unpack() []error {
	return m
}

// unpacker is implemented by errors that hold more than one error.
type unpacker interface {
	Unpack() []error
}
