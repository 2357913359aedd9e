package orm

import (
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
)

// consumeIterator will read all remaining data into an array and release
// the iterator. It must be used only when the result is known to be small.
func consumeIterator(iter idm.Iterator) ([]idm.Model, error) {
	defer iter.Release()

	var res []idm.Model
	for {
		switch k, v, err := iter.Next(); {
		case err == nil:
			res = append(res, idm.Pair(k, v))
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}
