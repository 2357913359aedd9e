package iavl

import (
	"sync"

	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/store"
)

// lazyIterator streams the items visited by a tree traversal running in
// another goroutine.
type lazyIterator struct {
	read chan store.Model
	stop chan struct{}
	once sync.Once
}

var _ store.Iterator = (*lazyIterator)(nil)

func newLazyIterator() *lazyIterator {
	return &lazyIterator{
		read: make(chan store.Model),
		stop: make(chan struct{}),
	}
}

// add is the tree traversal callback. Returning true stops the traversal.
func (i *lazyIterator) add(key []byte, value []byte) bool {
	m := store.Model{Key: key, Value: value}
	select {
	case i.read <- m:
		return false
	case <-i.stop:
		return true
	}
}

// finish must be called by the traversal once it is done.
func (i *lazyIterator) finish() {
	close(i.read)
}

func (i *lazyIterator) Next() (key, value []byte, err error) {
	m, ok := <-i.read
	if !ok {
		return nil, nil, errors.ErrIteratorDone
	}
	return m.Key, m.Value, nil
}

func (i *lazyIterator) Release() {
	i.once.Do(func() {
		close(i.stop)
	})
}
