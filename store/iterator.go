package store

import (
	"bytes"
	"sync"

	"github.com/google/btree"
	"github.com/iov-one/idm/errors"
)

///////////////////////////////////////////////////////
// From Items to Iterator

type btreeIter struct {
	data    btree.Item
	hasMore bool
	read    <-chan btree.Item
	stop    chan<- struct{}
	once    sync.Once
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

func ascendBtree(bt *btree.BTree, start, end []byte) *btreeIter {
	read := make(chan btree.Item)
	// ensure we never block when we call close()
	stop := make(chan struct{}, 1)
	iter := &btreeIter{
		read: read,
		stop: stop,
	}

	insert := func(item btree.Item) bool {
		select {
		case read <- item:
			return true
		case <-stop:
			return false
		}
	}

	go func() {
		if start == nil && end == nil {
			bt.Ascend(insert)
		} else if start == nil { // end != nil
			bt.AscendLessThan(bkey{end}, insert)
		} else if end == nil { // start != nil
			bt.AscendGreaterOrEqual(bkey{start}, insert)
		} else { // both != nil
			bt.AscendRange(bkey{start}, bkey{end}, insert)
		}
		close(read)
	}()

	iter.next()
	return iter
}

func descendBtree(bt *btree.BTree, start, end []byte) *btreeIter {
	read := make(chan btree.Item)
	// ensure we never block when we call close()
	stop := make(chan struct{}, 1)
	iter := &btreeIter{
		read: read,
		stop: stop,
	}

	insert := func(item btree.Item) bool {
		select {
		case read <- item:
			return true
		case <-stop:
			return false
		}
	}

	go func() {
		if start == nil && end == nil {
			bt.Descend(insert)
		} else if start == nil { // end != nil
			bt.DescendLessOrEqual(bkeyLess{end}, insert)
		} else if end == nil { // start != nil
			bt.DescendGreaterThan(bkeyLess{start}, insert)
		} else { // both != nil
			bt.DescendRange(bkeyLess{end}, bkeyLess{start}, insert)
		}
		close(read)
	}()

	iter.next()
	return iter
}

func (b *btreeIter) wrap(parentIter Iterator, ascending bool) (*itemIter, error) {
	p, err := newPeekIter(parentIter)
	if err != nil {
		b.close()
		return nil, err
	}
	iter := &itemIter{
		wrap:      b,
		parent:    p,
		ascending: ascending,
	}
	if err := iter.skipAllDeleted(); err != nil {
		iter.Release()
		return nil, err
	}
	return iter, nil
}

func (b *btreeIter) next() {
	b.data, b.hasMore = <-b.read
}

func (b *btreeIter) close() {
	b.once.Do(func() {
		b.stop <- struct{}{}
	})
}

// get requires this is valid, gets what we are pointing at
func (b *btreeIter) get() keyer {
	return b.data.(keyer)
}

func (b *btreeIter) valid() bool {
	return b.hasMore
}

// peekIter remembers the current position of an Iterator, so that it can be
// compared with the cache content before being consumed.
type peekIter struct {
	iter  Iterator
	key   []byte
	value []byte
	valid bool
}

func newPeekIter(iter Iterator) (*peekIter, error) {
	p := &peekIter{iter: iter}
	return p, p.next()
}

func (p *peekIter) next() error {
	key, value, err := p.iter.Next()
	switch {
	case errors.ErrIteratorDone.Is(err):
		p.key, p.value, p.valid = nil, nil, false
		return nil
	case err != nil:
		p.valid = false
		return err
	}
	p.key, p.value, p.valid = key, value, true
	return nil
}

// itemIter combines the cache content with the parent store content, taking
// into consideration overwrites and deletes.
type itemIter struct {
	wrap *btreeIter
	// if we are iterating in a cache-wrap (and who isn't),
	// we need to combine this iterator with the parent
	parent    *peekIter
	ascending bool
}

//------- public facing interface ------
var _ Iterator = (*itemIter)(nil)

// Next returns the current item and moves the cursor forward.
func (i *itemIter) Next() (key, value []byte, err error) {
	// advance either us, parent, or both
	switch i.firstKey() {
	case us:
		item := i.wrap.get().(setItem)
		key, value = item.Key(), item.value
		i.wrap.next()
	case both:
		item := i.wrap.get().(setItem)
		key, value = item.Key(), item.value
		i.wrap.next()
		if err := i.parent.next(); err != nil {
			return nil, nil, err
		}
	case parent:
		key, value = i.parent.key, i.parent.value
		if err := i.parent.next(); err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, errors.ErrIteratorDone
	}

	// keep advancing over all deleted entries
	if err := i.skipAllDeleted(); err != nil {
		return nil, nil, err
	}
	return key, value, nil
}

// Release releases the Iterator.
func (i *itemIter) Release() {
	i.parent.iter.Release()
	i.wrap.close()
}

// skipAllDeleted loops and skips any number of deleted items
func (i *itemIter) skipAllDeleted() error {
	for {
		more, err := i.skipDeleted()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// skipDeleted jumps over all elements we can safely fast forward
// return true if skipped, so we can skip again
func (i *itemIter) skipDeleted() (bool, error) {
	src := i.firstKey()
	if src == us || src == both {
		// if our next is deleted, advance...
		if _, ok := i.wrap.get().(deletedItem); ok {
			i.wrap.next()
			// if parent had the same key, advance parent as well
			if src == both {
				if err := i.parent.next(); err != nil {
					return false, err
				}
			}
			return true, nil
		}
	}
	return false, nil
}

// firstKey selects the iterator with the next key in the iteration order
func (i *itemIter) firstKey() source {
	// if only one or none is valid, it is clear which to use
	if !i.parent.valid {
		if !i.wrap.valid() {
			return none
		}
		return us
	} else if !i.wrap.valid() {
		return parent
	}

	// both are valid... compare keys....
	cmp := bytes.Compare(i.parent.key, i.wrap.get().Key())
	if !i.ascending {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}
