package orm

import (
	"bytes"
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
)

const indexPrefix = "_i."

var isIndexName = regexp.MustCompile(`^[a-z_]{2,20}$`).MatchString

// Indexer calculates the secondary index key for a given model. A nil key
// means the model is not indexed.
type Indexer func(Model) ([]byte, error)

// Index represents a secondary index on some data.
// It is indexed by an arbitrary key returned by Indexer.
// All references are serialized as a MultiRef and stored under a single
// key, so it should be used only for small sized collections.
type Index struct {
	name    string
	id      []byte
	unique  bool
	indexer Indexer
	refKey  func([]byte) []byte
}

var _ idm.QueryHandler = Index{}

// NewIndex constructs an index.
// Indexer calculates the index for a model
// unique enforces a unique constraint on the index
// refKey calculates the absolute dbkey for a ref
func NewIndex(name string, indexer Indexer, unique bool, refKey func([]byte) []byte) Index {
	if !isIndexName(name) {
		panic("illegal index name: " + name)
	}
	return Index{
		name:    name,
		id:      []byte(indexPrefix + name + ":"),
		indexer: indexer,
		unique:  unique,
		refKey:  refKey,
	}
}

// Name returns the name of this index.
func (i Index) Name() string {
	return i.name
}

// indexKey is the full key we store in the db, including prefix
func (i Index) indexKey(key []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(key))
	copy(out, i.id)
	copy(out[l:], key)
	return out
}

// Update handles updating the reference to the model stored under the
// primary key pk in the secondary index.
//
// prev == nil means insert
// next == nil means delete
// both == nil is error
func (i Index) Update(db idm.KVStore, pk []byte, prev, next Model) error {
	if prev == nil && next == nil {
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil model")
	}
	var prevKey, nextKey []byte
	if prev != nil {
		k, err := i.indexer(prev)
		if err != nil {
			return errors.Wrapf(err, "index %s", i.name)
		}
		prevKey = k
	}
	if next != nil {
		k, err := i.indexer(next)
		if err != nil {
			return errors.Wrapf(err, "index %s", i.name)
		}
		nextKey = k
	}
	if prevKey != nil && nextKey != nil && bytes.Equal(prevKey, nextKey) {
		return nil
	}
	if prevKey != nil {
		if err := i.remove(db, prevKey, pk); err != nil {
			return err
		}
	}
	if nextKey != nil {
		if err := i.insert(db, nextKey, pk); err != nil {
			return err
		}
	}
	return nil
}

func (i Index) load(db idm.ReadOnlyKVStore, index []byte) (*MultiRef, error) {
	raw, err := db.Get(i.indexKey(index))
	if err != nil {
		return nil, err
	}
	var refs MultiRef
	if raw == nil {
		return &refs, nil
	}
	if err := proto.Unmarshal(raw, &refs); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	return &refs, nil
}

func (i Index) store(db idm.KVStore, index []byte, refs *MultiRef) error {
	key := i.indexKey(index)
	if len(refs.Refs) == 0 {
		return db.Delete(key)
	}
	raw, err := proto.Marshal(refs)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	return db.Set(key, raw)
}

func (i Index) insert(db idm.KVStore, index, pk []byte) error {
	refs, err := i.load(db, index)
	if err != nil {
		return err
	}
	if i.unique && len(refs.Refs) > 0 {
		return errors.Wrapf(ErrUniqueIndex, "index %s", i.name)
	}
	if err := refs.Add(pk); err != nil {
		return err
	}
	return i.store(db, index, refs)
}

func (i Index) remove(db idm.KVStore, index, pk []byte) error {
	refs, err := i.load(db, index)
	if err != nil {
		return err
	}
	if err := refs.Remove(pk); err != nil {
		return errors.Wrapf(err, "index %s", i.name)
	}
	return i.store(db, index, refs)
}

// Keys returns a list of all primary keys that were indexed under given
// value.
func (i Index) Keys(db idm.ReadOnlyKVStore, index []byte) ([][]byte, error) {
	refs, err := i.load(db, index)
	if err != nil {
		return nil, err
	}
	return refs.Refs, nil
}

// Query handles queries from the QueryRouter. Referenced models are
// returned.
func (i Index) Query(db idm.ReadOnlyKVStore, mod string, data []byte) ([]idm.Model, error) {
	switch mod {
	case idm.KeyQueryMod:
		refs, err := i.Keys(db, data)
		if err != nil {
			return nil, err
		}
		return i.loadRefs(db, refs)
	case idm.PrefixQueryMod:
		entries, err := queryPrefix(db, i.indexKey(data))
		if err != nil {
			return nil, err
		}
		var refs [][]byte
		for _, e := range entries {
			var m MultiRef
			if err := proto.Unmarshal(e.Value, &m); err != nil {
				return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
			}
			refs = append(refs, m.Refs...)
		}
		return i.loadRefs(db, refs)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}

func (i Index) loadRefs(db idm.ReadOnlyKVStore, refs [][]byte) ([]idm.Model, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	res := make([]idm.Model, 0, len(refs))
	for _, ref := range refs {
		key := i.refKey(ref)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		res = append(res, idm.Model{Key: key, Value: value})
	}
	return res, nil
}
