package orm

import (
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
)

// ModelBucket is implemented by buckets that operates on Models rather than
// raw values.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db idm.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key exists, and
	// ErrNotFound otherwise.
	Has(db idm.ReadOnlyKVStore, key []byte) error

	// ByIndex returns all models that are referenced by the given index
	// key. Destination must be a pointer to a slice of models. Keys of
	// all found models are returned.
	ByIndex(db idm.ReadOnlyKVStore, indexName string, key []byte, dest ModelSlicePtr) ([][]byte, error)

	// Put saves given model in the database. Before inserting into
	// the database, model is validated using its Validate method.
	// If the key is nil or zero length then a sequence generator is used
	// to create a unique key value.
	// Using a key that already exists in the database causes the value
	// to be overwritten.
	Put(db idm.KVStore, key []byte, m Model) ([]byte, error)

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db idm.KVStore, key []byte) error

	// Register registers this bucket and all its indexes in the query
	// router.
	Register(name string, r idm.QueryRouter)
}

// ModelBucketOption is implemented by any function that can configure
// ModelBucket during creation.
type ModelBucketOption func(mb *modelBucket)

// WithIndex configures the bucket to build an index with given name. All
// entities stored in the bucket are indexed using value returned by the
// indexer function. If an index is unique, there can be only one entity
// referenced per index value.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		for _, idx := range mb.indexes {
			if idx.short == name {
				panic("index " + name + " declared twice")
			}
		}
		idx := NewIndex(mb.b.Name()+"_"+name, indexer, unique, mb.b.DBKey)
		mb.indexes = append(mb.indexes, namedIndex{short: name, Index: idx})
	}
}

// WithIDSequence configures the bucket to use the given sequence instance
// for generating ID.
func WithIDSequence(s Sequence) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.idSeq = s
	}
}

// NewModelBucket returns a ModelBucket instance. All entities stored in
// this bucket must be of the same type as the given model.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	b := NewBucket(name)
	mb := &modelBucket{
		b:     b,
		idSeq: NewSequence(name, "id"),
		model: m,
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type namedIndex struct {
	Index
	short string
}

type modelBucket struct {
	b       Bucket
	idSeq   Sequence
	model   Model
	indexes []namedIndex
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) One(db idm.ReadOnlyKVStore, key []byte, dest Model) error {
	if err := sameType(mb.model, dest); err != nil {
		return err
	}
	raw, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrInvalidModel, "cannot unmarshal %T: %s", dest, err)
	}
	return nil
}

func (mb *modelBucket) Has(db idm.ReadOnlyKVStore, key []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrNotFound, "nil key")
	}
	exists, err := db.Has(mb.b.DBKey(key))
	if err != nil {
		return err
	}
	if !exists {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", mb.model)
	}
	return nil
}

func (mb *modelBucket) ByIndex(db idm.ReadOnlyKVStore, indexName string, key []byte, destination ModelSlicePtr) ([][]byte, error) {
	idx, err := mb.index(indexName)
	if err != nil {
		return nil, err
	}
	keys, err := idx.Keys(db, key)
	if err != nil {
		return nil, err
	}

	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.IsNil() {
		return nil, errors.Wrap(errors.ErrType, "destination must be a non nil pointer")
	}
	slice := dest.Elem()
	if slice.Kind() != reflect.Slice {
		return nil, errors.Wrap(errors.ErrType, "destination must point to a slice")
	}
	elemType := slice.Type().Elem()
	isPtr := elemType.Kind() == reflect.Ptr
	if isPtr {
		elemType = elemType.Elem()
	}

	for _, k := range keys {
		val := reflect.New(elemType)
		m, ok := val.Interface().(Model)
		if !ok {
			return nil, errors.Wrapf(errors.ErrType, "%s is not a model", elemType)
		}
		if err := mb.One(db, k, m); err != nil {
			return nil, errors.Wrapf(err, "index %s reference %x", indexName, k)
		}
		if isPtr {
			slice = reflect.Append(slice, val)
		} else {
			slice = reflect.Append(slice, val.Elem())
		}
	}
	dest.Elem().Set(slice)
	return keys, nil
}

func (mb *modelBucket) index(name string) (Index, error) {
	for _, idx := range mb.indexes {
		if idx.short == name {
			return idx.Index, nil
		}
	}
	return Index{}, errors.Wrapf(ErrInvalidIndex, "unknown index %q", name)
}

func (mb *modelBucket) Put(db idm.KVStore, key []byte, m Model) ([]byte, error) {
	if err := sameType(mb.model, m); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}

	var prev Model
	if len(key) == 0 {
		id, err := mb.idSeq.NextVal(db)
		if err != nil {
			return nil, errors.Wrap(err, "id sequence")
		}
		key = id
	} else if len(mb.indexes) > 0 {
		prev = newModel(mb.model)
		switch err := mb.One(db, key, prev); {
		case errors.ErrNotFound.Is(err):
			prev = nil
		case err != nil:
			return nil, errors.Wrap(err, "cannot load previous state")
		}
	}

	for _, idx := range mb.indexes {
		if err := idx.Update(db, key, prev, m); err != nil {
			return nil, err
		}
	}

	raw, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "cannot marshal %T: %s", m, err)
	}
	if err := mb.b.Set(db, key, raw); err != nil {
		return nil, errors.Wrap(err, "cannot store in the database")
	}
	return key, nil
}

func (mb *modelBucket) Delete(db idm.KVStore, key []byte) error {
	prev := newModel(mb.model)
	if err := mb.One(db, key, prev); err != nil {
		return err
	}
	for _, idx := range mb.indexes {
		if err := idx.Update(db, key, prev, nil); err != nil {
			return err
		}
	}
	if err := mb.b.Delete(db, key); err != nil {
		return errors.Wrap(err, "cannot delete from the database")
	}
	return nil
}

func (mb *modelBucket) Register(name string, r idm.QueryRouter) {
	if name == "" {
		name = mb.b.Name()
	}
	root := "/" + name
	r.Register(root, mb.b)
	for _, idx := range mb.indexes {
		r.Register(root+"/"+idx.short, idx.Index)
	}
}
