package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/idmtest/assert"
)

// TestSuite runs the KVStore conformance checks shared by the btree cache
// and the iavl adapter. The data mimics the registry layout: object
// records under "obj:" and pending transactions under "mst:".
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh, empty store and its cleanup.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{makeBase: constructor}
}

// step is a single action of a layered scenario: a write against the
// named layer, an expectation on it, or a flush of the cache.
type step struct {
	layer string // "base", "cache" or "flush"
	op    *Op
	key   []byte
	want  []byte
}

func write(layer string, op Op) step { return step{layer: layer, op: &op} }
func flush() step { return step{layer: "flush"} }
func expect(layer string, key, want []byte) step { return step{layer: layer, key: key, want: want} }

// GetSet checks that writes stay in a cache layer until it is written,
// and that a discarded cache leaves the base untouched.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	alice := []byte("obj:alice")
	aliceRec := []byte("owner active")
	tx := []byte("mst:0001")
	txRec := []byte("add bob, 1 signature")

	assertGetHas(t, base, alice, nil)
	assert.Nil(t, base.Set(alice, aliceRec))
	assertGetHas(t, base, alice, aliceRec)

	cache := base.CacheWrap()
	assertGetHas(t, cache, alice, aliceRec)
	assert.Nil(t, cache.Set(tx, txRec))
	assertGetHas(t, cache, tx, txRec)
	assertGetHas(t, base, tx, nil)

	assert.Nil(t, cache.Write())
	assertGetHas(t, base, alice, aliceRec)
	assertGetHas(t, base, tx, txRec)

	rejected := base.CacheWrap()
	assert.Nil(t, rejected.Set([]byte("obj:mallory"), []byte("user")))
	rejected.Discard()
	assertGetHas(t, base, []byte("obj:mallory"), nil)

	executed := base.CacheWrap()
	assert.Nil(t, executed.Delete(tx))
	assert.Nil(t, executed.Write())
	assertGetHas(t, base, tx, nil)
	assertGetHas(t, base, alice, aliceRec)
}

// CacheConflicts checks that a cache shadows overwritten and deleted
// base values until it is written.
func (s *TestSuite) CacheConflicts(t *testing.T) {
	ks := randKeys(4, 16)
	vs := randKeys(4, 40)

	cases := map[string][]step{
		"overwrite one, delete another, add a third": {
			write("base", SetOp(ks[1], vs[1])),
			write("base", SetOp(ks[2], vs[2])),
			write("cache", SetOp(ks[1], vs[3])),
			write("cache", SetOp(ks[3], vs[0])),
			write("cache", DelOp(ks[2])),
			expect("base", ks[1], vs[1]),
			expect("base", ks[2], vs[2]),
			expect("base", ks[3], nil),
			expect("cache", ks[1], vs[3]),
			expect("cache", ks[2], nil),
			expect("cache", ks[3], vs[0]),
			flush(),
			expect("base", ks[1], vs[3]),
			expect("base", ks[2], nil),
			expect("base", ks[3], vs[0]),
		},
		"delete then recreate in the cache": {
			write("base", SetOp(ks[0], vs[0])),
			write("cache", DelOp(ks[0])),
			expect("cache", ks[0], nil),
			write("cache", SetOp(ks[0], vs[1])),
			expect("cache", ks[0], vs[1]),
			expect("base", ks[0], vs[0]),
			flush(),
			expect("base", ks[0], vs[1]),
		},
	}

	for name, steps := range cases {
		t.Run(name, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()
			cache := base.CacheWrap()
			layers := map[string]KVStore{"base": base, "cache": cache}

			for _, st := range steps {
				switch {
				case st.layer == "flush":
					assert.Nil(t, cache.Write())
				case st.op != nil:
					assert.Nil(t, st.op.Apply(layers[st.layer]))
				default:
					assertGetHas(t, layers[st.layer], st.key, st.want)
				}
			}
		})
	}
}

// FuzzIterator compares cache iteration over random writes and deletes,
// with and without data in the base layer, against a sorted slice.
func (s *TestSuite) FuzzIterator(t *testing.T) {
	const size = 50

	childSet := randModels(size, 8, 40)
	childDel := randModels(20, 8, 40)
	baseSet := randModels(size, 8, 40)
	baseDel := randModels(20, 8, 40)

	cases := map[string]struct {
		pre, child []Op
		want       []Model
	}{
		"child over an empty base": {
			child: append(makeSetOps(childSet...), makeDelOps(childDel...)...),
			want:  sortModels(childSet),
		},
		"child merged with the base": {
			pre:   append(makeSetOps(baseSet...), makeDelOps(baseDel...)...),
			child: append(makeSetOps(childSet...), makeDelOps(childDel...)...),
			want:  sortModels(append(append([]Model{}, childSet...), baseSet...)),
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()
			w := tc.want
			iterCase{
				pre:   tc.pre,
				child: tc.child,
				queries: []rangeQuery{
					{nil, nil, false, w},
					{w[10].Key, nil, false, w[10:]},
					{nil, w[size-8].Key, false, w[:size-8]},
					{w[17].Key, w[28].Key, false, w[17:28]},
					{nil, nil, true, reverse(w)},
					{w[34].Key, nil, true, reverse(w[34:])},
					{nil, w[19].Key, true, reverse(w[:19])},
					{w[6].Key, w[26].Key, true, reverse(w[6:26])},
				},
			}.verify(t, base)
		})
	}
}

// IteratorWithConflicts covers iteration where the cache overwrites or
// deletes keys held by the base.
func (s *TestSuite) IteratorWithConflicts(t *testing.T) {
	ms := randModels(6, 20, 100)
	a, a2, b, b2, c, d := ms[0], ms[1], ms[2], ms[3], ms[4], ms[5]
	a2.Key = a.Key
	b2.Key = b.Key

	abc := sortModels([]Model{a, b, c})
	replaced := sortModels([]Model{a2, b2, c, d})
	sameQueries := []rangeQuery{
		{nil, nil, false, abc},
		{abc[1].Key, abc[2].Key, false, abc[1:2]},
		{nil, nil, true, reverse(abc)},
	}

	cases := map[string]iterCase{
		"cache only": {
			child:   makeSetOps(a, b, c),
			queries: sameQueries,
		},
		"base only": {
			pre:     makeSetOps(a, b, c),
			queries: sameQueries,
		},
		"split between layers": {
			pre:     makeSetOps(a, b),
			child:   makeSetOps(c),
			queries: sameQueries,
		},
		"cache values win": {
			pre:   makeSetOps(a, b, c),
			child: makeSetOps(a2, b2, d),
			queries: []rangeQuery{
				{nil, nil, false, replaced},
				{replaced[1].Key, replaced[3].Key, false, replaced[1:3]},
				{nil, nil, true, reverse(replaced)},
			},
		},
		"cache deletes hide base values": {
			pre:   makeSetOps(a, c, d),
			child: makeDelOps(a, b, d),
			queries: []rangeQuery{
				{nil, nil, false, []Model{c}},
				{nil, c.Key, false, nil},
			},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()
			tc.verify(t, base)
		})
	}
}

// assertGetHas checks Get and Has agree on the stored value. A nil want
// means the key must be absent.
func assertGetHas(t testing.TB, kv ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, want, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, want != nil, exists)
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	if _, err := rand.Read(res); err != nil {
		panic(err)
	}
	return res
}

func randKeys(count, size int) [][]byte {
	res := make([][]byte, count)
	for i := range res {
		res[i] = randBytes(size)
	}
	return res
}

func randModels(count, keySize, valueSize int) []Model {
	models := make([]Model, count)
	for i := range models {
		models[i] = Pair(randBytes(keySize), randBytes(valueSize))
	}
	return models
}

// iterCase applies pre to the base and child to a cache on top of it,
// then runs every query against the cache.
type iterCase struct {
	pre     []Op
	child   []Op
	queries []rangeQuery
}

type rangeQuery struct {
	start, end []byte
	reverse    bool
	expected   []Model
}

func (c iterCase) verify(t testing.TB, base CacheableKVStore) {
	t.Helper()
	for _, op := range c.pre {
		assert.Nil(t, op.Apply(base))
	}
	cache := base.CacheWrap()
	for _, op := range c.child {
		assert.Nil(t, op.Apply(cache))
	}

	for _, q := range c.queries {
		open := cache.Iterator
		if q.reverse {
			open = cache.ReverseIterator
		}
		iter, err := open(q.start, q.end)
		assert.Nil(t, err)

		for i, m := range q.expected {
			key, value, err := iter.Next()
			assert.Nil(t, err)
			if !bytes.Equal(m.Key, key) {
				t.Fatalf("item %d: want key %X, got %X", i, m.Key, key)
			}
			assert.Equal(t, m.Value, value)
		}
		if _, _, err := iter.Next(); !errors.ErrIteratorDone.Is(err) {
			t.Fatalf("want ErrIteratorDone, got %+v", err)
		}
		iter.Release()
	}
}

func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

func sortModels(models []Model) []Model {
	res := append([]Model(nil), models...)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

func makeSetOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = SetOp(m.Key, m.Value)
	}
	return res
}

func makeDelOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = DelOp(m.Key)
	}
	return res
}
