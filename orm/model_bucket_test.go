package orm

import (
	"testing"

	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/idmtest/assert"
	"github.com/iov-one/idm/store"
)

func TestModelBucket(t *testing.T) {
	db := store.MemStore()

	b := NewModelBucket("cnts", &Counter{})

	if _, err := b.Put(db, []byte("c1"), &Counter{Count: 1}); err != nil {
		t.Fatalf("cannot save counter instance: %s", err)
	}

	var c1 Counter
	if err := b.One(db, []byte("c1"), &c1); err != nil {
		t.Fatalf("cannot get c1 counter: %s", err)
	}
	if c1.Count != 1 {
		t.Fatalf("unexpected counter state: %d", c1.Count)
	}
	assert.Nil(t, b.Has(db, []byte("c1")))

	if err := b.Delete(db, []byte("c1")); err != nil {
		t.Fatalf("cannot delete c1 counter: %s", err)
	}
	if err := b.Delete(db, []byte("unknown")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error when deleting unexisting instance: %s", err)
	}
	if err := b.One(db, []byte("c1"), &c1); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error for an unknown model get: %s", err)
	}
	if err := b.Has(db, []byte("c1")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected has result: %s", err)
	}
}

func TestModelBucketValidation(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{})

	_, err := b.Put(db, []byte("c1"), &Counter{Count: -1})
	assert.IsErr(t, errors.ErrInvalidModel, err)

	_, err = b.Put(db, []byte("c1"), &Other{Name: "x"})
	assert.IsErr(t, errors.ErrType, err)

	_, err = b.Put(db, []byte("c1"), &Counter{Count: 1})
	assert.Nil(t, err)
	var o Other
	assert.IsErr(t, errors.ErrType, b.One(db, []byte("c1"), &o))
}

func TestModelBucketSequence(t *testing.T) {
	db := store.MemStore()
	seq := NewSequence("cnts", "id")
	b := NewModelBucket("cnts", &Counter{}, WithIDSequence(seq))

	k1, err := b.Put(db, nil, &Counter{Count: 10})
	assert.Nil(t, err)
	k2, err := b.Put(db, nil, &Counter{Count: 20})
	assert.Nil(t, err)

	assert.Equal(t, EncodeSequence(1), k1)
	assert.Equal(t, EncodeSequence(2), k2)

	cur, err := seq.CurrentVal(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(2), cur)

	var c Counter
	assert.Nil(t, b.One(db, k2, &c))
	assert.Equal(t, int64(20), c.Count)
}

func TestModelBucketByIndex(t *testing.T) {
	cases := map[string]struct {
		IndexName string
		QueryKey  string
		WantErr   *errors.Error
		WantRes   []Counter
	}{
		"find none": {
			IndexName: "group",
			QueryKey:  "unknown",
			WantRes:   nil,
		},
		"find one": {
			IndexName: "group",
			QueryKey:  "b",
			WantRes:   []Counter{{Count: 3, Group: "b"}},
		},
		"find two": {
			IndexName: "group",
			QueryKey:  "a",
			WantRes: []Counter{
				{Count: 1, Group: "a"},
				{Count: 2, Group: "a"},
			},
		},
		"unknown index": {
			IndexName: "xyz",
			QueryKey:  "a",
			WantErr:   ErrInvalidIndex,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			b := NewModelBucket("cnts", &Counter{}, WithIndex("group", groupIndexer, false))

			for i, c := range []Counter{
				{Count: 1, Group: "a"},
				{Count: 2, Group: "a"},
				{Count: 3, Group: "b"},
				{Count: 4},
			} {
				c := c
				key := EncodeSequence(uint64(i + 1))
				if _, err := b.Put(db, key, &c); err != nil {
					t.Fatalf("cannot save counter %d: %s", i, err)
				}
			}

			var dest []Counter
			keys, err := b.ByIndex(db, tc.IndexName, []byte(tc.QueryKey), &dest)
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %s", err)
			}
			if tc.WantErr != nil {
				return
			}
			assert.Equal(t, len(tc.WantRes), len(keys))
			assert.Equal(t, tc.WantRes, dest)
		})
	}
}

func TestModelBucketIndexMovesOnUpdate(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{}, WithIndex("group", groupIndexer, false))

	key := []byte("c1")
	_, err := b.Put(db, key, &Counter{Count: 1, Group: "a"})
	assert.Nil(t, err)
	_, err = b.Put(db, key, &Counter{Count: 1, Group: "b"})
	assert.Nil(t, err)

	var inA []*Counter
	_, err = b.ByIndex(db, "group", []byte("a"), &inA)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(inA))

	var inB []*Counter
	_, err = b.ByIndex(db, "group", []byte("b"), &inB)
	assert.Nil(t, err)
	assert.Equal(t, []*Counter{{Count: 1, Group: "b"}}, inB)

	assert.Nil(t, b.Delete(db, key))
	inB = nil
	_, err = b.ByIndex(db, "group", []byte("b"), &inB)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(inB))
}

func TestModelBucketUniqueIndex(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{}, WithIndex("group", groupIndexer, true))

	_, err := b.Put(db, []byte("c1"), &Counter{Group: "a"})
	assert.Nil(t, err)
	// Overwriting the same entity is fine.
	_, err = b.Put(db, []byte("c1"), &Counter{Count: 2, Group: "a"})
	assert.Nil(t, err)
	_, err = b.Put(db, []byte("c2"), &Counter{Group: "a"})
	assert.IsErr(t, ErrUniqueIndex, err)
	if !errors.ErrDuplicate.Is(err) {
		t.Fatalf("unique index error must be a duplicate: %s", err)
	}
}

func TestModelBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{}, WithIndex("group", groupIndexer, false))
	_, err := b.Put(db, []byte("c1"), &Counter{Count: 1, Group: "a"})
	assert.Nil(t, err)
	_, err = b.Put(db, []byte("c2"), &Counter{Count: 2, Group: "a"})
	assert.Nil(t, err)
	_, err = b.Put(db, []byte("d1"), &Counter{Count: 3, Group: "b"})
	assert.Nil(t, err)

	qr := idm.NewQueryRouter()
	b.Register("counters", qr)

	h := qr.Handler("/counters")
	if h == nil {
		t.Fatal("bucket not registered")
	}
	res, err := h.Query(db, idm.KeyQueryMod, []byte("c1"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, []byte("cnts:c1"), res[0].Key)

	res, err = h.Query(db, idm.PrefixQueryMod, []byte("c"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))

	res, err = h.Query(db, idm.KeyQueryMod, []byte("missing"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res))

	idx := qr.Handler("/counters/group")
	if idx == nil {
		t.Fatal("index not registered")
	}
	res, err = idx.Query(db, idm.KeyQueryMod, []byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))
	assert.Equal(t, []byte("cnts:c1"), res[0].Key)
	assert.Equal(t, []byte("cnts:c2"), res[1].Key)

	_, err = h.Query(db, "unknown", nil)
	assert.IsErr(t, errors.ErrInput, err)
}
