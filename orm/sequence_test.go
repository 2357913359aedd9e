package orm

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/idmtest/assert"
	"github.com/iov-one/idm/store"
)

func TestSequence(t *testing.T) {
	cases := []struct {
		bucket     string
		name       string
		increments int
	}{
		0: {"a", "id", 22},
		1: {"a", "other", 11},
		2: {"b", "id", 77},
	}

	db := store.MemStore()
	for i, tc := range cases {
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			s := NewSequence(tc.bucket, tc.name)
			start, err := s.CurrentVal(db)
			assert.Nil(t, err)

			var last []byte
			for i := 0; i < tc.increments; i++ {
				val, err := s.NextVal(db)
				assert.Nil(t, err)
				// raw bytes must follow the numeric order
				if last != nil && bytes.Compare(val, last) != 1 {
					t.Fatalf("sequence value %x not greater than %x", val, last)
				}
				last = val
			}
			cur, err := s.CurrentVal(db)
			assert.Nil(t, err)
			assert.Equal(t, start+uint64(tc.increments), cur)
		})
	}
}

func TestSequenceIsolated(t *testing.T) {
	db := store.MemStore()
	a := NewSequence("objects", "id")
	b := NewSequence("msts", "id")

	v, err := a.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), v)
	v, err = a.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(2), v)

	v, err = b.CurrentVal(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), v)
}

func TestDecodeSequence(t *testing.T) {
	v, err := DecodeSequence(nil)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), v)

	v, err = DecodeSequence(EncodeSequence(1234))
	assert.Nil(t, err)
	assert.Equal(t, uint64(1234), v)

	_, err = DecodeSequence([]byte{1, 2, 3})
	assert.IsErr(t, errors.ErrInput, err)
}
