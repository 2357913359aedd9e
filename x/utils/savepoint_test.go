package utils

import (
	"context"
	"fmt"
	"testing"

	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/idmtest"
	"github.com/iov-one/idm/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavepoint(t *testing.T) {
	// always write ok, ov before calling functions
	ok, ov := []byte("demo"), []byte("data")
	// some key, value to try to write
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}

	cases := [...]struct {
		save    idm.Decorator // decorator at savepoint
		handler idm.Handler
		check   bool // whether to call Check or Deliver
		isError bool // true iff we expect errors

		written [][]byte // keys to find
		missing [][]byte // keys not to find
	}{
		// savepoint deactivated, returns error, both written
		0: {
			save:    NewSavepoint(),
			handler: &idmtest.WriteHandler{Key: nk, Value: nv, Err: errors.ErrState},
			check:   true,
			isError: true,
			written: [][]byte{ok, nk},
		},
		// savepoint activated, returns error, one written
		1: {
			save:    NewSavepoint().OnCheck(),
			handler: &idmtest.WriteHandler{Key: nk, Value: nv, Err: errors.ErrState},
			check:   true,
			isError: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		// savepoint activated for deliver, returns error, one written
		2: {
			save:    NewSavepoint().OnDeliver(),
			handler: &idmtest.WriteHandler{Key: nk, Value: nv, Err: errors.ErrState},
			isError: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		// double-activation maintains both behaviors
		3: {
			save:    NewSavepoint().OnDeliver().OnCheck(),
			handler: &idmtest.WriteHandler{Key: nk, Value: nv, Err: errors.ErrState},
			isError: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		// savepoint check doesn't affect deliver
		4: {
			save:    NewSavepoint().OnCheck(),
			handler: &idmtest.WriteHandler{Key: nk, Value: nv, Err: errors.ErrState},
			isError: true,
			written: [][]byte{ok, nk},
		},
		// don't rollback when success returned
		5: {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			handler: &idmtest.WriteHandler{Key: nk, Value: nv},
			written: [][]byte{ok, nk},
		},
		// we can write multiple times, if savepoint not used
		6: {
			save:    idmtest.WriteDecorator{Key: []byte{1}, Value: []byte{2}},
			handler: &idmtest.WriteHandler{Key: nk, Value: nv, Err: errors.ErrState},
			isError: true,
			written: [][]byte{ok, nk, {1}},
		},
		7: {
			save:    idmtest.WriteDecorator{Key: []byte{1}, Value: []byte{2}, After: true},
			handler: &idmtest.WriteHandler{Key: nk, Value: nv},
			check:   true,
			written: [][]byte{ok, nk, {1}},
		},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			ctx := context.Background()
			kv := store.MemStore()
			require.NoError(t, kv.Set(ok, ov))

			var err error
			if tc.check {
				_, err = tc.save.Check(ctx, kv, nil, tc.handler)
			} else {
				_, err = tc.save.Deliver(ctx, kv, nil, tc.handler)
			}

			if tc.isError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			for _, k := range tc.written {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.True(t, has, "%x", k)
			}
			for _, k := range tc.missing {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.False(t, has, "%x", k)
			}
		})
	}
}
