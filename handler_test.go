package idm

import (
	"testing"

	"github.com/iov-one/idm/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOptions(t *testing.T) {
	opts := Options{
		"conf": []byte(`{"min_initial_owners": 5}`),
		"bad":  []byte(`{"min_initial_owners": "five"}`),
	}
	var conf struct {
		MinInitialOwners int `json:"min_initial_owners"`
	}

	require.NoError(t, opts.ReadOptions("missing", &conf))
	assert.Equal(t, 0, conf.MinInitialOwners)

	require.NoError(t, opts.ReadOptions("conf", &conf))
	assert.Equal(t, 5, conf.MinInitialOwners)

	err := opts.ReadOptions("bad", &conf)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestDeliverResultTags(t *testing.T) {
	actor := Address{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}

	var res DeliverResult
	res.Emit(NewIDEvent("MSTSigned", actor, 7))
	res.Emit(NewAddressEvent("adminAdded", actor, actor))

	abciRes := res.ToABCI()
	require.Len(t, abciRes.Tags, 6)
	assert.Equal(t, "event", string(abciRes.Tags[0].Key))
	assert.Equal(t, "MSTSigned", string(abciRes.Tags[0].Value))
	assert.Equal(t, "MSTSigned.subject", string(abciRes.Tags[2].Key))
	assert.Equal(t, "7", string(abciRes.Tags[2].Value))
	assert.Equal(t, "adminAdded", string(abciRes.Tags[3].Value))
	assert.Equal(t, actor.String(), string(abciRes.Tags[5].Value))
}

func TestErrorResponses(t *testing.T) {
	res := DeliverTxError(errors.ErrNotFound.New("object"), false)
	assert.EqualValues(t, 3, res.Code)
	assert.Equal(t, "cannot deliver tx: object: not found", res.Log)

	check := CheckTxError(errors.ErrUnauthorized, false)
	assert.EqualValues(t, 2, check.Code)
}
