package app

import (
	"context"
	"testing"
	"time"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/idmtest"
	"github.com/iov-one/idm/store/iavl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// rawQuery returns the value stored under the exact key.
type rawQuery struct{}

func (rawQuery) Query(db idm.ReadOnlyKVStore, mod string, data []byte) ([]idm.Model, error) {
	if mod != idm.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported modifier %q", mod)
	}
	v, err := db.Get(data)
	if err != nil || v == nil {
		return nil, err
	}
	return []idm.Model{idm.Pair(data, v)}, nil
}

// pathDecoder builds a transaction that carries only a message path.
func pathDecoder(bz []byte) (idm.Tx, error) {
	if len(bz) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "empty tx")
	}
	return &idmtest.Tx{Msg: &idmtest.Msg{RoutePath: string(bz)}}, nil
}

type writeInitializer struct {
	key []byte
}

func (w writeInitializer) FromGenesis(opts idm.Options, db idm.KVStore) error {
	var value string
	if err := opts.ReadOptions("value", &value); err != nil {
		return err
	}
	return db.Set(w.key, []byte(value))
}

func newTestApp(t testing.TB) BaseApp {
	t.Helper()

	rt := NewRouter()
	rt.Handle("write", &idmtest.WriteHandler{Key: []byte("written"), Value: []byte("ok")})
	rt.Handle("fail", &idmtest.WriteHandler{Key: []byte("failed"), Value: []byte("no"), Err: errors.ErrState})

	qr := idm.NewQueryRouter()
	qr.Register("/", rawQuery{})

	commit := iavl.NewCommitStoreWithDB(dbm.NewMemDB())
	sa := NewStoreApp("test-app", commit, qr, context.Background())
	sa.WithInit(writeInitializer{key: []byte("genesis")})
	return NewBaseApp(sa, pathDecoder, rt, false)
}

func queryValue(t testing.TB, a BaseApp, key string) []byte {
	t.Helper()
	res := a.Query(abci.RequestQuery{Path: "/", Data: []byte(key)})
	require.Equal(t, uint32(0), res.Code, res.Log)
	var set ResultSet
	require.NoError(t, proto.Unmarshal(res.Value, &set))
	if len(set.Results) == 0 {
		return nil
	}
	return set.Results[0]
}

func TestBaseAppLifecycle(t *testing.T) {
	a := newTestApp(t)

	a.InitChain(abci.RequestInitChain{
		ChainId:       "test-chain",
		AppStateBytes: []byte(`{"value": "hello"}`),
	})
	assert.Equal(t, "test-chain", a.GetChainID())

	a.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: time.Now()}})

	chk := a.CheckTx([]byte("write"))
	assert.Equal(t, uint32(0), chk.Code, chk.Log)

	res := a.DeliverTx([]byte("fail"))
	assert.Equal(t, errors.ErrState.ABCICode(), res.Code)

	res = a.DeliverTx([]byte("write"))
	assert.Equal(t, uint32(0), res.Code, res.Log)

	res = a.DeliverTx([]byte("missing"))
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res.Code)

	res = a.DeliverTx(nil)
	assert.Equal(t, errors.ErrInput.ABCICode(), res.Code)

	// nothing is visible to queries before the commit
	assert.Nil(t, queryValue(t, a, "written"))

	a.EndBlock(abci.RequestEndBlock{Height: 1})
	cres := a.Commit()
	assert.NotEmpty(t, cres.Data)

	assert.Equal(t, []byte("hello"), queryValue(t, a, "genesis"))
	assert.Equal(t, []byte("ok"), queryValue(t, a, "written"))
	// a failed transaction leaves no trace
	assert.Nil(t, queryValue(t, a, "failed"))

	info := a.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, cres.Data, info.LastBlockAppHash)
	assert.Equal(t, "test-app", info.Data)
}

func TestBaseAppQueryErrors(t *testing.T) {
	a := newTestApp(t)

	res := a.Query(abci.RequestQuery{Path: "/unknown", Data: []byte("x")})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res.Code)

	res = a.Query(abci.RequestQuery{Path: "/?prefix", Data: []byte("x")})
	assert.Equal(t, errors.ErrInput.ABCICode(), res.Code)

	res = a.Query(abci.RequestQuery{Path: "/", Data: []byte("x"), Height: 42})
	assert.Equal(t, errors.ErrInput.ABCICode(), res.Code)
}

func TestInitChainTwicePanics(t *testing.T) {
	a := newTestApp(t)
	req := abci.RequestInitChain{ChainId: "test-chain", AppStateBytes: []byte(`{}`)}
	a.InitChain(req)
	assert.Panics(t, func() { a.InitChain(req) })
}

func TestSplitPath(t *testing.T) {
	cases := map[string]struct {
		path     string
		wantPath string
		wantMod  string
	}{
		"plain":  {path: "/objects", wantPath: "/objects"},
		"prefix": {path: "/objects?prefix", wantPath: "/objects", wantMod: "prefix"},
		"empty":  {path: "", wantPath: ""},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			p, m := splitPath(tc.path)
			assert.Equal(t, tc.wantPath, p)
			assert.Equal(t, tc.wantMod, m)
		})
	}
}

func TestJoinResults(t *testing.T) {
	models := []idm.Model{
		idm.Pair([]byte("a"), []byte("1")),
		idm.Pair([]byte("b"), []byte("2")),
	}
	got, err := JoinResults(ResultsFromKeys(models), ResultsFromValues(models))
	require.NoError(t, err)
	assert.Equal(t, models, got)

	_, err = JoinResults(ResultsFromKeys(models), &ResultSet{})
	assert.True(t, errors.ErrInput.Is(err))
}
