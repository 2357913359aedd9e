package app

import (
	"testing"

	"github.com/iov-one/idm/commands/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestGenerateApp(t *testing.T) {
	args := []string{
		newAccount(t).address().String(),
		newAccount(t).address().String(),
		newAccount(t).address().String(),
	}
	appState, err := GenInitOptions(args)
	require.NoError(t, err)

	application, err := GenerateApp(&server.Options{Logger: log.NewNopLogger()})
	require.NoError(t, err)

	application.InitChain(abci.RequestInitChain{ChainId: "idm-init-test", AppStateBytes: appState})
	application.BeginBlock(abci.RequestBeginBlock{})
	application.EndBlock(abci.RequestEndBlock{})
	application.Commit()

	res := application.Query(abci.RequestQuery{Path: "/objcounters", Data: []byte("owner")})
	assert.Equal(t, uint32(0), res.Code, res.Log)
	assert.NotEmpty(t, res.Value)

	res = application.Query(abci.RequestQuery{Path: "/objsystem", Data: []byte("system")})
	assert.Equal(t, uint32(0), res.Code, res.Log)
}

func TestExamples(t *testing.T) {
	examples := Examples()
	require.NotEmpty(t, examples)
	seen := make(map[string]bool)
	for _, ex := range examples {
		assert.False(t, seen[ex.Filename], ex.Filename)
		seen[ex.Filename] = true
		assert.NotNil(t, ex.Obj)
	}
}
