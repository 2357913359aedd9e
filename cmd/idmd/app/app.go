/*
Package app links together all the various components
to construct the identity management app.
*/
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/iov-one/idm"
	"github.com/iov-one/idm/app"
	"github.com/iov-one/idm/migration"
	"github.com/iov-one/idm/store/iavl"
	"github.com/iov-one/idm/x"
	"github.com/iov-one/idm/x/mst"
	"github.com/iov-one/idm/x/object"
	"github.com/iov-one/idm/x/sigs"
	"github.com/iov-one/idm/x/utils"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, metrics and recovery. Metrics are optional.
func Chain(metrics *utils.Metrics) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, changes of a failed message are dropped
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to the registry, the multi
// signature engine and the schema migration handlers.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	sigs.RegisterRoutes(r, authFn)
	object.RegisterRoutes(r, authFn)
	mst.RegisterRoutes(r, authFn)
	migration.RegisterRoutes(r, object.NewOwnerAuthorizer(authFn))
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/objects", "/msts", "/auth" and "/schemas"
func QueryRouter() idm.QueryRouter {
	r := idm.NewQueryRouter()
	r.RegisterAll(
		sigs.RegisterQuery,
		object.RegisterQuery,
		mst.RegisterQuery,
		migration.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(metrics *utils.Metrics) idm.Handler {
	authFn := Authenticator()
	return Chain(metrics).WithHandler(Router(authFn))
}

// Initializers returns the genesis initializers of all extensions.
func Initializers() idm.Initializer {
	return app.ChainInitializers(
		&migration.Initializer{},
		&object.Initializer{},
	)
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h idm.Handler,
	tx idm.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	base := app.NewBaseApp(store, tx, h, debug)
	return base, nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (idm.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewCommitStoreWithDB(dbm.NewMemDB()), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("invalid database name: %s", path)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}
