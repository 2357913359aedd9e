package mst

import (
	"context"
	"testing"

	"github.com/iov-one/idm"
	"github.com/iov-one/idm/app"
	"github.com/iov-one/idm/idmtest"
	"github.com/iov-one/idm/migration"
	"github.com/iov-one/idm/store"
	"github.com/iov-one/idm/x/object"
)

var (
	owners = idmtest.SequenceAddresses(1, 4)
	admin  = idmtest.SequenceAddress(100)
	alice  = idmtest.SequenceAddress(200)
	newbie = idmtest.SequenceAddress(500)
)

// newSystem returns a database with four initialized owners, which gives a
// quorum of three, an active admin and an inactive user alice.
func newSystem(t testing.TB) idm.CacheableKVStore {
	t.Helper()
	db := store.MemStore()
	migration.MustInitPkg(db, "object", packageName)

	r := object.NewRegistry()
	if err := r.Initialize(db, owners); err != nil {
		t.Fatalf("cannot initialize: %+v", err)
	}
	if err := r.Add(db, &object.IdentityObject{Metadata: meta(), Address: admin, Role: object.Role_Admin}); err != nil {
		t.Fatalf("cannot add admin: %+v", err)
	}
	if err := r.AddUser(db, &object.IdentityObject{Metadata: meta(), Address: alice, Name: "Alice"}); err != nil {
		t.Fatalf("cannot add user: %+v", err)
	}
	return db
}

func meta() *idm.Metadata {
	return &idm.Metadata{Schema: 1}
}

// deliver processes the message signed by the signer through a router with
// all registry and multi signature routes registered.
func deliver(db idm.KVStore, signer idm.Address, msg idm.Msg) (*idm.DeliverResult, error) {
	rt := app.NewRouter()
	auth := &idmtest.Auth{Signer: signer}
	object.RegisterRoutes(rt, auth)
	RegisterRoutes(rt, auth)
	return rt.Deliver(context.TODO(), db, &idmtest.Tx{Msg: msg})
}

// check runs the check step of the message on a discarded cache wrap.
func check(db idm.CacheableKVStore, signer idm.Address, msg idm.Msg) error {
	rt := app.NewRouter()
	RegisterRoutes(rt, &idmtest.Auth{Signer: signer})
	cache := db.CacheWrap()
	defer cache.Discard()
	_, err := rt.Check(context.TODO(), cache, &idmtest.Tx{Msg: msg})
	return err
}

func mustSubmit(t testing.TB, db idm.KVStore, e *Engine, code TxCode, target, destination idm.Address) uint64 {
	t.Helper()
	id, err := e.Submit(db, owners[0], code, object.Role_Owner, target, destination)
	if err != nil {
		t.Fatalf("cannot submit: %+v", err)
	}
	return id
}

func mustSign(t testing.TB, db idm.KVStore, e *Engine, id uint64, signers ...idm.Address) {
	t.Helper()
	for _, s := range signers {
		if _, err := e.Sign(db, s, id); err != nil {
			t.Fatalf("cannot sign by %s: %+v", s, err)
		}
	}
}
