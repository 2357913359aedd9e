package object

import (
	"testing"

	"github.com/iov-one/idm"
	"github.com/iov-one/idm/gconf"
	"github.com/iov-one/idm/idmtest"
	"github.com/iov-one/idm/migration"
	"github.com/iov-one/idm/store"
)

var (
	owners = idmtest.SequenceAddresses(1, 4)
	admin  = idmtest.SequenceAddress(100)
	alice  = idmtest.SequenceAddress(200)
	system = idmtest.SequenceAddress(300)
	nobody = idmtest.SequenceAddress(400)
)

// newTestDB returns a database with the object package schema initialized.
func newTestDB(t testing.TB) idm.CacheableKVStore {
	t.Helper()
	db := store.MemStore()
	migration.MustInitPkg(db, packageName)
	return db
}

// newSystem returns a database with an initialized system of four owners,
// an active admin, an active system address and an inactive user alice.
func newSystem(t testing.TB) idm.CacheableKVStore {
	t.Helper()
	db := newTestDB(t)
	r := NewRegistry()
	if err := r.Initialize(db, owners); err != nil {
		t.Fatalf("cannot initialize: %s", err)
	}
	mustAdd(t, r.Add(db, &IdentityObject{Metadata: &idm.Metadata{Schema: 1}, Address: admin, Role: Role_Admin, Name: "admin"}))
	mustAdd(t, r.Add(db, &IdentityObject{Metadata: &idm.Metadata{Schema: 1}, Address: system, Role: Role_System, Name: "system"}))
	mustAdd(t, r.AddUser(db, &IdentityObject{Metadata: &idm.Metadata{Schema: 1}, Address: alice, Name: "Alice"}))
	return db
}

func mustAdd(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("cannot add object: %+v", err)
	}
}

func meta() *idm.Metadata {
	return &idm.Metadata{Schema: 1}
}

func saveConf(db idm.KVStore, conf *Configuration) error {
	return gconf.Save(db, packageName, conf)
}
