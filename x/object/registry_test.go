package object

import (
	"testing"

	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/idmtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuorum(t *testing.T) {
	cases := map[uint64]uint32{
		1: 1,
		2: 2,
		3: 2,
		4: 3,
		5: 3,
		6: 4,
		7: 4,
	}
	for owners, want := range cases {
		assert.Equal(t, want, Quorum(owners), "%d owners", owners)
	}
}

func TestInitialize(t *testing.T) {
	cases := map[string]struct {
		Owners     []idm.Address
		WantErr    *errors.Error
		WantQuorum uint32
	}{
		"three owners": {
			Owners:     idmtest.SequenceAddresses(1, 3),
			WantQuorum: 2,
		},
		"four owners": {
			Owners:     idmtest.SequenceAddresses(1, 4),
			WantQuorum: 3,
		},
		"five owners": {
			Owners:     idmtest.SequenceAddresses(1, 5),
			WantQuorum: 3,
		},
		"not enough owners": {
			Owners:  idmtest.SequenceAddresses(1, 2),
			WantErr: ErrInsufficientOwners,
		},
		"duplicated owner": {
			Owners:  append(idmtest.SequenceAddresses(1, 3), idmtest.SequenceAddress(2)),
			WantErr: errors.ErrInput,
		},
		"zero address owner": {
			Owners:  append(idmtest.SequenceAddresses(1, 3), make(idm.Address, idm.AddressLength)),
			WantErr: errors.ErrInvalidAddress,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := newTestDB(t)
			r := NewRegistry()
			err := r.Initialize(db, tc.Owners)
			require.True(t, tc.WantErr.Is(err), "unexpected error: %+v", err)
			if tc.WantErr != nil {
				_, err := r.System(db)
				assert.True(t, ErrNotInitialized.Is(err))
				return
			}

			quorum, err := r.Quorum(db)
			require.NoError(t, err)
			assert.Equal(t, tc.WantQuorum, quorum)

			c, err := r.Counter(db, Role_Owner)
			require.NoError(t, err)
			assert.Equal(t, uint64(len(tc.Owners)), c.Total)
			assert.Equal(t, uint64(len(tc.Owners)), c.Active)

			for _, o := range tc.Owners {
				ok, err := r.IsActiveOwner(db, o)
				require.NoError(t, err)
				assert.True(t, ok)
			}

			err = r.Initialize(db, idmtest.SequenceAddresses(50, 3))
			assert.True(t, ErrAlreadyInitialized.Is(err))
		})
	}
}

func TestInitializeConfiguredMinimum(t *testing.T) {
	db := newTestDB(t)
	r := NewRegistry()
	conf := DefaultConfiguration()
	conf.MinInitialOwners = 5
	require.NoError(t, saveConf(db, conf))

	err := r.Initialize(db, idmtest.SequenceAddresses(1, 4))
	assert.True(t, ErrInsufficientOwners.Is(err))
	require.NoError(t, r.Initialize(db, idmtest.SequenceAddresses(1, 5)))
}

func TestAddressIsRegisteredOnce(t *testing.T) {
	db := newSystem(t)
	r := NewRegistry()

	addrs := []idm.Address{owners[0], admin, alice, system}
	for _, addr := range addrs {
		for _, role := range []Role{Role_Admin, Role_System} {
			err := r.Add(db, &IdentityObject{Metadata: meta(), Address: addr, Role: role})
			assert.True(t, ErrObjectAlreadyExists.Is(err), "%s as %s: %v", addr, role.Name(), err)
		}
		err := r.AddUser(db, &IdentityObject{Metadata: meta(), Address: addr})
		assert.True(t, ErrObjectAlreadyExists.Is(err))
		err = r.AddOwner(db, &IdentityObject{Metadata: meta(), Address: addr})
		assert.True(t, ErrObjectAlreadyExists.Is(err))
	}

	obj, err := r.Object(db, admin)
	require.NoError(t, err)
	assert.Equal(t, Role_Admin, obj.Role)
}

func TestAddRejectsOtherRoles(t *testing.T) {
	db := newSystem(t)
	r := NewRegistry()
	for _, role := range []Role{Role_Owner, Role_User} {
		err := r.Add(db, &IdentityObject{Metadata: meta(), Address: nobody, Role: role})
		assert.True(t, ErrInvalidRoleForDirectAdd.Is(err))
	}
	err := r.Add(db, &IdentityObject{Metadata: meta(), Address: nobody, Role: Role(42)})
	assert.True(t, ErrInvalidRole.Is(err))

	exists, err := r.Exists(db, nobody)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestExists(t *testing.T) {
	db := newSystem(t)
	r := NewRegistry()

	exists, err := r.Exists(db, alice)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = r.Exists(db, nobody)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = r.Exists(db, make(idm.Address, idm.AddressLength))
	assert.True(t, errors.ErrInvalidAddress.Is(err))
	_, err = r.Exists(db, nil)
	assert.True(t, errors.ErrInvalidAddress.Is(err))
}

func TestSetActive(t *testing.T) {
	db := newSystem(t)
	r := NewRegistry()

	obj, err := r.SetActive(db, alice, true)
	require.NoError(t, err)
	assert.True(t, obj.Active)
	assertCounter(t, db, Role_User, 1, 1)

	_, err = r.SetActive(db, alice, true)
	assert.True(t, ErrAlreadyActive.Is(err))
	assertCounter(t, db, Role_User, 1, 1)

	obj, err = r.SetActive(db, admin, false)
	require.NoError(t, err)
	assert.False(t, obj.Active)
	assertCounter(t, db, Role_Admin, 1, 0)

	_, err = r.SetActive(db, admin, false)
	assert.True(t, ErrAlreadyInactive.Is(err))

	_, err = r.SetActive(db, nobody, true)
	assert.True(t, ErrObjectNotFound.Is(err))
	assert.True(t, errors.ErrNotFound.Is(err))

	for _, active := range []bool{true, false} {
		_, err = r.SetActive(db, owners[1], active)
		assert.True(t, ErrMustUseMST.Is(err))
		assert.True(t, errors.ErrPolicy.Is(err))
	}
	assertCounter(t, db, Role_Owner, 4, 4)
}

func TestSetOwnerActive(t *testing.T) {
	db := newSystem(t)
	r := NewRegistry()

	_, err := r.SetOwnerActive(db, admin, false)
	assert.True(t, errors.ErrPolicy.Is(err))

	obj, err := r.SetOwnerActive(db, owners[3], false)
	require.NoError(t, err)
	assert.False(t, obj.Active)
	assertCounter(t, db, Role_Owner, 4, 3)
	assertQuorum(t, db, 2)

	ok, err := r.IsActiveOwner(db, owners[3])
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = r.IsAdmin(db, owners[3])
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = r.SetOwnerActive(db, owners[3], false)
	assert.True(t, ErrAlreadyInactive.Is(err))

	_, err = r.SetOwnerActive(db, owners[3], true)
	require.NoError(t, err)
	assertCounter(t, db, Role_Owner, 4, 4)
	assertQuorum(t, db, 3)
}

func TestLastOwnerCannotBeDeactivated(t *testing.T) {
	db := newTestDB(t)
	r := NewRegistry()
	conf := DefaultConfiguration()
	conf.MinInitialOwners = 1
	require.NoError(t, saveConf(db, conf))
	require.NoError(t, r.Initialize(db, owners[:1]))

	_, err := r.SetOwnerActive(db, owners[0], false)
	assert.True(t, errors.ErrState.Is(err))
}

func TestTransferOwner(t *testing.T) {
	db := newSystem(t)
	r := NewRegistry()

	_, err := r.Update(db, owners[0], "Bob", "passport", "X1", true)
	require.NoError(t, err)

	next, err := r.TransferOwner(db, owners[0], nobody)
	require.NoError(t, err)
	assert.Equal(t, nobody, next.Address)
	assert.Equal(t, "Bob", next.Name)
	assert.True(t, next.Active)

	prev, err := r.Object(db, owners[0])
	require.NoError(t, err)
	assert.False(t, prev.Active)
	assertCounter(t, db, Role_Owner, 5, 4)
	assertQuorum(t, db, 3)

	_, err = r.TransferOwner(db, owners[1], alice)
	assert.True(t, ErrObjectAlreadyExists.Is(err))
}

func TestPrivileges(t *testing.T) {
	db := newSystem(t)
	r := NewRegistry()

	cases := map[string]struct {
		Addr      idm.Address
		WantAdmin bool
		WantOwner bool
	}{
		"owner":        {Addr: owners[0], WantAdmin: true, WantOwner: true},
		"admin":        {Addr: admin, WantAdmin: true},
		"system":       {Addr: system},
		"user":         {Addr: alice},
		"unregistered": {Addr: nobody},
		"zero address": {Addr: make(idm.Address, idm.AddressLength)},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			isAdmin, err := r.IsAdmin(db, tc.Addr)
			require.NoError(t, err)
			assert.Equal(t, tc.WantAdmin, isAdmin)
			isOwner, err := r.IsActiveOwner(db, tc.Addr)
			require.NoError(t, err)
			assert.Equal(t, tc.WantOwner, isOwner)
		})
	}

	// Deactivated admins lose the privilege.
	_, err := r.SetActive(db, admin, false)
	require.NoError(t, err)
	isAdmin, err := r.IsAdmin(db, admin)
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestUpdateKeepsRole(t *testing.T) {
	db := newSystem(t)
	r := NewRegistry()

	obj, err := r.Update(db, alice, "Alice B", "CCCD", "123", true)
	require.NoError(t, err)
	assert.Equal(t, Role_User, obj.Role)
	assert.False(t, obj.Active)

	got, err := r.Object(db, alice)
	require.NoError(t, err)
	assert.Equal(t, "Alice B", got.Name)
	assert.Equal(t, "CCCD", got.IdType)
	assert.Equal(t, "123", got.IdValue)
	assert.True(t, got.KYC)

	_, err = r.Update(db, nobody, "x", "", "", false)
	assert.True(t, ErrObjectNotFound.Is(err))
}

func TestCounterCannotGoNegative(t *testing.T) {
	db := newTestDB(t)
	b := NewCounterBucket()

	_, err := b.Add(db, Role_User, 0, -1)
	assert.True(t, errors.ErrState.Is(err))

	// More active than total objects is not a valid state.
	_, err = b.Add(db, Role_User, 0, 1)
	assert.True(t, errors.ErrInvalidModel.Is(err))
}

func assertCounter(t testing.TB, db idm.ReadOnlyKVStore, role Role, total, active uint64) {
	t.Helper()
	c, err := NewRegistry().Counter(db, role)
	require.NoError(t, err)
	assert.Equal(t, total, c.Total, "%s total", role.Name())
	assert.Equal(t, active, c.Active, "%s active", role.Name())
}

func assertQuorum(t testing.TB, db idm.ReadOnlyKVStore, want uint32) {
	t.Helper()
	got, err := NewRegistry().Quorum(db)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
