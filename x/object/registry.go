package object

import (
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/gconf"
)

// Registry owns identity objects, role counters and the system state. All
// state changes of the object package go through it.
//
// Owner mutations (AddOwner, SetOwnerActive, TransferOwner) are privileged
// and must only be called after a quorum of owners approved them. Message
// handlers of this package never call them.
type Registry struct {
	objects  *ObjectBucket
	counters *CounterBucket
	system   *SystemBucket
}

// NewRegistry returns a registry using the default buckets.
func NewRegistry() *Registry {
	return &Registry{
		objects:  NewObjectBucket(),
		counters: NewCounterBucket(),
		system:   NewSystemBucket(),
	}
}

// Object returns the object registered under the given address.
func (r *Registry) Object(db idm.ReadOnlyKVStore, addr idm.Address) (*IdentityObject, error) {
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	var obj IdentityObject
	switch err := r.objects.One(db, addr, &obj); {
	case err == nil:
		return &obj, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrObjectNotFound, "address %s", addr)
	default:
		return nil, errors.Wrap(err, "load object")
	}
}

// Exists returns true if the address is registered with any role.
func (r *Registry) Exists(db idm.ReadOnlyKVStore, addr idm.Address) (bool, error) {
	if err := addr.Validate(); err != nil {
		return false, err
	}
	switch err := r.objects.Has(db, addr); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// ObjectsByRole returns all objects of the given role.
func (r *Registry) ObjectsByRole(db idm.ReadOnlyKVStore, role Role) ([]*IdentityObject, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}
	return r.objects.ByRole(db, role)
}

// Counter returns the total and active counters of the given role.
func (r *Registry) Counter(db idm.ReadOnlyKVStore, role Role) (*RoleCounter, error) {
	return r.counters.Counter(db, role)
}

// System returns the system state. It fails with ErrNotInitialized before
// the initial owners are registered.
func (r *Registry) System(db idm.ReadOnlyKVStore) (*System, error) {
	return r.system.Load(db)
}

// Quorum returns the number of owner signatures a multi signature
// transaction requires to be executed.
func (r *Registry) Quorum(db idm.ReadOnlyKVStore) (uint32, error) {
	s, err := r.system.Load(db)
	if err != nil {
		return 0, err
	}
	return s.Quorum, nil
}

// Configuration returns the registry configuration. The default
// configuration is used when none was stored.
func (r *Registry) Configuration(db idm.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, packageName, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return DefaultConfiguration(), nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}

// IsActiveOwner returns true if the address belongs to an active owner.
func (r *Registry) IsActiveOwner(db idm.ReadOnlyKVStore, addr idm.Address) (bool, error) {
	return r.hasPrivilege(db, addr, Role_Owner)
}

// IsAdmin returns true if the address holds the admin privilege, that is
// it belongs to an active admin or an active owner.
func (r *Registry) IsAdmin(db idm.ReadOnlyKVStore, addr idm.Address) (bool, error) {
	return r.hasPrivilege(db, addr, Role_Owner, Role_Admin)
}

func (r *Registry) hasPrivilege(db idm.ReadOnlyKVStore, addr idm.Address, roles ...Role) (bool, error) {
	if addr.Validate() != nil {
		return false, nil
	}
	obj, err := r.Object(db, addr)
	switch {
	case ErrObjectNotFound.Is(err):
		return false, nil
	case err != nil:
		return false, err
	}
	if !obj.Active {
		return false, nil
	}
	for _, role := range roles {
		if obj.Role == role {
			return true, nil
		}
	}
	return false, nil
}

// Initialize registers the initial owners and computes the quorum. It can
// be done only once.
func (r *Registry) Initialize(db idm.KVStore, owners []idm.Address) error {
	switch _, err := r.system.Load(db); {
	case err == nil:
		return ErrAlreadyInitialized
	case !ErrNotInitialized.Is(err):
		return err
	}

	conf, err := r.Configuration(db)
	if err != nil {
		return err
	}
	if uint32(len(owners)) < conf.MinInitialOwners {
		return errors.Wrapf(ErrInsufficientOwners, "got %d, at least %d required", len(owners), conf.MinInitialOwners)
	}
	if err := validateOwners(owners); err != nil {
		return err
	}
	for i, addr := range owners {
		obj := &IdentityObject{
			Metadata: &idm.Metadata{Schema: 1},
			Address:  addr,
			Role:     Role_Owner,
		}
		if err := r.AddOwner(db, obj); err != nil {
			return errors.Wrapf(err, "owner %d", i)
		}
	}
	return nil
}

func validateOwners(owners []idm.Address) error {
	seen := make(map[string]struct{}, len(owners))
	for i, addr := range owners {
		if err := addr.Validate(); err != nil {
			return errors.Wrapf(err, "owner %d", i)
		}
		if _, ok := seen[string(addr)]; ok {
			return errors.Wrapf(errors.ErrInput, "owner %d: duplicated address %s", i, addr)
		}
		seen[string(addr)] = struct{}{}
	}
	return nil
}

// Add registers an admin or a system object. It is created active.
func (r *Registry) Add(db idm.KVStore, obj *IdentityObject) error {
	switch obj.Role {
	case Role_Admin, Role_System:
	case Role_Owner, Role_User:
		return errors.Wrapf(ErrInvalidRoleForDirectAdd, "role %s", obj.Role.Name())
	default:
		return errors.Wrapf(ErrInvalidRole, "%d", obj.Role)
	}
	obj.Active = true
	return r.create(db, obj)
}

// AddUser registers an inactive user.
func (r *Registry) AddUser(db idm.KVStore, obj *IdentityObject) error {
	obj.Role = Role_User
	obj.Active = false
	return r.create(db, obj)
}

// AddOwner registers an active owner and updates the quorum.
//
// This is a privileged operation.
func (r *Registry) AddOwner(db idm.KVStore, obj *IdentityObject) error {
	obj.Role = Role_Owner
	obj.Active = true
	if err := r.create(db, obj); err != nil {
		return err
	}
	return r.updateQuorum(db)
}

func (r *Registry) create(db idm.KVStore, obj *IdentityObject) error {
	switch exists, err := r.Exists(db, obj.Address); {
	case err != nil:
		return err
	case exists:
		return errors.Wrapf(ErrObjectAlreadyExists, "address %s", obj.Address)
	}
	if _, err := r.objects.Put(db, obj.Address, obj); err != nil {
		return errors.Wrap(err, "save object")
	}
	active := 0
	if obj.Active {
		active = 1
	}
	if _, err := r.counters.Add(db, obj.Role, 1, active); err != nil {
		return err
	}
	return nil
}

// SetActive changes the active flag of a user, an admin or a system object.
// Owners can only be changed through SetOwnerActive.
func (r *Registry) SetActive(db idm.KVStore, addr idm.Address, active bool) (*IdentityObject, error) {
	obj, err := r.Object(db, addr)
	if err != nil {
		return nil, err
	}
	switch obj.Role {
	case Role_User, Role_Admin, Role_System:
	case Role_Owner:
		return nil, errors.Wrapf(ErrMustUseMST, "address %s is an owner", addr)
	default:
		return nil, errors.Wrapf(ErrInvalidRole, "%d", obj.Role)
	}
	if err := r.setActive(db, obj, active); err != nil {
		return nil, err
	}
	return obj, nil
}

// SetOwnerActive changes the active flag of an owner and updates the
// quorum. The last active owner cannot be deactivated.
//
// This is a privileged operation.
func (r *Registry) SetOwnerActive(db idm.KVStore, addr idm.Address, active bool) (*IdentityObject, error) {
	obj, err := r.Object(db, addr)
	if err != nil {
		return nil, err
	}
	if obj.Role != Role_Owner {
		return nil, errors.Wrapf(errors.ErrPolicy, "address %s is not an owner", addr)
	}
	if err := r.setActive(db, obj, active); err != nil {
		return nil, err
	}
	if err := r.updateQuorum(db); err != nil {
		return nil, err
	}
	return obj, nil
}

// TransferOwner deactivates the from owner and registers the to address as
// an active owner with a copy of the from owner profile. It returns the
// created owner.
//
// This is a privileged operation.
func (r *Registry) TransferOwner(db idm.KVStore, from, to idm.Address) (*IdentityObject, error) {
	prev, err := r.SetOwnerActive(db, from, false)
	if err != nil {
		return nil, errors.Wrap(err, "deactivate previous owner")
	}
	next := prev.Copy()
	next.Address = to
	if err := r.AddOwner(db, next); err != nil {
		return nil, errors.Wrap(err, "add new owner")
	}
	return next, nil
}

func (r *Registry) setActive(db idm.KVStore, obj *IdentityObject, active bool) error {
	if obj.Active == active {
		if active {
			return errors.Wrapf(ErrAlreadyActive, "address %s", obj.Address)
		}
		return errors.Wrapf(ErrAlreadyInactive, "address %s", obj.Address)
	}
	obj.Active = active
	if _, err := r.objects.Put(db, obj.Address, obj); err != nil {
		return errors.Wrap(err, "save object")
	}
	delta := 1
	if !active {
		delta = -1
	}
	if _, err := r.counters.Add(db, obj.Role, 0, delta); err != nil {
		return err
	}
	return nil
}

// Update overwrites the profile fields of an object. The role and the
// active flag are not changed.
func (r *Registry) Update(db idm.KVStore, addr idm.Address, name, idType, idValue string, kyc bool) (*IdentityObject, error) {
	obj, err := r.Object(db, addr)
	if err != nil {
		return nil, err
	}
	obj.Name = name
	obj.IdType = idType
	obj.IdValue = idValue
	obj.KYC = kyc
	if _, err := r.objects.Put(db, obj.Address, obj); err != nil {
		return nil, errors.Wrap(err, "save object")
	}
	return obj, nil
}

func (r *Registry) updateQuorum(db idm.KVStore) error {
	c, err := r.counters.Counter(db, Role_Owner)
	if err != nil {
		return err
	}
	if c.Active == 0 {
		return errors.Wrap(errors.ErrState, "at least one active owner is required")
	}
	s := &System{
		Metadata: &idm.Metadata{Schema: 1},
		Quorum:   Quorum(c.Active),
	}
	return r.system.Save(db, s)
}
