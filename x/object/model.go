package object

import (
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/migration"
	"github.com/iov-one/idm/orm"
)

func init() {
	migration.MustRegister(1, &IdentityObject{}, migration.NoModification)
	migration.MustRegister(1, &RoleCounter{}, migration.NoModification)
	migration.MustRegister(1, &System{}, migration.NoModification)
}

const packageName = "object"

var _ orm.Model = (*IdentityObject)(nil)

// Validate ensures the object is a complete registry entry.
func (o *IdentityObject) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", o.Metadata.Validate())
	errs = errors.AppendField(errs, "Address", o.Address.Validate())
	errs = errors.AppendField(errs, "Role", o.Role.Validate())
	return errs
}

// Copy returns a deep copy of this object.
func (o *IdentityObject) Copy() *IdentityObject {
	cpy := *o
	if o.Metadata != nil {
		cpy.Metadata = o.Metadata.Copy()
	}
	cpy.Address = append(idm.Address(nil), o.Address...)
	return &cpy
}

var _ orm.Model = (*RoleCounter)(nil)

// Validate ensures the counter is consistent. There can never be more
// active objects than objects in total.
func (c *RoleCounter) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Role", c.Role.Validate())
	if c.Active > c.Total {
		errs = errors.AppendField(errs, "Active",
			errors.Wrapf(errors.ErrInvalidModel, "%d active out of %d", c.Active, c.Total))
	}
	return errs
}

var _ orm.Model = (*System)(nil)

// Validate ensures the quorum can be used.
func (s *System) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", s.Metadata.Validate())
	if s.Quorum < 1 {
		errs = errors.AppendField(errs, "Quorum", errors.Wrap(errors.ErrInvalidModel, "must be at least 1"))
	}
	return errs
}

// Validate ensures the configuration can be used.
func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	if c.MinInitialOwners < 1 {
		errs = errors.AppendField(errs, "MinInitialOwners", errors.Wrap(errors.ErrInvalidModel, "must be at least 1"))
	}
	if c.MaxProfileLength < 1 {
		errs = errors.AppendField(errs, "MaxProfileLength", errors.Wrap(errors.ErrInvalidModel, "must be at least 1"))
	}
	return errs
}

// DefaultConfiguration returns the configuration used when the genesis does
// not provide one.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		Metadata:         &idm.Metadata{Schema: 1},
		MinInitialOwners: 3,
		MaxProfileLength: 256,
	}
}

// Quorum returns the number of owner signatures required by a system with
// the given number of active owners. It is a strict majority.
func Quorum(activeOwners uint64) uint32 {
	return uint32(activeOwners/2) + 1
}

// ObjectBucket stores identity objects under their address.
type ObjectBucket struct {
	orm.ModelBucket
}

// NewObjectBucket returns a bucket for identity objects. Objects are
// indexed by their role.
func NewObjectBucket() *ObjectBucket {
	b := orm.NewModelBucket("objects", &IdentityObject{},
		orm.WithIndex("role", roleIndexer, false))
	return &ObjectBucket{
		ModelBucket: migration.NewModelBucket(packageName, b),
	}
}

func roleIndexer(m orm.Model) ([]byte, error) {
	o, ok := m.(*IdentityObject)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return []byte(o.Role.Name()), nil
}

// ByRole returns all objects of the given role.
func (b *ObjectBucket) ByRole(db idm.ReadOnlyKVStore, role Role) ([]*IdentityObject, error) {
	var objs []*IdentityObject
	if _, err := b.ByIndex(db, "role", []byte(role.Name()), &objs); err != nil {
		return nil, err
	}
	return objs, nil
}

// CounterBucket stores a RoleCounter per role, under the role name.
type CounterBucket struct {
	orm.ModelBucket
}

// NewCounterBucket returns a bucket for role counters.
func NewCounterBucket() *CounterBucket {
	b := orm.NewModelBucket("objcounter", &RoleCounter{})
	return &CounterBucket{
		ModelBucket: migration.NewModelBucket(packageName, b),
	}
}

// Counter returns the counter of the given role. A role without objects
// has a zero counter.
func (b *CounterBucket) Counter(db idm.ReadOnlyKVStore, role Role) (*RoleCounter, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}
	var c RoleCounter
	switch err := b.One(db, []byte(role.Name()), &c); {
	case err == nil:
		return &c, nil
	case errors.ErrNotFound.Is(err):
		return &RoleCounter{Metadata: &idm.Metadata{Schema: 1}, Role: role}, nil
	default:
		return nil, errors.Wrap(err, "load counter")
	}
}

// Add changes the counters of the given role by the given deltas.
func (b *CounterBucket) Add(db idm.KVStore, role Role, total, active int) (*RoleCounter, error) {
	c, err := b.Counter(db, role)
	if err != nil {
		return nil, err
	}
	if c.Total, err = addDelta(c.Total, total); err != nil {
		return nil, errors.Wrapf(err, "%s total counter", role.Name())
	}
	if c.Active, err = addDelta(c.Active, active); err != nil {
		return nil, errors.Wrapf(err, "%s active counter", role.Name())
	}
	if _, err := b.Put(db, []byte(role.Name()), c); err != nil {
		return nil, errors.Wrap(err, "save counter")
	}
	return c, nil
}

func addDelta(v uint64, delta int) (uint64, error) {
	if delta < 0 {
		d := uint64(-delta)
		if d > v {
			return 0, errors.Wrap(errors.ErrState, "counter below zero")
		}
		return v - d, nil
	}
	n := v + uint64(delta)
	if n < v {
		return 0, errors.ErrOverflow
	}
	return n, nil
}

var systemKey = []byte("system")

// SystemBucket stores the System singleton.
type SystemBucket struct {
	orm.ModelBucket
}

// NewSystemBucket returns a bucket for the system state.
func NewSystemBucket() *SystemBucket {
	b := orm.NewModelBucket("objsystem", &System{})
	return &SystemBucket{
		ModelBucket: migration.NewModelBucket(packageName, b),
	}
}

// Load returns the system state or ErrNotInitialized.
func (b *SystemBucket) Load(db idm.ReadOnlyKVStore) (*System, error) {
	var s System
	switch err := b.One(db, systemKey, &s); {
	case err == nil:
		return &s, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrap(ErrNotInitialized, "no system state")
	default:
		return nil, errors.Wrap(err, "load system")
	}
}

// Save writes the system state.
func (b *SystemBucket) Save(db idm.KVStore, s *System) error {
	_, err := b.Put(db, systemKey, s)
	return err
}
