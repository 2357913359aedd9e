package migration

import (
	"encoding/binary"

	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/orm"
)

func init() {
	MustRegister(1, &Schema{}, NoModification)
}

// Validate returns an error if the schema declaration is not complete.
func (s *Schema) Validate() error {
	if err := s.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if s.Version < 1 {
		return errors.Wrap(errors.ErrInvalidModel, "version must be greater than zero")
	}
	if s.Pkg == "" {
		return errors.Wrap(errors.ErrInvalidModel, "pkg is required")
	}
	return nil
}

// schemaID returns a deterministic ID of this schema instance. Created IDs
// can be sorted using lexicographical order from the lowest to the highest
// version.
func schemaID(pkg string, version uint32) []byte {
	raw := make([]byte, len(pkg)+4)
	copy(raw, pkg)
	binary.BigEndian.PutUint32(raw[len(pkg):], version)
	return raw
}

// SchemaBucket stores the schema versions of all packages. A new entry is
// created for every upgrade, so the full upgrade history is kept.
type SchemaBucket struct {
	orm.ModelBucket
}

// NewSchemaBucket returns a bucket for schema declarations.
func NewSchemaBucket() *SchemaBucket {
	// Schema bucket is using plain orm.ModelBucket implementation so that
	// it can insert entities without schema version being registered. It
	// cannot use migration implementation bucket because it would cause
	// circular dependency on itself.
	return &SchemaBucket{
		ModelBucket: orm.NewModelBucket("schema", &Schema{}),
	}
}

// MustInitPkg initialize schema versioning for given package names. This
// registers a version one schema.
// This function panics if not successful. It is safe to call this function
// many times as duplicate registrations are ignored.
func MustInitPkg(db idm.KVStore, packageNames ...string) {
	b := NewSchemaBucket()
	for _, name := range packageNames {
		if err := b.initPkg(db, name, 1); err != nil {
			panic(errors.Wrap(err, name))
		}
	}
}

// initPkg ensures the package schema is declared with at least the given
// version.
func (b *SchemaBucket) initPkg(db idm.KVStore, pkg string, version uint32) error {
	current, err := b.CurrentSchema(db, pkg)
	switch {
	case errors.ErrNotFound.Is(err):
		current = 0
	case err != nil:
		return err
	}
	for v := current + 1; v <= version; v++ {
		if err := b.create(db, pkg, v); err != nil {
			return err
		}
	}
	return nil
}

func (b *SchemaBucket) create(db idm.KVStore, pkg string, version uint32) error {
	s := Schema{
		Metadata: &idm.Metadata{Schema: 1},
		Pkg:      pkg,
		Version:  version,
	}
	_, err := b.Put(db, schemaID(pkg, version), &s)
	return err
}

// Upgrade bumps the schema version of the given package by one and returns
// the new version.
func (b *SchemaBucket) Upgrade(db idm.KVStore, pkg string) (uint32, error) {
	current, err := b.CurrentSchema(db, pkg)
	if err != nil {
		return 0, errors.Wrap(err, "current schema version")
	}
	next := current + 1
	if next < current {
		return 0, errors.Wrap(errors.ErrOverflow, "schema version")
	}
	if err := b.create(db, pkg, next); err != nil {
		return 0, errors.Wrap(err, "create schema version")
	}
	return next, nil
}

// CurrentSchema returns the current version of the schema for a given package.
// It returns ErrNotFound if no schema version was registered for this package.
// Minimum schema version is 1.
func (b *SchemaBucket) CurrentSchema(db idm.ReadOnlyKVStore, packageName string) (uint32, error) {
	for ver := uint32(1); ver < 10000; ver++ {
		switch err := b.Has(db, schemaID(packageName, ver)); {
		case err == nil:
			continue
		case !errors.ErrNotFound.Is(err):
			return 0, errors.Wrap(err, "bucket has")
		}
		if ver == 1 {
			return 0, errors.Wrapf(errors.ErrNotFound, "package %q not initialized", packageName)
		}
		return ver - 1, nil
	}
	return 0, errors.Wrap(errors.ErrState, "version too high")
}

// RegisterQuery registers the schema bucket for querying.
func RegisterQuery(qr idm.QueryRouter) {
	NewSchemaBucket().Register("schemas", qr)
}
