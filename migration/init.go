package migration

import (
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
)

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ idm.Initializer = Initializer{}

type genesisSchema struct {
	Pkg string `json:"pkg"`
	Ver uint32 `json:"ver"`
}

// FromGenesis will parse the initial schema versions from genesis and save
// them to the database.
func (Initializer) FromGenesis(opts idm.Options, kv idm.KVStore) error {
	var schemas []genesisSchema
	if err := opts.ReadOptions("initialize_schema", &schemas); err != nil {
		return err
	}
	b := NewSchemaBucket()
	for i, s := range schemas {
		if s.Pkg == "" {
			return errors.Wrapf(errors.ErrInput, "schema %d: pkg is required", i)
		}
		if s.Ver < 1 {
			return errors.Wrapf(errors.ErrInput, "schema %d: version must be at least 1", i)
		}
		if err := b.initPkg(kv, s.Pkg, s.Ver); err != nil {
			return errors.Wrapf(err, "schema %d", i)
		}
	}
	return nil
}
