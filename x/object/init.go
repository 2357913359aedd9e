package object

import (
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/gconf"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ idm.Initializer = Initializer{}

// FromGenesis stores the registry configuration found under
// "conf"/"object" and registers the owners listed under "initialize". Both
// are optional. Without owners the system stays uninitialized until an
// InitializeSystemMsg is processed.
//
//   {
//     "conf": {"object": {"min_initial_owners": 3, "max_profile_length": 256}},
//     "initialize": {"owners": ["0x...", "0x...", "0x..."]}
//   }
func (Initializer) FromGenesis(opts idm.Options, db idm.KVStore) error {
	conf := DefaultConfiguration()
	switch err := gconf.InitConfig(db, opts, packageName, conf); {
	case errors.ErrNotFound.Is(err):
		if err := gconf.Save(db, packageName, conf); err != nil {
			return errors.Wrap(err, "save default configuration")
		}
	case err != nil:
		return err
	}

	var genesis struct {
		Owners []idm.Address `json:"owners"`
	}
	if err := opts.ReadOptions("initialize", &genesis); err != nil {
		return err
	}
	if len(genesis.Owners) == 0 {
		return nil
	}
	if err := NewRegistry().Initialize(db, genesis.Owners); err != nil {
		return errors.Wrap(err, "initialize system")
	}
	return nil
}
