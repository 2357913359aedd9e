package app

import (
	"github.com/iov-one/idm"
)

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...idm.Initializer) idm.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []idm.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts idm.Options, kv idm.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
