package object

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
)

// RegisterQuery registers the registry buckets for querying.
//
//   /objects           object by address, or by address prefix
//   /objects/role      objects by role name, for example "owner"
//   /objects/exists    a single byte, 1 if the address is registered
//   /objcounters       counters by role name
//   /objsystem         the system state under the "system" key
//   /objconf           the registry configuration
func RegisterQuery(qr idm.QueryRouter) {
	NewObjectBucket().Register("objects", qr)
	NewSystemBucket().Register("objsystem", qr)

	registry := NewRegistry()
	qr.Register("/objects/exists", existsQuery{registry: registry})
	qr.Register("/objcounters", counterQuery{registry: registry})
	qr.Register("/objconf", confQuery{registry: registry})
}

type existsQuery struct {
	registry *Registry
}

func (q existsQuery) Query(db idm.ReadOnlyKVStore, mod string, data []byte) ([]idm.Model, error) {
	if mod != idm.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
	exists, err := q.registry.Exists(db, idm.Address(data))
	if err != nil {
		return nil, err
	}
	value := []byte{0}
	if exists {
		value[0] = 1
	}
	return []idm.Model{idm.Pair(data, value)}, nil
}

type counterQuery struct {
	registry *Registry
}

func (q counterQuery) Query(db idm.ReadOnlyKVStore, mod string, data []byte) ([]idm.Model, error) {
	var roles []Role
	switch mod {
	case idm.KeyQueryMod:
		role, err := ParseRole(string(data))
		if err != nil {
			return nil, err
		}
		roles = []Role{role}
	case idm.PrefixQueryMod:
		if len(data) != 0 {
			return nil, errors.Wrap(errors.ErrInput, "only an empty prefix is supported")
		}
		roles = Roles
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}

	res := make([]idm.Model, 0, len(roles))
	for _, role := range roles {
		c, err := q.registry.Counter(db, role)
		if err != nil {
			return nil, err
		}
		raw, err := proto.Marshal(c)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
		}
		res = append(res, idm.Pair([]byte(role.Name()), raw))
	}
	return res, nil
}

type confQuery struct {
	registry *Registry
}

func (q confQuery) Query(db idm.ReadOnlyKVStore, mod string, data []byte) ([]idm.Model, error) {
	if mod != idm.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
	conf, err := q.registry.Configuration(db)
	if err != nil {
		return nil, err
	}
	raw, err := proto.Marshal(conf)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	return []idm.Model{idm.Pair([]byte(packageName), raw)}, nil
}
