package object

import (
	"strings"

	"github.com/iov-one/idm/errors"
)

// Roles lists all valid roles.
var Roles = []Role{Role_User, Role_Owner, Role_Admin, Role_System}

// Validate returns an error if this is not one of the known roles.
func (r Role) Validate() error {
	switch r {
	case Role_User, Role_Owner, Role_Admin, Role_System:
		return nil
	default:
		return errors.Wrapf(ErrInvalidRole, "%d", r)
	}
}

// Name returns the short, lower case name of the role, for example
// "owner". It is used as the counter key and in event names.
func (r Role) Name() string {
	switch r {
	case Role_User:
		return "user"
	case Role_Owner:
		return "owner"
	case Role_Admin:
		return "admin"
	case Role_System:
		return "system"
	default:
		return "invalid"
	}
}

// ParseRole returns the role with the given short or full name, for example
// "owner" or "ROLE_OWNER".
func ParseRole(s string) (Role, error) {
	if v, ok := Role_value[strings.ToUpper(s)]; ok && Role(v) != Role_Invalid {
		return Role(v), nil
	}
	for _, r := range Roles {
		if r.Name() == strings.ToLower(s) {
			return r, nil
		}
	}
	return Role_Invalid, errors.Wrapf(ErrInvalidRole, "unknown role %q", s)
}

// MarshalJSON encodes the role using its short name.
func (r Role) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.Name() + `"`), nil
}

// UnmarshalJSON accepts the short or the full name of a role.
func (r *Role) UnmarshalJSON(raw []byte) error {
	s := strings.Trim(string(raw), `"`)
	role, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = role
	return nil
}
