package orm

import (
	"github.com/iov-one/idm/errors"
)

// Orm reserves 100~109 error codes

// ErrInvalidIndex is returned when an index specified is invalid
var ErrInvalidIndex = errors.RegisterKind(errors.ErrInput, 100, "invalid index")

// ErrUniqueIndex is returned when a unique index would hold two references
var ErrUniqueIndex = errors.RegisterKind(errors.ErrDuplicate, 101, "unique index violation")
