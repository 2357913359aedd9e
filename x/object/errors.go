package object

import "github.com/iov-one/idm/errors"

// Registry errors. Each one is a special case of a generic error kind, so
// that both errors.ErrState.Is(ErrAlreadyActive) and
// ErrAlreadyActive.Is(err) hold.
var (
	ErrAlreadyInitialized      = errors.RegisterKind(errors.ErrState, 110, "system already initialized")
	ErrNotInitialized          = errors.RegisterKind(errors.ErrState, 111, "system not initialized")
	ErrObjectAlreadyExists     = errors.RegisterKind(errors.ErrDuplicate, 112, "object already exists")
	ErrObjectNotFound          = errors.RegisterKind(errors.ErrNotFound, 113, "object not found")
	ErrAlreadyActive           = errors.RegisterKind(errors.ErrState, 114, "object already active")
	ErrAlreadyInactive         = errors.RegisterKind(errors.ErrState, 115, "object already inactive")
	ErrMustUseMST              = errors.RegisterKind(errors.ErrPolicy, 116, "must use multi signature transaction")
	ErrInvalidRoleForDirectAdd = errors.RegisterKind(errors.ErrPolicy, 117, "invalid role for direct add")
	ErrNotAuthorizedAsAdmin    = errors.RegisterKind(errors.ErrUnauthorized, 118, "not authorized as admin")
	ErrNotAuthorizedAsOwner    = errors.RegisterKind(errors.ErrUnauthorized, 119, "not authorized as owner")
	ErrInsufficientOwners      = errors.RegisterKind(errors.ErrInput, 121, "insufficient initial owners")
	ErrInvalidRole             = errors.RegisterKind(errors.ErrInput, 122, "invalid role")
)
