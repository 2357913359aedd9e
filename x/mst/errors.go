package mst

import "github.com/iov-one/idm/errors"

// Multi signature transaction errors.
var (
	ErrNoMSTNeededForRole     = errors.RegisterKind(errors.ErrPolicy, 130, "no multi signature transaction needed for role")
	ErrAlreadySigned          = errors.RegisterKind(errors.ErrState, 131, "already signed")
	ErrNotSigned              = errors.RegisterKind(errors.ErrState, 132, "not signed")
	ErrAlreadyExecuted        = errors.RegisterKind(errors.ErrState, 133, "already executed")
	ErrInsufficientSignatures = errors.RegisterKind(errors.ErrQuorum, 134, "the number of signatures is not enough to execute this transaction")
	ErrMSTNotFound            = errors.RegisterKind(errors.ErrNotFound, 135, "multi signature transaction not found")
	ErrInvalidTxCode          = errors.RegisterKind(errors.ErrInput, 136, "invalid transaction code")
)
