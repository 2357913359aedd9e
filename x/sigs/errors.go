package sigs

import "github.com/iov-one/idm/errors"

var (
	// ErrInvalidSequence is returned when the signature sequence does not
	// match the one stored for the signer.
	ErrInvalidSequence = errors.RegisterKind(errors.ErrUnauthorized, 120, "invalid sequence number")
)
