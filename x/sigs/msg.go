package sigs

import (
	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/migration"
)

func init() {
	migration.MustRegister(1, &BumpSequenceMsg{}, migration.NoModification)
}

const (
	pathBumpSequenceMsg = "sigs/bump_sequence"

	maxSequenceIncrement = 1000
	minSequenceIncrement = 1
)

// Validate ensures the increment is in the allowed range.
func (msg *BumpSequenceMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	if msg.Increment < minSequenceIncrement {
		errs = errors.AppendField(errs, "Increment",
			errors.Wrapf(errors.ErrInvalidMsg, "increment must be at least %d", minSequenceIncrement))
	}
	if msg.Increment > maxSequenceIncrement {
		errs = errors.AppendField(errs, "Increment",
			errors.Wrapf(errors.ErrInvalidMsg, "increment must not be greater than %d", maxSequenceIncrement))
	}
	return errs
}

// Path returns the routing path of this message.
func (BumpSequenceMsg) Path() string {
	return pathBumpSequenceMsg
}
