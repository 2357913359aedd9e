package mst

import (
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/migration"
)

func init() {
	migration.MustRegister(1, &SubmitMsg{}, migration.NoModification)
	migration.MustRegister(1, &SignMsg{}, migration.NoModification)
	migration.MustRegister(1, &RevokeMsg{}, migration.NoModification)
	migration.MustRegister(1, &ExecuteMsg{}, migration.NoModification)
}

const (
	pathSubmitMsg  = "mst/submit"
	pathSignMsg    = "mst/sign"
	pathRevokeMsg  = "mst/revoke"
	pathExecuteMsg = "mst/execute"
)

var _ idm.Msg = (*SubmitMsg)(nil)

func (SubmitMsg) Path() string {
	return pathSubmitMsg
}

func (m *SubmitMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "TxCode", m.TxCode.Validate())
	errs = errors.AppendField(errs, "Role", m.Role.Validate())
	errs = errors.AppendField(errs, "Target", m.Target.Validate())
	if m.TxCode == TxCode_Transfer {
		errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	} else if len(m.Destination) != 0 {
		errs = errors.AppendField(errs, "Destination", errors.Wrap(errors.ErrInput, "only a transfer has a destination"))
	}
	return errs
}

var _ idm.Msg = (*SignMsg)(nil)

func (SignMsg) Path() string {
	return pathSignMsg
}

func (m *SignMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "MstID", validateID(m.MstID))
	return errs
}

var _ idm.Msg = (*RevokeMsg)(nil)

func (RevokeMsg) Path() string {
	return pathRevokeMsg
}

func (m *RevokeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "MstID", validateID(m.MstID))
	return errs
}

var _ idm.Msg = (*ExecuteMsg)(nil)

func (ExecuteMsg) Path() string {
	return pathExecuteMsg
}

func (m *ExecuteMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "MstID", validateID(m.MstID))
	return errs
}

// validateID rejects zero, ids are allocated starting at one.
func validateID(id uint64) error {
	if id == 0 {
		return errors.Wrap(errors.ErrEmpty, "id")
	}
	return nil
}
