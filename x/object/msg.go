package object

import (
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/migration"
)

func init() {
	migration.MustRegister(1, &InitializeSystemMsg{}, migration.NoModification)
	migration.MustRegister(1, &AddObjectMsg{}, migration.NoModification)
	migration.MustRegister(1, &AddUserWalletMsg{}, migration.NoModification)
	migration.MustRegister(1, &ActivateObjectMsg{}, migration.NoModification)
	migration.MustRegister(1, &DeactivateObjectMsg{}, migration.NoModification)
	migration.MustRegister(1, &UpdateObjectInfoMsg{}, migration.NoModification)
	migration.MustRegister(1, &UpdateConfigurationMsg{}, migration.NoModification)
}

const (
	pathInitializeSystemMsg    = "object/initialize_system"
	pathAddObjectMsg           = "object/add"
	pathAddUserWalletMsg       = "object/add_user_wallet"
	pathActivateObjectMsg      = "object/activate"
	pathDeactivateObjectMsg    = "object/deactivate"
	pathUpdateObjectInfoMsg    = "object/update"
	pathUpdateConfigurationMsg = "object/update_configuration"
)

var _ idm.Msg = (*InitializeSystemMsg)(nil)

func (InitializeSystemMsg) Path() string {
	return pathInitializeSystemMsg
}

func (m *InitializeSystemMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if len(m.Owners) == 0 {
		errs = errors.AppendField(errs, "Owners", errors.ErrEmpty)
	}
	if err := validateOwners(m.Owners); err != nil {
		errs = errors.AppendField(errs, "Owners", err)
	}
	return errs
}

var _ idm.Msg = (*AddObjectMsg)(nil)

func (AddObjectMsg) Path() string {
	return pathAddObjectMsg
}

func (m *AddObjectMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Address", m.Address.Validate())
	errs = errors.AppendField(errs, "Role", m.Role.Validate())
	return errs
}

var _ idm.Msg = (*AddUserWalletMsg)(nil)

func (AddUserWalletMsg) Path() string {
	return pathAddUserWalletMsg
}

func (m *AddUserWalletMsg) Validate() error {
	return errors.AppendField(nil, "Metadata", m.Metadata.Validate())
}

var _ idm.Msg = (*ActivateObjectMsg)(nil)

func (ActivateObjectMsg) Path() string {
	return pathActivateObjectMsg
}

func (m *ActivateObjectMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Address", m.Address.Validate())
	return errs
}

var _ idm.Msg = (*DeactivateObjectMsg)(nil)

func (DeactivateObjectMsg) Path() string {
	return pathDeactivateObjectMsg
}

func (m *DeactivateObjectMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Address", m.Address.Validate())
	return errs
}

var _ idm.Msg = (*UpdateObjectInfoMsg)(nil)

func (UpdateObjectInfoMsg) Path() string {
	return pathUpdateObjectInfoMsg
}

func (m *UpdateObjectInfoMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Address", m.Address.Validate())
	return errs
}

var _ idm.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

func (m *UpdateConfigurationMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Patch == nil {
		errs = errors.AppendField(errs, "Patch", errors.ErrEmpty)
	}
	return errs
}
