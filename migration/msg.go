package migration

import (
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
)

func init() {
	MustRegister(1, &UpgradeSchemaMsg{}, NoModification)
}

const pathUpgradeSchemaMsg = "migration/upgrade_schema"

var _ idm.Msg = (*UpgradeSchemaMsg)(nil)

func (msg *UpgradeSchemaMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	if msg.Pkg == "" {
		errs = errors.Append(errs, errors.Field("Pkg", errors.ErrEmpty, "required"))
	}
	if msg.ToVersion == 0 {
		errs = errors.Append(errs, errors.Field("ToVersion", errors.ErrEmpty, "required"))
	}
	return errs
}

func (UpgradeSchemaMsg) Path() string {
	return pathUpgradeSchemaMsg
}
