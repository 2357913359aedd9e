package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/migration"
	"github.com/iov-one/idm/x/mst"
	"github.com/iov-one/idm/x/object"
	"github.com/iov-one/idm/x/sigs"
)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (idm.Tx, error) {
	tx := new(Tx)
	if err := proto.Unmarshal(bz, tx); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return tx, nil
}

// make sure tx fulfills all interfaces
var _ idm.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg returns the only message set on this transaction.
func (tx *Tx) GetMsg() (idm.Msg, error) {
	return idm.ExtractMsg(tx)
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	signatures := tx.Signatures
	tx.Signatures = nil

	bz, err := proto.Marshal(tx)

	// reset the signatures after calculating the bytes
	tx.Signatures = signatures
	return bz, err
}

// SetMsg sets the message field matching the type of the given message and
// clears all other message fields.
func (tx *Tx) SetMsg(msg idm.Msg) error {
	signatures := tx.Signatures
	tx.Reset()
	tx.Signatures = signatures

	switch m := msg.(type) {
	case *sigs.BumpSequenceMsg:
		tx.SigsBumpSequenceMsg = m
	case *migration.UpgradeSchemaMsg:
		tx.MigrationUpgradeSchemaMsg = m
	case *object.InitializeSystemMsg:
		tx.ObjectInitializeSystemMsg = m
	case *object.AddObjectMsg:
		tx.ObjectAddObjectMsg = m
	case *object.AddUserWalletMsg:
		tx.ObjectAddUserWalletMsg = m
	case *object.ActivateObjectMsg:
		tx.ObjectActivateObjectMsg = m
	case *object.DeactivateObjectMsg:
		tx.ObjectDeactivateObjectMsg = m
	case *object.UpdateObjectInfoMsg:
		tx.ObjectUpdateObjectInfoMsg = m
	case *object.UpdateConfigurationMsg:
		tx.ObjectUpdateConfigurationMsg = m
	case *mst.SubmitMsg:
		tx.MstSubmitMsg = m
	case *mst.SignMsg:
		tx.MstSignMsg = m
	case *mst.RevokeMsg:
		tx.MstRevokeMsg = m
	case *mst.ExecuteMsg:
		tx.MstExecuteMsg = m
	default:
		return errors.Wrapf(errors.ErrType, "unsupported message %T", msg)
	}
	return nil
}
