package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/idm/migration"
	"github.com/iov-one/idm/x/mst"
	"github.com/iov-one/idm/x/object"
	"github.com/iov-one/idm/x/sigs"
)

// Tx contains the message and its signatures. At most one of the message
// fields is set.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`

	SigsBumpSequenceMsg          *sigs.BumpSequenceMsg          `protobuf:"bytes,10,opt,name=sigs_bump_sequence_msg,json=sigsBumpSequenceMsg,proto3" json:"sigs_bump_sequence_msg,omitempty"`
	MigrationUpgradeSchemaMsg    *migration.UpgradeSchemaMsg    `protobuf:"bytes,11,opt,name=migration_upgrade_schema_msg,json=migrationUpgradeSchemaMsg,proto3" json:"migration_upgrade_schema_msg,omitempty"`
	ObjectInitializeSystemMsg    *object.InitializeSystemMsg    `protobuf:"bytes,20,opt,name=object_initialize_system_msg,json=objectInitializeSystemMsg,proto3" json:"object_initialize_system_msg,omitempty"`
	ObjectAddObjectMsg           *object.AddObjectMsg           `protobuf:"bytes,21,opt,name=object_add_object_msg,json=objectAddObjectMsg,proto3" json:"object_add_object_msg,omitempty"`
	ObjectAddUserWalletMsg       *object.AddUserWalletMsg       `protobuf:"bytes,22,opt,name=object_add_user_wallet_msg,json=objectAddUserWalletMsg,proto3" json:"object_add_user_wallet_msg,omitempty"`
	ObjectActivateObjectMsg      *object.ActivateObjectMsg      `protobuf:"bytes,23,opt,name=object_activate_object_msg,json=objectActivateObjectMsg,proto3" json:"object_activate_object_msg,omitempty"`
	ObjectDeactivateObjectMsg    *object.DeactivateObjectMsg    `protobuf:"bytes,24,opt,name=object_deactivate_object_msg,json=objectDeactivateObjectMsg,proto3" json:"object_deactivate_object_msg,omitempty"`
	ObjectUpdateObjectInfoMsg    *object.UpdateObjectInfoMsg    `protobuf:"bytes,25,opt,name=object_update_object_info_msg,json=objectUpdateObjectInfoMsg,proto3" json:"object_update_object_info_msg,omitempty"`
	ObjectUpdateConfigurationMsg *object.UpdateConfigurationMsg `protobuf:"bytes,26,opt,name=object_update_configuration_msg,json=objectUpdateConfigurationMsg,proto3" json:"object_update_configuration_msg,omitempty"`
	MstSubmitMsg                 *mst.SubmitMsg                 `protobuf:"bytes,30,opt,name=mst_submit_msg,json=mstSubmitMsg,proto3" json:"mst_submit_msg,omitempty"`
	MstSignMsg                   *mst.SignMsg                   `protobuf:"bytes,31,opt,name=mst_sign_msg,json=mstSignMsg,proto3" json:"mst_sign_msg,omitempty"`
	MstRevokeMsg                 *mst.RevokeMsg                 `protobuf:"bytes,32,opt,name=mst_revoke_msg,json=mstRevokeMsg,proto3" json:"mst_revoke_msg,omitempty"`
	MstExecuteMsg                *mst.ExecuteMsg                `protobuf:"bytes,33,opt,name=mst_execute_msg,json=mstExecuteMsg,proto3" json:"mst_execute_msg,omitempty"`
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}

func (m *Tx) GetSignatures() []*sigs.StdSignature {
	if m != nil {
		return m.Signatures
	}
	return nil
}
