package mst

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/x/object"
)

// TxCode is the kind of a privileged owner operation.
type TxCode int32

const (
	TxCode_Invalid    TxCode = 0
	TxCode_Add        TxCode = 1
	TxCode_Activate   TxCode = 2
	TxCode_Deactivate TxCode = 3
	TxCode_Transfer   TxCode = 4
)

var TxCode_name = map[int32]string{
	0: "TX_CODE_INVALID",
	1: "TX_CODE_ADD",
	2: "TX_CODE_ACTIVATE",
	3: "TX_CODE_DEACTIVATE",
	4: "TX_CODE_TRANSFER",
}

var TxCode_value = map[string]int32{
	"TX_CODE_INVALID":    0,
	"TX_CODE_ADD":        1,
	"TX_CODE_ACTIVATE":   2,
	"TX_CODE_DEACTIVATE": 3,
	"TX_CODE_TRANSFER":   4,
}

func (x TxCode) String() string {
	return proto.EnumName(TxCode_name, int32(x))
}

func init() {
	proto.RegisterEnum("mst.TxCode", TxCode_name, TxCode_value)
}

// MultiSigTransaction is a pending privileged operation that requires a
// quorum of owner signatures before it can be executed.
type MultiSigTransaction struct {
	Metadata *idm.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	TxCode   TxCode        `protobuf:"varint,2,opt,name=tx_code,json=txCode,proto3,enum=mst.TxCode" json:"tx_code,omitempty"`
	Role     object.Role   `protobuf:"varint,3,opt,name=role,proto3,enum=object.Role" json:"role,omitempty"`
	Target   idm.Address   `protobuf:"bytes,4,opt,name=target,proto3,casttype=github.com/iov-one/idm.Address" json:"target,omitempty"`
	// Destination is set only for a transfer.
	Destination    idm.Address   `protobuf:"bytes,5,opt,name=destination,proto3,casttype=github.com/iov-one/idm.Address" json:"destination,omitempty"`
	Submitter      idm.Address   `protobuf:"bytes,6,opt,name=submitter,proto3,casttype=github.com/iov-one/idm.Address" json:"submitter,omitempty"`
	Executed       bool          `protobuf:"varint,7,opt,name=executed,proto3" json:"executed,omitempty"`
	SignatureCount uint32        `protobuf:"varint,8,opt,name=signature_count,json=signatureCount,proto3" json:"signature_count,omitempty"`
	Signers        []idm.Address `protobuf:"bytes,9,rep,name=signers,proto3,casttype=github.com/iov-one/idm.Address" json:"signers,omitempty"`
}

func (m *MultiSigTransaction) Reset()         { *m = MultiSigTransaction{} }
func (m *MultiSigTransaction) String() string { return proto.CompactTextString(m) }
func (*MultiSigTransaction) ProtoMessage()    {}

func (m *MultiSigTransaction) GetMetadata() *idm.Metadata {
	if m != nil {
		return m.Metadata
	}
	return nil
}

// SubmitMsg creates a new multi signature transaction.
type SubmitMsg struct {
	Metadata    *idm.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	TxCode      TxCode        `protobuf:"varint,2,opt,name=tx_code,json=txCode,proto3,enum=mst.TxCode" json:"tx_code,omitempty"`
	Role        object.Role   `protobuf:"varint,3,opt,name=role,proto3,enum=object.Role" json:"role,omitempty"`
	Target      idm.Address   `protobuf:"bytes,4,opt,name=target,proto3,casttype=github.com/iov-one/idm.Address" json:"target,omitempty"`
	Destination idm.Address   `protobuf:"bytes,5,opt,name=destination,proto3,casttype=github.com/iov-one/idm.Address" json:"destination,omitempty"`
}

func (m *SubmitMsg) Reset()         { *m = SubmitMsg{} }
func (m *SubmitMsg) String() string { return proto.CompactTextString(m) }
func (*SubmitMsg) ProtoMessage()    {}

func (m *SubmitMsg) GetMetadata() *idm.Metadata {
	if m != nil {
		return m.Metadata
	}
	return nil
}

// SignMsg adds the signature of the signer to a pending transaction.
type SignMsg struct {
	Metadata *idm.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	MstID    uint64        `protobuf:"varint,2,opt,name=mst_id,json=mstId,proto3" json:"mst_id,omitempty"`
}

func (m *SignMsg) Reset()         { *m = SignMsg{} }
func (m *SignMsg) String() string { return proto.CompactTextString(m) }
func (*SignMsg) ProtoMessage()    {}

func (m *SignMsg) GetMetadata() *idm.Metadata {
	if m != nil {
		return m.Metadata
	}
	return nil
}

// RevokeMsg removes the signature of the signer from a pending transaction.
type RevokeMsg struct {
	Metadata *idm.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	MstID    uint64        `protobuf:"varint,2,opt,name=mst_id,json=mstId,proto3" json:"mst_id,omitempty"`
}

func (m *RevokeMsg) Reset()         { *m = RevokeMsg{} }
func (m *RevokeMsg) String() string { return proto.CompactTextString(m) }
func (*RevokeMsg) ProtoMessage()    {}

func (m *RevokeMsg) GetMetadata() *idm.Metadata {
	if m != nil {
		return m.Metadata
	}
	return nil
}

// ExecuteMsg applies a pending transaction that collected enough
// signatures.
type ExecuteMsg struct {
	Metadata *idm.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	MstID    uint64        `protobuf:"varint,2,opt,name=mst_id,json=mstId,proto3" json:"mst_id,omitempty"`
}

func (m *ExecuteMsg) Reset()         { *m = ExecuteMsg{} }
func (m *ExecuteMsg) String() string { return proto.CompactTextString(m) }
func (*ExecuteMsg) ProtoMessage()    {}

func (m *ExecuteMsg) GetMetadata() *idm.Metadata {
	if m != nil {
		return m.Metadata
	}
	return nil
}
