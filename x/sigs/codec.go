package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/idm"
)

// UserData just stores the current sequence of an address. The address is
// the primary key.
type UserData struct {
	Metadata *idm.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Sequence int64         `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

func (m *UserData) Reset()         { *m = UserData{} }
func (m *UserData) String() string { return proto.CompactTextString(m) }
func (*UserData) ProtoMessage()    {}

func (m *UserData) GetMetadata() *idm.Metadata {
	if m != nil {
		return m.Metadata
	}
	return nil
}

// StdSignature represents the signature and the sequence number used to
// prevent replay attacks. The signer is recovered from the signature.
type StdSignature struct {
	Sequence int64 `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence,omitempty"`
	// 65 byte recoverable secp256k1 signature, r || s || v
	Signature []byte `protobuf:"bytes,2,opt,name=signature,proto3" json:"signature,omitempty"`
}

func (m *StdSignature) Reset()         { *m = StdSignature{} }
func (m *StdSignature) String() string { return proto.CompactTextString(m) }
func (*StdSignature) ProtoMessage()    {}

func (m *StdSignature) GetSequence() int64 {
	if m != nil {
		return m.Sequence
	}
	return 0
}

// BumpSequenceMsg increments the sequence of the signer by the given value.
type BumpSequenceMsg struct {
	Metadata  *idm.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Increment uint32        `protobuf:"varint,2,opt,name=increment,proto3" json:"increment,omitempty"`
}

func (m *BumpSequenceMsg) Reset()         { *m = BumpSequenceMsg{} }
func (m *BumpSequenceMsg) String() string { return proto.CompactTextString(m) }
func (*BumpSequenceMsg) ProtoMessage()    {}

func (m *BumpSequenceMsg) GetMetadata() *idm.Metadata {
	if m != nil {
		return m.Metadata
	}
	return nil
}
