package migration

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/idm"
)

// Schema declares the current schema version of a package.
type Schema struct {
	Metadata *idm.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Pkg is the name of the package this schema is declared for.
	Pkg string `protobuf:"bytes,2,opt,name=pkg,proto3" json:"pkg,omitempty"`
	// Version is the schema version of the package.
	Version uint32 `protobuf:"varint,3,opt,name=version,proto3" json:"version,omitempty"`
}

func (m *Schema) Reset()         { *m = Schema{} }
func (m *Schema) String() string { return proto.CompactTextString(m) }
func (*Schema) ProtoMessage()    {}

func (m *Schema) GetMetadata() *idm.Metadata {
	if m != nil {
		return m.Metadata
	}
	return nil
}

// UpgradeSchemaMsg bumps the schema version of a package by one.
type UpgradeSchemaMsg struct {
	Metadata *idm.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Pkg is the name of the package the schema is upgraded for.
	Pkg string `protobuf:"bytes,2,opt,name=pkg,proto3" json:"pkg,omitempty"`
	// ToVersion is the expected version after the upgrade. It protects
	// from applying the same upgrade twice.
	ToVersion uint32 `protobuf:"varint,3,opt,name=to_version,json=toVersion,proto3" json:"to_version,omitempty"`
}

func (m *UpgradeSchemaMsg) Reset()         { *m = UpgradeSchemaMsg{} }
func (m *UpgradeSchemaMsg) String() string { return proto.CompactTextString(m) }
func (*UpgradeSchemaMsg) ProtoMessage()    {}

func (m *UpgradeSchemaMsg) GetMetadata() *idm.Metadata {
	if m != nil {
		return m.Metadata
	}
	return nil
}
