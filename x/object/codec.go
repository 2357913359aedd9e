package object

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/idm"
)

// Role is the category of an identity object. It decides which operations
// the object may perform and which operations may target it.
type Role int32

const (
	Role_Invalid Role = 0
	Role_User    Role = 1
	Role_Owner   Role = 2
	Role_Admin   Role = 3
	Role_System  Role = 4
)

var Role_name = map[int32]string{
	0: "ROLE_INVALID",
	1: "ROLE_USER",
	2: "ROLE_OWNER",
	3: "ROLE_ADMIN",
	4: "ROLE_SYSTEM",
}

var Role_value = map[string]int32{
	"ROLE_INVALID": 0,
	"ROLE_USER":    1,
	"ROLE_OWNER":   2,
	"ROLE_ADMIN":   3,
	"ROLE_SYSTEM":  4,
}

func (x Role) String() string {
	return proto.EnumName(Role_name, int32(x))
}

func init() {
	proto.RegisterEnum("object.Role", Role_name, Role_value)
}

// IdentityObject is the registry entry of a single address.
type IdentityObject struct {
	Metadata *idm.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Address  idm.Address   `protobuf:"bytes,2,opt,name=address,proto3,casttype=github.com/iov-one/idm.Address" json:"address,omitempty"`
	Role     Role          `protobuf:"varint,3,opt,name=role,proto3,enum=object.Role" json:"role,omitempty"`
	Name     string        `protobuf:"bytes,4,opt,name=name,proto3" json:"name,omitempty"`
	IdType   string        `protobuf:"bytes,5,opt,name=id_type,json=idType,proto3" json:"id_type,omitempty"`
	IdValue  string        `protobuf:"bytes,6,opt,name=id_value,json=idValue,proto3" json:"id_value,omitempty"`
	Active   bool          `protobuf:"varint,7,opt,name=active,proto3" json:"active,omitempty"`
	KYC      bool          `protobuf:"varint,8,opt,name=kyc,proto3" json:"kyc,omitempty"`
}

func (m *IdentityObject) Reset()         { *m = IdentityObject{} }
func (m *IdentityObject) String() string { return proto.CompactTextString(m) }
func (*IdentityObject) ProtoMessage()    {}

func (m *IdentityObject) GetMetadata() *idm.Metadata {
	if m != nil {
		return m.Metadata
	}
	return nil
}

func (m *IdentityObject) GetRole() Role {
	if m != nil {
		return m.Role
	}
	return Role_Invalid
}

// RoleCounter keeps the number of all and the number of active objects of a
// single role.
type RoleCounter struct {
	Metadata *idm.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Role     Role          `protobuf:"varint,2,opt,name=role,proto3,enum=object.Role" json:"role,omitempty"`
	Total    uint64        `protobuf:"varint,3,opt,name=total,proto3" json:"total,omitempty"`
	Active   uint64        `protobuf:"varint,4,opt,name=active,proto3" json:"active,omitempty"`
}

func (m *RoleCounter) Reset()         { *m = RoleCounter{} }
func (m *RoleCounter) String() string { return proto.CompactTextString(m) }
func (*RoleCounter) ProtoMessage()    {}

func (m *RoleCounter) GetMetadata() *idm.Metadata {
	if m != nil {
		return m.Metadata
	}
	return nil
}

// System is the singleton state of an initialized registry.
type System struct {
	Metadata *idm.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Quorum is the number of owner signatures required to execute a multi
	// signature transaction.
	Quorum uint32 `protobuf:"varint,2,opt,name=quorum,proto3" json:"quorum,omitempty"`
}

func (m *System) Reset()         { *m = System{} }
func (m *System) String() string { return proto.CompactTextString(m) }
func (*System) ProtoMessage()    {}

func (m *System) GetMetadata() *idm.Metadata {
	if m != nil {
		return m.Metadata
	}
	return nil
}

// Configuration is the registry configuration, loaded from the genesis.
type Configuration struct {
	Metadata *idm.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// MinInitialOwners is the minimal number of owners the system can be
	// initialized with.
	MinInitialOwners uint32 `protobuf:"varint,2,opt,name=min_initial_owners,json=minInitialOwners,proto3" json:"min_initial_owners,omitempty"`
	// MaxProfileLength limits the length of the name and identity
	// document fields.
	MaxProfileLength uint32 `protobuf:"varint,3,opt,name=max_profile_length,json=maxProfileLength,proto3" json:"max_profile_length,omitempty"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

// InitializeSystemMsg registers the initial set of owners. It can be
// processed only once. Any signer, usually the deployer, can send it.
type InitializeSystemMsg struct {
	Metadata *idm.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owners   []idm.Address `protobuf:"bytes,2,rep,name=owners,proto3,casttype=github.com/iov-one/idm.Address" json:"owners,omitempty"`
}

func (m *InitializeSystemMsg) Reset()         { *m = InitializeSystemMsg{} }
func (m *InitializeSystemMsg) String() string { return proto.CompactTextString(m) }
func (*InitializeSystemMsg) ProtoMessage()    {}

func (m *InitializeSystemMsg) GetMetadata() *idm.Metadata {
	if m != nil {
		return m.Metadata
	}
	return nil
}

// AddObjectMsg registers an admin or a system address.
type AddObjectMsg struct {
	Metadata *idm.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Address  idm.Address   `protobuf:"bytes,2,opt,name=address,proto3,casttype=github.com/iov-one/idm.Address" json:"address,omitempty"`
	Role     Role          `protobuf:"varint,3,opt,name=role,proto3,enum=object.Role" json:"role,omitempty"`
	Name     string        `protobuf:"bytes,4,opt,name=name,proto3" json:"name,omitempty"`
	IdType   string        `protobuf:"bytes,5,opt,name=id_type,json=idType,proto3" json:"id_type,omitempty"`
	IdValue  string        `protobuf:"bytes,6,opt,name=id_value,json=idValue,proto3" json:"id_value,omitempty"`
}

func (m *AddObjectMsg) Reset()         { *m = AddObjectMsg{} }
func (m *AddObjectMsg) String() string { return proto.CompactTextString(m) }
func (*AddObjectMsg) ProtoMessage()    {}

func (m *AddObjectMsg) GetMetadata() *idm.Metadata {
	if m != nil {
		return m.Metadata
	}
	return nil
}

// AddUserWalletMsg registers the signer as an inactive user.
type AddUserWalletMsg struct {
	Metadata *idm.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Name     string        `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	IdType   string        `protobuf:"bytes,3,opt,name=id_type,json=idType,proto3" json:"id_type,omitempty"`
	IdValue  string        `protobuf:"bytes,4,opt,name=id_value,json=idValue,proto3" json:"id_value,omitempty"`
}

func (m *AddUserWalletMsg) Reset()         { *m = AddUserWalletMsg{} }
func (m *AddUserWalletMsg) String() string { return proto.CompactTextString(m) }
func (*AddUserWalletMsg) ProtoMessage()    {}

func (m *AddUserWalletMsg) GetMetadata() *idm.Metadata {
	if m != nil {
		return m.Metadata
	}
	return nil
}

// ActivateObjectMsg activates a user, an admin or a system object.
type ActivateObjectMsg struct {
	Metadata *idm.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Address  idm.Address   `protobuf:"bytes,2,opt,name=address,proto3,casttype=github.com/iov-one/idm.Address" json:"address,omitempty"`
}

func (m *ActivateObjectMsg) Reset()         { *m = ActivateObjectMsg{} }
func (m *ActivateObjectMsg) String() string { return proto.CompactTextString(m) }
func (*ActivateObjectMsg) ProtoMessage()    {}

func (m *ActivateObjectMsg) GetMetadata() *idm.Metadata {
	if m != nil {
		return m.Metadata
	}
	return nil
}

// DeactivateObjectMsg deactivates a user, an admin or a system object.
type DeactivateObjectMsg struct {
	Metadata *idm.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Address  idm.Address   `protobuf:"bytes,2,opt,name=address,proto3,casttype=github.com/iov-one/idm.Address" json:"address,omitempty"`
}

func (m *DeactivateObjectMsg) Reset()         { *m = DeactivateObjectMsg{} }
func (m *DeactivateObjectMsg) String() string { return proto.CompactTextString(m) }
func (*DeactivateObjectMsg) ProtoMessage()    {}

func (m *DeactivateObjectMsg) GetMetadata() *idm.Metadata {
	if m != nil {
		return m.Metadata
	}
	return nil
}

// UpdateObjectInfoMsg overwrites the profile of an object.
type UpdateObjectInfoMsg struct {
	Metadata *idm.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Address  idm.Address   `protobuf:"bytes,2,opt,name=address,proto3,casttype=github.com/iov-one/idm.Address" json:"address,omitempty"`
	Name     string        `protobuf:"bytes,3,opt,name=name,proto3" json:"name,omitempty"`
	IdType   string        `protobuf:"bytes,4,opt,name=id_type,json=idType,proto3" json:"id_type,omitempty"`
	IdValue  string        `protobuf:"bytes,5,opt,name=id_value,json=idValue,proto3" json:"id_value,omitempty"`
	KYC      bool          `protobuf:"varint,6,opt,name=kyc,proto3" json:"kyc,omitempty"`
}

func (m *UpdateObjectInfoMsg) Reset()         { *m = UpdateObjectInfoMsg{} }
func (m *UpdateObjectInfoMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateObjectInfoMsg) ProtoMessage()    {}

func (m *UpdateObjectInfoMsg) GetMetadata() *idm.Metadata {
	if m != nil {
		return m.Metadata
	}
	return nil
}

// UpdateConfigurationMsg patches the registry configuration. Only non zero
// fields of the patch are applied.
type UpdateConfigurationMsg struct {
	Metadata *idm.Metadata  `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Patch    *Configuration `protobuf:"bytes,2,opt,name=patch,proto3" json:"patch,omitempty"`
}

func (m *UpdateConfigurationMsg) Reset()         { *m = UpdateConfigurationMsg{} }
func (m *UpdateConfigurationMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateConfigurationMsg) ProtoMessage()    {}

func (m *UpdateConfigurationMsg) GetMetadata() *idm.Metadata {
	if m != nil {
		return m.Metadata
	}
	return nil
}
