package migration

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
)

// MyModel is a schema versioned model used only in tests.
type MyModel struct {
	Metadata *idm.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Cnt      int64         `protobuf:"varint,2,opt,name=cnt,proto3" json:"cnt,omitempty"`
}

func (m *MyModel) Reset()         { *m = MyModel{} }
func (m *MyModel) String() string { return proto.CompactTextString(m) }
func (*MyModel) ProtoMessage()    {}

func (m *MyModel) GetMetadata() *idm.Metadata {
	return m.Metadata
}

func (m *MyModel) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return err
	}
	if m.Cnt < 0 {
		return errors.Wrap(errors.ErrInvalidModel, "negative cnt")
	}
	return nil
}

var _ Migratable = (*MyModel)(nil)

// MyMsg is a schema versioned message used only in tests.
type MyMsg struct {
	Metadata *idm.Metadata
	Content  string
	Err      error
}

func (m *MyMsg) GetMetadata() *idm.Metadata {
	return m.Metadata
}

func (m *MyMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return err
	}
	return m.Err
}

func (m *MyMsg) Path() string {
	return "test/mymsg"
}

var _ Migratable = (*MyMsg)(nil)
var _ idm.Msg = (*MyMsg)(nil)

// staticAuthorizer authorizes or rejects every upgrade.
type staticAuthorizer struct {
	actor idm.Address
	err   error
}

func (a staticAuthorizer) AuthorizeUpgrade(idm.Context, idm.ReadOnlyKVStore) (idm.Address, error) {
	return a.actor, a.err
}
