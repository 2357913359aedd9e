package idm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/idm/errors"
)

// Metadata is embedded in every persisted model and message. Schema is the
// version of the layout used to serialize the entity.
type Metadata struct {
	Schema uint32 `protobuf:"varint,1,opt,name=schema,proto3" json:"schema,omitempty"`
}

func (m *Metadata) Reset()         { *m = Metadata{} }
func (m *Metadata) String() string { return proto.CompactTextString(m) }
func (*Metadata) ProtoMessage()    {}

// Validate returns an error if the metadata does not declare a schema.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrEmpty, "missing metadata")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrSchema, "schema version must be at least 1")
	}
	return nil
}

// Copy returns a copy of this object. This method is helpful when
// cloning a model to make a copy of the header.
func (m *Metadata) Copy() *Metadata {
	cpy := *m
	return &cpy
}
