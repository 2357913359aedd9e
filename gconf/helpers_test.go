package gconf

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
)

type myconfig struct {
	Num  int64  `protobuf:"varint,1,opt,name=num,proto3" json:"num,omitempty"`
	Str  string `protobuf:"bytes,2,opt,name=str,proto3" json:"str,omitempty"`
	Addr []byte `protobuf:"bytes,3,opt,name=addr,proto3" json:"addr,omitempty"`
}

func (m *myconfig) Reset()         { *m = myconfig{} }
func (m *myconfig) String() string { return proto.CompactTextString(m) }
func (*myconfig) ProtoMessage()    {}

func (m *myconfig) Validate() error {
	if m.Num < 0 {
		return errors.Wrap(errors.ErrInvalidModel, "negative num")
	}
	return nil
}

type myconfigMsg struct {
	Patch *myconfig
	Err   error
}

func (m *myconfigMsg) Path() string    { return "gconf/test" }
func (m *myconfigMsg) Validate() error { return m.Err }

type staticAuthz struct {
	addr idm.Address
	err  error
}

func (a staticAuthz) AuthorizeConfiguration(idm.Context, idm.ReadOnlyKVStore) (idm.Address, error) {
	return a.addr, a.err
}
