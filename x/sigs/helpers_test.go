package sigs

import (
	"crypto/ecdsa"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/idmtest"
)

// StdTx is a signed transaction carrying a raw payload.
type StdTx struct {
	idmtest.Tx
	Payload    []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ idm.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	return &StdTx{
		Tx:      idmtest.Tx{Msg: &idmtest.Msg{RoutePath: "sigs/test"}},
		Payload: payload,
	}
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *StdTx) GetSignBytes() ([]byte, error) {
	return tx.Payload, nil
}

func newKey(t testing.TB) *ecdsa.PrivateKey {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("cannot generate key: %s", err)
	}
	return key
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []idm.Address
}

var _ idm.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx idm.Context, store idm.KVStore, tx idm.Tx) (*idm.CheckResult, error) {
	s.Signers = Authenticate{}.GetSigners(ctx)
	return &idm.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx idm.Context, store idm.KVStore, tx idm.Tx) (*idm.DeliverResult, error) {
	s.Signers = Authenticate{}.GetSigners(ctx)
	return &idm.DeliverResult{}, nil
}
