package app

import (
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/commands"
	"github.com/iov-one/idm/x/mst"
	"github.com/iov-one/idm/x/object"
	"github.com/iov-one/idm/x/sigs"
)

// Keys are fixed so that the output is reproducible. They are not secure
// and only serve to check the encoding.
var (
	owner  = makePrivKey("1234567890")
	admin  = makePrivKey("F00BA411").PublicKey
	wallet = makePrivKey("00CAFE00F00D").PublicKey
)

// makePrivKey repeats the seed to get 64 hex digits and loads them as a
// secp256k1 private key.
func makePrivKey(seed string) *ecdsa.PrivateKey {
	rep := 64/len(seed) + 1
	key, err := crypto.HexToECDSA(strings.Repeat(seed, rep)[:64])
	if err != nil {
		panic(err)
	}
	return key
}

func pubAddress(pub ecdsa.PublicKey) idm.Address {
	return idm.Address(crypto.PubkeyToAddress(pub).Bytes())
}

// Examples generates some example structs to dump out with testgen
func Examples() []commands.Example {
	ownerAddr := sigs.KeyAddress(owner)
	adminAddr := pubAddress(admin)
	walletAddr := pubAddress(wallet)

	obj := &object.IdentityObject{
		Metadata: &idm.Metadata{Schema: 1},
		Address:  walletAddr,
		Role:     object.Role_User,
		Name:     "Alice",
		IdType:   "passport",
		IdValue:  "X1234567",
		Active:   true,
		KYC:      true,
	}

	addMsg := &object.AddObjectMsg{
		Metadata: &idm.Metadata{Schema: 1},
		Address:  adminAddr,
		Role:     object.Role_Admin,
		Name:     "Operations",
	}

	submitMsg := &mst.SubmitMsg{
		Metadata: &idm.Metadata{Schema: 1},
		TxCode:   mst.TxCode_Deactivate,
		Role:     object.Role_Owner,
		Target:   ownerAddr,
	}

	pending := &mst.MultiSigTransaction{
		Metadata:       &idm.Metadata{Schema: 1},
		TxCode:         mst.TxCode_Deactivate,
		Role:           object.Role_Owner,
		Target:         ownerAddr,
		Submitter:      ownerAddr,
		SignatureCount: 1,
		Signers:        []idm.Address{ownerAddr},
	}

	tx := &Tx{ObjectAddObjectMsg: addMsg}
	sig, err := sigs.SignTx(owner, tx, "test-chain", 0)
	if err != nil {
		panic(err)
	}
	tx.Signatures = []*sigs.StdSignature{sig}

	return []commands.Example{
		{Filename: "identity_object", Obj: obj},
		{Filename: "add_object_msg", Obj: addMsg},
		{Filename: "mst_submit_msg", Obj: submitMsg},
		{Filename: "mst_transaction", Obj: pending},
		{Filename: "signed_tx", Obj: tx},
	}
}
