package sigs

import (
	"crypto/ecdsa"
	"encoding/binary"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
	"golang.org/x/crypto/sha3"
)

// SignCodeV1 is the current way to prefix the bytes we use to build
// a signature
var SignCodeV1 = []byte{0, 0x1D, 0x3A, 0}

//----------------- Controller ------------------
//
// Place actual business logic here.
// Anything that may be called from another extension can be public
// to encourage composition. Anything unsafe to be called from
// arbitrary extensions should be private.

// VerifyTxSignatures checks all the signatures on the tx.
//
// returns list of signer addresses (possibly empty),
// or error if any signature is invalid
func VerifyTxSignatures(store idm.KVStore, tx SignedTx, chainID string) ([]idm.Address, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()

	signers := make([]idm.Address, 0, len(sigs))
	for _, sig := range sigs {
		signer, err := VerifySignature(store, sig, bz, chainID)
		if err != nil {
			return nil, err
		}
		signers = append(signers, signer)
	}
	return signers, nil
}

// VerifySignature checks one signature against signbytes,
// check chain and updates state in the store. The address of the signer
// is recovered from the signature.
func VerifySignature(db idm.KVStore, sig *StdSignature, signBytes []byte, chainID string) (idm.Address, error) {
	// we guarantee sequence makes sense and the signature is there
	if err := sig.Validate(); err != nil {
		return nil, err
	}

	toSign, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	pub, err := crypto.SigToPub(toSign, sig.Signature)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidSignature, err.Error())
	}
	signer := idm.Address(crypto.PubkeyToAddress(*pub).Bytes())

	bucket := NewBucket()
	user, err := bucket.GetOrCreate(db, signer)
	if err != nil {
		return nil, err
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if _, err := bucket.Put(db, signer, user); err != nil {
		return nil, err
	}
	return signer, nil
}

/*
BuildSignBytes combines all info on the actual tx before signing

We use the following format:

version | len(chainID) | chainID      | nonce             | signBytes
4bytes  | uint8        | ascii string | int64 (bigendian) | serialized transaction

This is then hashed with keccak256, so that the result can be signed by
any Ethereum compatible wallet.
*/
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !idm.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}

	// encode nonce as 8 byte, big-endian
	nonce := make([]byte, 8)
	binary.BigEndian.PutUint64(nonce, uint64(seq))

	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(SignCodeV1)
	_, _ = h.Write([]byte{uint8(len(chainID))})
	_, _ = h.Write([]byte(chainID))
	_, _ = h.Write(nonce)
	_, _ = h.Write(signBytes)
	return h.Sum(nil), nil
}

// BuildSignBytesTx calculates the sign bytes given a tx
func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(signBytes, chainID, seq)
}

// SignTx creates a signature for the given tx
func SignTx(key *ecdsa.PrivateKey, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	signBytes, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := crypto.Sign(signBytes, key)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidSignature, err.Error())
	}
	return &StdSignature{
		Sequence:  seq,
		Signature: sig,
	}, nil
}

// KeyAddress returns the address controlled by the given key.
func KeyAddress(key *ecdsa.PrivateKey) idm.Address {
	return idm.Address(crypto.PubkeyToAddress(key.PublicKey).Bytes())
}
