package sigs

import (
	"testing"

	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/migration"
	"github.com/iov-one/idm/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignBytes(t *testing.T) {
	bz := []byte("foobar")
	tx := NewStdTx(bz)

	chainID := "test-sign-bytes"
	c1, err := BuildSignBytesTx(tx, chainID, 17)
	require.NoError(t, err)
	c1a, err := BuildSignBytes(bz, chainID, 17)
	require.NoError(t, err)
	assert.Equal(t, c1, c1a)
	assert.Len(t, c1, 32)

	// make sure sign bytes change on tx, chain_id and seq
	ct, err := BuildSignBytes([]byte("blast"), chainID, 17)
	require.NoError(t, err)
	assert.NotEqual(t, c1, ct)
	c2, err := BuildSignBytes(bz, chainID+"2", 17)
	require.NoError(t, err)
	assert.NotEqual(t, c1, c2)
	c3, err := BuildSignBytes(bz, chainID, 18)
	require.NoError(t, err)
	assert.NotEqual(t, c1, c3)

	_, err = BuildSignBytes(bz, chainID, -1)
	assert.True(t, ErrInvalidSequence.Is(err))
	_, err = BuildSignBytes(bz, "x", 1)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestVerifySignature(t *testing.T) {
	kv := store.MemStore()
	migration.MustInitPkg(kv, "sigs")

	key := newKey(t)
	signer := KeyAddress(key)

	chainID := "emo-music-2345"
	tx := NewStdTx([]byte("my special valentine"))

	sig0, err := SignTx(key, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(key, tx, chainID, 1)
	require.NoError(t, err)
	sig2, err := SignTx(key, tx, chainID, 2)
	require.NoError(t, err)
	sig13, err := SignTx(key, tx, chainID, 13)
	require.NoError(t, err)

	bz, err := tx.GetSignBytes()
	require.NoError(t, err)

	// empty signature
	_, err = VerifySignature(kv, &StdSignature{}, bz, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// malformed signature
	_, err = VerifySignature(kv, &StdSignature{Signature: []byte{1, 2, 3}}, bz, chainID)
	assert.True(t, errors.ErrInvalidSignature.Is(err))

	// signing with a future sequence fails
	_, err = VerifySignature(kv, sig1, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))

	// the signer is recovered from the signature
	got, err := VerifySignature(kv, sig0, bz, chainID)
	require.NoError(t, err)
	assert.Equal(t, signer, got)

	// replay protection
	_, err = VerifySignature(kv, sig0, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))
	_, err = VerifySignature(kv, sig13, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))

	got, err = VerifySignature(kv, sig1, bz, chainID)
	require.NoError(t, err)
	assert.Equal(t, signer, got)

	// a signature for another chain recovers another address, which has no
	// history and therefore the sequence does not match
	_, err = VerifySignature(kv, sig2, bz, "other-chain")
	assert.True(t, ErrInvalidSequence.Is(err))

	seq, err := NextNonce(kv, signer)
	require.NoError(t, err)
	assert.Equal(t, int64(2), seq)

	// unknown addresses start with the zero nonce
	seq, err = NextNonce(kv, idm.Address(make([]byte, 20)))
	require.NoError(t, err)
	assert.Equal(t, int64(0), seq)
}

func TestVerifyTxSignatures(t *testing.T) {
	kv := store.MemStore()
	migration.MustInitPkg(kv, "sigs")

	k1, k2 := newKey(t), newKey(t)
	chainID := "sigs-many"

	tx := NewStdTx([]byte("multi"))
	s1, err := SignTx(k1, tx, chainID, 0)
	require.NoError(t, err)
	s2, err := SignTx(k2, tx, chainID, 0)
	require.NoError(t, err)

	tx.Signatures = []*StdSignature{s1, s2}
	signers, err := VerifyTxSignatures(kv, tx, chainID)
	require.NoError(t, err)
	assert.Equal(t, []idm.Address{KeyAddress(k1), KeyAddress(k2)}, signers)

	tx.Signatures = nil
	signers, err = VerifyTxSignatures(kv, tx, chainID)
	require.NoError(t, err)
	assert.Empty(t, signers)
}
