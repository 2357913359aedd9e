package sigs

import (
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
)

// NextNonce returns the next numeric nonce value that should be used during a
// transaction signing.
// Any address can contain a nonce. In practice you always want to acquire a
// nonce for the signer. You can get the signers address by calling
//   address := idm.Address(crypto.PubkeyToAddress(key.PublicKey).Bytes())
func NextNonce(db idm.ReadOnlyKVStore, signer idm.Address) (int64, error) {
	user, err := NewBucket().GetOrCreate(db, signer)
	if err != nil {
		return 0, errors.Wrap(err, "bucket get")
	}
	return user.Sequence, nil
}
