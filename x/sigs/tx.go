package sigs

import (
	"github.com/iov-one/idm/errors"
)

// SignedTx represents a transaction that contains signatures,
// which can be verified by the auth.Decorator
type SignedTx interface {
	// GetSignBytes returns the canonical byte representation of the Msg.
	// Helpful to store original, unparsed bytes here, just in case.
	GetSignBytes() ([]byte, error)

	// Signatures returns the signature of signers who signed the Msg.
	GetSignatures() []*StdSignature
}

// signatureLength is the length of a recoverable secp256k1 signature.
const signatureLength = 65

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if seq := s.GetSequence(); seq < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if len(s.Signature) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	if len(s.Signature) != signatureLength {
		return errors.Wrapf(errors.ErrInvalidSignature, "want %d bytes, got %d", signatureLength, len(s.Signature))
	}
	return nil
}
