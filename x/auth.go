package x

import (
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding x/sigs for all extensions.
type Authenticator interface {
	// GetSigners reveals all addresses that authenticated the current
	// transaction.
	GetSigners(idm.Context) []idm.Address
	// HasAddress checks if any signer matches this address
	HasAddress(idm.Context, idm.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetSigners combines all signers from all Authenticators. Duplicates are
// removed, the order of the first occurrence is kept.
func (m MultiAuth) GetSigners(ctx idm.Context) []idm.Address {
	var res []idm.Address
	for _, impl := range m.impls {
	signersLoop:
		for _, s := range impl.GetSigners(ctx) {
			for _, have := range res {
				if have.Equals(s) {
					continue signersLoop
				}
			}
			res = append(res, s)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx idm.Context, addr idm.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first signer if any, otherwise nil
func MainSigner(ctx idm.Context, auth Authenticator) idm.Address {
	signers := auth.GetSigners(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// RequireSigner returns the main signer of the transaction. Unsigned
// transactions are rejected with ErrUnauthorized.
func RequireSigner(ctx idm.Context, auth Authenticator) (idm.Address, error) {
	signer := MainSigner(ctx, auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "transaction not signed")
	}
	return signer, nil
}

// HasAllAddresses returns true if all elements in required are
// also in context.
func HasAllAddresses(ctx idm.Context, auth Authenticator, required []idm.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// HasNAddresses returns true if at least n elements in requested are
// also in context.
func HasNAddresses(ctx idm.Context, auth Authenticator, required []idm.Address, n int) bool {
	if n <= 0 {
		return true
	}
	for _, r := range required {
		if auth.HasAddress(ctx, r) {
			n--
			if n == 0 {
				return true
			}
		}
	}
	return false
}
