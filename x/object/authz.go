package object

import (
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/gconf"
	"github.com/iov-one/idm/migration"
	"github.com/iov-one/idm/x"
)

// RequireAdmin returns the main signer of the transaction if it holds the
// admin privilege. Active admins and active owners hold it.
func (r *Registry) RequireAdmin(ctx idm.Context, db idm.ReadOnlyKVStore, auth x.Authenticator) (idm.Address, error) {
	signer, err := x.RequireSigner(ctx, auth)
	if err != nil {
		return nil, err
	}
	ok, err := r.IsAdmin(db, signer)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Wrapf(ErrNotAuthorizedAsAdmin, "signer %s", signer)
	}
	return signer, nil
}

// RequireOwner returns the main signer of the transaction if it is an
// active owner.
func (r *Registry) RequireOwner(ctx idm.Context, db idm.ReadOnlyKVStore, auth x.Authenticator) (idm.Address, error) {
	signer, err := x.RequireSigner(ctx, auth)
	if err != nil {
		return nil, err
	}
	ok, err := r.IsActiveOwner(db, signer)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Wrapf(ErrNotAuthorizedAsOwner, "signer %s", signer)
	}
	return signer, nil
}

// OwnerAuthorizer grants schema upgrades and configuration changes to
// active owners.
type OwnerAuthorizer struct {
	auth     x.Authenticator
	registry *Registry
}

var (
	_ migration.UpgradeAuthorizer = (*OwnerAuthorizer)(nil)
	_ gconf.Authorizer            = (*OwnerAuthorizer)(nil)
)

// NewOwnerAuthorizer returns an authorizer that requires the main signer to
// be an active owner.
func NewOwnerAuthorizer(auth x.Authenticator) *OwnerAuthorizer {
	return &OwnerAuthorizer{auth: auth, registry: NewRegistry()}
}

func (a *OwnerAuthorizer) AuthorizeUpgrade(ctx idm.Context, db idm.ReadOnlyKVStore) (idm.Address, error) {
	return a.registry.RequireOwner(ctx, db, a.auth)
}

func (a *OwnerAuthorizer) AuthorizeConfiguration(ctx idm.Context, db idm.ReadOnlyKVStore) (idm.Address, error) {
	return a.registry.RequireOwner(ctx, db, a.auth)
}
