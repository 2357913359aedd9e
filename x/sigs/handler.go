package sigs

import (
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/migration"
	"github.com/iov-one/idm/x"
)

// RegisterRoutes registers the sequence management handlers.
func RegisterRoutes(r idm.Registry, auth x.Authenticator) {
	r.Handle(pathBumpSequenceMsg, migration.SchemaMigratingHandler("sigs",
		&bumpSequenceHandler{
			b:    NewBucket(),
			auth: auth,
		}))
}

type bumpSequenceHandler struct {
	auth x.Authenticator
	b    Bucket
}

func (h *bumpSequenceHandler) Check(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &idm.CheckResult{}, nil
}

func (h *bumpSequenceHandler) Deliver(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.DeliverResult, error) {
	signer, user, msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	// Each transaction processing bumps the sequence by one. Increment
	// must represent the total increment value.
	incr := int64(msg.Increment) - 1
	if incr == 0 {
		// Zero increment requires no modification.
		return &idm.DeliverResult{}, nil
	}
	user.Sequence += incr
	if _, err := h.b.Put(db, signer, user); err != nil {
		return nil, errors.Wrap(err, "save user")
	}
	return &idm.DeliverResult{}, nil
}

func (h *bumpSequenceHandler) validate(ctx idm.Context, db idm.KVStore, tx idm.Tx) (idm.Address, *UserData, *BumpSequenceMsg, error) {
	var msg BumpSequenceMsg
	if err := idm.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := x.RequireSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, nil, err
	}

	var user UserData
	if err := h.b.One(db, signer, &user); err != nil {
		return nil, nil, nil, errors.Wrap(err, "no sequence")
	}
	if user.Sequence+int64(msg.Increment) > maxSequenceValue {
		return nil, nil, nil, errors.Wrap(errors.ErrOverflow, "user sequence")
	}
	return signer, &user, &msg, nil
}
