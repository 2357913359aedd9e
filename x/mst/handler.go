package mst

import (
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/migration"
	"github.com/iov-one/idm/orm"
	"github.com/iov-one/idm/x"
	"github.com/iov-one/idm/x/object"
)

// RegisterRoutes registers handlers for multi signature transaction
// processing. Every operation requires the signer to be an active owner.
func RegisterRoutes(r idm.Registry, auth x.Authenticator) {
	registry := object.NewRegistry()
	engine := NewEngine(registry)
	r.Handle(pathSubmitMsg, migration.SchemaMigratingHandler(packageName,
		&submitHandler{auth: auth, registry: registry, engine: engine}))
	r.Handle(pathSignMsg, migration.SchemaMigratingHandler(packageName,
		&signHandler{auth: auth, registry: registry, engine: engine}))
	r.Handle(pathRevokeMsg, migration.SchemaMigratingHandler(packageName,
		&revokeHandler{auth: auth, engine: engine}))
	r.Handle(pathExecuteMsg, migration.SchemaMigratingHandler(packageName,
		&executeHandler{auth: auth, registry: registry, engine: engine}))
}

type submitHandler struct {
	auth     x.Authenticator
	registry *object.Registry
	engine   *Engine
}

func (h *submitHandler) Check(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &idm.CheckResult{}, nil
}

func (h *submitHandler) Deliver(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	id, err := h.engine.Submit(db, signer, msg.TxCode, msg.Role, msg.Target, msg.Destination)
	if err != nil {
		return nil, err
	}
	idm.GetLogger(ctx).Debug("multi signature transaction submitted", "id", id, "code", msg.TxCode.String())

	res := &idm.DeliverResult{Data: orm.EncodeSequence(id)}
	res.Emit(idm.NewIDEvent(EventMSTSubmitted, signer, id))
	return res, nil
}

func (h *submitHandler) validate(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*SubmitMsg, idm.Address, error) {
	var msg SubmitMsg
	if err := idm.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := h.registry.RequireOwner(ctx, db, h.auth)
	if err != nil {
		return nil, nil, err
	}
	if err := h.engine.CheckSubmit(db, msg.TxCode, msg.Role, msg.Target, msg.Destination); err != nil {
		return nil, nil, err
	}
	return &msg, signer, nil
}

type signHandler struct {
	auth     x.Authenticator
	registry *object.Registry
	engine   *Engine
}

func (h *signHandler) Check(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &idm.CheckResult{}, nil
}

func (h *signHandler) Deliver(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.engine.Sign(db, signer, msg.MstID); err != nil {
		return nil, err
	}
	res := &idm.DeliverResult{}
	res.Emit(idm.NewIDEvent(EventMSTSigned, signer, msg.MstID))
	return res, nil
}

func (h *signHandler) validate(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*SignMsg, idm.Address, error) {
	var msg SignMsg
	if err := idm.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := h.registry.RequireOwner(ctx, db, h.auth)
	if err != nil {
		return nil, nil, err
	}
	if _, err := h.engine.CheckSign(db, signer, msg.MstID); err != nil {
		return nil, nil, err
	}
	return &msg, signer, nil
}

// revokeHandler lets any signer of a pending transaction withdraw its
// signature, including an owner deactivated after signing.
type revokeHandler struct {
	auth   x.Authenticator
	engine *Engine
}

func (h *revokeHandler) Check(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &idm.CheckResult{}, nil
}

func (h *revokeHandler) Deliver(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.engine.Revoke(db, signer, msg.MstID); err != nil {
		return nil, err
	}
	res := &idm.DeliverResult{}
	res.Emit(idm.NewIDEvent(EventSignatureRevoked, signer, msg.MstID))
	return res, nil
}

func (h *revokeHandler) validate(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*RevokeMsg, idm.Address, error) {
	var msg RevokeMsg
	if err := idm.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := x.RequireSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	if _, err := h.engine.CheckRevoke(db, signer, msg.MstID); err != nil {
		return nil, nil, err
	}
	return &msg, signer, nil
}

type executeHandler struct {
	auth     x.Authenticator
	registry *object.Registry
	engine   *Engine
}

func (h *executeHandler) Check(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &idm.CheckResult{}, nil
}

func (h *executeHandler) Deliver(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	mst, events, err := h.engine.Execute(db, signer, msg.MstID)
	if err != nil {
		return nil, err
	}
	idm.GetLogger(ctx).Info("multi signature transaction executed",
		"id", msg.MstID, "code", mst.TxCode.String(), "target", mst.Target.String())

	res := &idm.DeliverResult{}
	res.Emit(events...)
	res.Emit(idm.NewIDEvent(EventMSTExecuted, signer, msg.MstID))
	return res, nil
}

func (h *executeHandler) validate(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*ExecuteMsg, idm.Address, error) {
	var msg ExecuteMsg
	if err := idm.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := h.registry.RequireOwner(ctx, db, h.auth)
	if err != nil {
		return nil, nil, err
	}
	if _, err := h.engine.CheckExecute(db, msg.MstID); err != nil {
		return nil, nil, err
	}
	return &msg, signer, nil
}
