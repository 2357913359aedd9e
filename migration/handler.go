package migration

import (
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
)

// SchemaMigratingHandler returns a handler that will ensure incoming
// messages are in the current schema version format. If a message in older
// schema is handled then it is first being migrated. Messages that cannot be
// migrated to current schema version are returning migration error. This
// functionality is executed before the decorated handler and it is completely
// transparent to the wrapped handler.
func SchemaMigratingHandler(packageName string, h idm.Handler) idm.Handler {
	return &schemaMigratingHandler{
		handler:     h,
		packageName: packageName,
		schema:      NewSchemaBucket(),
		migrations:  reg,
	}
}

type schemaMigratingHandler struct {
	handler     idm.Handler
	packageName string
	schema      *SchemaBucket
	migrations  *register
}

func (h *schemaMigratingHandler) Check(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.CheckResult, error) {
	if err := h.migrate(db, tx); err != nil {
		return nil, errors.Wrap(err, "migration")
	}
	return h.handler.Check(ctx, db, tx)
}

func (h *schemaMigratingHandler) Deliver(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.DeliverResult, error) {
	if err := h.migrate(db, tx); err != nil {
		return nil, errors.Wrap(err, "migration")
	}
	return h.handler.Deliver(ctx, db, tx)
}

func (h *schemaMigratingHandler) migrate(db idm.ReadOnlyKVStore, tx idm.Tx) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "get msg")
	}
	m, ok := msg.(Migratable)
	if !ok {
		return errors.Wrapf(errors.ErrInvalidMsg, "message %T cannot be migrated", msg)
	}
	currSchemaVer, err := h.schema.CurrentSchema(db, h.packageName)
	if err != nil {
		return errors.Wrap(err, "current message schema")
	}
	if meta := m.GetMetadata(); meta != nil && meta.Schema > currSchemaVer {
		return errors.Wrapf(errors.ErrSchema, "message schema higher than %d", currSchemaVer)
	}

	// Migration is applied in place, directly modifying the instance.
	if err := h.migrations.Apply(db, m, currSchemaVer); err != nil {
		return errors.Wrap(err, "schema migration")
	}
	return nil
}

// UpgradeAuthorizer decides if the signers of the current transaction are
// allowed to upgrade schema versions.
type UpgradeAuthorizer interface {
	AuthorizeUpgrade(ctx idm.Context, db idm.ReadOnlyKVStore) (idm.Address, error)
}

// RegisterRoutes registers handlers for migration message processing.
func RegisterRoutes(r idm.Registry, authz UpgradeAuthorizer) {
	r.Handle(pathUpgradeSchemaMsg, &upgradeSchemaHandler{
		bucket: NewSchemaBucket(),
		authz:  authz,
	})
}

type upgradeSchemaHandler struct {
	bucket *SchemaBucket
	authz  UpgradeAuthorizer
}

func (h *upgradeSchemaHandler) Check(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &idm.CheckResult{}, nil
}

func (h *upgradeSchemaHandler) Deliver(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.DeliverResult, error) {
	msg, actor, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	ver, err := h.bucket.Upgrade(db, msg.Pkg)
	if err != nil {
		return nil, err
	}
	idm.GetLogger(ctx).Info("schema upgraded", "pkg", msg.Pkg, "version", ver)

	res := &idm.DeliverResult{Data: schemaID(msg.Pkg, ver)}
	res.Emit(idm.Event{Name: "schemaUpgraded", Actor: actor, Subject: msg.Pkg})
	return res, nil
}

func (h *upgradeSchemaHandler) validate(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*UpgradeSchemaMsg, idm.Address, error) {
	var msg UpgradeSchemaMsg
	if err := idm.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	actor, err := h.authz.AuthorizeUpgrade(ctx, db)
	if err != nil {
		return nil, nil, err
	}
	current, err := h.bucket.CurrentSchema(db, msg.Pkg)
	if err != nil {
		return nil, nil, errors.Wrap(err, "current schema version")
	}
	if msg.ToVersion != current+1 {
		return nil, nil, errors.Wrapf(errors.ErrState, "current version is %d, cannot upgrade to %d", current, msg.ToVersion)
	}
	return &msg, actor, nil
}
