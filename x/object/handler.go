package object

import (
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/gconf"
	"github.com/iov-one/idm/migration"
	"github.com/iov-one/idm/x"
)

// RegisterRoutes registers handlers for registry message processing.
func RegisterRoutes(r idm.Registry, auth x.Authenticator) {
	registry := NewRegistry()
	r.Handle(pathInitializeSystemMsg, migration.SchemaMigratingHandler(packageName,
		&initializeSystemHandler{auth: auth, registry: registry}))
	r.Handle(pathAddObjectMsg, migration.SchemaMigratingHandler(packageName,
		&addObjectHandler{auth: auth, registry: registry}))
	r.Handle(pathAddUserWalletMsg, migration.SchemaMigratingHandler(packageName,
		&addUserWalletHandler{auth: auth, registry: registry}))
	r.Handle(pathActivateObjectMsg, migration.SchemaMigratingHandler(packageName,
		&activationHandler{auth: auth, registry: registry, active: true}))
	r.Handle(pathDeactivateObjectMsg, migration.SchemaMigratingHandler(packageName,
		&activationHandler{auth: auth, registry: registry, active: false}))
	r.Handle(pathUpdateObjectInfoMsg, migration.SchemaMigratingHandler(packageName,
		&updateObjectInfoHandler{auth: auth, registry: registry}))
	r.Handle(pathUpdateConfigurationMsg, migration.SchemaMigratingHandler(packageName,
		gconf.NewUpdateConfigurationHandler(packageName, &Configuration{}, NewOwnerAuthorizer(auth))))
}

type initializeSystemHandler struct {
	auth     x.Authenticator
	registry *Registry
}

func (h *initializeSystemHandler) Check(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &idm.CheckResult{}, nil
}

func (h *initializeSystemHandler) Deliver(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.registry.Initialize(db, msg.Owners); err != nil {
		return nil, err
	}
	quorum, err := h.registry.Quorum(db)
	if err != nil {
		return nil, err
	}
	idm.GetLogger(ctx).Info("system initialized", "owners", len(msg.Owners), "quorum", quorum)

	res := &idm.DeliverResult{}
	for _, owner := range msg.Owners {
		res.Emit(idm.NewAddressEvent(EventOwnerAdded, signer, owner))
	}
	return res, nil
}

func (h *initializeSystemHandler) validate(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*InitializeSystemMsg, idm.Address, error) {
	var msg InitializeSystemMsg
	if err := idm.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := x.RequireSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	switch _, err := h.registry.System(db); {
	case err == nil:
		return nil, nil, ErrAlreadyInitialized
	case !ErrNotInitialized.Is(err):
		return nil, nil, err
	}
	conf, err := h.registry.Configuration(db)
	if err != nil {
		return nil, nil, err
	}
	if uint32(len(msg.Owners)) < conf.MinInitialOwners {
		return nil, nil, errors.Wrapf(ErrInsufficientOwners, "got %d, at least %d required", len(msg.Owners), conf.MinInitialOwners)
	}
	return &msg, signer, nil
}

type addObjectHandler struct {
	auth     x.Authenticator
	registry *Registry
}

func (h *addObjectHandler) Check(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &idm.CheckResult{}, nil
}

func (h *addObjectHandler) Deliver(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	obj := &IdentityObject{
		Metadata: &idm.Metadata{Schema: 1},
		Address:  msg.Address,
		Role:     msg.Role,
		Name:     msg.Name,
		IdType:   msg.IdType,
		IdValue:  msg.IdValue,
	}
	if err := h.registry.Add(db, obj); err != nil {
		return nil, err
	}
	res := &idm.DeliverResult{Data: obj.Address}
	res.Emit(AddedEvent(signer, obj))
	return res, nil
}

func (h *addObjectHandler) validate(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*AddObjectMsg, idm.Address, error) {
	var msg AddObjectMsg
	if err := idm.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := h.registry.RequireAdmin(ctx, db, h.auth)
	if err != nil {
		return nil, nil, err
	}
	if msg.Role != Role_Admin && msg.Role != Role_System {
		return nil, nil, errors.Wrapf(ErrInvalidRoleForDirectAdd, "role %s", msg.Role.Name())
	}
	if err := h.registry.checkProfile(db, msg.Name, msg.IdType, msg.IdValue); err != nil {
		return nil, nil, err
	}
	switch exists, err := h.registry.Exists(db, msg.Address); {
	case err != nil:
		return nil, nil, err
	case exists:
		return nil, nil, errors.Wrapf(ErrObjectAlreadyExists, "address %s", msg.Address)
	}
	return &msg, signer, nil
}

type addUserWalletHandler struct {
	auth     x.Authenticator
	registry *Registry
}

func (h *addUserWalletHandler) Check(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &idm.CheckResult{}, nil
}

func (h *addUserWalletHandler) Deliver(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	obj := &IdentityObject{
		Metadata: &idm.Metadata{Schema: 1},
		Address:  signer,
		Name:     msg.Name,
		IdType:   msg.IdType,
		IdValue:  msg.IdValue,
	}
	if err := h.registry.AddUser(db, obj); err != nil {
		return nil, err
	}
	res := &idm.DeliverResult{Data: obj.Address}
	res.Emit(AddedEvent(signer, obj))
	return res, nil
}

func (h *addUserWalletHandler) validate(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*AddUserWalletMsg, idm.Address, error) {
	var msg AddUserWalletMsg
	if err := idm.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := x.RequireSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	if err := h.registry.checkProfile(db, msg.Name, msg.IdType, msg.IdValue); err != nil {
		return nil, nil, err
	}
	switch exists, err := h.registry.Exists(db, signer); {
	case err != nil:
		return nil, nil, err
	case exists:
		return nil, nil, errors.Wrapf(ErrObjectAlreadyExists, "address %s", signer)
	}
	return &msg, signer, nil
}

// activationHandler handles both activation and deactivation messages.
type activationHandler struct {
	auth     x.Authenticator
	registry *Registry
	active   bool
}

func (h *activationHandler) Check(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &idm.CheckResult{}, nil
}

func (h *activationHandler) Deliver(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.DeliverResult, error) {
	addr, signer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	obj, err := h.registry.SetActive(db, addr, h.active)
	if err != nil {
		return nil, err
	}
	res := &idm.DeliverResult{}
	res.Emit(ActivationEvent(signer, obj))
	return res, nil
}

func (h *activationHandler) validate(ctx idm.Context, db idm.KVStore, tx idm.Tx) (idm.Address, idm.Address, error) {
	var addr idm.Address
	if h.active {
		var msg ActivateObjectMsg
		if err := idm.LoadMsg(tx, &msg); err != nil {
			return nil, nil, errors.Wrap(err, "load msg")
		}
		addr = msg.Address
	} else {
		var msg DeactivateObjectMsg
		if err := idm.LoadMsg(tx, &msg); err != nil {
			return nil, nil, errors.Wrap(err, "load msg")
		}
		addr = msg.Address
	}
	signer, err := h.registry.RequireAdmin(ctx, db, h.auth)
	if err != nil {
		return nil, nil, err
	}
	obj, err := h.registry.Object(db, addr)
	if err != nil {
		return nil, nil, err
	}
	if obj.Role == Role_Owner {
		return nil, nil, errors.Wrapf(ErrMustUseMST, "address %s is an owner", addr)
	}
	switch {
	case h.active && obj.Active:
		return nil, nil, errors.Wrapf(ErrAlreadyActive, "address %s", addr)
	case !h.active && !obj.Active:
		return nil, nil, errors.Wrapf(ErrAlreadyInactive, "address %s", addr)
	}
	return addr, signer, nil
}

type updateObjectInfoHandler struct {
	auth     x.Authenticator
	registry *Registry
}

func (h *updateObjectInfoHandler) Check(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &idm.CheckResult{}, nil
}

func (h *updateObjectInfoHandler) Deliver(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*idm.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	obj, err := h.registry.Update(db, msg.Address, msg.Name, msg.IdType, msg.IdValue, msg.KYC)
	if err != nil {
		return nil, err
	}
	res := &idm.DeliverResult{}
	res.Emit(UpdatedEvent(signer, obj))
	return res, nil
}

func (h *updateObjectInfoHandler) validate(ctx idm.Context, db idm.KVStore, tx idm.Tx) (*UpdateObjectInfoMsg, idm.Address, error) {
	var msg UpdateObjectInfoMsg
	if err := idm.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := h.registry.RequireAdmin(ctx, db, h.auth)
	if err != nil {
		return nil, nil, err
	}
	if _, err := h.registry.Object(db, msg.Address); err != nil {
		return nil, nil, err
	}
	if err := h.registry.checkProfile(db, msg.Name, msg.IdType, msg.IdValue); err != nil {
		return nil, nil, err
	}
	return &msg, signer, nil
}

// checkProfile ensures the profile fields fit into the configured limit.
func (r *Registry) checkProfile(db idm.ReadOnlyKVStore, name, idType, idValue string) error {
	conf, err := r.Configuration(db)
	if err != nil {
		return err
	}
	max := int(conf.MaxProfileLength)
	var errs error
	if len(name) > max {
		errs = errors.AppendField(errs, "Name", errors.Wrapf(errors.ErrInput, "longer than %d", max))
	}
	if len(idType) > max {
		errs = errors.AppendField(errs, "IdType", errors.Wrapf(errors.ErrInput, "longer than %d", max))
	}
	if len(idValue) > max {
		errs = errors.AppendField(errs, "IdValue", errors.Wrapf(errors.ErrInput, "longer than %d", max))
	}
	return errs
}
