package gconf

import (
	"reflect"

	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
)

// Authorizer decides if the signers of the current transaction are allowed
// to change the configuration. The returned address is the acting signer.
type Authorizer interface {
	AuthorizeConfiguration(ctx idm.Context, db idm.ReadOnlyKVStore) (idm.Address, error)
}

// UpdateConfigurationHandler applies a configuration patch message.
type UpdateConfigurationHandler struct {
	pkg string
	// We require this type to load the data.
	config Configuration
	authz  Authorizer
}

var _ idm.Handler = (*UpdateConfigurationHandler)(nil)

// NewUpdateConfigurationHandler returns a message handler that process
// configuration patch message.
//
// The message must be a pointer to a structure with a "Patch" field of the
// same type as the configuration. Only non zero fields of the patch are
// applied. The configuration must already exist, usually created from the
// genesis.
func NewUpdateConfigurationHandler(pkg string, config Configuration, authz Authorizer) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:    pkg,
		config: config,
		authz:  authz,
	}
}

func (h UpdateConfigurationHandler) Check(ctx idm.Context, store idm.KVStore, tx idm.Tx) (*idm.CheckResult, error) {
	if _, err := h.applyTx(ctx, store, tx); err != nil {
		return nil, err
	}
	return &idm.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx idm.Context, store idm.KVStore, tx idm.Tx) (*idm.DeliverResult, error) {
	actor, err := h.applyTx(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res := &idm.DeliverResult{}
	res.Emit(idm.Event{Name: "configurationUpdated", Actor: actor, Subject: h.pkg})
	return res, nil
}

func (h UpdateConfigurationHandler) applyTx(ctx idm.Context, store idm.KVStore, tx idm.Tx) (idm.Address, error) {
	payload, err := patchPayload(tx)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get message payload")
	}
	actor, err := h.authz.AuthorizeConfiguration(ctx, store)
	if err != nil {
		return nil, err
	}

	// A fresh instance is used for every call, so that a failed
	// transaction does not leave its state behind.
	config := reflect.New(reflect.TypeOf(h.config).Elem()).Interface().(Configuration)
	if err := Load(store, h.pkg, config); err != nil {
		return nil, errors.Wrap(err, "load current configuration")
	}
	if err := patch(config, payload); err != nil {
		return nil, errors.Wrap(err, "cannot patch config with message payload")
	}
	if err := Save(store, h.pkg, config); err != nil {
		return nil, errors.Wrap(err, "cannot save updated config")
	}
	return actor, nil
}

func patch(config Configuration, payload Configuration) error {
	pType := reflect.TypeOf(payload)
	cType := reflect.TypeOf(config)
	if pType != cType {
		return errors.Wrapf(errors.ErrInvalidMsg, "config in message %s doesn't match store %s", pType, cType)
	}
	cval := reflect.ValueOf(config).Elem()
	pval := reflect.ValueOf(payload).Elem()
	for i := 0; i < cval.NumField(); i++ {
		if !cval.Field(i).CanSet() {
			continue
		}
		got := pval.Field(i)
		// Zero values do not update the original configuration.
		if isZero(got) {
			continue
		}
		cval.Field(i).Set(got)
	}
	return nil
}

// isZero returns true if given value represents a zero value of a given type.
func isZero(val reflect.Value) bool {
	zero := reflect.Zero(val.Type()).Interface()
	return reflect.DeepEqual(val.Interface(), zero)
}

// patchPayload expects the transaction to have a message with "Patch" field
// of the same type as the configuration. Content of this field is extracted
// and returned.
func patchPayload(tx idm.Tx) (Configuration, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	pval := reflect.ValueOf(msg)
	if pval.Kind() != reflect.Ptr || pval.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInput, "invalid message container value: %T", msg)
	}
	field := pval.Elem().FieldByName("Patch")
	if !field.IsValid() || field.Kind() != reflect.Ptr {
		return nil, errors.Wrap(errors.ErrInput, `"Patch" field is missing`)
	}
	if field.IsNil() {
		return nil, errors.Wrap(errors.ErrState, `"Patch" field is required`)
	}
	payload, ok := field.Interface().(Configuration)
	if !ok {
		return nil, errors.Wrap(errors.ErrInput, `"Patch" field is of a wrong type`)
	}
	return payload, nil
}
