package mst

import (
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/x/object"
)

// Engine collects owner signatures for privileged registry operations and
// applies an operation once its quorum is reached. Signing and executing are
// separate steps, so that any owner can execute at a time of their choosing
// and signers can withdraw their support before that.
//
// Engine does not authenticate. Callers must ensure that the actor is an
// active owner.
type Engine struct {
	txs      *TransactionBucket
	registry *object.Registry
}

// NewEngine returns an engine operating on the given registry.
func NewEngine(registry *object.Registry) *Engine {
	return &Engine{
		txs:      NewTransactionBucket(),
		registry: registry,
	}
}

// Transaction returns the transaction with the given id.
func (e *Engine) Transaction(db idm.ReadOnlyKVStore, id uint64) (*MultiSigTransaction, error) {
	return e.txs.Load(db, id)
}

// Counter returns the id of the most recently submitted transaction.
func (e *Engine) Counter(db idm.ReadOnlyKVStore) (uint64, error) {
	return e.txs.Counter(db)
}

// CheckSubmit returns an error if a transaction with the given content could
// never be executed in the current registry state.
func (e *Engine) CheckSubmit(db idm.ReadOnlyKVStore, code TxCode, role object.Role, target, destination idm.Address) error {
	if err := requiresMST(code, role); err != nil {
		return err
	}
	switch code {
	case TxCode_Add:
		return e.mustNotExist(db, target)
	case TxCode_Activate, TxCode_Deactivate:
		return e.mustBeOwner(db, target)
	case TxCode_Transfer:
		if err := e.mustBeOwner(db, target); err != nil {
			return err
		}
		if target.Equals(destination) {
			return errors.Wrap(errors.ErrInput, "cannot transfer to the same address")
		}
		return e.mustNotExist(db, destination)
	}
	return errors.Wrapf(ErrInvalidTxCode, "%d", code)
}

func (e *Engine) mustNotExist(db idm.ReadOnlyKVStore, addr idm.Address) error {
	switch exists, err := e.registry.Exists(db, addr); {
	case err != nil:
		return err
	case exists:
		return errors.Wrapf(object.ErrObjectAlreadyExists, "address %s", addr)
	}
	return nil
}

func (e *Engine) mustBeOwner(db idm.ReadOnlyKVStore, addr idm.Address) error {
	obj, err := e.registry.Object(db, addr)
	if err != nil {
		return err
	}
	if obj.Role != object.Role_Owner {
		return errors.Wrapf(ErrNoMSTNeededForRole, "address %s is %s", addr, obj.Role.Name())
	}
	return nil
}

// Submit stores a new pending transaction and returns its id. The submitter
// does not sign it implicitly.
func (e *Engine) Submit(db idm.KVStore, actor idm.Address, code TxCode, role object.Role, target, destination idm.Address) (uint64, error) {
	if err := e.CheckSubmit(db, code, role, target, destination); err != nil {
		return 0, err
	}
	tx := &MultiSigTransaction{
		Metadata:  &idm.Metadata{Schema: 1},
		TxCode:    code,
		Role:      role,
		Target:    target,
		Submitter: actor,
	}
	if code == TxCode_Transfer {
		tx.Destination = destination
	}
	id, err := e.txs.Create(db, tx)
	if err != nil {
		return 0, errors.Wrap(err, "save transaction")
	}
	return id, nil
}

// CheckSign returns the transaction if the actor can sign it.
func (e *Engine) CheckSign(db idm.ReadOnlyKVStore, actor idm.Address, id uint64) (*MultiSigTransaction, error) {
	tx, err := e.pending(db, id)
	if err != nil {
		return nil, err
	}
	if tx.HasSigned(actor) {
		return nil, errors.Wrapf(ErrAlreadySigned, "address %s, id %d", actor, id)
	}
	return tx, nil
}

// Sign adds the signature of the actor to a pending transaction. Reaching
// the quorum does not execute the transaction.
func (e *Engine) Sign(db idm.KVStore, actor idm.Address, id uint64) (*MultiSigTransaction, error) {
	tx, err := e.CheckSign(db, actor, id)
	if err != nil {
		return nil, err
	}
	tx.Signers = append(tx.Signers, actor)
	tx.SignatureCount++
	if err := e.txs.Save(db, id, tx); err != nil {
		return nil, errors.Wrap(err, "save transaction")
	}
	return tx, nil
}

// CheckRevoke returns the transaction if the actor can revoke its
// signature.
func (e *Engine) CheckRevoke(db idm.ReadOnlyKVStore, actor idm.Address, id uint64) (*MultiSigTransaction, error) {
	tx, err := e.pending(db, id)
	if err != nil {
		return nil, err
	}
	if !tx.HasSigned(actor) {
		return nil, errors.Wrapf(ErrNotSigned, "address %s, id %d", actor, id)
	}
	return tx, nil
}

// Revoke removes the signature of the actor from a pending transaction.
func (e *Engine) Revoke(db idm.KVStore, actor idm.Address, id uint64) (*MultiSigTransaction, error) {
	tx, err := e.CheckRevoke(db, actor, id)
	if err != nil {
		return nil, err
	}
	signers := make([]idm.Address, 0, len(tx.Signers)-1)
	for _, s := range tx.Signers {
		if !s.Equals(actor) {
			signers = append(signers, s)
		}
	}
	tx.Signers = signers
	tx.SignatureCount--
	if err := e.txs.Save(db, id, tx); err != nil {
		return nil, errors.Wrap(err, "save transaction")
	}
	return tx, nil
}

// CheckExecute returns the transaction if it collected enough signatures to
// be executed.
func (e *Engine) CheckExecute(db idm.ReadOnlyKVStore, id uint64) (*MultiSigTransaction, error) {
	tx, err := e.pending(db, id)
	if err != nil {
		return nil, err
	}
	quorum, err := e.registry.Quorum(db)
	if err != nil {
		return nil, err
	}
	if tx.SignatureCount < quorum {
		return nil, errors.Wrapf(ErrInsufficientSignatures, "got %d, %d required", tx.SignatureCount, quorum)
	}
	return tx, nil
}

// Execute applies a transaction that reached the quorum and marks it as
// executed. Registry events caused by the operation are returned, attributed
// to the actor.
func (e *Engine) Execute(db idm.KVStore, actor idm.Address, id uint64) (*MultiSigTransaction, []idm.Event, error) {
	tx, err := e.CheckExecute(db, id)
	if err != nil {
		return nil, nil, err
	}
	events, err := e.apply(db, actor, tx)
	if err != nil {
		return nil, nil, err
	}
	tx.Executed = true
	if err := e.txs.Save(db, id, tx); err != nil {
		return nil, nil, errors.Wrap(err, "save transaction")
	}
	return tx, events, nil
}

func (e *Engine) apply(db idm.KVStore, actor idm.Address, tx *MultiSigTransaction) ([]idm.Event, error) {
	switch tx.TxCode {
	case TxCode_Add:
		obj := &object.IdentityObject{
			Metadata: &idm.Metadata{Schema: 1},
			Address:  tx.Target,
		}
		if err := e.registry.AddOwner(db, obj); err != nil {
			return nil, err
		}
		return []idm.Event{object.AddedEvent(actor, obj)}, nil
	case TxCode_Activate, TxCode_Deactivate:
		obj, err := e.registry.SetOwnerActive(db, tx.Target, tx.TxCode == TxCode_Activate)
		if err != nil {
			return nil, err
		}
		return []idm.Event{object.ActivationEvent(actor, obj)}, nil
	case TxCode_Transfer:
		next, err := e.registry.TransferOwner(db, tx.Target, tx.Destination)
		if err != nil {
			return nil, err
		}
		prev, err := e.registry.Object(db, tx.Target)
		if err != nil {
			return nil, err
		}
		return []idm.Event{
			object.ActivationEvent(actor, prev),
			object.AddedEvent(actor, next),
		}, nil
	}
	return nil, errors.Wrapf(ErrInvalidTxCode, "%d", tx.TxCode)
}

// pending returns the transaction if it was not executed yet.
func (e *Engine) pending(db idm.ReadOnlyKVStore, id uint64) (*MultiSigTransaction, error) {
	tx, err := e.txs.Load(db, id)
	if err != nil {
		return nil, err
	}
	if tx.Executed {
		return nil, errors.Wrapf(ErrAlreadyExecuted, "id %d", id)
	}
	return tx, nil
}
