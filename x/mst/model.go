package mst

import (
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/migration"
	"github.com/iov-one/idm/orm"
	"github.com/iov-one/idm/x/object"
)

func init() {
	migration.MustRegister(1, &MultiSigTransaction{}, migration.NoModification)
}

const packageName = "mst"

var _ orm.Model = (*MultiSigTransaction)(nil)

// Validate ensures the transaction is consistent. The signature counter
// always equals the number of signers.
func (m *MultiSigTransaction) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "TxCode", m.TxCode.Validate())
	errs = errors.AppendField(errs, "Role", m.Role.Validate())
	errs = errors.AppendField(errs, "Target", m.Target.Validate())
	if m.TxCode == TxCode_Transfer {
		errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	} else if len(m.Destination) != 0 {
		errs = errors.AppendField(errs, "Destination", errors.Wrap(errors.ErrInvalidModel, "only a transfer has a destination"))
	}
	errs = errors.AppendField(errs, "Submitter", m.Submitter.Validate())
	if int(m.SignatureCount) != len(m.Signers) {
		errs = errors.AppendField(errs, "SignatureCount",
			errors.Wrapf(errors.ErrInvalidModel, "%d signatures, %d signers", m.SignatureCount, len(m.Signers)))
	}
	seen := make(map[string]struct{}, len(m.Signers))
	for i, s := range m.Signers {
		if err := s.Validate(); err != nil {
			errs = errors.AppendField(errs, "Signers", errors.Wrapf(err, "signer %d", i))
			continue
		}
		if _, ok := seen[string(s)]; ok {
			errs = errors.AppendField(errs, "Signers", errors.Wrapf(errors.ErrInvalidModel, "duplicated signer %s", s))
		}
		seen[string(s)] = struct{}{}
	}
	return errs
}

// Copy returns a deep copy of this transaction.
func (m *MultiSigTransaction) Copy() *MultiSigTransaction {
	cpy := *m
	if m.Metadata != nil {
		cpy.Metadata = m.Metadata.Copy()
	}
	cpy.Signers = append([]idm.Address(nil), m.Signers...)
	return &cpy
}

// HasSigned returns true if the given address signed this transaction.
func (m *MultiSigTransaction) HasSigned(addr idm.Address) bool {
	for _, s := range m.Signers {
		if s.Equals(addr) {
			return true
		}
	}
	return false
}

// Validate returns an error if this is not one of the known codes.
func (c TxCode) Validate() error {
	switch c {
	case TxCode_Add, TxCode_Activate, TxCode_Deactivate, TxCode_Transfer:
		return nil
	default:
		return errors.Wrapf(ErrInvalidTxCode, "%d", c)
	}
}

// TransactionBucket stores multi signature transactions under ids allocated
// from a sequence. The first id is 1.
type TransactionBucket struct {
	*migration.ModelBucket
	seq orm.Sequence
}

// NewTransactionBucket returns a bucket for managing multi signature
// transactions.
func NewTransactionBucket() *TransactionBucket {
	seq := orm.NewSequence("mst", "id")
	b := orm.NewModelBucket("mst", &MultiSigTransaction{},
		orm.WithIDSequence(seq),
		orm.WithIndex("target", targetIndexer, false))
	return &TransactionBucket{
		ModelBucket: migration.NewModelBucket(packageName, b),
		seq:         seq,
	}
}

func targetIndexer(m orm.Model) ([]byte, error) {
	tx, ok := m.(*MultiSigTransaction)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return tx.Target, nil
}

// Create stores a new transaction and returns its id.
func (b *TransactionBucket) Create(db idm.KVStore, tx *MultiSigTransaction) (uint64, error) {
	key, err := b.Put(db, nil, tx)
	if err != nil {
		return 0, err
	}
	return orm.DecodeSequence(key)
}

// Load returns the transaction with the given id.
func (b *TransactionBucket) Load(db idm.ReadOnlyKVStore, id uint64) (*MultiSigTransaction, error) {
	var tx MultiSigTransaction
	switch err := b.One(db, orm.EncodeSequence(id), &tx); {
	case err == nil:
		return &tx, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrMSTNotFound, "id %d", id)
	default:
		return nil, err
	}
}

// Save overwrites the transaction with the given id.
func (b *TransactionBucket) Save(db idm.KVStore, id uint64, tx *MultiSigTransaction) error {
	_, err := b.Put(db, orm.EncodeSequence(id), tx)
	return err
}

// Counter returns the highest allocated id, or zero if no transaction was
// submitted yet.
func (b *TransactionBucket) Counter(db idm.ReadOnlyKVStore) (uint64, error) {
	return b.seq.CurrentVal(db)
}

// ByTarget returns all transactions targeting the given address.
func (b *TransactionBucket) ByTarget(db idm.ReadOnlyKVStore, target idm.Address) ([]*MultiSigTransaction, error) {
	var txs []*MultiSigTransaction
	if _, err := b.ByIndex(db, "target", target, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// requiresMST returns nil if a transaction with the given code can target
// the given role. Only owner mutations are multi signature operations.
func requiresMST(code TxCode, role object.Role) error {
	if err := code.Validate(); err != nil {
		return err
	}
	switch role {
	case object.Role_Owner:
		return nil
	case object.Role_User, object.Role_Admin, object.Role_System:
		return errors.Wrapf(ErrNoMSTNeededForRole, "%s of %s", code, role.Name())
	default:
		return errors.Wrapf(object.ErrInvalidRole, "%d", role)
	}
}
