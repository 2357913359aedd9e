package mst

import (
	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
	"github.com/iov-one/idm/orm"
)

// RegisterQuery registers the transaction bucket for querying.
//
//   /msts          transaction by 8 byte big endian id
//   /msts/target   transactions by target address
//   /mstcounter    the highest allocated id, 8 byte big endian
func RegisterQuery(qr idm.QueryRouter) {
	b := NewTransactionBucket()
	b.Register("msts", qr)
	qr.Register("/mstcounter", counterQuery{txs: b})
}

type counterQuery struct {
	txs *TransactionBucket
}

func (q counterQuery) Query(db idm.ReadOnlyKVStore, mod string, data []byte) ([]idm.Model, error) {
	if mod != idm.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
	n, err := q.txs.Counter(db)
	if err != nil {
		return nil, err
	}
	return []idm.Model{idm.Pair([]byte(packageName), orm.EncodeSequence(n))}, nil
}
