package utils

import (
	"strconv"
	"time"

	"github.com/iov-one/idm"
	"github.com/iov-one/idm/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts processed transactions and measures
// their processing time. Metrics are labeled with the message path, the
// processing phase (check or deliver) and the ABCI result code.
type Metrics struct {
	txs      *prometheus.CounterVec
	duration *prometheus.HistogramVec
	events   *prometheus.CounterVec
}

var _ idm.Decorator = (*Metrics)(nil)

// NewMetrics creates a Metrics decorator and registers its collectors.
// Registration fails if the collectors were already registered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		txs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "idm",
			Name:      "tx_total",
			Help:      "Total number of processed transactions.",
		}, []string{"phase", "path", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "idm",
			Name:      "tx_duration_seconds",
			Help:      "Transaction processing time.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"phase", "path"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "idm",
			Name:      "events_total",
			Help:      "Total number of emitted domain events.",
		}, []string{"name"}),
	}
	for _, c := range []prometheus.Collector{m.txs, m.duration, m.events} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(errors.ErrHuman, err.Error())
		}
	}
	return m, nil
}

// Check records the check call.
func (m *Metrics) Check(ctx idm.Context, store idm.KVStore, tx idm.Tx, next idm.Checker) (*idm.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe("check", idm.GetPath(tx), start, err)
	return res, err
}

// Deliver records the deliver call and all events emitted by it.
func (m *Metrics) Deliver(ctx idm.Context, store idm.KVStore, tx idm.Tx, next idm.Deliverer) (*idm.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe("deliver", idm.GetPath(tx), start, err)
	if err == nil && res != nil {
		for _, e := range res.Events {
			m.events.WithLabelValues(e.Name).Inc()
		}
	}
	return res, err
}

func (m *Metrics) observe(phase, path string, start time.Time, err error) {
	code, _ := errors.ABCIInfo(err, false)
	m.txs.WithLabelValues(phase, path, strconv.FormatUint(uint64(code), 10)).Inc()
	m.duration.WithLabelValues(phase, path).Observe(time.Since(start).Seconds())
}
