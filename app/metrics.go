package app

import (
	"net/http"
	"strconv"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatusTag is the result tag counted by htlc_escrows_total.
const StatusTag = "status"

// Metrics counts processed transactions. A nil *Metrics records nothing.
type Metrics struct {
	registry     *prometheus.Registry
	names        map[htlc.InstructionTag]string
	transactions *prometheus.CounterVec
	escrows      *prometheus.CounterVec
}

// NewMetrics registers the counters in a new registry. names labels the
// instruction tags.
func NewMetrics(names map[htlc.InstructionTag]string) *Metrics {
	txs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "htlc_transactions_total",
		Help: "Delivered transactions by instruction and result code",
	}, []string{"instruction", "code"})

	escrows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "htlc_escrows_total",
		Help: "Escrow transitions by resulting status",
	}, []string{"status"})

	r := prometheus.NewRegistry()
	r.MustRegister(txs, escrows)

	return &Metrics{
		registry:     r,
		names:        names,
		transactions: txs,
		escrows:      escrows,
	}
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// observe records the outcome of a delivered transaction.
func (m *Metrics) observe(tx htlc.Tx, res *htlc.DeliverResult, err error) {
	if m == nil {
		return
	}
	code := strconv.FormatUint(uint64(errors.Code(err)), 10)
	m.transactions.WithLabelValues(m.instruction(tx), code).Inc()
	if err != nil || res == nil {
		return
	}
	for _, t := range res.Tags {
		if t.Key == StatusTag {
			m.escrows.WithLabelValues(string(t.Value)).Inc()
		}
	}
}

func (m *Metrics) instruction(tx htlc.Tx) string {
	itx, ok := tx.(htlc.InstructionTx)
	if !ok {
		return "none"
	}
	tag, ok := itx.GetInstruction().Tag()
	if !ok {
		return "empty"
	}
	if name, ok := m.names[tag]; ok {
		return name
	}
	return "tag_" + strconv.Itoa(int(tag))
}
