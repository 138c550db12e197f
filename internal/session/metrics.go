package session

import (
	"github.com/prometheus/client_golang/prometheus"

	promreg "github.com/tgifai/sessiond/internal/pkg/prometheus"
)

const (
	metricsNamespace = "sessiond"
	storeLabel       = "store"
)

var (
	recordsGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "store_records",
		Help:      "Records physically held by a session store, expired or not.",
	}, []string{storeLabel})
	savesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "store_saves_total",
		Help:      "Session saves, including TTL refreshes.",
	}, []string{storeLabel})
	loadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "store_loads_total",
		Help:      "Session loads by result.",
	}, []string{storeLabel, "result"})
	deletesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "store_deletes_total",
		Help:      "Records removed by explicit delete.",
	}, []string{storeLabel})
	sweptTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "store_swept_total",
		Help:      "Expired records removed by cleanup.",
	}, []string{storeLabel})
	createdTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "manager_created_total",
		Help:      "Sessions created by GetOrCreate.",
	}, []string{storeLabel})
)

// storeMetrics holds the series of one named store. Stores sharing a name
// share series.
type storeMetrics struct {
	records     prometheus.Gauge
	saves       prometheus.Counter
	loadHit     prometheus.Counter
	loadMiss    prometheus.Counter
	loadExpired prometheus.Counter
	deletes     prometheus.Counter
	swept       prometheus.Counter
	created     prometheus.Counter
}

func newStoreMetrics(name string) storeMetrics {
	return storeMetrics{
		records:     recordsGauge.WithLabelValues(name),
		saves:       savesTotal.WithLabelValues(name),
		loadHit:     loadsTotal.WithLabelValues(name, loadHit),
		loadMiss:    loadsTotal.WithLabelValues(name, loadMiss),
		loadExpired: loadsTotal.WithLabelValues(name, loadExpired),
		deletes:     deletesTotal.WithLabelValues(name),
		swept:       sweptTotal.WithLabelValues(name),
		created:     createdTotal.WithLabelValues(name),
	}
}

const (
	loadHit     = "hit"
	loadMiss    = "miss"
	loadExpired = "expired"
)

func init() {
	promreg.GetRegistry().MustRegister(
		recordsGauge,
		savesTotal,
		loadsTotal,
		deletesTotal,
		sweptTotal,
		createdTotal,
	)
}
