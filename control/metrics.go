// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Lock and pool telemetry on a private Prometheus registry.

package control

import (
	"sort"
	"strings"
	"time"

	"github.com/momentics/hioload-conc/api"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const metricsNamespace = "hioload_conc"

var (
	_ api.LockObserver = (*MetricsRegistry)(nil)
	_ api.PoolObserver = (*MetricsRegistry)(nil)
)

// MetricsRegistry collects lock waits and timeouts per container, and pool
// refills per pool.
type MetricsRegistry struct {
	reg          *prometheus.Registry
	lockWait     *prometheus.HistogramVec
	lockTimeouts *prometheus.CounterVec
	poolFills    *prometheus.CounterVec
	poolCreated  *prometheus.CounterVec
	poolGets     *prometheus.CounterVec
}

// NewMetricsRegistry creates a registry with all collectors registered.
func NewMetricsRegistry() *MetricsRegistry {
	mr := &MetricsRegistry{
		reg: prometheus.NewRegistry(),
		lockWait: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "lock_wait_seconds",
			Help:      "Time spent in Acquire, successful or not.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 12),
		}, []string{"container", "strategy"}),
		lockTimeouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "lock_timeouts_total",
			Help:      "Acquire calls that gave up before taking the lock.",
		}, []string{"container", "strategy"}),
		poolFills: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "pool_fills_total",
			Help:      "Refills of an empty object pool.",
		}, []string{"pool"}),
		poolCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "pool_objects_created_total",
			Help:      "Objects constructed by pool refills.",
		}, []string{"pool"}),
		poolGets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "pool_gets_total",
			Help:      "Objects handed out by a pool.",
		}, []string{"pool"}),
	}
	mr.reg.MustRegister(mr.lockWait, mr.lockTimeouts, mr.poolFills, mr.poolCreated, mr.poolGets)
	return mr
}

// Registry exposes the underlying registry, e.g. for promhttp.
func (mr *MetricsRegistry) Registry() *prometheus.Registry {
	return mr.reg
}

// ObserveAcquire implements api.LockObserver.
func (mr *MetricsRegistry) ObserveAcquire(container, strategy string, waited time.Duration, acquired bool) {
	mr.lockWait.WithLabelValues(container, strategy).Observe(waited.Seconds())
	if !acquired {
		mr.lockTimeouts.WithLabelValues(container, strategy).Inc()
	}
}

// ObserveFill implements api.PoolObserver.
func (mr *MetricsRegistry) ObserveFill(pool string, created int) {
	mr.poolFills.WithLabelValues(pool).Inc()
	mr.poolCreated.WithLabelValues(pool).Add(float64(created))
}

// ObserveGet implements api.PoolObserver.
func (mr *MetricsRegistry) ObserveGet(pool string) {
	mr.poolGets.WithLabelValues(pool).Inc()
}

// Snapshot flattens the current values into name{label="v",...} keys.
// Histograms contribute _count and _sum entries.
func (mr *MetricsRegistry) Snapshot() map[string]float64 {
	families, err := mr.reg.Gather()
	out := make(map[string]float64)
	if err != nil {
		return out
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := labelSuffix(m.GetLabel())
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				out[mf.GetName()+labels] = m.GetCounter().GetValue()
			case dto.MetricType_GAUGE:
				out[mf.GetName()+labels] = m.GetGauge().GetValue()
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				out[mf.GetName()+"_count"+labels] = float64(h.GetSampleCount())
				out[mf.GetName()+"_sum"+labels] = h.GetSampleSum()
			}
		}
	}
	return out
}

func labelSuffix(pairs []*dto.LabelPair) string {
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(pairs))
	for _, lp := range pairs {
		parts = append(parts, lp.GetName()+`="`+lp.GetValue()+`"`)
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ",") + "}"
}
