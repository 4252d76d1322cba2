package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wallet_tracker"

// Recorder collects analysis metrics. A nil *Recorder is valid and records nothing.
type Recorder struct {
	walletsAnalyzed *prometheus.CounterVec
	walletsFailed   *prometheus.CounterVec
	analysisLatency *prometheus.HistogramVec
	batchSize       prometheus.Histogram
}

// NewRecorder registers the collectors with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		walletsAnalyzed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallets_analyzed_total",
			Help:      "Wallet statistics records produced, by chain and reporting window.",
		}, []string{"chain", "window"}),
		walletsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallets_failed_total",
			Help:      "Wallet statistics records that carry an error.",
		}, []string{"chain", "window"}),
		analysisLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "wallet_analysis_duration_seconds",
			Help:      "Time spent producing a single wallet record.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"chain"}),
		batchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_batch_size",
			Help:      "Number of wallet requests per analysis batch.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 6),
		}),
	}
}

// ObserveWallet records one produced record.
func (r *Recorder) ObserveWallet(chain, window string, failed bool, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.walletsAnalyzed.WithLabelValues(chain, window).Inc()
	if failed {
		r.walletsFailed.WithLabelValues(chain, window).Inc()
	}
	r.analysisLatency.WithLabelValues(chain).Observe(elapsed.Seconds())
}

// ObserveBatch records the size of a batch.
func (r *Recorder) ObserveBatch(size int) {
	if r == nil {
		return
	}
	r.batchSize.Observe(float64(size))
}
