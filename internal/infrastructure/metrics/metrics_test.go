package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.ObserveWallet("eth", "7d", false, time.Millisecond)
	r.ObserveWallet("eth", "7d", true, time.Millisecond)
	r.ObserveWallet("sol", "30d", false, time.Millisecond)
	r.ObserveBatch(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.walletsAnalyzed.WithLabelValues("eth", "7d")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.walletsFailed.WithLabelValues("eth", "7d")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.walletsFailed.WithLabelValues("sol", "30d")))

	count, err := testutil.GatherAndCount(reg, "wallet_tracker_wallets_analyzed_total")
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveWallet("eth", "7d", true, time.Second)
		r.ObserveBatch(1)
	})
}
