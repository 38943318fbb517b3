package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCollectorsRegistered(t *testing.T) {
	require := require.New(t)
	before := testutil.ToFloat64(TrackerScrapes.WithLabelValues(OutcomeRejected))
	TrackerScrapes.WithLabelValues(OutcomeRejected).Inc()
	require.Equal(before+1, testutil.ToFloat64(TrackerScrapes.WithLabelValues(OutcomeRejected)))

	CircuitBreakerState.WithLabelValues("test").Set(2)
	require.Equal(float64(2), testutil.ToFloat64(CircuitBreakerState.WithLabelValues("test")))

	StatsSnapshots.WithLabelValues(ShapeFull).Inc()
	require.GreaterOrEqual(testutil.CollectAndCount(StatsSnapshots), 1)
}
