package pool

import (
	"github.com/VictoriaMetrics/metrics"
)

// Pool-level counters, exported through the default VictoriaMetrics
// registry (metrics.WritePrometheus).
var (
	metricPushes          = metrics.NewCounter("elastic_pool_pushes_total")
	metricWakeups         = metrics.NewCounter("elastic_pool_wakeups_total")
	metricClaims          = metrics.NewCounter("elastic_pool_claims_total")
	metricSleepTimeouts   = metrics.NewCounter("elastic_pool_sleep_timeouts_total")
	metricConnectionsLost = metrics.NewCounter("elastic_pool_connections_lost_total")
)
