package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all beeps metrics
const namespace = "beeps"

// Registry is the Prometheus registry served on /metrics
var Registry = prometheus.NewRegistry()

// AppInfo exposes version information as labels (value is always 1)
var AppInfo = promauto.With(Registry).NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "app_info",
		Help:      "Application version information (always set to 1, version info in labels)",
	},
	[]string{"version", "commit", "build_date"},
)

// BeepsAppended counts accepted beeps since process start
var BeepsAppended = promauto.With(Registry).NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appended_total",
		Help:      "Total number of beeps appended to the log",
	},
)

// BeepsStored is the current length of the in-memory log
var BeepsStored = promauto.With(Registry).NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "stored",
		Help:      "Number of beeps currently held in memory",
	},
)

// AuthRejections counts create requests refused for a bad bearer credential.
// reason: missing|malformed|mismatch
var AuthRejections = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of create requests rejected by the bearer check",
	},
	[]string{"reason"},
)

var initOnce sync.Once

// Init registers runtime collectors and records version info. Safe to call more than once.
func Init(version, commit, buildDate string) {
	initOnce.Do(func() {
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
	AppInfo.WithLabelValues(version, commit, buildDate).Set(1)
}

// LogObserver feeds log growth into BeepsAppended and BeepsStored.
type LogObserver struct{}

func (LogObserver) BeepAppended(total int) {
	BeepsAppended.Inc()
	BeepsStored.Set(float64(total))
}
