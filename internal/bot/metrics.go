package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the bot.
type Metrics struct {
	MessagesProcessed    prometheus.Counter
	CommandsProcessed    *prometheus.CounterVec
	ClassificationsTotal *prometheus.CounterVec
	ClassifyDuration     prometheus.Histogram
	RecordsPersisted     *prometheus.CounterVec
	ErrorsTotal          *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		MessagesProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lifelog_messages_processed_total",
			Help: "Total number of processed free-text messages",
		}),

		CommandsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lifelog_commands_processed_total",
			Help: "Total number of processed commands",
		}, []string{"command"}),

		ClassificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lifelog_classifications_total",
			Help: "Messages classified, by resulting kind",
		}, []string{"kind"}),

		ClassifyDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "lifelog_classify_duration_seconds",
			Help:    "End-to-end duration of the classify-validate-persist flow",
			Buckets: prometheus.DefBuckets,
		}),

		RecordsPersisted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lifelog_records_persisted_total",
			Help: "Records written, by table",
		}, []string{"table"}),

		ErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lifelog_errors_total",
			Help: "Message handling failures, by error class",
		}, []string{"class"}),
	}
}
