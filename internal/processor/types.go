package processor

import (
	"time"

	"github.com/mauv0809/nextpick/internal/metrics"
	"github.com/mauv0809/nextpick/internal/pubsub"
)

// Processor turns club transitions into round events and reacts to them.
type Processor struct {
	store    Store
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics
	tally    metrics.MetricsStore
	now      func() time.Time
}
