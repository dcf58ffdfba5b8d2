package http

import (
	"net/http"

	"github.com/mauv0809/nextpick/internal/club"
	"github.com/mauv0809/nextpick/internal/config"
	"github.com/mauv0809/nextpick/internal/metrics"
	"github.com/mauv0809/nextpick/internal/notifier"
	"github.com/mauv0809/nextpick/internal/processor"
	"github.com/mauv0809/nextpick/internal/pubsub"
)

type Server struct {
	Store          club.ClubStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Tally          metrics.MetricsStore
	Cfg            config.Config
	ClubCfg        config.ClubConfig
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
	handler        http.Handler
}
