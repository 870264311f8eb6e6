package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		RosterFetches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fantafav_roster_fetches_total",
			Help: "The total number of roster fetch attempts.",
		}),
		RosterFetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fantafav_roster_fetch_failures_total",
			Help: "The total number of roster fetches that failed.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fantafav_roster_fetch_duration_seconds",
			Help:    "The duration of roster fetches.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		Favourites: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fantafav_favourites",
			Help: "The number of favourite player ids currently held.",
		}),
		FavouriteSaveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fantafav_favourite_save_failures_total",
			Help: "The total number of favourite id saves that failed.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fantafav_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fantafav_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fantafav_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.RosterFetches,
		s.RosterFetchFailures,
		s.FetchDuration,
		s.Favourites,
		s.FavouriteSaveFailures,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncRosterFetches() {
	s.RosterFetches.Inc()
}

func (s *Service) IncRosterFetchFailures() {
	s.RosterFetchFailures.Inc()
}

func (s *Service) ObserveFetchDuration(seconds float64) {
	s.FetchDuration.Observe(seconds)
}

func (s *Service) SetFavourites(count int) {
	s.Favourites.Set(float64(count))
}

func (s *Service) IncFavouriteSaveFailures() {
	s.FavouriteSaveFailures.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
