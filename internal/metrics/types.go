package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	RosterFetches         prometheus.Counter
	RosterFetchFailures   prometheus.Counter
	FetchDuration         prometheus.Histogram
	Favourites            prometheus.Gauge
	FavouriteSaveFailures prometheus.Counter
	SlackNotifSent        prometheus.Counter
	SlackNotifFailed      prometheus.Counter
	StartupTimeSeconds    prometheus.Gauge
}
