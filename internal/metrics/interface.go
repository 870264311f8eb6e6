package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncRosterFetches()
	IncRosterFetchFailures()
	ObserveFetchDuration(seconds float64)
	SetFavourites(count int)
	IncFavouriteSaveFailures()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
