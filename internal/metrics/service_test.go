package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RecordsAndExposes(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := NewService(reg)

	svc.IncRosterFetches()
	svc.IncRosterFetches()
	svc.IncRosterFetchFailures()
	svc.SetFavourites(3)
	svc.ObserveFetchDuration(0.2)

	assert.Equal(t, 2.0, testutil.ToFloat64(svc.RosterFetches))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.RosterFetchFailures))
	assert.Equal(t, 3.0, testutil.ToFloat64(svc.Favourites))

	rec := httptest.NewRecorder()
	NewMetricsHandler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "fantafav_roster_fetches_total 2")
	assert.Contains(t, string(body), "fantafav_roster_fetch_duration_seconds_count 1")
}
