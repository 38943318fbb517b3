package domain

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gitlab.com/ranfdev/sqadmin/internal/domain/domaintest"
	"gitlab.com/ranfdev/sqadmin/internal/models"
	"gitlab.com/ranfdev/sqadmin/internal/tracker"
)

func newStatsService(scraper TrackerScraper) (*StatsService, *domaintest.Store) {
	store := domaintest.NewStore()
	store.Counts = models.LocalCounts{
		RegisteredUsers:    10,
		BannedUsers:        2,
		UploadedTorrents:   5,
		CompletedDownloads: 7,
		TotalInvitesSent:   4,
		InvitesAccepted:    3,
		TotalRequests:      6,
		FilledRequests:     1,
		TotalComments:      12,
	}
	return NewStatsService(store, scraper, zerolog.Nop()), store
}

func trackerServer(t *testing.T, handler http.HandlerFunc) *tracker.Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	config := tracker.DefaultConfig(srv.URL)
	config.Timeout = 200 * time.Millisecond
	return tracker.NewClient(config)
}

func TestComputeStatsFull(t *testing.T) {
	client := trackerServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("120\n45\nopentracker serving 900 torrents"))
	})
	s, store := newStatsService(client)
	require := require.New(t)

	snapshot, err := s.ComputeStats(context.Background(), admin)
	require.NoError(err)
	require.Equal(store.Counts, snapshot.LocalCounts)
	require.Equal(models.TrackerMetrics{
		Peers:          models.Known(120),
		Seeds:          models.Known(45),
		Leechers:       models.Known(75),
		ActiveTorrents: models.Known(900),
	}, snapshot.TrackerMetrics)
	require.False(snapshot.Degraded())
}

func TestComputeStatsDegraded(t *testing.T) {
	unreachable := httptest.NewServer(http.NotFoundHandler())
	unreachableURL := unreachable.URL
	unreachable.Close()

	cases := map[string]TrackerScraper{
		"unreachable": tracker.NewClient(tracker.DefaultConfig(unreachableURL)),
		"non-2xx": trackerServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusInternalServerError)
		}),
		"bad third line": trackerServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("120\n45\nopentracker is fine"))
		}),
		"slow": trackerServer(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(2 * time.Second):
			case <-r.Context().Done():
			}
		}),
	}
	for name, scraper := range cases {
		t.Run(name, func(t *testing.T) {
			s, store := newStatsService(scraper)
			snapshot, err := s.ComputeStats(context.Background(), admin)
			require.NoError(t, err)
			require.Equal(t, store.Counts, snapshot.LocalCounts)
			require.Equal(t, models.UnknownTrackerMetrics(), snapshot.TrackerMetrics)
			require.True(t, snapshot.Degraded())
		})
	}
}

func TestComputeStatsCountFailure(t *testing.T) {
	scraper := &domaintest.Scraper{Stats: models.TrackerStats{Peers: 1, Seeds: 1, ActiveTorrents: 1}}
	s, store := newStatsService(scraper)
	store.CountErrs["comments"] = errors.New("connection reset")

	snapshot, err := s.ComputeStats(context.Background(), admin)
	require.Error(t, err)
	require.Contains(t, err.Error(), "comments")
	require.Nil(t, snapshot)
}

func TestComputeStatsAdminOnly(t *testing.T) {
	scraper := &domaintest.Scraper{}
	s, _ := newStatsService(scraper)

	_, err := s.ComputeStats(context.Background(), member)
	require.ErrorIs(t, err, models.ErrUnauthorized)
	require.Zero(t, scraper.Calls)
}

func TestComputeStatsNegativeLeechers(t *testing.T) {
	scraper := &domaintest.Scraper{Stats: models.TrackerStats{Peers: 3, Seeds: 5, ActiveTorrents: 1}}
	s, _ := newStatsService(scraper)

	snapshot, err := s.ComputeStats(context.Background(), admin)
	require.NoError(t, err)
	require.Equal(t, models.Known(-2), snapshot.Leechers)
}

func TestComputeStatsDegradedJSON(t *testing.T) {
	store := domaintest.NewStore()
	store.Counts = models.LocalCounts{RegisteredUsers: 10, BannedUsers: 2, UploadedTorrents: 5}
	s := NewStatsService(store, &domaintest.Scraper{Err: errors.New("dial tcp: refused")}, zerolog.Nop())

	snapshot, err := s.ComputeStats(context.Background(), admin)
	require.NoError(t, err)
	body, err := json.Marshal(snapshot)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.EqualValues(t, 10, decoded["registeredUsers"])
	require.EqualValues(t, 2, decoded["bannedUsers"])
	require.EqualValues(t, 5, decoded["uploadedTorrents"])
	for _, key := range []string{"peers", "seeds", "leechers", "activeTorrents"} {
		require.Equal(t, "?", decoded[key], key)
	}
}
