package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRequireRole(t *testing.T) {
	require := require.New(t)
	user := Identity{UserID: 1, Role: RoleUser}
	err := user.Require(RoleAdmin)
	require.Error(err)
	require.True(IsUnauthorized(err))

	var missing ErrMissingRole
	require.True(errors.As(err, &missing))
	require.Equal(RoleAdmin, missing.Need)

	admin := Identity{UserID: 2, Role: RoleAdmin}
	require.NoError(admin.Require(RoleAdmin))
}

func TestParseRole(t *testing.T) {
	require := require.New(t)
	r, err := ParseRole("admin")
	require.NoError(err)
	require.Equal(RoleAdmin, r)

	_, err = ParseRole("moderator")
	require.True(IsInvalidInput(err))
}

func TestStatsSnapshotJSON(t *testing.T) {
	require := require.New(t)
	snap := StatsSnapshot{
		LocalCounts:    LocalCounts{RegisteredUsers: 10, BannedUsers: 2},
		TrackerMetrics: UnknownTrackerMetrics(),
	}
	b, err := json.Marshal(snap)
	require.NoError(err)

	var flat map[string]interface{}
	require.NoError(json.Unmarshal(b, &flat))
	require.Equal(float64(10), flat["registeredUsers"])
	require.Equal(float64(2), flat["bannedUsers"])
	require.Equal("?", flat["peers"])
	require.Equal("?", flat["activeTorrents"])
	require.True(snap.Degraded())

	snap.TrackerMetrics = TrackerMetrics{
		Peers:          Known(120),
		Seeds:          Known(45),
		Leechers:       Known(-3),
		ActiveTorrents: Known(900),
	}
	b, err = json.Marshal(snap)
	require.NoError(err)

	var back StatsSnapshot
	require.NoError(json.Unmarshal(b, &back))
	require.Equal(snap, back)
	require.False(back.Degraded())
}

func TestReadEnvConfig(t *testing.T) {
	require := require.New(t)
	t.Setenv(ConfigPathEnv, "")
	t.Setenv("SQ_DATABASE_URL", "postgres://sq:sq@localhost/sq")
	t.Setenv("SQ_JWT_SECRET", "0123456789abcdef0123")
	t.Setenv("SQ_TRACKER_URL", "http://tracker:6969")
	t.Setenv("SQ_TRACKER_TIMEOUT", "1500ms")
	t.Setenv("SQ_CORS_ORIGINS", "https://a.example, https://b.example")

	config, err := ReadEnvConfig()
	require.NoError(err)
	require.Equal("postgres://sq:sq@localhost/sq", config.DatabaseURL)
	require.Equal("23495", config.Port)
	require.Equal("/stats", config.TrackerStatsPath)
	require.Equal(1500*time.Millisecond, config.TrackerTimeout)
	require.Equal(10*time.Second, config.RequestTimeout)
	require.Equal([]string{"https://a.example", "https://b.example"}, config.CORSOrigins)
}

func TestReadEnvConfigRejectsSlowTracker(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	t.Setenv("SQ_DATABASE_URL", "postgres://sq:sq@localhost/sq")
	t.Setenv("SQ_JWT_SECRET", "0123456789abcdef0123")
	t.Setenv("SQ_TRACKER_URL", "http://tracker:6969")
	t.Setenv("SQ_TRACKER_TIMEOUT", "30s")

	_, err := ReadEnvConfig()
	require.Error(t, err)
}
