package models

import (
	"bytes"
	"fmt"
	"strconv"
)

// Unknown is what a tracker-derived field reports when the scrape failed.
const Unknown = "?"

// LocalCounts are the authoritative counts read from the database.
type LocalCounts struct {
	RegisteredUsers    int64 `json:"registeredUsers"`
	BannedUsers        int64 `json:"bannedUsers"`
	UploadedTorrents   int64 `json:"uploadedTorrents"`
	CompletedDownloads int64 `json:"completedDownloads"`
	TotalInvitesSent   int64 `json:"totalInvitesSent"`
	InvitesAccepted    int64 `json:"invitesAccepted"`
	TotalRequests      int64 `json:"totalRequests"`
	FilledRequests     int64 `json:"filledRequests"`
	TotalComments      int64 `json:"totalComments"`
}

// ScrapeValue holds either a number scraped from the tracker or Unknown.
type ScrapeValue struct {
	n     int64
	known bool
}

func Known(n int64) ScrapeValue { return ScrapeValue{n: n, known: true} }

func UnknownValue() ScrapeValue { return ScrapeValue{} }

func (v ScrapeValue) Value() (int64, bool) { return v.n, v.known }

func (v ScrapeValue) String() string {
	if !v.known {
		return Unknown
	}
	return strconv.FormatInt(v.n, 10)
}

func (v ScrapeValue) MarshalJSON() ([]byte, error) {
	if !v.known {
		return []byte(`"` + Unknown + `"`), nil
	}
	return strconv.AppendInt(nil, v.n, 10), nil
}

func (v *ScrapeValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte(`"`+Unknown+`"`)) || bytes.Equal(b, []byte("null")) {
		*v = UnknownValue()
		return nil
	}
	n, err := strconv.ParseInt(string(bytes.Trim(b, `"`)), 10, 64)
	if err != nil {
		return fmt.Errorf("scrape value %s: %w", b, err)
	}
	*v = Known(n)
	return nil
}

// TrackerStats is the summary a tracker stats endpoint reports.
type TrackerStats struct {
	Peers          int64
	Seeds          int64
	ActiveTorrents int64
}

// Leechers is peers minus seeds. It goes negative when the tracker's counters
// disagree; callers see that as is.
func (s TrackerStats) Leechers() int64 {
	return s.Peers - s.Seeds
}

// TrackerMetrics are the live values derived from a tracker scrape.
type TrackerMetrics struct {
	Peers          ScrapeValue `json:"peers"`
	Seeds          ScrapeValue `json:"seeds"`
	Leechers       ScrapeValue `json:"leechers"`
	ActiveTorrents ScrapeValue `json:"activeTorrents"`
}

func UnknownTrackerMetrics() TrackerMetrics {
	return TrackerMetrics{
		Peers:          UnknownValue(),
		Seeds:          UnknownValue(),
		Leechers:       UnknownValue(),
		ActiveTorrents: UnknownValue(),
	}
}

// Degraded reports whether the tracker half of a snapshot fell back to Unknown.
func (m TrackerMetrics) Degraded() bool {
	_, known := m.Peers.Value()
	return !known
}

// StatsSnapshot is computed per request and never stored.
type StatsSnapshot struct {
	LocalCounts
	TrackerMetrics
}
