package domain

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gitlab.com/ranfdev/sqadmin/internal/metrics"
	"gitlab.com/ranfdev/sqadmin/internal/models"
	"golang.org/x/sync/errgroup"
)

type StatsService struct {
	counts  CountOracle
	scraper TrackerScraper
	logger  zerolog.Logger
}

func NewStatsService(counts CountOracle, scraper TrackerScraper, logger zerolog.Logger) *StatsService {
	return &StatsService{
		counts:  counts,
		scraper: scraper,
		logger:  logger.With().Str("service", "stats").Logger(),
	}
}

type StatsAdminH struct {
	*StatsService
}

func (s *StatsService) Admin(caller models.Identity) (*StatsAdminH, error) {
	if err := requireRole(caller, models.RoleAdmin, "view tracker stats"); err != nil {
		return nil, err
	}
	return &StatsAdminH{s}, nil
}

func (s *StatsService) ComputeStats(ctx context.Context, caller models.Identity) (*models.StatsSnapshot, error) {
	h, err := s.Admin(caller)
	if err != nil {
		return nil, err
	}
	return h.Compute(ctx)
}

// Compute combines the database counts, which must all succeed, with the
// tracker metrics, which fall back to models.Unknown.
func (h *StatsAdminH) Compute(ctx context.Context) (*models.StatsSnapshot, error) {
	counts, err := h.localCounts(ctx)
	if err != nil {
		return nil, err
	}
	snapshot := &models.StatsSnapshot{
		LocalCounts:    counts,
		TrackerMetrics: h.trackerMetrics(ctx),
	}
	if snapshot.Degraded() {
		metrics.StatsSnapshots.WithLabelValues(metrics.ShapeDegraded).Inc()
	} else {
		metrics.StatsSnapshots.WithLabelValues(metrics.ShapeFull).Inc()
	}
	return snapshot, nil
}

func (h *StatsAdminH) localCounts(ctx context.Context) (models.LocalCounts, error) {
	var c models.LocalCounts
	queries := []struct {
		name  string
		dest  *int64
		count func(context.Context) (int64, error)
	}{
		{"registered users", &c.RegisteredUsers, h.counts.CountRegisteredUsers},
		{"banned users", &c.BannedUsers, h.counts.CountBannedUsers},
		{"uploaded torrents", &c.UploadedTorrents, h.counts.CountUploadedTorrents},
		{"completed downloads", &c.CompletedDownloads, h.counts.CountCompletedDownloads},
		{"invites sent", &c.TotalInvitesSent, h.counts.CountInvitesSent},
		{"invites accepted", &c.InvitesAccepted, h.counts.CountInvitesAccepted},
		{"requests", &c.TotalRequests, h.counts.CountRequests},
		{"filled requests", &c.FilledRequests, h.counts.CountFilledRequests},
		{"comments", &c.TotalComments, h.counts.CountComments},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, q := range queries {
		q := q
		g.Go(func() error {
			n, err := q.count(gctx)
			if err != nil {
				return fmt.Errorf("counting %s: %w", q.name, err)
			}
			*q.dest = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.LocalCounts{}, err
	}
	return c, nil
}

// trackerMetrics never fails: any scrape error is logged and replaced by
// Unknown values.
func (h *StatsAdminH) trackerMetrics(ctx context.Context) models.TrackerMetrics {
	stats, err := h.scraper.Scrape(ctx)
	if err != nil {
		h.logger.Warn().
			Err(fmt.Errorf("%w: %v", models.ErrDegradedDependency, err)).
			Msg("Could not fetch stats from tracker")
		return models.UnknownTrackerMetrics()
	}
	if stats.Leechers() < 0 {
		h.logger.Warn().
			Int64("peers", stats.Peers).
			Int64("seeds", stats.Seeds).
			Msg("Tracker reports more seeds than peers")
	}
	return models.TrackerMetrics{
		Peers:          models.Known(stats.Peers),
		Seeds:          models.Known(stats.Seeds),
		Leechers:       models.Known(stats.Leechers()),
		ActiveTorrents: models.Known(stats.ActiveTorrents),
	}
}
