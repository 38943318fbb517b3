package domain

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/ranfdev/sqadmin/internal/metrics"
	"gitlab.com/ranfdev/sqadmin/internal/models"
)

type ReportService struct {
	reports  ReportRepo
	torrents TorrentRepo
	users    UserRepo
	logger   zerolog.Logger
	now      func() time.Time
}

func NewReportService(reports ReportRepo, torrents TorrentRepo, users UserRepo, logger zerolog.Logger) *ReportService {
	return &ReportService{
		reports:  reports,
		torrents: torrents,
		users:    users,
		logger:   logger.With().Str("service", "reports").Logger(),
		now:      time.Now,
	}
}

// CreateReport files a report against the torrent with the given info hash.
// Any authenticated caller may report.
func (s *ReportService) CreateReport(ctx context.Context, caller models.Identity, infoHash string, reason string) (*models.Report, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, models.ErrReasonRequired
	}
	torrent, err := s.torrents.FindTorrentByInfoHash(ctx, infoHash)
	if err != nil {
		return nil, fmt.Errorf("looking up torrent %s: %w", infoHash, err)
	}
	if torrent == nil {
		return nil, models.ErrTorrentNotFound
	}

	report := &models.Report{
		ID:         uuid.New(),
		TorrentID:  torrent.ID,
		ReportedBy: caller.UserID,
		Reason:     reason,
		Solved:     false,
		Created:    s.now().UTC(),
	}
	if err := s.reports.CreateReport(ctx, report); err != nil {
		return nil, fmt.Errorf("saving report: %w", err)
	}
	metrics.ReportsCreated.Inc()
	s.logger.Info().
		Str("report_id", report.ID.String()).
		Int("torrent_id", torrent.ID).
		Int("reported_by", caller.UserID).
		Msg("Report created")
	return report, nil
}

// ReportAdminH gives access to the admin-only report operations.
type ReportAdminH struct {
	*ReportService
	caller models.Identity
}

func (s *ReportService) Admin(caller models.Identity) (*ReportAdminH, error) {
	if err := requireRole(caller, models.RoleAdmin, "manage reports"); err != nil {
		return nil, err
	}
	return &ReportAdminH{s, caller}, nil
}

func (s *ReportService) FetchReport(ctx context.Context, caller models.Identity, id uuid.UUID) (*models.ReportView, error) {
	h, err := s.Admin(caller)
	if err != nil {
		return nil, err
	}
	return h.Fetch(ctx, id)
}

func (s *ReportService) ListOpenReports(ctx context.Context, caller models.Identity, page int) ([]models.ReportView, error) {
	h, err := s.Admin(caller)
	if err != nil {
		return nil, err
	}
	return h.ListOpen(ctx, page)
}

func (s *ReportService) ResolveReport(ctx context.Context, caller models.Identity, id uuid.UUID) error {
	h, err := s.Admin(caller)
	if err != nil {
		return err
	}
	return h.Resolve(ctx, id)
}

// Fetch returns a report with its reporter and torrent. A reporter or torrent
// that was removed since the report was filed is left nil.
func (h *ReportAdminH) Fetch(ctx context.Context, id uuid.UUID) (*models.ReportView, error) {
	report, err := h.reports.FindReport(ctx, id)
	if err != nil {
		return nil, err
	}
	reporter, err := h.users.FindUserSummary(ctx, report.ReportedBy)
	if err != nil {
		return nil, fmt.Errorf("looking up reporter: %w", err)
	}
	torrent, err := h.torrents.FindTorrentSummary(ctx, report.TorrentID)
	if err != nil {
		return nil, fmt.Errorf("looking up torrent: %w", err)
	}
	return &models.ReportView{
		ID:         report.ID,
		Reason:     report.Reason,
		Solved:     report.Solved,
		Created:    report.Created,
		ReportedBy: reporter,
		Torrent:    torrent,
	}, nil
}

// ListOpen returns one page of unsolved reports, newest first. Pages past the
// end are empty.
func (h *ReportAdminH) ListOpen(ctx context.Context, page int) ([]models.ReportView, error) {
	if page < 0 {
		return nil, models.ErrNegativePage
	}
	// No page this far out can hold reports, and its offset would overflow.
	if page > math.MaxInt/models.PageSize {
		return []models.ReportView{}, nil
	}
	reports, err := h.reports.ListOpenReports(ctx, page*models.PageSize, models.PageSize)
	if err != nil {
		return nil, fmt.Errorf("listing open reports: %w", err)
	}
	if reports == nil {
		reports = []models.ReportView{}
	}
	return reports, nil
}

// Resolve marks a report solved. Resolving twice, or resolving an unknown
// report, is not an error.
func (h *ReportAdminH) Resolve(ctx context.Context, id uuid.UUID) error {
	found, err := h.reports.ResolveReport(ctx, id)
	if err != nil {
		return fmt.Errorf("resolving report: %w", err)
	}
	if !found {
		h.logger.Debug().Str("report_id", id.String()).Msg("Resolve of unknown report ignored")
		return nil
	}
	metrics.ReportsResolved.Inc()
	h.logger.Info().
		Str("report_id", id.String()).
		Int("resolved_by", h.caller.UserID).
		Msg("Report resolved")
	return nil
}
