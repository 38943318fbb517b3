package domain

import (
	"context"

	"github.com/google/uuid"
	"gitlab.com/ranfdev/sqadmin/internal/models"
)

type ReportRepo interface {
	CreateReport(ctx context.Context, report *models.Report) error
	// FindReport returns models.ErrReportNotFound when no report has that id.
	FindReport(ctx context.Context, id uuid.UUID) (*models.Report, error)
	// ListOpenReports returns unsolved reports, newest first, with username and
	// torrent name joined in.
	ListOpenReports(ctx context.Context, offset int, limit int) ([]models.ReportView, error)
	// ResolveReport marks a report solved and reports whether it existed.
	ResolveReport(ctx context.Context, id uuid.UUID) (bool, error)
}

// Lookups return nil, nil for rows that don't exist.
type TorrentRepo interface {
	FindTorrentByInfoHash(ctx context.Context, infoHash string) (*models.TorrentSummary, error)
	FindTorrentSummary(ctx context.Context, id int) (*models.TorrentSummary, error)
}

type UserRepo interface {
	FindUserSummary(ctx context.Context, id int) (*models.UserSummary, error)
}

type CountOracle interface {
	CountRegisteredUsers(ctx context.Context) (int64, error)
	CountBannedUsers(ctx context.Context) (int64, error)
	CountUploadedTorrents(ctx context.Context) (int64, error)
	CountCompletedDownloads(ctx context.Context) (int64, error)
	CountInvitesSent(ctx context.Context) (int64, error)
	CountInvitesAccepted(ctx context.Context) (int64, error)
	CountRequests(ctx context.Context) (int64, error)
	CountFilledRequests(ctx context.Context) (int64, error)
	CountComments(ctx context.Context) (int64, error)
}

type TrackerScraper interface {
	Scrape(ctx context.Context) (models.TrackerStats, error)
}
