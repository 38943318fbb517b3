package db

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/pgxscan"
	"github.com/google/uuid"
	"gitlab.com/ranfdev/sqadmin/internal/models"
)

func (sdb *SharedDB) CreateReport(ctx context.Context, report *models.Report) error {
	sql, args, _ := psql.
		Insert("reports").
		Columns("id", "torrent_id", "reported_by", "reason", "solved", "created").
		Values(report.ID.String(), report.TorrentID, report.ReportedBy, report.Reason, report.Solved, report.Created).
		ToSql()

	_, err := sdb.db.Exec(ctx, sql, args...)
	return err
}

func (sdb *SharedDB) FindReport(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	sql, args, _ := psql.
		Select("id", "torrent_id", "reported_by", "reason", "solved", "created").
		From("reports").
		// uuid.UUID is an array, squirrel would expand it into an IN list.
		Where(sq.Eq{"id": id.String()}).
		ToSql()

	report := &models.Report{}
	err := pgxscan.Get(ctx, sdb.db, report, sql, args...)
	if notFound(err) {
		return nil, models.ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

// openReportRow is one row of the open reports query; the joined columns are
// NULL when the reporter or the torrent is gone.
type openReportRow struct {
	ID               uuid.UUID
	Reason           string
	Solved           bool
	Created          time.Time
	ReporterID       *int
	ReporterUsername *string
	TorrentID        *int
	TorrentName      *string
}

func (row openReportRow) view() models.ReportView {
	v := models.ReportView{
		ID:      row.ID,
		Reason:  row.Reason,
		Solved:  row.Solved,
		Created: row.Created,
	}
	if row.ReporterID != nil {
		v.ReportedBy = &models.UserSummary{ID: *row.ReporterID, Username: deref(row.ReporterUsername)}
	}
	if row.TorrentID != nil {
		v.Torrent = &models.TorrentSummary{ID: *row.TorrentID, Name: deref(row.TorrentName)}
	}
	return v
}

func (sdb *SharedDB) ListOpenReports(ctx context.Context, offset int, limit int) ([]models.ReportView, error) {
	sql, args, _ := psql.
		Select(
			"reports.id",
			"reports.reason",
			"reports.solved",
			"reports.created",
			"users.id AS reporter_id",
			"users.username AS reporter_username",
			"torrents.id AS torrent_id",
			"torrents.name AS torrent_name",
		).
		From("reports").
		LeftJoin("users ON users.id = reports.reported_by").
		LeftJoin("torrents ON torrents.id = reports.torrent_id").
		Where(sq.Eq{"reports.solved": false}).
		OrderBy("reports.created DESC", "reports.id DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()

	rows := []openReportRow{}
	err := pgxscan.Select(ctx, sdb.db, &rows, sql, args...)
	if err != nil {
		return nil, err
	}
	reports := make([]models.ReportView, 0, len(rows))
	for _, row := range rows {
		reports = append(reports, row.view())
	}
	return reports, nil
}

func (sdb *SharedDB) ResolveReport(ctx context.Context, id uuid.UUID) (bool, error) {
	sql, args, _ := psql.
		Update("reports").
		Set("solved", true).
		Where(sq.Eq{"id": id.String()}).
		ToSql()

	tag, err := sdb.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
