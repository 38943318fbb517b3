package db

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// count runs SELECT COUNT(*) on table, filtered by where when it is not nil.
func (sdb *SharedDB) count(ctx context.Context, table string, where sq.Sqlizer) (int64, error) {
	q := psql.Select("COUNT(*)").From(table)
	if where != nil {
		q = q.Where(where)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := sdb.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	return n, nil
}

func (sdb *SharedDB) CountRegisteredUsers(ctx context.Context) (int64, error) {
	return sdb.count(ctx, "users", nil)
}

func (sdb *SharedDB) CountBannedUsers(ctx context.Context) (int64, error) {
	return sdb.count(ctx, "users", sq.Eq{"banned": true})
}

func (sdb *SharedDB) CountUploadedTorrents(ctx context.Context) (int64, error) {
	return sdb.count(ctx, "torrents", nil)
}

func (sdb *SharedDB) CountCompletedDownloads(ctx context.Context) (int64, error) {
	return sdb.count(ctx, "progress", sq.Eq{`"left"`: 0})
}

func (sdb *SharedDB) CountInvitesSent(ctx context.Context) (int64, error) {
	return sdb.count(ctx, "invites", nil)
}

func (sdb *SharedDB) CountInvitesAccepted(ctx context.Context) (int64, error) {
	return sdb.count(ctx, "invites", sq.Eq{"claimed": true})
}

func (sdb *SharedDB) CountRequests(ctx context.Context) (int64, error) {
	return sdb.count(ctx, "requests", nil)
}

func (sdb *SharedDB) CountFilledRequests(ctx context.Context) (int64, error) {
	return sdb.count(ctx, "requests", sq.NotEq{"fulfilled_by": nil})
}

func (sdb *SharedDB) CountComments(ctx context.Context) (int64, error) {
	return sdb.count(ctx, "comments", nil)
}
