// This file contains lookups of rows owned by other parts of the site. A row
// that doesn't exist is not an error: the lookups return nil.

package db

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/pgxscan"
	"gitlab.com/ranfdev/sqadmin/internal/models"
)

func (sdb *SharedDB) FindTorrentByInfoHash(ctx context.Context, infoHash string) (*models.TorrentSummary, error) {
	sql, args, _ := psql.
		Select("id", "name", "description", "info_hash", "created").
		From("torrents").
		Where(sq.Eq{"info_hash": infoHash}).
		ToSql()
	return getOptional[models.TorrentSummary](ctx, sdb.db, sql, args)
}

func (sdb *SharedDB) FindTorrentSummary(ctx context.Context, id int) (*models.TorrentSummary, error) {
	sql, args, _ := psql.
		Select("id", "name", "description", "info_hash", "created").
		From("torrents").
		Where(sq.Eq{"id": id}).
		ToSql()
	return getOptional[models.TorrentSummary](ctx, sdb.db, sql, args)
}

func (sdb *SharedDB) FindUserSummary(ctx context.Context, id int) (*models.UserSummary, error) {
	sql, args, _ := psql.
		Select("id", "username", "created").
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	return getOptional[models.UserSummary](ctx, sdb.db, sql, args)
}

func getOptional[T any](ctx context.Context, db DBTX, sql string, args []interface{}) (*T, error) {
	dest := new(T)
	err := pgxscan.Get(ctx, db, dest, sql, args...)
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return dest, nil
}
