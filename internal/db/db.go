package db

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// SharedDB implements the report, torrent, user and count ports on top of
// a Postgres pool.
type SharedDB struct {
	db   DBTX
	pool *pgxpool.Pool
}

func Connect(ctx context.Context, databaseURL string) (*SharedDB, error) {
	pool, err := pgxpool.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("Failed to connect to postgres: %w", err)
	}
	return &SharedDB{db: pool, pool: pool}, nil
}

// New wraps an existing connection, pool or transaction.
func New(db DBTX) *SharedDB {
	return &SharedDB{db: db}
}

func (sdb *SharedDB) Ping(ctx context.Context) error {
	if sdb.pool != nil {
		return sdb.pool.Ping(ctx)
	}
	var one int
	return sdb.db.QueryRow(ctx, "SELECT 1").Scan(&one)
}

func (sdb *SharedDB) Close() {
	if sdb.pool != nil {
		sdb.pool.Close()
	}
}

func notFound(err error) bool {
	return pgxscan.NotFound(err) || errors.Is(err, pgx.ErrNoRows)
}
