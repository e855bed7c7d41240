package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	*pgxpool.Pool
}

func NewPostgreSQLDB(dsn string) (*DB, error) {
	config, err := pgxpool.ParseConfig(dsn)

	if err != nil {
		return nil, err
	}

	// Connection pool settings
	config.MaxConns = 25
	config.MinConns = 5

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	return &DB{Pool: pool}, nil
}

func (db *DB) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return db.Pool.Begin(ctx)
}

type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// ErrorKind is the machine-readable classification callers inspect to decide
// between retry, operator remediation, or a client-side fallback computation.
type ErrorKind string

const (
	KindNone                ErrorKind = ""
	KindNotFound            ErrorKind = "not_found"
	KindUndefinedTable      ErrorKind = "undefined_table"
	KindUndefinedFunction   ErrorKind = "undefined_function"
	KindUniqueViolation     ErrorKind = "unique_violation"
	KindConstraintViolation ErrorKind = "constraint_violation"
	KindTimeout             ErrorKind = "timeout"
	KindOther               ErrorKind = "other"
)

// Classify maps a pgx error to an ErrorKind using SQLSTATE codes.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return KindNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42P01":
			return KindUndefinedTable
		case "42883":
			return KindUndefinedFunction
		case "23505":
			return KindUniqueViolation
		case "57014", "55P03":
			return KindTimeout
		}
		if len(pgErr.Code) >= 2 && pgErr.Code[:2] == "23" {
			return KindConstraintViolation
		}
	}

	return KindOther
}

// Retryable reports whether the error is transient and worth retrying with a
// smaller batch or after a backoff.
func Retryable(err error) bool {
	return Classify(err) == KindTimeout
}
