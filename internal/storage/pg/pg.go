package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/ritim-dev/ritim/internal/config"
	internal_errors "github.com/ritim-dev/ritim/internal/errors"
	"github.com/ritim-dev/ritim/internal/logger"
	"github.com/ritim-dev/ritim/internal/middleware/metrics"
)

// maxTxAttempts bounds the retry loop on serialization conflicts.
// Exhaustion surfaces as a retryable 503, never as a silent partial write.
const maxTxAttempts = 5

type Storage struct {
	db  *sql.DB
	cfg *config.Config
}

func New(cfg *config.Config) (*Storage, error) {
	db, err := Connect(&cfg.Private.Pg)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("connected to db", "host", cfg.Private.Pg.Host, "dbname", cfg.Private.Pg.Dbname)
	return &Storage{db, cfg}, nil
}

func Connect(pgCfg *config.Pg) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		pgCfg.Host, pgCfg.Port, pgCfg.User, pgCfg.Password, pgCfg.Dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

// inTx runs fn inside a serializable transaction, retrying on serialization
// conflicts up to maxTxAttempts. fn must be side-effect free outside the
// transaction so a retry replays it safely.
func (s *Storage) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	for attempt := 1; ; attempt++ {
		err := s.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isSerializationConflict(err) || attempt >= maxTxAttempts {
			if isSerializationConflict(err) {
				logger.Log.Warn("transaction retries exhausted", "attempts", attempt)
				return internal_errors.NewRetryable("Concurrent update conflict, please retry")
			}
			return err
		}
		metrics.TxRetries.Inc()
	}
}

func (s *Storage) runOnce(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // The rollback will be ignored if the tx has been committed later in the function.

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// isSerializationConflict matches postgres serialization failures (40001)
// and deadlocks (40P01), both safe to retry.
func isSerializationConflict(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
