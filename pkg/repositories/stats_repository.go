// Package repositories provides database access for the statistics tables:
// scalar execution of certified statements for the bot and upserts for the
// loader.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/vidstat/statbot/pkg/logging"
	"github.com/vidstat/statbot/pkg/translator"
)

// ScalarQuerier is the single-row query surface of a pgx pool.
type ScalarQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// StatsRepository executes certified statements and returns their single
// scalar result. The certified type on QueryScalar is the only way a statement
// reaches this repository; raw strings have no path here.
//
// The configured database role is expected to be read-only on the statistics
// tables. The repository adds a second line of defense via its own timeout.
type StatsRepository struct {
	db      ScalarQuerier
	timeout time.Duration
	logger  *zap.Logger
}

// NewStatsRepository creates a StatsRepository.
func NewStatsRepository(db ScalarQuerier, timeout time.Duration, logger *zap.Logger) *StatsRepository {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &StatsRepository{
		db:      db,
		timeout: timeout,
		logger:  logger.Named("stats"),
	}
}

// QueryScalar runs one certified statement and returns the first column of the
// first row. found is false when the statement produced no rows or the scalar
// is SQL NULL; a zero value with found=true is a real answer, not absence.
func (r *StatsRepository) QueryScalar(ctx context.Context, query translator.CertifiedQuery) (any, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()

	var value any
	err := r.db.QueryRow(ctx, string(query)).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		r.logger.Info("query returned no rows",
			zap.String("query", logging.SanitizeQuery(string(query))),
			zap.Duration("duration", time.Since(start)))
		return nil, false, nil
	}
	if err != nil {
		r.logger.Warn("query execution failed",
			zap.String("query", logging.SanitizeQuery(string(query))),
			zap.String("error", logging.SanitizeError(err)))
		return nil, false, fmt.Errorf("query execution: %w", err)
	}

	r.logger.Info("query executed",
		zap.String("query", logging.SanitizeQuery(string(query))),
		zap.Duration("duration", time.Since(start)))

	if value == nil {
		return nil, false, nil
	}
	return value, true, nil
}
