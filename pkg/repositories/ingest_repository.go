package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/vidstat/statbot/pkg/models"
)

// Execer is the statement execution surface of a pgx pool.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// IngestRepository writes videos and snapshots for the bulk loader. All writes
// are upserts keyed on the external identifiers, so re-importing the same file
// refreshes counters instead of duplicating rows.
type IngestRepository struct {
	db     Execer
	logger *zap.Logger
}

// NewIngestRepository creates an IngestRepository.
func NewIngestRepository(db Execer, logger *zap.Logger) *IngestRepository {
	return &IngestRepository{db: db, logger: logger.Named("ingest")}
}

// UpsertVideo inserts a video or refreshes its counters when video_id exists.
func (r *IngestRepository) UpsertVideo(ctx context.Context, v *models.Video) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO videos (
			video_id, creator_id, video_created_at,
			views_count, likes_count, comments_count, reports_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (video_id) DO UPDATE SET
			creator_id = EXCLUDED.creator_id,
			video_created_at = EXCLUDED.video_created_at,
			views_count = EXCLUDED.views_count,
			likes_count = EXCLUDED.likes_count,
			comments_count = EXCLUDED.comments_count,
			reports_count = EXCLUDED.reports_count,
			updated_at = NOW()`,
		v.VideoID, v.CreatorID, v.VideoCreatedAt,
		v.ViewsCount, v.LikesCount, v.CommentsCount, v.ReportsCount,
	)
	if err != nil {
		return fmt.Errorf("upsert video %s: %w", v.VideoID, err)
	}
	return nil
}

// UpsertSnapshot inserts a snapshot or refreshes it when snapshot_id exists.
// The referenced video row must already exist.
func (r *IngestRepository) UpsertSnapshot(ctx context.Context, s *models.Snapshot) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO snapshots (
			snapshot_id, video_id,
			views_count, likes_count, comments_count, reports_count,
			delta_views_count, delta_likes_count, delta_comments_count, delta_reports_count,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (snapshot_id) DO UPDATE SET
			views_count = EXCLUDED.views_count,
			likes_count = EXCLUDED.likes_count,
			comments_count = EXCLUDED.comments_count,
			reports_count = EXCLUDED.reports_count,
			delta_views_count = EXCLUDED.delta_views_count,
			delta_likes_count = EXCLUDED.delta_likes_count,
			delta_comments_count = EXCLUDED.delta_comments_count,
			delta_reports_count = EXCLUDED.delta_reports_count,
			updated_at = NOW()`,
		s.SnapshotID, s.VideoID,
		s.ViewsCount, s.LikesCount, s.CommentsCount, s.ReportsCount,
		s.DeltaViewsCount, s.DeltaLikesCount, s.DeltaCommentsCount, s.DeltaReportsCount,
		s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert snapshot %s: %w", s.SnapshotID, err)
	}
	return nil
}

// DeleteAll wipes both tables before a full re-import. Snapshots cascade from
// videos, but the explicit order keeps the intent readable.
func (r *IngestRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM snapshots"); err != nil {
		return fmt.Errorf("delete snapshots: %w", err)
	}
	if _, err := r.db.Exec(ctx, "DELETE FROM videos"); err != nil {
		return fmt.Errorf("delete videos: %w", err)
	}
	r.logger.Info("Cleared existing videos and snapshots")
	return nil
}
