// Package loader imports video statistics from a JSON export file into the
// database. Re-running the loader on the same file is safe: all writes are
// upserts keyed on the external identifiers.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vidstat/statbot/pkg/jsonutil"
	"github.com/vidstat/statbot/pkg/models"
)

// progressEvery controls how often the loader reports import progress.
const progressEvery = 50

// Store is the write surface the loader needs.
type Store interface {
	UpsertVideo(ctx context.Context, v *models.Video) error
	UpsertSnapshot(ctx context.Context, s *models.Snapshot) error
}

// Stats summarizes one import run.
type Stats struct {
	Videos    int
	Snapshots int
	Errors    int
}

// fileFormat is the export file envelope.
type fileFormat struct {
	Videos []videoRecord `json:"videos"`
}

// videoRecord tolerates identifier and counter fields arriving as either
// strings or numbers.
type videoRecord struct {
	ID             json.RawMessage  `json:"id"`
	CreatorID      json.RawMessage  `json:"creator_id"`
	VideoCreatedAt string           `json:"video_created_at"`
	ViewsCount     json.RawMessage  `json:"views_count"`
	LikesCount     json.RawMessage  `json:"likes_count"`
	CommentsCount  json.RawMessage  `json:"comments_count"`
	ReportsCount   json.RawMessage  `json:"reports_count"`
	Snapshots      []snapshotRecord `json:"snapshots"`
}

type snapshotRecord struct {
	ID                 json.RawMessage `json:"id"`
	ViewsCount         json.RawMessage `json:"views_count"`
	LikesCount         json.RawMessage `json:"likes_count"`
	CommentsCount      json.RawMessage `json:"comments_count"`
	ReportsCount       json.RawMessage `json:"reports_count"`
	DeltaViewsCount    json.RawMessage `json:"delta_views_count"`
	DeltaLikesCount    json.RawMessage `json:"delta_likes_count"`
	DeltaCommentsCount json.RawMessage `json:"delta_comments_count"`
	DeltaReportsCount  json.RawMessage `json:"delta_reports_count"`
	CreatedAt          string          `json:"created_at"`
}

// Loader reads an export file and writes its records through a Store.
type Loader struct {
	store  Store
	logger *zap.Logger
}

// New creates a Loader.
func New(store Store, logger *zap.Logger) *Loader {
	return &Loader{store: store, logger: logger.Named("loader")}
}

// LoadFile imports the JSON export at path.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return l.Load(ctx, f)
}

// Load imports a JSON export from r. Per-record failures are counted and
// logged; only a malformed envelope aborts the run.
func (l *Loader) Load(ctx context.Context, r io.Reader) (*Stats, error) {
	var file fileFormat
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode export file: %w", err)
	}

	stats := &Stats{}
	for i, rec := range file.Videos {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if err := l.importVideo(ctx, &rec, stats); err != nil {
			stats.Errors++
			l.logger.Warn("video import failed",
				zap.Int("index", i),
				zap.Error(err))
			continue
		}
		stats.Videos++

		if stats.Videos%progressEvery == 0 {
			l.logger.Info("import progress",
				zap.Int("videos", stats.Videos),
				zap.Int("snapshots", stats.Snapshots))
		}
	}

	l.logger.Info("import finished",
		zap.Int("videos", stats.Videos),
		zap.Int("snapshots", stats.Snapshots),
		zap.Int("errors", stats.Errors))
	return stats, nil
}

func (l *Loader) importVideo(ctx context.Context, rec *videoRecord, stats *Stats) error {
	videoID := jsonutil.FlexibleString(rec.ID)
	if videoID == "" {
		return fmt.Errorf("video record has no id")
	}
	if _, err := uuid.Parse(videoID); err != nil {
		l.logger.Warn("video id is not a UUID", zap.String("video_id", videoID))
	}

	createdAt, err := ParseTime(rec.VideoCreatedAt)
	if err != nil {
		return fmt.Errorf("video %s: %w", videoID, err)
	}

	video := &models.Video{
		VideoID:        videoID,
		CreatorID:      jsonutil.FlexibleString(rec.CreatorID),
		VideoCreatedAt: createdAt,
	}
	video.ViewsCount, _ = jsonutil.FlexibleInt64(rec.ViewsCount)
	video.LikesCount, _ = jsonutil.FlexibleInt64(rec.LikesCount)
	video.CommentsCount, _ = jsonutil.FlexibleInt64(rec.CommentsCount)
	video.ReportsCount, _ = jsonutil.FlexibleInt64(rec.ReportsCount)

	if err := l.store.UpsertVideo(ctx, video); err != nil {
		return err
	}

	for _, snap := range rec.Snapshots {
		if err := l.importSnapshot(ctx, videoID, &snap); err != nil {
			stats.Errors++
			l.logger.Warn("snapshot import failed",
				zap.String("video_id", videoID),
				zap.Error(err))
			continue
		}
		stats.Snapshots++
	}
	return nil
}

func (l *Loader) importSnapshot(ctx context.Context, videoID string, rec *snapshotRecord) error {
	snapshotID := jsonutil.FlexibleString(rec.ID)
	if snapshotID == "" {
		return fmt.Errorf("snapshot record has no id")
	}

	capturedAt, err := ParseTime(rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", snapshotID, err)
	}

	snapshot := &models.Snapshot{
		SnapshotID: snapshotID,
		VideoID:    videoID,
		CreatedAt:  capturedAt,
	}
	snapshot.ViewsCount, _ = jsonutil.FlexibleInt64(rec.ViewsCount)
	snapshot.LikesCount, _ = jsonutil.FlexibleInt64(rec.LikesCount)
	snapshot.CommentsCount, _ = jsonutil.FlexibleInt64(rec.CommentsCount)
	snapshot.ReportsCount, _ = jsonutil.FlexibleInt64(rec.ReportsCount)
	snapshot.DeltaViewsCount, _ = jsonutil.FlexibleInt64(rec.DeltaViewsCount)
	snapshot.DeltaLikesCount, _ = jsonutil.FlexibleInt64(rec.DeltaLikesCount)
	snapshot.DeltaCommentsCount, _ = jsonutil.FlexibleInt64(rec.DeltaCommentsCount)
	snapshot.DeltaReportsCount, _ = jsonutil.FlexibleInt64(rec.DeltaReportsCount)

	return l.store.UpsertSnapshot(ctx, snapshot)
}

// timeLayouts covers the timestamp shapes seen in export files, with and
// without fractional seconds.
var timeLayouts = []string{
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTime parses an export timestamp. Export files mix naive timestamps
// with ones carrying a zone suffix; the suffix is dropped and the wall-clock
// value kept, matching how the snapshots were recorded.
func ParseTime(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	s = strings.TrimSuffix(s, "Z")
	if i := strings.LastIndexAny(s, "+"); i > 10 {
		s = s[:i]
	}
	// A zone offset like -03:00 also starts after the date part.
	if i := strings.LastIndex(s, "-"); i > 10 {
		s = s[:i]
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}
