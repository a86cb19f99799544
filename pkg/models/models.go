// Package models holds the record structs backing the statistics tables.
package models

import "time"

// Video is one row of the videos table: a video with its current cumulative
// counters. VideoID is the stable external identifier; ID is the surrogate key.
type Video struct {
	ID             int64     `json:"id"`
	VideoID        string    `json:"video_id"`
	CreatorID      string    `json:"creator_id"`
	VideoCreatedAt time.Time `json:"video_created_at"`
	ViewsCount     int64     `json:"views_count"`
	LikesCount     int64     `json:"likes_count"`
	CommentsCount  int64     `json:"comments_count"`
	ReportsCount   int64     `json:"reports_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Snapshot is one row of the snapshots table: a periodic capture of a video's
// counters plus the signed change since the previous capture of the same video.
type Snapshot struct {
	ID                 int64     `json:"id"`
	SnapshotID         string    `json:"snapshot_id"`
	VideoID            string    `json:"video_id"`
	ViewsCount         int64     `json:"views_count"`
	LikesCount         int64     `json:"likes_count"`
	CommentsCount      int64     `json:"comments_count"`
	ReportsCount       int64     `json:"reports_count"`
	DeltaViewsCount    int64     `json:"delta_views_count"`
	DeltaLikesCount    int64     `json:"delta_likes_count"`
	DeltaCommentsCount int64     `json:"delta_comments_count"`
	DeltaReportsCount  int64     `json:"delta_reports_count"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
