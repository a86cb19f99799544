// Package schema holds the fixed description of the statistics tables that is
// embedded into every translation prompt. The descriptor is process-wide,
// constant and versioned; the prompt text is generated from it rather than
// hand-maintained.
package schema

import (
	"fmt"
	"strings"
)

// Version identifies the schema contract embedded in prompts. Bump it whenever
// a table or column description changes.
const Version = "v1"

// Column describes one column for the prompt.
type Column struct {
	Name string
	Type string
	Doc  string
}

// Table describes one table for the prompt.
type Table struct {
	Name    string
	Doc     string
	Columns []Column
}

// Descriptor is the full schema contract.
type Descriptor struct {
	Version string
	Tables  []Table
}

// Default returns the descriptor for the two statistics tables.
//
// creator_id is deliberately NOT unique: one creator owns many videos. The
// unique keys are video_id on videos and snapshot_id on snapshots.
func Default() *Descriptor {
	return &Descriptor{
		Version: Version,
		Tables: []Table{
			{
				Name: "videos",
				Doc:  "one row per video with its current cumulative counters",
				Columns: []Column{
					{Name: "id", Type: "bigint", Doc: "surrogate primary key"},
					{Name: "video_id", Type: "text", Doc: "UUID, unique video identifier"},
					{Name: "creator_id", Type: "text", Doc: "video author identifier, not unique"},
					{Name: "video_created_at", Type: "timestamp", Doc: "when the video was published"},
					{Name: "views_count", Type: "bigint", Doc: "current view count"},
					{Name: "likes_count", Type: "bigint", Doc: "current like count"},
					{Name: "comments_count", Type: "bigint", Doc: "current comment count"},
					{Name: "reports_count", Type: "bigint", Doc: "current report (complaint) count"},
					{Name: "created_at", Type: "timestamp", Doc: "when the row was inserted"},
					{Name: "updated_at", Type: "timestamp", Doc: "when the row was last updated"},
				},
			},
			{
				Name: "snapshots",
				Doc:  "periodic per-video statistics captures with change since the previous capture",
				Columns: []Column{
					{Name: "id", Type: "bigint", Doc: "surrogate primary key"},
					{Name: "snapshot_id", Type: "text", Doc: "UUID, unique snapshot identifier"},
					{Name: "video_id", Type: "text", Doc: "references videos.video_id"},
					{Name: "views_count", Type: "bigint", Doc: "views at capture time"},
					{Name: "likes_count", Type: "bigint", Doc: "likes at capture time"},
					{Name: "comments_count", Type: "bigint", Doc: "comments at capture time"},
					{Name: "reports_count", Type: "bigint", Doc: "reports at capture time"},
					{Name: "delta_views_count", Type: "bigint", Doc: "view change since the previous snapshot of the same video, signed"},
					{Name: "delta_likes_count", Type: "bigint", Doc: "like change since the previous snapshot, signed"},
					{Name: "delta_comments_count", Type: "bigint", Doc: "comment change since the previous snapshot, signed"},
					{Name: "delta_reports_count", Type: "bigint", Doc: "report change since the previous snapshot, signed"},
					{Name: "created_at", Type: "timestamp", Doc: "when the snapshot was captured"},
					{Name: "updated_at", Type: "timestamp", Doc: "when the row was last updated"},
				},
			},
		},
	}
}

// Render produces the schema block of the system prompt.
func (d *Descriptor) Render() string {
	var b strings.Builder

	b.WriteString("DATABASE SCHEMA (PostgreSQL):\n")
	for i, table := range d.Tables {
		fmt.Fprintf(&b, "\n%d. Table %q — %s:\n", i+1, table.Name, table.Doc)
		for _, col := range table.Columns {
			fmt.Fprintf(&b, "   - %s (%s, %s)\n", col.Name, col.Type, col.Doc)
		}
	}
	return b.String()
}

// TableNames lists the tables a generated statement may reference.
func (d *Descriptor) TableNames() []string {
	names := make([]string, len(d.Tables))
	for i, t := range d.Tables {
		names[i] = t.Name
	}
	return names
}
