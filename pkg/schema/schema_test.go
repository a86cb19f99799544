package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault_TablesAndKeys(t *testing.T) {
	d := Default()

	assert.Equal(t, Version, d.Version)
	assert.Equal(t, []string{"videos", "snapshots"}, d.TableNames())

	var videos, snapshots *Table
	for i := range d.Tables {
		switch d.Tables[i].Name {
		case "videos":
			videos = &d.Tables[i]
		case "snapshots":
			snapshots = &d.Tables[i]
		}
	}
	assert.NotNil(t, videos)
	assert.NotNil(t, snapshots)

	// creator_id is documented as non-unique; this is the resolved variant of
	// the schema and the prompt must say so.
	for _, col := range videos.Columns {
		if col.Name == "creator_id" {
			assert.Contains(t, col.Doc, "not unique")
		}
	}

	// Snapshots carry the four delta counters.
	var deltas int
	for _, col := range snapshots.Columns {
		if strings.HasPrefix(col.Name, "delta_") {
			deltas++
		}
	}
	assert.Equal(t, 4, deltas)
}

func TestRender_ContainsEveryColumn(t *testing.T) {
	d := Default()
	out := d.Render()

	for _, table := range d.Tables {
		assert.Contains(t, out, table.Name)
		for _, col := range table.Columns {
			assert.Contains(t, out, col.Name)
		}
	}
}

func TestRender_Deterministic(t *testing.T) {
	assert.Equal(t, Default().Render(), Default().Render())
}
