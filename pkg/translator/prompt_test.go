package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidstat/statbot/pkg/schema"
)

func TestBuildMessages_Shape(t *testing.T) {
	d := schema.Default()
	question := "Сколько видео имеют > 10000 просмотров?"

	messages := BuildMessages(d, question)
	require.Len(t, messages, 2)

	assert.Equal(t, RoleSystem, messages[0].Role)
	assert.Equal(t, RoleUser, messages[1].Role)
	// The user's question goes through verbatim.
	assert.Equal(t, question, messages[1].Text)
}

func TestBuildMessages_SystemContent(t *testing.T) {
	messages := BuildMessages(schema.Default(), "вопрос")
	system := messages[0].Text

	// The full schema is embedded.
	assert.Contains(t, system, "videos")
	assert.Contains(t, system, "snapshots")
	assert.Contains(t, system, "delta_views_count")
	assert.Contains(t, system, "creator_id")

	// The normative rules are rendered from the rule set.
	assert.Contains(t, system, "COUNT(DISTINCT video_id)")
	assert.Contains(t, system, "COALESCE(SUM(views_count), 0)")
	assert.Contains(t, system, "EXTRACT(YEAR FROM video_created_at)")
	assert.Contains(t, system, Sentinel)
}

func TestBuildMessages_Deterministic(t *testing.T) {
	d := schema.Default()
	a := BuildMessages(d, "q")
	b := BuildMessages(d, "q")
	assert.Equal(t, a, b)
}

func TestDefaultRules_OrderedAndComplete(t *testing.T) {
	rules := DefaultRules()
	require.NotEmpty(t, rules)

	// IDs are sequential starting at 1; the rendered prompt depends on it.
	for i, r := range rules {
		assert.Equal(t, i+1, r.ID)
		assert.NotEmpty(t, r.Trigger)
	}

	// The final rule is the no-answer sentinel contract.
	assert.Contains(t, rules[len(rules)-1].Trigger, Sentinel)
}
