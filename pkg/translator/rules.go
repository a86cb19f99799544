package translator

import (
	"fmt"
	"strings"
)

// RulesVersion identifies the prompt rule contract. The rule set is data, not
// prose: additions get a new ID at the end and a version bump, so prompt
// changes stay auditable.
const RulesVersion = 3

// Rule is one entry of the normative contract sent to the completion backend.
// Trigger describes the natural-language cue or requirement; Pattern is the
// SQL shape it maps to (empty for rules that are pure constraints).
type Rule struct {
	ID      int
	Trigger string
	Pattern string
}

// Sentinel is the literal the backend must return when no valid statement can
// be constructed. It is not SQL and not an error: the classifier turns it into
// the "no answer" outcome.
const Sentinel = "NULL"

// DefaultRules returns the ordered rule set embedded into the system prompt.
func DefaultRules() []Rule {
	return []Rule{
		{ID: 1, Trigger: "Return exactly one SQL statement and nothing else: no explanations, no markdown fences, no quotes around the statement"},
		{ID: 2, Trigger: "Only SELECT statements are allowed; the statement must return exactly one row and one column (a single number)"},
		{ID: 3, Trigger: "Never use INSERT, UPDATE, DELETE, DROP, TRUNCATE, ALTER, CREATE, GRANT, REVOKE or EXECUTE"},
		{ID: 4, Trigger: "Look up a specific video or creator by exact match", Pattern: "WHERE video_id = '...' / WHERE creator_id = '...'"},
		{ID: 5, Trigger: "Count VIDEOS", Pattern: "COUNT(DISTINCT video_id)"},
		{ID: 6, Trigger: "Count SNAPSHOTS", Pattern: "COUNT(*)"},
		{ID: 7, Trigger: "\"суммарно\", \"всего\", total", Pattern: "SUM(column)"},
		{ID: 8, Trigger: "\"среднее\", average", Pattern: "AVG(column)"},
		{ID: 9, Trigger: "\"максимальные\", \"минимальные\", maximum/minimum", Pattern: "MAX(column) / MIN(column)"},
		{ID: 10, Trigger: "Wrap every aggregate so an empty result is a defined zero", Pattern: "COALESCE(SUM(views_count), 0)"},
		{ID: 11, Trigger: "Filter by a specific DATE", Pattern: "WHERE DATE(created_at) = '2025-11-27'"},
		{ID: 12, Trigger: "Filter by MONTH of a year", Pattern: "WHERE EXTRACT(YEAR FROM video_created_at) = 2025 AND EXTRACT(MONTH FROM video_created_at) = 6"},
		{ID: 13, Trigger: "Filter by YEAR", Pattern: "WHERE EXTRACT(YEAR FROM video_created_at) = 2025"},
		{ID: 14, Trigger: "Filter by an explicit PERIOD (\"с ... по ...\", from/to)", Pattern: "WHERE created_at BETWEEN '2025-06-01' AND '2025-06-30'"},
		{ID: 15, Trigger: "Hour-of-day ranges are half-open", Pattern: "EXTRACT(HOUR FROM created_at) >= 9 AND EXTRACT(HOUR FROM created_at) < 12"},
		{ID: 16, Trigger: "\"по итоговой статистике\", \"текущие показатели\", \"всего\" (current/final totals)", Pattern: "query the videos table"},
		{ID: 17, Trigger: "\"когда-либо\", \"в истории\", \"по снапшотам\" (ever/historical)", Pattern: "query the snapshots table with COUNT(DISTINCT video_id)"},
		{ID: 18, Trigger: "\"новые просмотры\", growth of a counter", Pattern: "delta_views_count > 0 (same for likes/comments/reports)"},
		{ID: 19, Trigger: "Decline of a counter", Pattern: "delta_views_count < 0"},
		{ID: 20, Trigger: "Absolute change of a counter", Pattern: "ABS(delta_views_count)"},
		{ID: 21, Trigger: "\"суммарные просмотры всех видео\"", Pattern: "SELECT COALESCE(SUM(views_count), 0) FROM videos"},
		{ID: 22, Trigger: "Example: \"Сколько видео имеют > 10000 просмотров?\"", Pattern: "SELECT COUNT(*) FROM videos WHERE views_count > 10000"},
		{ID: 23, Trigger: "Example: \"Сколько видео набрали > 10000 просмотров в истории?\"", Pattern: "SELECT COUNT(DISTINCT video_id) FROM snapshots WHERE views_count > 10000"},
		{ID: 24, Trigger: "Example: \"Сколько видео опубликовано в июне 2025?\"", Pattern: "SELECT COUNT(*) FROM videos WHERE EXTRACT(YEAR FROM video_created_at) = 2025 AND EXTRACT(MONTH FROM video_created_at) = 6"},
		{ID: 25, Trigger: "Example: \"Какое суммарное количество просмотров набрали все видео, опубликованные в июне 2025 года?\"", Pattern: "SELECT COALESCE(SUM(views_count), 0) FROM videos WHERE EXTRACT(YEAR FROM video_created_at) = 2025 AND EXTRACT(MONTH FROM video_created_at) = 6"},
		{ID: 26, Trigger: "Example: \"Сколько разных видео получали новые просмотры 27 ноября 2025?\"", Pattern: "SELECT COUNT(DISTINCT video_id) FROM snapshots WHERE DATE(created_at) = '2025-11-27' AND delta_views_count > 0"},
		{ID: 27, Trigger: "Example: \"Сколько снапшотов сделано у видео X?\"", Pattern: "SELECT COUNT(*) FROM snapshots WHERE video_id = 'X'"},
		{ID: 28, Trigger: fmt.Sprintf("If no valid statement can be constructed, return exactly %s and nothing else", Sentinel)},
	}
}

// renderRules produces the numbered rule block of the system prompt.
func renderRules(rules []Rule) string {
	var b strings.Builder
	b.WriteString("RULES:\n")
	for _, r := range rules {
		if r.Pattern == "" {
			fmt.Fprintf(&b, "%d. %s.\n", r.ID, r.Trigger)
		} else {
			fmt.Fprintf(&b, "%d. %s → %s\n", r.ID, r.Trigger, r.Pattern)
		}
	}
	return b.String()
}
