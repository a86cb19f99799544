package translator

import (
	"errors"
	"testing"
)

func TestClassify_Certified(t *testing.T) {
	inputs := []string{
		"select count(*) from videos",
		"SELECT COUNT(DISTINCT video_id) FROM snapshots WHERE views_count > 10000",
		"SELECT COALESCE(SUM(views_count), 0) FROM videos WHERE EXTRACT(YEAR FROM video_created_at) = 2025",
		// Blocklist matches whole words only: video_created_at contains
		// "create" but must pass.
		"SELECT COUNT(*) FROM videos WHERE video_created_at IS NOT NULL",
	}

	for _, input := range inputs {
		certified, err := Classify(input)
		if err != nil {
			t.Errorf("Classify(%q) rejected: %v", input, err)
			continue
		}
		if string(certified) != input {
			t.Errorf("Classify(%q) certified %q, want the input unchanged", input, certified)
		}
	}
}

func TestClassify_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason RejectReason
	}{
		{
			name:   "empty",
			input:  "",
			reason: ReasonEmpty,
		},
		{
			name:   "whitespace only",
			input:  "   ",
			reason: ReasonEmpty,
		},
		{
			name:   "sentinel uppercase",
			input:  "NULL",
			reason: ReasonNoAnswerSentinel,
		},
		{
			name:   "sentinel lowercase",
			input:  "null",
			reason: ReasonNoAnswerSentinel,
		},
		{
			name:   "not a select",
			input:  "WITH x AS (SELECT 1) SELECT * FROM x",
			reason: ReasonNotSelect,
		},
		{
			name:   "drop statement",
			input:  "DROP TABLE videos",
			reason: ReasonNotSelect,
		},
		{
			name:   "select wrapping a delete",
			input:  "SELECT 1 WHERE EXISTS (DELETE FROM videos RETURNING 1)",
			reason: ReasonForbiddenKeyword,
		},
		{
			name:   "union injection",
			input:  "SELECT * FROM users UNION SELECT * FROM passwords",
			reason: ReasonForbiddenKeyword,
		},
		{
			name:   "mixed case keyword",
			input:  "select count(*) from videos; TrUnCaTe videos",
			reason: ReasonForbiddenKeyword,
		},
		{
			name:   "second statement",
			input:  "SELECT 1; SELECT 2",
			reason: ReasonMultipleStatements,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			certified, err := Classify(tt.input)
			if err == nil {
				t.Fatalf("Classify(%q) certified %q, want rejection %s", tt.input, certified, tt.reason)
			}

			var rejection *RejectionError
			if !errors.As(err, &rejection) {
				t.Fatalf("Classify(%q) error %T, want *RejectionError", tt.input, err)
			}
			if rejection.Reason != tt.reason {
				t.Errorf("Classify(%q) reason = %s, want %s", tt.input, rejection.Reason, tt.reason)
			}
		})
	}
}

func TestClassify_ForbiddenKeywordCarriesPattern(t *testing.T) {
	_, err := Classify("SELECT * FROM users UNION SELECT * FROM passwords")

	var rejection *RejectionError
	if !errors.As(err, &rejection) {
		t.Fatalf("want *RejectionError, got %T", err)
	}
	if rejection.Pattern == "" {
		t.Error("forbidden-keyword rejection should carry the matched pattern")
	}
}
