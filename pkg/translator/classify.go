package translator

import (
	"regexp"
	"strings"

	sqlgate "github.com/vidstat/statbot/pkg/sql"
)

// CertifiedQuery is a normalized statement that has passed Classify. There is
// no other way to construct one: execution code accepts only this type.
type CertifiedQuery string

// RejectReason enumerates why a statement was refused.
type RejectReason string

const (
	ReasonEmpty              RejectReason = "empty"
	ReasonNoAnswerSentinel   RejectReason = "no-answer-sentinel"
	ReasonNotSelect          RejectReason = "not-a-select"
	ReasonForbiddenKeyword   RejectReason = "forbidden-keyword"
	ReasonMultipleStatements RejectReason = "multiple-statements"
)

// RejectionError reports a vetoed statement. The reason is for logs and
// diagnostics only; it is never shown to chat users.
type RejectionError struct {
	Reason  RejectReason
	Pattern string // the forbidden pattern that matched, when applicable
}

// Error implements the error interface.
func (e *RejectionError) Error() string {
	if e.Pattern != "" {
		return "statement rejected: " + string(e.Reason) + " (" + e.Pattern + ")"
	}
	return "statement rejected: " + string(e.Reason)
}

// forbiddenPatterns veto statements containing write/DDL keywords as
// case-insensitive whole words, plus union-based injection. This is a
// blocklist, not a grammar: it assumes the execution role is read-only and
// exists as one layer of defense, not the only one.
var forbiddenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\binsert\b`),
	regexp.MustCompile(`(?i)\bupdate\b`),
	regexp.MustCompile(`(?i)\bdelete\b`),
	regexp.MustCompile(`(?i)\bdrop\b`),
	regexp.MustCompile(`(?i)\btruncate\b`),
	regexp.MustCompile(`(?i)\balter\b`),
	regexp.MustCompile(`(?i)\bcreate\b`),
	regexp.MustCompile(`(?i)\bgrant\b`),
	regexp.MustCompile(`(?i)\brevoke\b`),
	regexp.MustCompile(`(?i)\bexec\b`),
	regexp.MustCompile(`(?i)\bexecute\b`),
	regexp.MustCompile(`(?i)\bunion\b.*\bselect\b`),
}

// Classify decides whether a normalized statement is an allowed single
// read-only query. Checks run in order; the first failure wins:
//
//  1. empty text
//  2. the no-answer sentinel (the documented "question cannot be answered"
//     outcome, not a fault)
//  3. leading keyword must be SELECT
//  4. forbidden keyword blocklist, union injection included
//  5. independent single-statement shape gate
func Classify(stmt string) (CertifiedQuery, error) {
	lowered := strings.ToLower(strings.TrimSpace(stmt))

	if lowered == "" {
		return "", &RejectionError{Reason: ReasonEmpty}
	}
	if lowered == strings.ToLower(Sentinel) {
		return "", &RejectionError{Reason: ReasonNoAnswerSentinel}
	}
	if !strings.HasPrefix(lowered, "select") {
		return "", &RejectionError{Reason: ReasonNotSelect}
	}

	for _, pattern := range forbiddenPatterns {
		if pattern.MatchString(stmt) {
			return "", &RejectionError{Reason: ReasonForbiddenKeyword, Pattern: pattern.String()}
		}
	}

	if err := sqlgate.CheckSingleStatement(stmt); err != nil {
		return "", &RejectionError{Reason: ReasonMultipleStatements}
	}

	return CertifiedQuery(stmt), nil
}
