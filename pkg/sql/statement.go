// Package sql provides textual SQL statement gates used by the safety
// classifier. These are defense-in-depth checks, not a grammar: the execution
// role is still expected to run with read-only, least-privilege credentials.
package sql

import (
	"errors"
	"strings"
)

// ErrMultipleStatements indicates the text contains more than one SQL
// statement; only single statements are permitted.
var ErrMultipleStatements = errors.New("multiple SQL statements not allowed")

// CheckSingleStatement verifies the text holds at most one statement.
// The normalizer has already stripped the trailing terminator, so any
// remaining semicolon outside string literals means a second statement.
func CheckSingleStatement(stmt string) error {
	if hasSemicolonOutsideStrings(stmt) {
		return ErrMultipleStatements
	}
	return nil
}

// hasSemicolonOutsideStrings returns true if the SQL contains any semicolon
// outside of string literals.
func hasSemicolonOutsideStrings(stmt string) bool {
	const (
		stateNormal = iota
		stateSingleQuote
		stateDoubleQuote
	)

	state := stateNormal
	prevChar := rune(0)

	for _, char := range stmt {
		switch state {
		case stateNormal:
			switch char {
			case ';':
				return true
			case '\'':
				state = stateSingleQuote
			case '"':
				state = stateDoubleQuote
			}
		case stateSingleQuote:
			// Exit on an unescaped single quote. Handles both backslash
			// escape (\') and the SQL standard doubled quote (''): the
			// doubled form exits and immediately re-enters on the next
			// quote, which keeps us inside the string.
			if char == '\'' && prevChar != '\\' {
				state = stateNormal
			}
		case stateDoubleQuote:
			if char == '"' && prevChar != '\\' {
				state = stateNormal
			}
		}
		prevChar = char
	}

	return false
}

// StripTrailingSemicolon removes at most one trailing statement terminator
// and any surrounding whitespace.
func StripTrailingSemicolon(stmt string) string {
	stmt = strings.TrimRight(stmt, " \t\n\r")
	if strings.HasSuffix(stmt, ";") {
		stmt = strings.TrimSuffix(stmt, ";")
		stmt = strings.TrimRight(stmt, " \t\n\r")
	}
	return stmt
}
