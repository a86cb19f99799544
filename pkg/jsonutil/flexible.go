// Package jsonutil smooths over loosely typed JSON in imported data files.
package jsonutil

import (
	"encoding/json"
	"fmt"
)

// FlexibleString converts a raw JSON value to a string. Export files are not
// always consistent about identifier types: the same field may arrive as a
// string in one dump and a number in another. Null and absent values become "".
func FlexibleString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		if n == float64(int64(n)) {
			return fmt.Sprintf("%d", int64(n))
		}
		return fmt.Sprintf("%g", n)
	}

	return string(raw)
}

// FlexibleInt64 converts a raw JSON value to an int64, tolerating counters
// encoded as strings. Unparseable values come back as 0 with ok=false.
func FlexibleInt64(raw json.RawMessage) (int64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}

	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int64(f), true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		var parsed int64
		if _, err := fmt.Sscanf(s, "%d", &parsed); err == nil {
			return parsed, true
		}
	}

	return 0, false
}
