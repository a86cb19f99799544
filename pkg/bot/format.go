package bot

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jackc/pgx/v5/pgtype"
)

// FormatScalar renders a query result value for chat. Integers get thousands
// grouped with spaces (Russian convention), floats keep two decimal places.
// Anything non-numeric falls back to its plain string form.
func FormatScalar(value any) string {
	switch v := value.(type) {
	case int64:
		return groupDigits(humanize.Comma(v))
	case int32:
		return groupDigits(humanize.Comma(int64(v)))
	case int:
		return groupDigits(humanize.Comma(int64(v)))
	case float64:
		return groupDigits(humanize.CommafWithDigits(v, 2))
	case float32:
		return groupDigits(humanize.CommafWithDigits(float64(v), 2))
	case pgtype.Numeric:
		f, err := v.Float64Value()
		if err != nil || !f.Valid {
			return fmt.Sprintf("%v", value)
		}
		return groupDigits(humanize.CommafWithDigits(f.Float64, 2))
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", value)
	}
}

func groupDigits(s string) string {
	return strings.ReplaceAll(s, ",", " ")
}
