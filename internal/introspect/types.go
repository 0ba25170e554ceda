package introspect

import (
	"database/sql"
	"fmt"
	"strings"
)

// pgDeclaredType rebuilds the declared PostgreSQL type of a column from
// information_schema, which reports length and precision separately.
func pgDeclaredType(dataType string, maxLen, precision, scale sql.NullInt64) string {
	lower := strings.ToLower(dataType)

	switch lower {
	case "character varying", "varchar", "character", "char", "bit", "bit varying":
		if maxLen.Valid && maxLen.Int64 > 0 {
			return fmt.Sprintf("%s(%d)", lower, maxLen.Int64)
		}
		return lower

	case "numeric", "decimal":
		if precision.Valid {
			if scale.Valid {
				return fmt.Sprintf("%s(%d,%d)", lower, precision.Int64, scale.Int64)
			}
			return fmt.Sprintf("%s(%d)", lower, precision.Int64)
		}
		return lower

	default:
		return lower
	}
}
