package calculate

import "strings"

// Scalar types of the data model.
const (
	TypeString   = "String"
	TypeInt      = "Int"
	TypeBigInt   = "BigInt"
	TypeFloat    = "Float"
	TypeDecimal  = "Decimal"
	TypeBoolean  = "Boolean"
	TypeDateTime = "DateTime"
	TypeJSON     = "Json"
	TypeBytes    = "Bytes"
)

// ScalarType maps a declared SQL column type (PostgreSQL or SQLite) to a
// data model scalar type. Length, precision and array suffixes are ignored.
func ScalarType(sqlType string) string {
	upper := strings.ToUpper(strings.TrimSpace(sqlType))
	if i := strings.IndexByte(upper, '('); i >= 0 {
		upper = strings.TrimSpace(upper[:i])
	}

	switch upper {
	case "INTEGER", "INT", "INT4", "SMALLINT", "INT2", "SERIAL", "SMALLSERIAL", "TINYINT", "MEDIUMINT":
		return TypeInt

	case "BIGINT", "INT8", "BIGSERIAL":
		return TypeBigInt

	case "REAL", "FLOAT4", "DOUBLE PRECISION", "FLOAT8", "FLOAT", "DOUBLE":
		return TypeFloat

	case "NUMERIC", "DECIMAL", "MONEY":
		return TypeDecimal

	case "BOOLEAN", "BOOL":
		return TypeBoolean

	case "DATE", "TIME", "TIME WITHOUT TIME ZONE", "TIME WITH TIME ZONE", "TIMETZ",
		"TIMESTAMP", "TIMESTAMP WITHOUT TIME ZONE", "TIMESTAMP WITH TIME ZONE", "TIMESTAMPTZ", "DATETIME":
		return TypeDateTime

	case "JSON", "JSONB":
		return TypeJSON

	case "BYTEA", "BLOB":
		return TypeBytes
	}

	// SQLite type affinity rules for anything else.
	switch {
	case strings.Contains(upper, "INT"):
		return TypeInt
	case strings.Contains(upper, "BLOB"):
		return TypeBytes
	case strings.Contains(upper, "REAL"), strings.Contains(upper, "FLOA"), strings.Contains(upper, "DOUB"):
		return TypeFloat
	default:
		return TypeString
	}
}
