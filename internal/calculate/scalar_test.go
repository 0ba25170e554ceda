package calculate

import "testing"

func TestScalarType(t *testing.T) {
	tests := []struct {
		sqlType string
		want    string
	}{
		{"INTEGER", TypeInt},
		{"int4", TypeInt},
		{"BIGINT", TypeBigInt},
		{"VARCHAR(255)", TypeString},
		{"character varying(100)", TypeString},
		{"TEXT", TypeString},
		{"uuid", TypeString},
		{"NUMERIC(10,2)", TypeDecimal},
		{"double precision", TypeFloat},
		{"REAL", TypeFloat},
		{"BOOLEAN", TypeBoolean},
		{"timestamp with time zone", TypeDateTime},
		{"DATETIME", TypeDateTime},
		{"jsonb", TypeJSON},
		{"BYTEA", TypeBytes},
		{"BLOB", TypeBytes},
		{"UNSIGNED BIG INT", TypeInt},
		{"", TypeString},
	}

	for _, tt := range tests {
		t.Run(tt.sqlType, func(t *testing.T) {
			if got := ScalarType(tt.sqlType); got != tt.want {
				t.Errorf("ScalarType(%q) = %q, want %q", tt.sqlType, got, tt.want)
			}
		})
	}
}
