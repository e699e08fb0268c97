// Package dialect maps the numeric enums crossing the host boundary to the
// internal SQL dialect and JS source-type descriptors the rest of the
// library dispatches on.
package dialect

// SQL is the set of SQL dialects the tokenizer and AST parser can be
// parameterized with. Quoting rules, placeholder styles, and reserved
// keyword sets vary by dialect; Generic is the fallback used whenever a
// dialect-specific tokenize pass fails (see internal/sqlinjection).
type SQL int

const (
	Generic SQL = iota
	ANSI
	BigQuery
	ClickHouse
	Databricks
	DuckDB
	Hive
	MSSQL
	MySQL
	PostgreSQL
	Redshift
	Snowflake
	SQLite
)

// String returns the lowercase dialect name, used in audit log rows and
// CLI help text.
func (d SQL) String() string {
	switch d {
	case ANSI:
		return "ansi"
	case BigQuery:
		return "bigquery"
	case ClickHouse:
		return "clickhouse"
	case Databricks:
		return "databricks"
	case DuckDB:
		return "duckdb"
	case Hive:
		return "hive"
	case MSSQL:
		return "mssql"
	case MySQL:
		return "mysql"
	case PostgreSQL:
		return "postgresql"
	case Redshift:
		return "redshift"
	case Snowflake:
		return "snowflake"
	case SQLite:
		return "sqlite"
	default:
		return "generic"
	}
}

// FromEnum is the total function int32 -> SQL dialect described in spec
// §4.1. Any value outside the recognized range returns Generic.
func FromEnum(n int32) SQL {
	switch n {
	case 1:
		return ANSI
	case 2:
		return BigQuery
	case 3:
		return ClickHouse
	case 4:
		return Databricks
	case 5:
		return DuckDB
	case 6:
		return Hive
	case 7:
		return MSSQL
	case 8:
		return MySQL
	case 9:
		return PostgreSQL
	case 10:
		return Redshift
	case 11:
		return Snowflake
	case 12:
		return SQLite
	default:
		return Generic
	}
}

// JSSourceType selects the grammar variant for the JS/TS differential
// parser (internal/jsinjection).
type JSSourceType int

const (
	Script JSSourceType = iota
	Module
	TypeScript
	TSX
)

// JSSourceTypeFromEnum is the int32 -> JSSourceType total function from
// spec §4.1. Unrecognized values fall back to Script.
func JSSourceTypeFromEnum(n int32) JSSourceType {
	switch n {
	case 1:
		return Module
	case 2:
		return TypeScript
	case 3:
		return TSX
	default:
		return Script
	}
}
