package main

import (
	"fmt"
	"strings"

	"github.com/runger/vetline/internal/dialect"
)

var sqlDialectsByName = map[string]dialect.SQL{
	"generic":    dialect.Generic,
	"ansi":       dialect.ANSI,
	"bigquery":   dialect.BigQuery,
	"clickhouse": dialect.ClickHouse,
	"databricks": dialect.Databricks,
	"duckdb":     dialect.DuckDB,
	"hive":       dialect.Hive,
	"mssql":      dialect.MSSQL,
	"mysql":      dialect.MySQL,
	"postgresql": dialect.PostgreSQL,
	"redshift":   dialect.Redshift,
	"snowflake":  dialect.Snowflake,
	"sqlite":     dialect.SQLite,
}

func parseSQLDialect(name string) (dialect.SQL, error) {
	if name == "" {
		return dialect.Generic, nil
	}
	d, ok := sqlDialectsByName[strings.ToLower(name)]
	if !ok {
		return dialect.Generic, fmt.Errorf("unrecognized --dialect %q", name)
	}
	return d, nil
}

var jsSourceTypesByName = map[string]dialect.JSSourceType{
	"script":     dialect.Script,
	"module":     dialect.Module,
	"typescript": dialect.TypeScript,
	"tsx":        dialect.TSX,
}

func parseJSSourceType(name string) (dialect.JSSourceType, error) {
	if name == "" {
		return dialect.Script, nil
	}
	t, ok := jsSourceTypesByName[strings.ToLower(name)]
	if !ok {
		return dialect.Script, fmt.Errorf("unrecognized --source-type %q", name)
	}
	return t, nil
}
