package sqlast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/vetline/internal/dialect"
)

func TestAnalyzeSimpleSelectFilter(t *testing.T) {
	results, err := Analyze("SELECT * FROM users WHERE id = 1", dialect.Generic)
	require.NoError(t, err)
	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, "select", r.Kind)
	require.Len(t, r.Tables, 1)
	assert.Equal(t, "users", r.Tables[0].Name)
	require.Len(t, r.Filters, 1)
	assert.Equal(t, "id", r.Filters[0].Column)
	assert.Equal(t, "1", r.Filters[0].Value)
}

func TestAnalyzeMySQLPlaceholderNumbering(t *testing.T) {
	results, err := Analyze("SELECT * FROM users WHERE org_id = ? AND id = ?", dialect.MySQL)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0].Filters, 2)
	assert.True(t, results[0].Filters[0].IsPlaceholder)
	assert.True(t, results[0].Filters[1].IsPlaceholder)
	assert.Equal(t, 0, results[0].Filters[0].PlaceholderNumber)
	assert.Equal(t, 1, results[0].Filters[1].PlaceholderNumber)
}

func TestAnalyzeCTE(t *testing.T) {
	results, err := Analyze(
		"WITH recent AS (SELECT * FROM orders WHERE status = 'open') SELECT * FROM recent WHERE user_id = 5",
		dialect.PostgreSQL,
	)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// the CTE body is analyzed first and keeps its real table.
	require.Len(t, results[0].Tables, 1)
	assert.Equal(t, "orders", results[0].Tables[0].Name)

	// the outer query's FROM references the CTE name, not a real table, so
	// it's excluded from Tables — only its own filter survives.
	assert.Empty(t, results[1].Tables)
	require.Len(t, results[1].Filters, 1)
	assert.Equal(t, "user_id", results[1].Filters[0].Column)
	assert.Equal(t, "5", results[1].Filters[0].Value)
}

func TestAnalyzeUnion(t *testing.T) {
	results, err := Analyze(
		"SELECT id FROM users WHERE id = 1 UNION SELECT id FROM admins WHERE id = 2",
		dialect.Generic,
	)
	require.NoError(t, err)
	require.Len(t, results, 2)
	var tableNames []string
	for _, r := range results {
		for _, tbl := range r.Tables {
			tableNames = append(tableNames, tbl.Name)
		}
	}
	assert.Contains(t, tableNames, "users")
	assert.Contains(t, tableNames, "admins")
}

func TestAnalyzeSubqueryInWhere(t *testing.T) {
	results, err := Analyze(
		"SELECT * FROM orders WHERE user_id IN (SELECT id FROM users WHERE active = 1)",
		dialect.Generic,
	)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "orders", results[0].Tables[0].Name)
	assert.Equal(t, "users", results[1].Tables[0].Name)
}

func TestAnalyzeNotExists(t *testing.T) {
	results, err := Analyze(
		"SELECT * FROM orders o WHERE NOT EXISTS (SELECT 1 FROM refunds r WHERE r.order_id = o.id)",
		dialect.Generic,
	)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "orders", results[0].Tables[0].Name)
	assert.Equal(t, "refunds", results[1].Tables[0].Name)
}

func TestAnalyzeColColTransitiveClosure(t *testing.T) {
	results, err := Analyze(
		"SELECT * FROM orders o JOIN users u ON o.user_id = u.id WHERE u.id = 42",
		dialect.Generic,
	)
	require.NoError(t, err)
	require.Len(t, results, 1)

	var sawUserFilter, sawOrderFilter bool
	for _, f := range results[0].Filters {
		if f.Table == "u" && f.Column == "id" && f.Value == "42" {
			sawUserFilter = true
		}
		if f.Table == "o" && f.Column == "user_id" && f.Value == "42" {
			sawOrderFilter = true
		}
	}
	assert.True(t, sawUserFilter)
	assert.True(t, sawOrderFilter)
}

func TestAnalyzeInsertValues(t *testing.T) {
	results, err := Analyze(
		"INSERT INTO users (name, org_id) VALUES ('bob', 7)",
		dialect.Generic,
	)
	require.NoError(t, err)
	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, "insert", r.Kind)
	assert.Equal(t, "users", r.Tables[0].Name)
	require.Len(t, r.InsertColumns, 1)
	require.Len(t, r.InsertColumns[0], 2)
	assert.Equal(t, "name", r.InsertColumns[0][0].Column)
	assert.Equal(t, "bob", r.InsertColumns[0][0].Value)
	assert.Equal(t, "org_id", r.InsertColumns[0][1].Column)
	assert.Equal(t, "7", r.InsertColumns[0][1].Value)
}

func TestAnalyzeUpdate(t *testing.T) {
	results, err := Analyze(
		"UPDATE users SET name = 'alice' WHERE id = 3",
		dialect.Generic,
	)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "update", results[0].Kind)
	assert.Equal(t, "users", results[0].Tables[0].Name)
	require.Len(t, results[0].Filters, 1)
	assert.Equal(t, "id", results[0].Filters[0].Column)
}

func TestAnalyzeDelete(t *testing.T) {
	results, err := Analyze("DELETE FROM sessions WHERE user_id = 9", dialect.Generic)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "delete", results[0].Kind)
	assert.Equal(t, "sessions", results[0].Tables[0].Name)
}

func TestAnalyzeNoOpStatement(t *testing.T) {
	results, err := Analyze("COMMIT", dialect.Generic)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAnalyzeEmptyQueryErrors(t *testing.T) {
	_, err := Analyze("   ", dialect.Generic)
	assert.Error(t, err)
}

func TestAnalyzeUnrecognizedStatementErrors(t *testing.T) {
	_, err := Analyze("FROBNICATE everything", dialect.Generic)
	assert.Error(t, err)
}

func TestAnalyzeMultipleStatements(t *testing.T) {
	results, err := Analyze(
		"SELECT * FROM a WHERE id = 1; SELECT * FROM b WHERE id = 2;",
		dialect.Generic,
	)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Tables[0].Name)
	assert.Equal(t, "b", results[1].Tables[0].Name)
}
