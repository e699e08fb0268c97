package sqlast

import (
	"fmt"
	"strings"

	"github.com/runger/vetline/internal/dialect"
	"github.com/runger/vetline/internal/sqllex"
)

// Analyze implements idor_analyze_sql's top-level entry point: parse
// query into one or more statements, then walk each to produce the
// tables/filters it touches. Per spec §7's fail-open contract, any
// internal panic (a malformed input defeating an assumption the hand
// rolled parser makes) is recovered into an error rather than crashing
// the caller.
func Analyze(query string, d dialect.SQL) (results []QueryResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = fmt.Errorf("sqlast: could not analyze query: %v", r)
		}
	}()

	statements, perr := ParseStatements(query, func(q string) []sqllex.Token {
		return sqllex.Tokenize(q, d)
	})
	if perr != nil {
		return nil, perr
	}

	for _, stmt := range statements {
		if err := analyzeStatement(stmt, &results); err != nil {
			return nil, err
		}
	}
	return results, nil
}

func analyzeStatement(stmt Statement, results *[]QueryResult) error {
	switch s := stmt.(type) {
	case SelectStatement:
		counter := 0
		return analyzeQueryWithCTEs(s.Query, results, &counter, map[string]bool{})
	case UpdateStatement:
		counter := 0
		return analyzeUpdate(s, results, &counter, map[string]bool{})
	case DeleteStatement:
		counter := 0
		return analyzeDelete(s, results, &counter, map[string]bool{})
	case InsertStatement:
		counter := 0
		return analyzeInsert(s, results, &counter, map[string]bool{})
	case NoOpStatement:
		return nil
	default:
		return fmt.Errorf("unrecognized SQL statement")
	}
}

func analyzeQueryWithCTEs(q *Query, results *[]QueryResult, counter *int, parentCTENames map[string]bool) error {
	if q == nil {
		return nil
	}
	cteNames := make(map[string]bool, len(parentCTENames))
	for k := range parentCTENames {
		cteNames[k] = true
	}
	if q.With != nil {
		for _, cte := range q.With.CTEs {
			cteNames[strings.ToLower(cte.Name)] = true
		}
		for _, cte := range q.With.CTEs {
			if err := analyzeQueryWithCTEs(cte.Query, results, counter, cteNames); err != nil {
				return err
			}
		}
	}
	return analyzeSetExpr(q.Body, results, counter, cteNames)
}

func analyzeSetExpr(se SetExpr, results *[]QueryResult, counter *int, cteNames map[string]bool) error {
	switch s := se.(type) {
	case nil:
		return nil
	case SetOperation:
		if err := analyzeSetExpr(s.Left, results, counter, cteNames); err != nil {
			return err
		}
		return analyzeSetExpr(s.Right, results, counter, cteNames)
	case QueryBody:
		return analyzeQueryWithCTEs(s.Query, results, counter, cteNames)
	case SelectBody:
		return analyzeSelectBody(s, results, counter, cteNames)
	case ValuesBody:
		return nil
	default:
		return nil
	}
}

func analyzeSelectBody(sb SelectBody, results *[]QueryResult, counter *int, cteNames map[string]bool) error {
	tables, filters, pairs, subqueries := collectSetExpr(sb, counter, cteNames)

	known := tablesToKnownSet(tables)
	filters = append(filters, resolveColColFilters(filters, pairs, known)...)

	*results = append(*results, QueryResult{Kind: "select", Tables: tables, Filters: filters})

	for _, sq := range subqueries {
		if err := analyzeQueryWithCTEs(sq, results, counter, cteNames); err != nil {
			return err
		}
	}
	return nil
}

func analyzeUpdate(stmt UpdateStatement, results *[]QueryResult, counter *int, cteNames map[string]bool) error {
	tables := extractTablesFromTableWithJoins(stmt.Table, cteNames)
	if stmt.From != nil {
		tables = append(tables, extractTablesFromTableWithJoins(*stmt.From, cteNames)...)
	}

	assignmentExprs := make([]Expr, 0, len(stmt.Assignments))
	for _, a := range stmt.Assignments {
		assignmentExprs = append(assignmentExprs, a.Value)
	}
	*counter += countPlaceholdersInExprs(assignmentExprs)
	assignmentSubqueries := extractSubqueriesFromExprs(assignmentExprs)

	var filters []FilterColumn
	var pairs []colColPair
	var subqueries []*Query
	if stmt.Where != nil {
		walkExpr(stmt.Where, counter, &filters, &pairs, &subqueries, false)
	}

	known := tablesToKnownSet(tables)
	filters = append(filters, resolveColColFilters(filters, pairs, known)...)

	*results = append(*results, QueryResult{Kind: "update", Tables: tables, Filters: filters})

	for _, sq := range assignmentSubqueries {
		if err := analyzeQueryWithCTEs(sq, results, counter, cteNames); err != nil {
			return err
		}
	}
	for _, sq := range subqueries {
		if err := analyzeQueryWithCTEs(sq, results, counter, cteNames); err != nil {
			return err
		}
	}
	return nil
}

func analyzeDelete(stmt DeleteStatement, results *[]QueryResult, counter *int, cteNames map[string]bool) error {
	var tables []TableRef
	for _, twj := range stmt.From {
		tables = append(tables, extractTablesFromTableWithJoins(twj, cteNames)...)
	}
	for _, twj := range stmt.Using {
		tables = append(tables, extractTablesFromTableWithJoins(twj, cteNames)...)
	}

	var filters []FilterColumn
	var pairs []colColPair
	var subqueries []*Query
	if stmt.Where != nil {
		walkExpr(stmt.Where, counter, &filters, &pairs, &subqueries, false)
	}

	known := tablesToKnownSet(tables)
	filters = append(filters, resolveColColFilters(filters, pairs, known)...)

	*results = append(*results, QueryResult{Kind: "delete", Tables: tables, Filters: filters})

	for _, sq := range subqueries {
		if err := analyzeQueryWithCTEs(sq, results, counter, cteNames); err != nil {
			return err
		}
	}
	return nil
}

func analyzeInsert(stmt InsertStatement, results *[]QueryResult, counter *int, cteNames map[string]bool) error {
	table := TableRef{Name: strings.Join(stmt.Table, "."), Alias: stmt.Alias}

	insertColumns := extractInsertColumns(stmt.Source, stmt.Columns, counter)
	*results = append(*results, QueryResult{Kind: "insert", Tables: []TableRef{table}, InsertColumns: insertColumns})

	if insertColumns == nil && stmt.Source != nil {
		return analyzeQueryWithCTEs(stmt.Source, results, counter, cteNames)
	}
	return nil
}

func extractInsertColumns(source *Query, columns []string, counter *int) [][]InsertColumn {
	if source == nil {
		return nil
	}
	vb, ok := source.Body.(ValuesBody)
	if !ok {
		return nil
	}

	rows := make([][]InsertColumn, 0, len(vb.Rows))
	for _, row := range vb.Rows {
		var cols []InsertColumn
		for i, expr := range row {
			if i >= len(columns) {
				continue
			}
			placeholderNum := -1
			hasNum := false
			if isMySQLPlaceholder(expr) {
				placeholderNum = *counter
				hasNum = true
				*counter++
			}
			cols = append(cols, InsertColumn{
				Column:            columns[i],
				Value:             exprToValueString(expr),
				PlaceholderNumber: placeholderNum,
				HasPlaceholderNum: hasNum,
				IsPlaceholder:     isPlaceholder(expr),
			})
		}
		rows = append(rows, cols)
	}
	return rows
}

// --- table/from collection, flattening non-lateral derived tables into
// the enclosing scope while deferring LATERAL and WHERE/ON subqueries. ---

func collectSetExpr(se SetExpr, counter *int, cteNames map[string]bool) (tables []TableRef, filters []FilterColumn, pairs []colColPair, subqueries []*Query) {
	switch s := se.(type) {
	case SelectBody:
		for _, twj := range s.From {
			t, f, p, sq := collectTableWithJoins(twj, counter, cteNames)
			tables = append(tables, t...)
			filters = append(filters, f...)
			pairs = append(pairs, p...)
			subqueries = append(subqueries, sq...)
		}
		if s.Where != nil {
			walkExpr(s.Where, counter, &filters, &pairs, &subqueries, false)
		}
		return
	case SetOperation:
		lt, lf, lp, lsq := collectSetExpr(s.Left, counter, cteNames)
		rt, rf, rp, rsq := collectSetExpr(s.Right, counter, cteNames)
		return append(lt, rt...), append(lf, rf...), append(lp, rp...), append(lsq, rsq...)
	case QueryBody:
		return collectSetExpr(s.Query.Body, counter, cteNames)
	default:
		return nil, nil, nil, nil
	}
}

func collectTableWithJoins(twj TableWithJoins, counter *int, cteNames map[string]bool) (tables []TableRef, filters []FilterColumn, pairs []colColPair, subqueries []*Query) {
	t1, f1, p1, sq1 := collectTableFactor(twj.Relation, counter, cteNames)
	tables = append(tables, t1...)
	filters = append(filters, f1...)
	pairs = append(pairs, p1...)
	subqueries = append(subqueries, sq1...)

	for _, j := range twj.Joins {
		t2, f2, p2, sq2 := collectTableFactor(j.Relation, counter, cteNames)
		tables = append(tables, t2...)
		filters = append(filters, f2...)
		pairs = append(pairs, p2...)
		subqueries = append(subqueries, sq2...)

		if j.Constraint != nil {
			walkExpr(j.Constraint, counter, &filters, &pairs, &subqueries, false)
		}
	}
	return
}

func collectTableFactor(tf TableFactor, counter *int, cteNames map[string]bool) (tables []TableRef, filters []FilterColumn, pairs []colColPair, subqueries []*Query) {
	switch t := tf.(type) {
	case NamedTable:
		name := strings.Join(t.Name, ".")
		if !cteNames[strings.ToLower(name)] {
			tables = append(tables, TableRef{Name: name, Alias: t.Alias})
		}
		return
	case DerivedTable:
		if t.Lateral {
			subqueries = append(subqueries, t.Query)
			return
		}
		// Non-LATERAL subqueries in FROM are flattened into the enclosing
		// scope rather than deferred: a LATERAL subquery can reference
		// sibling FROM columns, so it's analyzed on its own; a plain
		// derived table can't, so its tables/filters belong to this level.
		return collectSetExpr(t.Query.Body, counter, cteNames)
	default:
		return nil, nil, nil, nil
	}
}

func tableRefFromFactor(tf TableFactor) (TableRef, bool) {
	nt, ok := tf.(NamedTable)
	if !ok {
		return TableRef{}, false
	}
	return TableRef{Name: strings.Join(nt.Name, "."), Alias: nt.Alias}, true
}

func extractTablesFromTableWithJoins(twj TableWithJoins, cteNames map[string]bool) []TableRef {
	var out []TableRef
	if ref, ok := tableRefFromFactor(twj.Relation); ok && !cteNames[strings.ToLower(ref.Name)] {
		out = append(out, ref)
	}
	for _, j := range twj.Joins {
		if ref, ok := tableRefFromFactor(j.Relation); ok && !cteNames[strings.ToLower(ref.Name)] {
			out = append(out, ref)
		}
	}
	return out
}

// --- expression walking: placeholders, equality filters, column-to-column
// pairs, and deferred subqueries. Mirrors idor_analyze_sql.rs's walk_expr,
// using a threaded in_or bool rather than a saturating depth counter. ---

type colColPair struct {
	LeftTable     string
	HasLeftTable  bool
	LeftCol       string
	RightTable    string
	HasRightTable bool
	RightCol      string
}

func walkExpr(e Expr, counter *int, filters *[]FilterColumn, pairs *[]colColPair, subqueries *[]*Query, inOr bool) {
	if e == nil {
		return
	}
	switch t := e.(type) {
	case Placeholder:
		if t.Text == "?" {
			*counter++
		}
	case Subquery:
		*subqueries = append(*subqueries, t.Query)
	case InSubquery:
		walkExpr(t.Expr, counter, filters, pairs, subqueries, inOr)
		*subqueries = append(*subqueries, t.Subquery)
	case Exists:
		*subqueries = append(*subqueries, t.Subquery)
	case BinOp:
		newInOr := inOr || t.Op == "or"
		if !inOr {
			if f, ok := tryExtractFilter(t, *counter); ok {
				*filters = append(*filters, f)
			} else if p, ok := tryExtractColColPair(t); ok {
				*pairs = append(*pairs, p)
			}
		}
		walkExpr(t.Left, counter, filters, pairs, subqueries, newInOr)
		walkExpr(t.Right, counter, filters, pairs, subqueries, newInOr)
	case Nested:
		walkExpr(t.Inner, counter, filters, pairs, subqueries, inOr)
	case Unary:
		walkExpr(t.Inner, counter, filters, pairs, subqueries, inOr)
	}
}

func tryExtractFilter(t BinOp, placeholderCounter int) (FilterColumn, bool) {
	if t.Op != "=" {
		return FilterColumn{}, false
	}
	if f, ok := extractColumnValuePair(t.Left, t.Right, placeholderCounter); ok {
		return f, true
	}
	if f, ok := extractColumnValuePair(t.Right, t.Left, placeholderCounter); ok {
		return f, true
	}
	return FilterColumn{}, false
}

func extractColumnValuePair(maybeColumn, maybeValue Expr, placeholderCounter int) (FilterColumn, bool) {
	table, hasTable, col, ok := extractColumnRef(maybeColumn)
	if !ok {
		return FilterColumn{}, false
	}
	if isColumnRef(maybeValue) {
		return FilterColumn{}, false
	}
	placeholderNum := -1
	hasNum := false
	if isMySQLPlaceholder(maybeValue) {
		placeholderNum = placeholderCounter
		hasNum = true
	}
	return FilterColumn{
		Table:             table,
		HasTable:          hasTable,
		Column:            col,
		Value:             exprToValueString(maybeValue),
		PlaceholderNumber: placeholderNum,
		HasPlaceholderNum: hasNum,
		IsPlaceholder:     isPlaceholder(maybeValue),
	}, true
}

func tryExtractColColPair(t BinOp) (colColPair, bool) {
	if t.Op != "=" {
		return colColPair{}, false
	}
	lt, hasLT, lc, ok1 := extractColumnRef(t.Left)
	rt, hasRT, rc, ok2 := extractColumnRef(t.Right)
	if !ok1 || !ok2 {
		return colColPair{}, false
	}
	return colColPair{LeftTable: lt, HasLeftTable: hasLT, LeftCol: lc, RightTable: rt, HasRightTable: hasRT, RightCol: rc}, true
}

func extractColumnRef(e Expr) (table string, hasTable bool, col string, ok bool) {
	switch t := e.(type) {
	case Ident:
		return "", false, t.Name, true
	case CompoundIdent:
		if len(t.Parts) >= 2 {
			return t.Parts[len(t.Parts)-2], true, t.Parts[len(t.Parts)-1], true
		}
		if len(t.Parts) == 1 {
			return "", false, t.Parts[0], true
		}
		return "", false, "", false
	default:
		return "", false, "", false
	}
}

func isColumnRef(e Expr) bool {
	_, hasTable, _, ok := extractColumnRef(e)
	_ = hasTable
	return ok
}

func isTableInScope(table string, hasTable bool, known map[string]bool) bool {
	if !hasTable {
		return true
	}
	return known[strings.ToLower(table)]
}

func tablesToKnownSet(tables []TableRef) map[string]bool {
	known := make(map[string]bool, len(tables)*2)
	for _, t := range tables {
		known[strings.ToLower(t.Name)] = true
		if t.Alias != "" {
			known[strings.ToLower(t.Alias)] = true
		}
	}
	return known
}

type filterKey struct {
	table    string
	hasTable bool
	col      string
}

// resolveColColFilters implements the fixpoint transitive closure over
// column-to-column equality pairs (JOIN chains): if one side of a pair
// is already pinned to a known value, propagate that value to the other
// side, repeating until a pass adds nothing new.
func resolveColColFilters(filters []FilterColumn, pairs []colColPair, known map[string]bool) []FilterColumn {
	if len(pairs) == 0 {
		return nil
	}

	colValues := make(map[filterKey]FilterColumn, len(filters))
	for _, f := range filters {
		k := filterKey{f.Table, f.HasTable, f.Column}
		if _, exists := colValues[k]; !exists {
			colValues[k] = f
		}
	}

	var additional []FilterColumn
	for {
		addedInPass := false
		for _, p := range pairs {
			leftKey := filterKey{p.LeftTable, p.HasLeftTable, p.LeftCol}
			rightKey := filterKey{p.RightTable, p.HasRightTable, p.RightCol}

			if _, ok := colValues[leftKey]; !ok {
				if resolved, ok := colValues[rightKey]; ok && isTableInScope(p.LeftTable, p.HasLeftTable, known) {
					nf := FilterColumn{
						Table: p.LeftTable, HasTable: p.HasLeftTable, Column: p.LeftCol,
						Value: resolved.Value, PlaceholderNumber: resolved.PlaceholderNumber,
						HasPlaceholderNum: resolved.HasPlaceholderNum, IsPlaceholder: resolved.IsPlaceholder,
					}
					colValues[leftKey] = nf
					additional = append(additional, nf)
					addedInPass = true
				}
			}
			if _, ok := colValues[rightKey]; !ok {
				if resolved, ok := colValues[leftKey]; ok && isTableInScope(p.RightTable, p.HasRightTable, known) {
					nf := FilterColumn{
						Table: p.RightTable, HasTable: p.HasRightTable, Column: p.RightCol,
						Value: resolved.Value, PlaceholderNumber: resolved.PlaceholderNumber,
						HasPlaceholderNum: resolved.HasPlaceholderNum, IsPlaceholder: resolved.IsPlaceholder,
					}
					colValues[rightKey] = nf
					additional = append(additional, nf)
					addedInPass = true
				}
			}
		}
		if !addedInPass {
			break
		}
	}
	return additional
}

func isMySQLPlaceholder(e Expr) bool {
	p, ok := e.(Placeholder)
	return ok && p.Text == "?"
}

func isPlaceholder(e Expr) bool {
	_, ok := e.(Placeholder)
	return ok
}

func extractSubqueriesFromExprs(exprs []Expr) []*Query {
	var out []*Query
	for _, e := range exprs {
		if sq, ok := directSubquery(e); ok {
			out = append(out, sq)
		}
	}
	return out
}

func directSubquery(e Expr) (*Query, bool) {
	switch t := e.(type) {
	case Subquery:
		return t.Query, true
	case InSubquery:
		return t.Subquery, true
	case Exists:
		return t.Subquery, true
	default:
		return nil, false
	}
}

// countPlaceholdersInExprs counts "?" placeholders reachable within each
// expr, not recursing into nested subqueries — those get their own
// counter advance when analyzed as a deferred QueryResult, so descending
// into them here would double count.
func countPlaceholdersInExprs(exprs []Expr) int {
	n := 0
	for _, e := range exprs {
		n += countPlaceholders(e)
	}
	return n
}

func countPlaceholders(e Expr) int {
	switch t := e.(type) {
	case Placeholder:
		if t.Text == "?" {
			return 1
		}
		return 0
	case BinOp:
		return countPlaceholders(t.Left) + countPlaceholders(t.Right)
	case Nested:
		return countPlaceholders(t.Inner)
	case Unary:
		return countPlaceholders(t.Inner)
	default:
		return 0
	}
}

// exprToValueString renders an expression's canonical text, the way
// expr_to_value_string dispatches on sqlparser's Value variants: a
// placeholder keeps its marker text, a string literal is unquoted, and
// everything else falls back to a best-effort reconstruction.
func exprToValueString(e Expr) string {
	switch t := e.(type) {
	case Placeholder:
		return t.Text
	case StringLit:
		return stripSQLStringQuotes(t.Text)
	case NumberLit:
		return t.Text
	case Ident:
		return t.Name
	case CompoundIdent:
		return strings.Join(t.Parts, ".")
	case Other:
		return t.Text
	case Nested:
		return "(" + exprToValueString(t.Inner) + ")"
	case Unary:
		return t.Op + " " + exprToValueString(t.Inner)
	case BinOp:
		return exprToValueString(t.Left) + " " + t.Op + " " + exprToValueString(t.Right)
	default:
		return ""
	}
}

func stripSQLStringQuotes(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	quote := raw[0]
	if raw[len(raw)-1] != quote {
		return raw
	}
	inner := raw[1 : len(raw)-1]
	doubled := string(quote) + string(quote)
	return strings.ReplaceAll(inner, doubled, string(quote))
}
