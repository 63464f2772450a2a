package database

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fadilmartias/talent-match/internal/matching"
	"github.com/fadilmartias/talent-match/internal/model"
	"gorm.io/gorm"
)

// textIndex describes the matched columns of one index table.
type textIndex struct {
	key     string
	columns []string
}

var textIndexes = map[string]textIndex{
	model.ProjectSearchTable:    {key: "project_id", columns: model.ProjectSearchTextColumns},
	model.FreelancerSearchTable: {key: "freelancer_id", columns: model.FreelancerSearchTextColumns},
}

// FieldMatch scores one column of an index table against a query.
type FieldMatch struct {
	Column string
	Query  matching.Query
	Weight float64
}

// TextMatch is a dialect's rendering of weighted field matches over one
// index table. Join is appended to the FROM clause; Score is a non-negative
// relevance where higher is better; Predicate holds when any field matches.
type TextMatch struct {
	Join          string
	Score         string
	ScoreArgs     []any
	Predicate     string
	PredicateArgs []any
}

// Dialect supplies the backing store's ranked text-match primitive and its
// locking for index writes. Column names passed in must already be
// whitelisted; they are interpolated into SQL.
type Dialect interface {
	Name() string
	// TextMatch renders fields against table. Columns must belong to the
	// table's text index.
	TextMatch(table string, fields []FieldMatch) (TextMatch, error)
	// LockIndex serializes writers of one index table for the rest of tx.
	LockIndex(tx *gorm.DB, table string) error
	// TextIndexDDL returns the statements that build the table's text index.
	TextIndexDDL(table string) []string
}

// PostgresDialect matches with full-text search under the 'simple'
// configuration (lowercasing, no stemming, no stop words).
type PostgresDialect struct{}

func (PostgresDialect) Name() string { return "postgres" }

// TextMatch sums the weighted ts_rank of every field.
func (PostgresDialect) TextMatch(table string, fields []FieldMatch) (TextMatch, error) {
	if _, err := lookupIndex(table, fields); err != nil {
		return TextMatch{}, err
	}
	var (
		terms []string
		preds []string
		out   TextMatch
	)
	for _, f := range fields {
		vec := tsvector(table + "." + f.Column)
		arg := f.Query.TSQuery()
		terms = append(terms, fmt.Sprintf("%s * ts_rank(%s, to_tsquery('simple', ?))", FloatLiteral(f.Weight), vec))
		out.ScoreArgs = append(out.ScoreArgs, arg)
		preds = append(preds, fmt.Sprintf("%s @@ to_tsquery('simple', ?)", vec))
		out.PredicateArgs = append(out.PredicateArgs, arg)
	}
	out.Score = "(" + strings.Join(terms, " + ") + ")"
	out.Predicate = "(" + strings.Join(preds, " OR ") + ")"
	return out, nil
}

func (PostgresDialect) LockIndex(tx *gorm.DB, table string) error {
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", table).Error
}

func (PostgresDialect) TextIndexDDL(table string) []string {
	idx, ok := textIndexes[table]
	if !ok {
		return nil
	}
	stmts := make([]string, 0, len(idx.columns))
	for _, c := range idx.columns {
		stmts = append(stmts, fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS idx_%s_%s_fts ON %s USING GIN (%s)",
			table, c, table, tsvector(c),
		))
	}
	return stmts
}

func tsvector(column string) string {
	return fmt.Sprintf("to_tsvector('simple', coalesce(%s, ''))", column)
}

// SQLiteDialect matches through an external-content FTS5 table per index
// table, kept in sync by triggers. Scores are bm25 with per-column weights.
type SQLiteDialect struct{}

func (SQLiteDialect) Name() string { return "sqlite" }

// TextMatch restricts each query to its column with an FTS5 column filter
// and weights the columns through bm25. bm25 is negative, better is lower.
func (SQLiteDialect) TextMatch(table string, fields []FieldMatch) (TextMatch, error) {
	idx, err := lookupIndex(table, fields)
	if err != nil {
		return TextMatch{}, err
	}
	fts := ftsTable(table)

	weights := make(map[string]float64, len(fields))
	exprs := make([]string, 0, len(fields))
	for _, f := range fields {
		weights[f.Column] += f.Weight
		exprs = append(exprs, FTS5Expr(f.Column, f.Query))
	}
	bm25 := []string{fts}
	for _, c := range idx.columns {
		bm25 = append(bm25, FloatLiteral(weights[c]))
	}

	return TextMatch{
		Join:          fmt.Sprintf("JOIN %s ON %s.rowid = %s.%s", fts, fts, table, idx.key),
		Score:         fmt.Sprintf("(-bm25(%s))", strings.Join(bm25, ", ")),
		Predicate:     fts + " MATCH ?",
		PredicateArgs: []any{strings.Join(exprs, " OR ")},
	}, nil
}

// LockIndex is a no-op: SQLite admits one writer at a time and write
// transactions are opened with BEGIN IMMEDIATE.
func (SQLiteDialect) LockIndex(*gorm.DB, string) error { return nil }

// TextIndexDDL creates the FTS5 table, its sync triggers, and reindexes the
// content so rows written before the table existed are searchable.
func (SQLiteDialect) TextIndexDDL(table string) []string {
	idx, ok := textIndexes[table]
	if !ok {
		return nil
	}
	fts := ftsTable(table)
	cols := strings.Join(idx.columns, ", ")
	newCols := prefixed("new.", idx.columns)
	oldCols := prefixed("old.", idx.columns)

	return []string{
		fmt.Sprintf(
			"CREATE VIRTUAL TABLE IF NOT EXISTS %s USING fts5(%s, content='%s', content_rowid='%s', tokenize='unicode61 remove_diacritics 0')",
			fts, cols, table, idx.key,
		),
		fmt.Sprintf(
			"CREATE TRIGGER IF NOT EXISTS %s_ai AFTER INSERT ON %s BEGIN INSERT INTO %s(rowid, %s) VALUES (new.%s, %s); END",
			fts, table, fts, cols, idx.key, newCols,
		),
		fmt.Sprintf(
			"CREATE TRIGGER IF NOT EXISTS %s_ad AFTER DELETE ON %s BEGIN INSERT INTO %s(%s, rowid, %s) VALUES ('delete', old.%s, %s); END",
			fts, table, fts, fts, cols, idx.key, oldCols,
		),
		fmt.Sprintf(
			"CREATE TRIGGER IF NOT EXISTS %s_au AFTER UPDATE ON %s BEGIN "+
				"INSERT INTO %s(%s, rowid, %s) VALUES ('delete', old.%s, %s); "+
				"INSERT INTO %s(rowid, %s) VALUES (new.%s, %s); END",
			fts, table, fts, fts, cols, idx.key, oldCols, fts, cols, idx.key, newCols,
		),
		fmt.Sprintf("INSERT INTO %s(%s) VALUES ('rebuild')", fts, fts),
	}
}

// FTS5Expr renders q as an FTS5 query limited to column: tokens are quoted
// and joined with OR for MatchAny, AND for MatchAll.
func FTS5Expr(column string, q matching.Query) string {
	tokens := q.Tokens
	if len(tokens) == 0 {
		tokens = []string{matching.NoMatchToken}
	}
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	op := " OR "
	if q.Mode == matching.MatchAll {
		op = " AND "
	}
	return fmt.Sprintf("{%s} : (%s)", column, strings.Join(quoted, op))
}

// FloatLiteral renders a literal that both dialects read as a real number.
func FloatLiteral(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func lookupIndex(table string, fields []FieldMatch) (textIndex, error) {
	idx, ok := textIndexes[table]
	if !ok {
		return textIndex{}, fmt.Errorf("%w: no text index on %s", matching.ErrUnknownField, table)
	}
	if len(fields) == 0 {
		return textIndex{}, fmt.Errorf("text match on %s has no fields", table)
	}
	for _, f := range fields {
		if !contains(idx.columns, f.Column) {
			return textIndex{}, fmt.Errorf("%w: %q on %s", matching.ErrUnknownField, f.Column, table)
		}
	}
	return idx, nil
}

func ftsTable(table string) string { return table + "_fts" }

func prefixed(prefix string, columns []string) string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = prefix + c
	}
	return strings.Join(out, ", ")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
