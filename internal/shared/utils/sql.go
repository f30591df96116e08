package utils

import (
	"fmt"
	"strings"
)

func joinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// WhereBuilder accumulates WHERE clauses with positional pgx placeholders.
//
//	w := &WhereBuilder{}
//	w.Add("status = %s", "approved")  // status = $1
type WhereBuilder struct {
	clauses []string
	args    []any
}

// Add appends a clause; each %s in format is replaced by the next $n.
func (w *WhereBuilder) Add(format string, values ...any) {
	placeholders := make([]any, len(values))
	for i, v := range values {
		w.args = append(w.args, v)
		placeholders[i] = fmt.Sprintf("$%d", len(w.args))
	}
	w.clauses = append(w.clauses, fmt.Sprintf(format, placeholders...))
}

// Clause returns " WHERE ..." or "" when no clause was added.
func (w *WhereBuilder) Clause() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + joinWithAnd(w.clauses)
}

func (w *WhereBuilder) Args() []any {
	return w.args
}

// Next reserves the placeholder for an argument appended after the WHERE
// clause, e.g. LIMIT/OFFSET.
func (w *WhereBuilder) Next(value any) string {
	w.args = append(w.args, value)
	return fmt.Sprintf("$%d", len(w.args))
}
