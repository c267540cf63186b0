// Package database builds the parameterised SQL used by the resource repositories.
package database

import (
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Table describes a resource table: its name, the id column and the columns returned by reads.
type Table struct {
	Name    string
	IDCol   string
	Columns []string
	// Casts maps a column to a SQL cast applied when selecting it (e.g. id -> text).
	Casts map[string]string
}

// SelectList renders the quoted, cast-aware column list.
func (t Table) SelectList() string {
	parts := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		col := sanitizeIdentifier(c)
		if cast, ok := t.Casts[c]; ok {
			col = col + "::" + cast + " AS " + col
		}
		parts[i] = col
	}
	return strings.Join(parts, ", ")
}

// SelectAll renders "SELECT cols FROM table ORDER BY ...". Order terms are "column" or
// "column DESC"; unknown directions fall back to ASC.
func (t Table) SelectAll(orderBy ...string) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(t.SelectList())
	b.WriteString(" FROM ")
	b.WriteString(sanitizeIdentifier(t.Name))
	if len(orderBy) > 0 {
		b.WriteString(" ORDER BY ")
		for i, term := range orderBy {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(orderTerm(term))
		}
	}
	return b.String()
}

// SelectByID renders a single-row lookup by the id column ($1).
func (t Table) SelectByID() string {
	return "SELECT " + t.SelectList() + " FROM " + sanitizeIdentifier(t.Name) +
		" WHERE " + t.idPredicate(1)
}

// Insert renders "INSERT INTO table (cols) VALUES ($1..) RETURNING cols".
func (t Table) Insert(cols ...string) string {
	quoted := make([]string, len(cols))
	params := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = sanitizeIdentifier(c)
		params[i] = "$" + strconv.Itoa(i+1)
	}
	return "INSERT INTO " + sanitizeIdentifier(t.Name) +
		" (" + strings.Join(quoted, ", ") + ") VALUES (" + strings.Join(params, ", ") + ")" +
		" RETURNING " + t.SelectList()
}

// Update renders an UPDATE for the set clause followed by the id predicate. The id is appended
// as the final argument.
func (t Table) Update(set *SetClause, id string) (string, []any) {
	args := append(set.Args(), id)
	q := "UPDATE " + sanitizeIdentifier(t.Name) + " SET " + set.String() +
		" WHERE " + t.idPredicate(len(args)) + " RETURNING " + t.SelectList()
	return q, args
}

// Delete renders a delete by id ($1).
func (t Table) Delete() string {
	return "DELETE FROM " + sanitizeIdentifier(t.Name) + " WHERE " + t.idPredicate(1)
}

func (t Table) idPredicate(n int) string {
	col := sanitizeIdentifier(t.IDCol)
	if cast, ok := t.Casts[t.IDCol]; ok {
		col = col + "::" + cast
	}
	return col + " = $" + strconv.Itoa(n)
}

// SetClause accumulates "col = $n" assignments for partial updates.
type SetClause struct {
	parts []string
	args  []any
}

// Set adds an assignment.
func (s *SetClause) Set(col string, v any) *SetClause {
	s.args = append(s.args, v)
	s.parts = append(s.parts, sanitizeIdentifier(col)+" = $"+strconv.Itoa(len(s.args)))
	return s
}

// Len reports the number of assignments.
func (s *SetClause) Len() int { return len(s.parts) }

// Args returns a copy of the bound arguments in placeholder order.
func (s *SetClause) Args() []any {
	out := make([]any, len(s.args))
	copy(out, s.args)
	return out
}

func (s *SetClause) String() string { return strings.Join(s.parts, ", ") }

func orderTerm(term string) string {
	fields := strings.Fields(term)
	if len(fields) == 0 {
		return ""
	}
	dir := "ASC"
	if len(fields) > 1 && strings.EqualFold(fields[1], "desc") {
		dir = "DESC"
	}
	return sanitizeIdentifier(fields[0]) + " " + dir
}

func sanitizeIdentifier(ident string) string {
	return pgx.Identifier{ident}.Sanitize()
}
