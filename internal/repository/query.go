package repository

import (
	"strconv"
	"strings"
)

// OrderBy selects a fixed ORDER BY clause. Only the values declared here
// can reach SQL.
type OrderBy int

const (
	// OrderByName sorts alphabetically, ties broken by id.
	OrderByName OrderBy = iota
)

func (o OrderBy) clause() string {
	switch o {
	default:
		return "ORDER BY name ASC, id ASC"
	}
}

// SearchFilter describes one page of a (possibly filtered) listing.
// A blank Term matches every employee.
type SearchFilter struct {
	Term    string
	Limit   int
	Offset  int
	OrderBy OrderBy
}

const employeeColumns = "id, name, email, department, designation, date_of_joining"

// likeEscaper escapes LIKE metacharacters so the term matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds the ILIKE pattern for a substring match on term.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// query accumulates SQL text and its positional $N arguments.
type query struct {
	sb   strings.Builder
	args []any
}

func (q *query) write(s string) *query {
	q.sb.WriteString(s)
	return q
}

// arg appends v and writes its placeholder.
func (q *query) arg(v any) *query {
	q.args = append(q.args, v)
	q.sb.WriteString("$" + strconv.Itoa(len(q.args)))
	return q
}

func (q *query) String() string {
	return q.sb.String()
}

func (f SearchFilter) where(q *query) {
	term := strings.TrimSpace(f.Term)
	if term == "" {
		return
	}

	pattern := ContainsPattern(term)
	q.write(" WHERE (name ILIKE ").arg(pattern).
		write(" OR department ILIKE ").arg(pattern).
		write(")")
}

// CountQuery renders the pre-pagination count for the filter.
func (f SearchFilter) CountQuery() (string, []any) {
	q := &query{}
	q.write("SELECT COUNT(*) FROM employees")
	f.where(q)
	return q.String(), q.args
}

// PageQuery renders the ordered, paginated select for the filter.
func (f SearchFilter) PageQuery() (string, []any) {
	q := &query{}
	q.write("SELECT " + employeeColumns + " FROM employees")
	f.where(q)
	q.write(" " + f.OrderBy.clause())
	q.write(" LIMIT ").arg(f.Limit)
	q.write(" OFFSET ").arg(f.Offset)
	return q.String(), q.args
}
