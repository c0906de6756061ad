package mysql

import (
	"strings"

	"github.com/jmoiron/sqlx"

	"opera_mock/internal/domain"
)

// predicates is an AND-ed list of SQL conditions with their bind args.
// Zero-valued inputs add nothing, so an absent filter never means "match NULL".
type predicates struct {
	clauses []string
	args    []any
}

func (p *predicates) add(clause string, args ...any) {
	p.clauses = append(p.clauses, clause)
	p.args = append(p.args, args...)
}

func (p *predicates) eq(col, v string) {
	if v == "" {
		return
	}
	p.add(col+" = ?", v)
}

// contains is a case-insensitive substring match.
func (p *predicates) contains(col, v string) {
	if v == "" {
		return
	}
	p.add("LOWER("+col+") LIKE ?", "%"+escapeLike(strings.ToLower(v))+"%")
}

func (p *predicates) atLeast(col string, v any) { p.add(col+" >= ?", v) }

func (p *predicates) atMost(col string, v any) { p.add(col+" <= ?", v) }

func (p *predicates) in(col string, vals []string) {
	if len(vals) == 0 {
		return
	}
	p.add(col+" IN (?)", vals)
}

func (p predicates) where() string {
	if len(p.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.clauses, " AND ")
}

// pageQuery builds the bounded page query; countQuery the matching COUNT(*) over the same predicates.
func pageQuery(columns, from string, p predicates, orderBy string, pg domain.Page) (string, []any, error) {
	q := "SELECT " + strings.TrimSpace(columns) + " FROM " + from + p.where() + " ORDER BY " + orderBy + " LIMIT ? OFFSET ?"
	args := make([]any, 0, len(p.args)+2)
	args = append(args, p.args...)
	args = append(args, max(pg.Limit, 0), max(pg.Offset, 0))
	return sqlx.In(q, args...)
}

func countQuery(from string, p predicates) (string, []any, error) {
	return sqlx.In("SELECT COUNT(*) FROM "+from+p.where(), p.args...)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
