// Package search builds case-insensitive substring filters from free text
// without letting the text act as pattern syntax.
package search

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

const (
	escapeChar = '\\'
	wildcard   = "%"
)

// EscapeLike prefixes every %, _ and \ in term with a backslash so that
// they match literally in a LIKE/ILIKE pattern.
func EscapeLike(term string) string {
	var b strings.Builder
	b.Grow(len(term))
	for _, r := range term {
		switch r {
		case '%', '_', escapeChar:
			b.WriteRune(escapeChar)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ContainsPattern returns the escaped term wrapped in wildcards.
func ContainsPattern(term string) string {
	return wildcard + EscapeLike(term) + wildcard
}

// ILikeAny matches term against each field, OR-joined in the given order.
func ILikeAny(fields []string, term string) sq.Or {
	pattern := ContainsPattern(term)
	cond := make(sq.Or, 0, len(fields))
	for _, field := range fields {
		cond = append(cond, sq.ILike{field: pattern})
	}
	return cond
}

// FilterExpression renders the same condition as a PostgREST "or" filter,
// e.g. name.ilike."%gedung%",location.ilike."%gedung%". The pattern is
// double-quoted so commas, dots and parentheses in term stay inside the value.
func FilterExpression(fields []string, term string) string {
	value := quoteFilterValue(ContainsPattern(term))
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+".ilike."+value)
	}
	return strings.Join(parts, ",")
}

var filterValueEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quoteFilterValue(v string) string {
	return `"` + filterValueEscaper.Replace(v) + `"`
}
