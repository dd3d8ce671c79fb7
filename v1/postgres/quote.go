package postgres

import (
	"strings"

	"github.com/lib/pq"
)

// QuoteLiteral renders s as a PostgreSQL string literal.
// A backslash in s switches the literal to the E'...' form.
func (Dialect) QuoteLiteral(s string) string {
	return pq.QuoteLiteral(s)
}

// SchemaStatement returns the search_path directive for a comma separated
// list of schemas. Each schema is quoted as an identifier unless it is quoted
// already.
func (Dialect) SchemaStatement(schema string) (string, bool) {
	parts := strings.Split(schema, ",")
	quoted := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return "", false
		}
		if !strings.HasPrefix(p, `"`) {
			p = pq.QuoteIdentifier(p)
		}
		quoted = append(quoted, p)
	}
	return "SET search_path TO " + strings.Join(quoted, ", "), true
}

// CharsetStatement returns the client encoding directive.
func (d Dialect) CharsetStatement(charset string) string {
	return "SET NAMES " + d.QuoteLiteral(charset)
}

// BackslashEscapes reports false: with standard_conforming_strings only
// E'...' literals treat backslashes as escapes.
func (Dialect) BackslashEscapes() bool {
	return false
}
