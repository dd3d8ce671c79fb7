package mariadb

import "strings"

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	"\x00", `\0`,
	"\n", `\n`,
	"\r", `\r`,
	"\x1a", `\Z`,
)

// QuoteLiteral renders s as a single quoted string literal using the escapes
// of mysql_real_escape_string. It assumes NO_BACKSLASH_ESCAPES is off.
func (Dialect) QuoteLiteral(s string) string {
	return "'" + literalEscaper.Replace(s) + "'"
}

// QuoteIdentifier wraps name in backticks.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// SchemaStatement switches the default database. MariaDB has no search path,
// so exactly one name is accepted.
func (Dialect) SchemaStatement(schema string) (string, bool) {
	schema = strings.TrimSpace(schema)
	if schema == "" || strings.Contains(schema, ",") {
		return "", false
	}
	return "USE " + QuoteIdentifier(schema), true
}

// CharsetStatement returns the connection character set directive.
func (d Dialect) CharsetStatement(charset string) string {
	return "SET NAMES " + d.QuoteLiteral(charset)
}

// BackslashEscapes reports true: MariaDB reads \' inside '...' as a quote
// unless NO_BACKSLASH_ESCAPES is set.
func (Dialect) BackslashEscapes() bool {
	return true
}
