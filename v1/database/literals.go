package database

import (
	"strconv"
	"strings"
)

// maskedQuery is a statement whose quoted text, comments and `::` casts are
// replaced by NUL-delimited tokens, so placeholder rewriting only sees code.
type maskedQuery struct {
	text    string
	regions []string
}

// maskLiterals hides '...', E'...', "...", `...`, $tag$...$tag$, -- and /* */
// regions and `::` from query. With backslashEscapes a backslash escapes the
// next character inside '...' as MySQL does; otherwise only E'...' does.
func maskLiterals(query string, backslashEscapes bool) maskedQuery {
	var (
		m maskedQuery
		b strings.Builder
	)
	hide := func(region string) {
		b.WriteByte(0)
		b.WriteString(strconv.Itoa(len(m.regions)))
		b.WriteByte(0)
		m.regions = append(m.regions, region)
	}

	n := len(query)
	for i := 0; i < n; {
		c := query[i]
		end := -1
		switch {
		case c == '\'':
			escapes := backslashEscapes ||
				(i > 0 && (query[i-1] == 'E' || query[i-1] == 'e') && (i == 1 || !isIdentByte(query[i-2])))
			end = quotedEnd(query, i, '\'', escapes)
		case c == '"' || c == '`':
			end = quotedEnd(query, i, c, false)
		case c == '-' && i+1 < n && query[i+1] == '-':
			end = strings.IndexByte(query[i:], '\n')
			if end < 0 {
				end = n
			} else {
				end += i
			}
		case c == '/' && i+1 < n && query[i+1] == '*':
			end = strings.Index(query[i+2:], "*/")
			if end < 0 {
				end = n
			} else {
				end += i + 4
			}
		case c == '$' && (i == 0 || !isIdentByte(query[i-1])):
			end = dollarQuoteEnd(query, i)
		case c == ':' && i+1 < n && query[i+1] == ':':
			end = i + 2
		}

		if end < 0 {
			b.WriteByte(c)
			i++
			continue
		}
		hide(query[i:end])
		i = end
	}

	m.text = b.String()
	return m
}

// unmask puts the hidden regions back into s, which is m.text after
// placeholder rewriting.
func (m maskedQuery) unmask(s string) string {
	if len(m.regions) == 0 {
		return s
	}

	var b strings.Builder
	for {
		start := strings.IndexByte(s, 0)
		if start < 0 {
			b.WriteString(s)
			return b.String()
		}
		stop := strings.IndexByte(s[start+1:], 0)
		if stop < 0 {
			b.WriteString(s)
			return b.String()
		}
		stop += start + 1

		b.WriteString(s[:start])
		idx, err := strconv.Atoi(s[start+1 : stop])
		if err != nil || idx >= len(m.regions) {
			b.WriteString(s[start : stop+1])
		} else {
			b.WriteString(m.regions[idx])
		}
		s = s[stop+1:]
	}
}

// quotedEnd returns the index just past the quote closing the region that
// opens at start. A doubled quote is an escaped quote. An unterminated region
// runs to the end of the query.
func quotedEnd(query string, start int, quote byte, escapes bool) int {
	for j := start + 1; j < len(query); j++ {
		switch query[j] {
		case '\\':
			if escapes {
				j++
			}
		case quote:
			if j+1 < len(query) && query[j+1] == quote {
				j++
				continue
			}
			return j + 1
		}
	}
	return len(query)
}

// dollarQuoteEnd returns the index just past a $tag$...$tag$ body starting at
// start, or -1 when no dollar quote starts there ($1 style parameters, or an
// opening tag without a closing one).
func dollarQuoteEnd(query string, start int) int {
	j := start + 1
	for j < len(query) && query[j] != '$' {
		c := query[j]
		if !isIdentByte(c) || (j == start+1 && c >= '0' && c <= '9') {
			return -1
		}
		j++
	}
	if j >= len(query) {
		return -1
	}

	tag := query[start : j+1]
	closing := strings.Index(query[j+1:], tag)
	if closing < 0 {
		return -1
	}
	return j + 1 + closing + len(tag)
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
