package database

import (
	"fmt"
	"strings"
)

// Field is one column/value pair.
type Field struct {
	Column string
	Value  any
}

// Data is an ordered list of column/value pairs. Statements built from it
// list columns and capture values in this order.
type Data []Field

// Cols builds Data from alternating column/value arguments. It panics on an
// odd argument count or a non-string column, both programming errors.
//
//	database.Cols("name", "Ann", "age", 30)
func Cols(pairs ...any) Data {
	if len(pairs)%2 != 0 {
		panic("database: Cols needs column/value pairs")
	}
	data := make(Data, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		column, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("database: Cols column %d is %T, not string", i/2, pairs[i]))
		}
		data = append(data, Field{Column: column, Value: pairs[i+1]})
	}
	return data
}

// Columns returns the column names in order.
func (d Data) Columns() []string {
	out := make([]string, len(d))
	for i, f := range d {
		out[i] = f.Column
	}
	return out
}

// Values returns the values in order.
func (d Data) Values() []any {
	out := make([]any, len(d))
	for i, f := range d {
		out[i] = f.Value
	}
	return out
}

type assignmentKind int

const (
	assignColumn assignmentKind = iota
	assignExpr
	assignRaw
)

// Assignment is one entry of an UPDATE SET list. Build it with Assign, Expr
// or Raw.
type Assignment struct {
	kind  assignmentKind
	text  string
	value any
	args  []any
}

// Assign sets column to a bound value: `column = ?`.
func Assign(column string, value any) Assignment {
	return Assignment{kind: assignColumn, text: column, value: value}
}

// Expr adds fragment verbatim and binds args to the placeholders it contains.
//
//	database.Expr("visits = visits + ?", 1)
func Expr(fragment string, args ...any) Assignment {
	return Assignment{kind: assignExpr, text: fragment, args: args}
}

// Raw adds fragment verbatim without binding anything.
//
//	database.Raw("updated_at = now()")
func Raw(fragment string) Assignment {
	return Assignment{kind: assignRaw, text: fragment}
}

// AssignAll turns every field of data into an Assign.
func AssignAll(data Data) []Assignment {
	out := make([]Assignment, len(data))
	for i, f := range data {
		out[i] = Assign(f.Column, f.Value)
	}
	return out
}

func (a Assignment) String() string {
	if a.kind == assignColumn {
		return a.text + " = ?"
	}
	return a.text
}

// Statement is generated SQL with its positional arguments. Columns holds the
// column each argument belongs to, or "" for arguments of an Expr.
type Statement struct {
	SQL     string
	Args    []any
	Columns []string
}

// Params returns the arguments as Positional, nil when there are none.
func (s Statement) Params() Params {
	if len(s.Args) == 0 {
		return nil
	}
	return Positional(s.Args)
}

// types converts column-keyed NamedTypes to the positions of s.Args. Other
// Types are returned unchanged.
func (s Statement) types(types Types) Types {
	named, ok := types.(NamedTypes)
	if !ok {
		return types
	}
	if len(named) == 0 {
		return nil
	}
	byColumn := make(map[string]ParamType, len(named))
	for key, t := range named {
		byColumn[paramName(key)] = t
	}

	positional := make(PositionalTypes, len(named))
	for i, column := range s.Columns {
		if column == "" {
			continue
		}
		if t, ok := byColumn[column]; ok {
			positional[i+1] = t
		}
	}
	return positional
}

// BuildInsert generates an INSERT for data. Table and column names are used
// verbatim and must not come from untrusted input.
//
// Empty data yields the bare `INSERT INTO <table>` and ignores returning.
// A non-empty returning list appends `RETURNING c1, c2`.
func BuildInsert(table string, data Data, returning []string) Statement {
	if len(data) == 0 {
		return Statement{SQL: "INSERT INTO " + table}
	}

	columns := data.Columns()
	placeholders := make([]string, len(data))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(") VALUES (")
	b.WriteString(strings.Join(placeholders, ", "))
	b.WriteString(")")
	if len(returning) > 0 {
		b.WriteString(" RETURNING ")
		b.WriteString(strings.Join(returning, ", "))
	}

	return Statement{SQL: b.String(), Args: data.Values(), Columns: columns}
}

// BuildUpdate generates
//
//	UPDATE <table> SET <set...> [WHERE <identifier column> = ? AND ...]
//
// Arguments are the set values in order followed by the identifier values in
// order. An empty identifier is refused with ErrUnconditionalUpdate unless
// allowAllRows is set.
func BuildUpdate(table string, set []Assignment, identifier Data, allowAllRows bool) (Statement, error) {
	if len(set) == 0 {
		return Statement{}, ErrEmptyUpdate
	}
	if len(identifier) == 0 && !allowAllRows {
		return Statement{}, ErrUnconditionalUpdate
	}

	var stmt Statement
	sets := make([]string, 0, len(set))
	for _, a := range set {
		switch a.kind {
		case assignColumn:
			if strings.Contains(a.text, "?") {
				return Statement{}, fmt.Errorf("%w: column %q contains a placeholder, use Expr", ErrInvalidAssignment, a.text)
			}
			stmt.Args = append(stmt.Args, a.value)
			stmt.Columns = append(stmt.Columns, a.text)
		case assignExpr:
			for _, arg := range a.args {
				stmt.Args = append(stmt.Args, arg)
				stmt.Columns = append(stmt.Columns, "")
			}
		}
		sets = append(sets, a.String())
	}

	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(table)
	b.WriteString(" SET ")
	b.WriteString(strings.Join(sets, ", "))

	if len(identifier) > 0 {
		criteria := make([]string, len(identifier))
		for i, f := range identifier {
			criteria[i] = f.Column + " = ?"
			stmt.Args = append(stmt.Args, f.Value)
			stmt.Columns = append(stmt.Columns, f.Column)
		}
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(criteria, " AND "))
	}

	stmt.SQL = b.String()
	return stmt, nil
}
