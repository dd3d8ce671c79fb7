package database

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Binding records how one parameter was bound.
type Binding struct {
	// Index is the 1-based bind position for positional parameters, 0 for named ones.
	Index int

	// TypeIndex is the key looked up in PositionalTypes for this position.
	TypeIndex int

	// Name is the parameter name without its leading colon, empty for positional ones.
	Name string

	// Type is the declared type when Typed is set.
	Type  ParamType
	Typed bool
}

// Bound is a statement ready for the driver: `?` placeholders plus the
// argument list in placeholder order.
type Bound struct {
	Query    string
	Args     []any
	Bindings []Binding
}

// Bind validates params against types, coerces typed values and, for named
// parameters, compiles `:name` markers to `?` placeholders.
//
// Positional parameters are bound at positions 1..n in order. The type of
// position i is types[i], or types[i-1] when types has a key 0. Without
// params, types are ignored and the query is returned as is.
//
// Example:
//
//	b, _ := database.Bind("SELECT ? + ?", database.Args("10", 20),
//	    database.PositionalTypes{0: database.TypeInt, 1: database.TypeInt})
//	// b.Args == []any{int64(10), int64(20)}
//	// b.Bindings[0].Index == 1, b.Bindings[0].TypeIndex == 0
func Bind(query string, params Params, types Types) (*Bound, error) {
	return bind(query, params, types, false)
}

// bind is Bind with the dialect's string escaping rule. Markers inside quoted
// text, comments and `::` casts are never parameters.
func bind(query string, params Params, types Types, backslashEscapes bool) (*Bound, error) {
	if paramsLen(params) == 0 {
		// Types only describe parameters; without any there is nothing to bind.
		return &Bound{Query: query}, nil
	}

	switch p := params.(type) {
	case Positional:
		var pt PositionalTypes
		switch t := types.(type) {
		case nil:
		case PositionalTypes:
			pt = t
		default:
			if types.Len() > 0 {
				return nil, fmt.Errorf("%w: named types for positional parameters", ErrBindingModeConflict)
			}
		}
		return bindPositional(query, p, pt)

	case Named:
		var nt NamedTypes
		switch t := types.(type) {
		case nil:
		case NamedTypes:
			nt = t
		default:
			if types.Len() > 0 {
				return nil, fmt.Errorf("%w: positional types for named parameters", ErrBindingModeConflict)
			}
		}
		return bindNamed(query, p, nt, backslashEscapes)

	default:
		return nil, fmt.Errorf("%w: unsupported parameter set %T", ErrBindingModeConflict, params)
	}
}

func bindPositional(query string, params Positional, types PositionalTypes) (*Bound, error) {
	offset := 0
	if _, ok := types[0]; ok {
		offset = -1
	}

	bound := &Bound{
		Query:    query,
		Args:     make([]any, len(params)),
		Bindings: make([]Binding, len(params)),
	}
	for i, value := range params {
		index := i + 1
		b := Binding{Index: index, TypeIndex: index + offset}

		if t, ok := types[b.TypeIndex]; ok {
			v, err := coerce(value, t)
			if err != nil {
				return nil, fmt.Errorf("parameter %d: %w", index, err)
			}
			value = v
			b.Type, b.Typed = t, true
		}

		bound.Args[i] = value
		bound.Bindings[i] = b
	}
	return bound, nil
}

func bindNamed(query string, params Named, types NamedTypes, backslashEscapes bool) (*Bound, error) {
	declared := make(map[string]ParamType, len(types))
	for key, t := range types {
		name := paramName(key)
		if isPositionalKey(name) {
			return nil, fmt.Errorf("%w: type key %q is positional", ErrBindingModeConflict, key)
		}
		declared[name] = t
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	values := make(map[string]any, len(params))
	bindings := make([]Binding, 0, len(params))
	for _, key := range keys {
		name := paramName(key)
		if isPositionalKey(name) {
			return nil, fmt.Errorf("%w: parameter key %q is positional", ErrBindingModeConflict, key)
		}
		if _, dup := values[name]; dup {
			return nil, fmt.Errorf("%w: parameter %q given twice", ErrBindingModeConflict, name)
		}

		value := params[key]
		b := Binding{Name: name}
		if t, ok := declared[name]; ok {
			v, err := coerce(value, t)
			if err != nil {
				return nil, fmt.Errorf("parameter %q: %w", name, err)
			}
			value = v
			b.Type, b.Typed = t, true
		}
		values[name] = value
		bindings = append(bindings, b)
	}

	masked := maskLiterals(query, backslashEscapes)
	compiled, args, err := sqlx.Named(masked.text, values)
	if err != nil {
		return nil, fmt.Errorf("failed to compile named parameters: %w", err)
	}
	return &Bound{Query: masked.unmask(compiled), Args: args, Bindings: bindings}, nil
}

// rebind rewrites `?` placeholders outside quoted text and comments into the
// style of bindType.
func rebind(bindType int, query string, backslashEscapes bool) string {
	if bindType == sqlx.QUESTION || bindType == sqlx.UNKNOWN {
		return query
	}
	masked := maskLiterals(query, backslashEscapes)
	return masked.unmask(sqlx.Rebind(bindType, masked.text))
}

// paramName strips the optional leading colon of a parameter or type key.
func paramName(key string) string {
	return strings.TrimPrefix(key, ":")
}

// isPositionalKey reports whether a key would be read as a position.
// The empty key counts: a bare ":" marker is not a name.
func isPositionalKey(name string) bool {
	for _, r := range name {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
