package database

import (
	"fmt"
	"io"

	"github.com/spf13/cast"
)

// Params is the parameter set of a statement: Positional or Named.
// A nil Params means the statement has no parameters.
type Params interface {
	Len() int
	params()
}

// Positional parameters bind to `?` markers in order.
type Positional []any

// Named parameters bind to `:name` markers. A leading colon on keys is optional.
type Named map[string]any

func (p Positional) Len() int { return len(p) }
func (Positional) params()    {}

func (n Named) Len() int { return len(n) }
func (Named) params()    {}

// Args is shorthand for Positional{values...}.
func Args(values ...any) Positional {
	return Positional(values)
}

func paramsLen(p Params) int {
	if p == nil {
		return 0
	}
	return p.Len()
}

// ParamType is the declared type a parameter is coerced to before it is sent
// to the driver.
type ParamType int

const (
	TypeNull ParamType = iota
	TypeInt
	TypeString
	TypeBool
	TypeLOB
	TypeFloat
)

func (t ParamType) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	case TypeLOB:
		return "lob"
	case TypeFloat:
		return "float"
	default:
		return fmt.Sprintf("ParamType(%d)", int(t))
	}
}

// Types declares parameter types: PositionalTypes or NamedTypes. Its mode must
// match the mode of the Params it accompanies. A nil Types sends every value
// as is.
type Types interface {
	Len() int
	types()
}

// PositionalTypes maps parameter positions to types. Positions are 1-based;
// a map that contains key 0 is read as 0-based.
type PositionalTypes map[int]ParamType

// NamedTypes maps parameter names to types. With Insert and Update the keys
// are column names.
type NamedTypes map[string]ParamType

func (t PositionalTypes) Len() int { return len(t) }
func (PositionalTypes) types()     {}

func (t NamedTypes) Len() int { return len(t) }
func (NamedTypes) types()     {}

// coerce converts v to t. nil stays nil for every type.
func coerce(v any, t ParamType) (any, error) {
	if v == nil || t == TypeNull {
		return nil, nil
	}

	var (
		out any
		err error
	)
	switch t {
	case TypeInt:
		out, err = cast.ToInt64E(v)
	case TypeString:
		out, err = cast.ToStringE(v)
	case TypeBool:
		out, err = cast.ToBoolE(v)
	case TypeFloat:
		out, err = cast.ToFloat64E(v)
	case TypeLOB:
		out, err = toLOB(v)
	default:
		return nil, fmt.Errorf("%w: unknown type %s", ErrTypeCoercion, t)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %T to %s: %w", ErrTypeCoercion, v, t, err)
	}
	return out, nil
}

func toLOB(v any) ([]byte, error) {
	switch x := v.(type) {
	case []byte:
		return x, nil
	case string:
		return []byte(x), nil
	case io.Reader:
		return io.ReadAll(x)
	default:
		return nil, fmt.Errorf("unable to read %T as large object", v)
	}
}
