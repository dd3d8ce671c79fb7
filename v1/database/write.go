package database

import (
	"context"
)

// WriteResult is the outcome of a data-modifying statement. RowsAffected is
// set for statements run without RETURNING; Row holds the first returned row
// otherwise, nil when the statement returned nothing.
type WriteResult struct {
	RowsAffected int64
	Row          Row
}

func (r WriteResult) size() int64 {
	if r.Row != nil {
		return 1
	}
	return r.RowsAffected
}

// UpdateOption adjusts Update.
type UpdateOption func(*updateOptions)

type updateOptions struct {
	allRows bool
}

// AllRows permits an Update without identifier, which touches every row of
// the table.
func AllRows() UpdateOption {
	return func(o *updateOptions) {
		o.allRows = true
	}
}

// Insert adds one row built from data and returns the affected row count, or
// with returning columns the row the database sent back. Empty data issues
// `INSERT INTO <table>` and ignores returning.
//
// types may be PositionalTypes by value position or NamedTypes by column name.
//
// Example:
//
//	res, err := db.Insert(ctx, "users",
//	    database.Cols("name", "Ann", "age", 30),
//	    database.NamedTypes{"age": database.TypeInt},
//	    "id")
//	id := res.Row["id"]
func (d *DB) Insert(ctx context.Context, table string, data Data, types Types, returning ...string) (WriteResult, error) {
	stmt := BuildInsert(table, data, returning)
	withReturning := len(returning) > 0 && len(data) > 0

	return d.execute(ctx, opInsert, table, stmt.SQL, stmt.Params(), stmt.types(types), withReturning)
}

// Update changes the rows matching identifier and returns how many were
// affected. An empty identifier is refused with ErrUnconditionalUpdate unless
// AllRows is passed.
//
// Example:
//
//	n, err := db.Update(ctx, "users",
//	    []database.Assignment{
//	        database.Assign("name", "Ann"),
//	        database.Expr("visits = visits + ?", 1),
//	        database.Raw("updated_at = now()"),
//	    },
//	    database.Cols("id", 7), nil)
func (d *DB) Update(ctx context.Context, table string, set []Assignment, identifier Data, types Types, opts ...UpdateOption) (int64, error) {
	var o updateOptions
	for _, opt := range opts {
		opt(&o)
	}

	stmt, err := BuildUpdate(table, set, identifier, o.allRows)
	if err != nil {
		return 0, err
	}

	res, err := d.execute(ctx, opUpdate, table, stmt.SQL, stmt.Params(), stmt.types(types), false)
	return res.RowsAffected, err
}

// Execute runs a data-modifying statement. With returning set it yields the
// first row the statement returns; otherwise the affected row count.
func (d *DB) Execute(ctx context.Context, query string, params Params, types Types, returning bool) (WriteResult, error) {
	return d.execute(ctx, opExecute, "", query, params, types, returning)
}

// ExecuteUpdate is Execute under its historical name.
func (d *DB) ExecuteUpdate(ctx context.Context, query string, params Params, types Types, returning bool) (WriteResult, error) {
	return d.Execute(ctx, query, params, types, returning)
}

func (d *DB) execute(ctx context.Context, op, table, query string, params Params, types Types, returning bool) (res WriteResult, err error) {
	ctx, end := d.instrument(ctx, op, table, query, d.systemName())
	defer func() { end(err, res.size()) }()

	pool, dialect, err := d.session()
	if err != nil {
		return WriteResult{}, err
	}

	if returning {
		err = d.withCursor(ctx, op, query, params, types, func(cur *Cursor) error {
			res.Row, err = cur.Fetch()
			return err
		})
		if err != nil {
			return WriteResult{}, err
		}
		return res, nil
	}

	if paramsLen(params) == 0 {
		result, err := pool.ExecContext(ctx, query)
		if err != nil {
			return WriteResult{}, queryError(dialect, op, query, params, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return WriteResult{}, queryError(dialect, op, query, params, err)
		}
		return WriteResult{RowsAffected: n}, nil
	}

	stmt, args, err := d.prepare(ctx, pool, query, params, types)
	if err != nil {
		return WriteResult{}, queryError(dialect, op, query, params, err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, args...)
	if err != nil {
		return WriteResult{}, queryError(dialect, op, query, params, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return WriteResult{}, queryError(dialect, op, query, params, err)
	}
	return WriteResult{RowsAffected: n}, nil
}
