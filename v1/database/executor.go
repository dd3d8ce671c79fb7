package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// Row is one result row keyed by column name.
type Row map[string]any

// Column selects a result column by position or by name.
// The zero value is the first column.
type Column struct {
	index int
	name  string
}

// ColumnAt selects the column at 0-based position i.
func ColumnAt(i int) Column {
	return Column{index: i}
}

// ColumnNamed selects the column called name.
func ColumnNamed(name string) Column {
	return Column{index: -1, name: name}
}

func (c Column) String() string {
	if c.index < 0 {
		return fmt.Sprintf("%q", c.name)
	}
	return fmt.Sprintf("%d", c.index)
}

// Cursor iterates over the rows of a query. It holds the facade's session
// until Close, so no other statement can run on the same DB before that.
type Cursor struct {
	rows   *sql.Rows
	stmt   *sql.Stmt
	binary []bool
}

func newCursor(rows *sql.Rows, stmt *sql.Stmt) *Cursor {
	return &Cursor{rows: rows, stmt: stmt}
}

// Columns returns the result column names.
func (c *Cursor) Columns() ([]string, error) {
	return c.rows.Columns()
}

// Fetch returns the next row, or nil when the rows are exhausted.
func (c *Cursor) Fetch() (Row, error) {
	if !c.rows.Next() {
		return nil, c.rows.Err()
	}

	row := make(map[string]interface{})
	if err := sqlx.MapScan(c.rows, row); err != nil {
		return nil, err
	}

	columns, err := c.rows.Columns()
	if err != nil {
		return nil, err
	}
	for i, name := range columns {
		row[name] = c.normalize(i, row[name])
	}
	return Row(row), nil
}

// FetchAll returns the remaining rows; an empty slice when there are none.
func (c *Cursor) FetchAll() ([]Row, error) {
	rows := []Row{}
	for {
		row, err := c.Fetch()
		if err != nil {
			return nil, err
		}
		if row == nil {
			return rows, nil
		}
		rows = append(rows, row)
	}
}

// FetchColumn returns one value of the next row, or nil when the rows are
// exhausted.
func (c *Cursor) FetchColumn(col Column) (any, error) {
	if !c.rows.Next() {
		return nil, c.rows.Err()
	}

	columns, err := c.rows.Columns()
	if err != nil {
		return nil, err
	}

	index := col.index
	if index < 0 {
		for i, name := range columns {
			if name == col.name {
				index = i
				break
			}
		}
	}
	if index < 0 || index >= len(columns) {
		return nil, fmt.Errorf("%w: %s of %d columns", ErrColumnNotFound, col, len(columns))
	}

	values, err := sqlx.SliceScan(c.rows)
	if err != nil {
		return nil, err
	}
	return c.normalize(index, values[index]), nil
}

// Close releases the rows and the prepared statement behind them.
func (c *Cursor) Close() error {
	err := c.rows.Close()
	if c.stmt != nil {
		err = errors.Join(err, c.stmt.Close())
	}
	return err
}

// normalize turns driver []byte values of textual columns into strings.
func (c *Cursor) normalize(i int, v any) any {
	b, ok := v.([]byte)
	if !ok {
		return v
	}
	if c.binary == nil {
		c.binary = binaryColumns(c.rows)
	}
	if i < len(c.binary) && c.binary[i] {
		return b
	}
	return string(b)
}

func binaryColumns(rows *sql.Rows) []bool {
	types, err := rows.ColumnTypes()
	if err != nil {
		return []bool{}
	}
	out := make([]bool, len(types))
	for i, t := range types {
		name := strings.ToUpper(t.DatabaseTypeName())
		out[i] = strings.Contains(name, "BLOB") ||
			strings.Contains(name, "BINARY") ||
			name == "BYTEA"
	}
	return out
}

// ExecuteQuery runs a statement and returns a cursor over its rows.
// Without params the statement runs directly and types are ignored;
// otherwise it is prepared on the
// current session, bound and executed. The cursor must be closed.
//
// Example:
//
//	cur, err := db.ExecuteQuery(ctx,
//	    "SELECT id, name FROM users WHERE age > :age",
//	    database.Named{"age": 18}, nil)
//	if err != nil {
//	    return err
//	}
//	defer cur.Close()
//	for {
//	    row, err := cur.Fetch()
//	    if err != nil || row == nil {
//	        return err
//	    }
//	    ...
//	}
func (d *DB) ExecuteQuery(ctx context.Context, query string, params Params, types Types) (cur *Cursor, err error) {
	ctx, end := d.instrument(ctx, opExecuteQuery, "", query, d.systemName())
	defer func() { end(err, 0) }()

	return d.query(ctx, opExecuteQuery, query, params, types)
}

// FetchRow returns the first row of the result, or nil when there is none.
func (d *DB) FetchRow(ctx context.Context, query string, params Params, types Types) (row Row, err error) {
	ctx, end := d.instrument(ctx, opFetchRow, "", query, d.systemName())
	defer func() {
		var n int64
		if row != nil {
			n = 1
		}
		end(err, n)
	}()

	err = d.withCursor(ctx, opFetchRow, query, params, types, func(cur *Cursor) error {
		row, err = cur.Fetch()
		return err
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// FetchAll returns every row of the result; an empty slice when there is none.
func (d *DB) FetchAll(ctx context.Context, query string, params Params, types Types) (rows []Row, err error) {
	ctx, end := d.instrument(ctx, opFetchAll, "", query, d.systemName())
	defer func() { end(err, int64(len(rows))) }()

	err = d.withCursor(ctx, opFetchAll, query, params, types, func(cur *Cursor) error {
		rows, err = cur.FetchAll()
		return err
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchColumn returns one value of the first row, or nil when there is none.
//
//	n, err := db.FetchColumn(ctx, "SELECT count(*) FROM users", nil, database.ColumnAt(0), nil)
func (d *DB) FetchColumn(ctx context.Context, query string, params Params, col Column, types Types) (value any, err error) {
	ctx, end := d.instrument(ctx, opFetchColumn, "", query, d.systemName())
	defer func() { end(err, 0) }()

	err = d.withCursor(ctx, opFetchColumn, query, params, types, func(cur *Cursor) error {
		value, err = cur.FetchColumn(col)
		return err
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// withCursor runs query, hands the cursor to fn and closes it.
func (d *DB) withCursor(ctx context.Context, op, query string, params Params, types Types, fn func(*Cursor) error) error {
	cur, err := d.query(ctx, op, query, params, types)
	if err != nil {
		return err
	}

	err = fn(cur)
	if closeErr := cur.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return queryError(d.dialectSnapshot(), op, query, params, err)
	}
	return nil
}

func (d *DB) query(ctx context.Context, op, query string, params Params, types Types) (*Cursor, error) {
	pool, dialect, err := d.session()
	if err != nil {
		return nil, err
	}

	if paramsLen(params) == 0 {
		rows, err := pool.QueryContext(ctx, query)
		if err != nil {
			return nil, queryError(dialect, op, query, params, err)
		}
		return newCursor(rows, nil), nil
	}

	stmt, args, err := d.prepare(ctx, pool, query, params, types)
	if err != nil {
		return nil, queryError(dialect, op, query, params, err)
	}
	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		_ = stmt.Close()
		return nil, queryError(dialect, op, query, params, err)
	}
	return newCursor(rows, stmt), nil
}

// prepare binds params and prepares the statement in the dialect's
// placeholder style on pool.
func (d *DB) prepare(ctx context.Context, pool gorm.ConnPool, query string, params Params, types Types) (*sql.Stmt, []any, error) {
	d.mu.Lock()
	bindType := d.bindType
	backslash := d.dialect != nil && d.dialect.BackslashEscapes()
	d.mu.Unlock()

	bound, err := bind(query, params, types, backslash)
	if err != nil {
		return nil, nil, err
	}

	stmt, err := pool.PrepareContext(ctx, rebind(bindType, bound.Query, backslash))
	if err != nil {
		return nil, nil, err
	}
	return stmt, bound.Args, nil
}

func (d *DB) dialectSnapshot() Dialect {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dialect
}
