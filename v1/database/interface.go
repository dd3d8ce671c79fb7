package database

import (
	"context"

	"gorm.io/gorm"
)

// Client is the data-access contract applications depend on. *DB implements it.
//
//	type UserRepository struct {
//	    db database.Client
//	}
type Client interface {
	// Connection
	Connect(ctx context.Context, cfg Config) error
	Disconnect(ctx context.Context) error
	Reconnect(ctx context.Context) error
	SetDefaultSchema(ctx context.Context, schema string) error
	IsConnected() bool
	Ping(ctx context.Context) error
	DB() *gorm.DB

	// Queries
	ExecuteQuery(ctx context.Context, query string, params Params, types Types) (*Cursor, error)
	FetchRow(ctx context.Context, query string, params Params, types Types) (Row, error)
	FetchAll(ctx context.Context, query string, params Params, types Types) ([]Row, error)
	FetchColumn(ctx context.Context, query string, params Params, col Column, types Types) (any, error)

	// Writes
	Insert(ctx context.Context, table string, data Data, types Types, returning ...string) (WriteResult, error)
	Update(ctx context.Context, table string, set []Assignment, identifier Data, types Types, opts ...UpdateOption) (int64, error)
	Execute(ctx context.Context, query string, params Params, types Types, returning bool) (WriteResult, error)
	ExecuteUpdate(ctx context.Context, query string, params Params, types Types, returning bool) (WriteResult, error)

	// Transactions
	StartTransaction(ctx context.Context) error
	Commit(ctx context.Context) error
	RollBack(ctx context.Context) error
	InTransaction() bool
	Transaction(ctx context.Context, fn func(tx Client) error) error

	// Utilities
	Quote(s string) (string, error)
	TranslateError(err error) error
	IsRetryable(err error) bool
}

var _ Client = (*DB)(nil)
