// Package sqlite provides the SQLite dialect of the database facade, backed by
// mattn/go-sqlite3 (cgo).
//
//	db, err := database.NewClient(ctx, database.Config{
//		Type:       "sqlite",
//		Address:    "file:app.db",
//		Attributes: map[string]string{"_foreign_keys": "1"},
//	})
//
// ":memory:" works because the facade keeps exactly one connection open.
package sqlite
