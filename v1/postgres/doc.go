// Package postgres provides the PostgreSQL dialect of the database facade.
//
// The dialect is selected with database.Config{Type: "postgres"}. It turns the
// facade configuration into a pgx connection string, opens the handle through
// gorm's postgres driver and supplies the PostgreSQL specific statements:
//
//	SET NAMES 'UTF8'                 -- Config.Charset
//	SET search_path TO "tenant_a"    -- DB.SetDefaultSchema
//
// Address formats:
//
//	host=localhost port=5432 dbname=app
//	postgres://localhost:5432/app
//
// Attributes are appended as keyword/value pairs or URL query parameters:
//
//	cfg := database.Config{
//		Type:       "postgres",
//		Address:    "host=localhost port=5432 dbname=app",
//		Username:   "app",
//		Password:   "secret",
//		Attributes: map[string]string{"sslmode": "disable", "connect_timeout": "5"},
//	}
//
// Errors returned by the server carry a SQLSTATE which ErrorCode extracts; the
// facade stores it in QueryError.Code.
package postgres
