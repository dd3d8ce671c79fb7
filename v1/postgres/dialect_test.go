package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSNKeywordValue(t *testing.T) {
	dsn, err := New().DSN("host=localhost port=5432 dbname=app", "app", "s3cr et", map[string]string{
		"sslmode":         "disable",
		"connect_timeout": "5",
	})
	require.NoError(t, err)
	assert.Equal(t, "host=localhost port=5432 dbname=app user=app password='s3cr et' connect_timeout=5 sslmode=disable", dsn)
}

func TestDSNURL(t *testing.T) {
	dsn, err := New().DSN("postgres://localhost:5432/app", "app", "pw", map[string]string{"sslmode": "disable"})
	require.NoError(t, err)
	assert.Equal(t, "postgres://app:pw@localhost:5432/app?sslmode=disable", dsn)
}

func TestDSNRejectsEmptyAddress(t *testing.T) {
	_, err := New().DSN("  ", "", "", nil)
	assert.Error(t, err)
}

func TestQuoteLiteral(t *testing.T) {
	d := New()
	assert.Equal(t, "'O''Brien'", d.QuoteLiteral("O'Brien"))
	// lib/pq prefixes the escape form with a space
	assert.Equal(t, ` E'a\\b'`, d.QuoteLiteral(`a\b`))
	assert.False(t, d.BackslashEscapes())
}

func TestSchemaStatement(t *testing.T) {
	d := New()

	stmt, ok := d.SchemaStatement("tenant_a, public")
	require.True(t, ok)
	assert.Equal(t, `SET search_path TO "tenant_a", "public"`, stmt)

	stmt, ok = d.SchemaStatement(`"$user"`)
	require.True(t, ok)
	assert.Equal(t, `SET search_path TO "$user"`, stmt)

	_, ok = d.SchemaStatement("a,,b")
	assert.False(t, ok)
}

func TestCharsetStatement(t *testing.T) {
	assert.Equal(t, "SET NAMES 'UTF8'", New().CharsetStatement("UTF8"))
}

func TestErrorCodeAndRetryable(t *testing.T) {
	d := New()
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: CodeUniqueViolation, Message: "duplicate key"})
	deadlock := &pgconn.PgError{Code: CodeDeadlockDetected}

	assert.Equal(t, CodeUniqueViolation, d.ErrorCode(unique))
	assert.Equal(t, "", d.ErrorCode(errors.New("plain")))
	assert.False(t, d.IsRetryable(unique))
	assert.True(t, d.IsRetryable(deadlock))
	assert.True(t, d.IsRetryable(&pgconn.PgError{Code: "08006"}))
}

func TestDSNURLKeepsPasswordWithoutUsername(t *testing.T) {
	dsn, err := New().DSN("postgres://localhost:5432/app", "", "pw", nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres://:pw@localhost:5432/app", dsn)

	dsn, err = New().DSN("postgres://app@localhost:5432/app", "", "pw", nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres://app:pw@localhost:5432/app", dsn)
}
