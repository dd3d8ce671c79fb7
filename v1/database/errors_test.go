package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryErrorMessage(t *testing.T) {
	driverErr := errors.New(`near "SELEC": syntax error`)

	t.Run("positional params", func(t *testing.T) {
		err := &QueryError{Op: opFetchRow, Query: "SELEC ?", Params: Positional{1, "a"}, Err: driverErr}
		assert.Equal(t, `near "SELEC": syntax error Query: SELEC ? Params: [1,"a"]`, err.Error())
	})

	t.Run("named params", func(t *testing.T) {
		err := &QueryError{Query: "SELEC :id", Params: Named{"id": 7}, Err: driverErr}
		assert.Equal(t, `near "SELEC": syntax error Query: SELEC :id Params: {"id":7}`, err.Error())
	})

	t.Run("no params", func(t *testing.T) {
		err := &QueryError{Query: "SELEC 1", Err: driverErr}
		assert.Equal(t, `near "SELEC": syntax error Query: SELEC 1`, err.Error())
	})

	t.Run("unwrap", func(t *testing.T) {
		err := error(&QueryError{Query: "x", Err: driverErr})
		assert.ErrorIs(t, err, driverErr)
	})
}

func TestQueryErrorDoesNotNest(t *testing.T) {
	inner := queryError(nil, opInsert, "INSERT", Positional{1}, errors.New("boom"))
	outer := queryError(nil, opExecute, "OTHER", nil, inner)

	var qe *QueryError
	require.ErrorAs(t, outer, &qe)
	assert.Equal(t, "INSERT", qe.Query)
	assert.Nil(t, queryError(nil, opInsert, "INSERT", nil, nil))
}

func TestTransactionStateErrors(t *testing.T) {
	assert.ErrorIs(t, ErrTransactionActive, ErrTransactionState)
	assert.ErrorIs(t, ErrNoActiveTransaction, ErrTransactionState)
	assert.NotErrorIs(t, ErrTransactionActive, ErrNoActiveTransaction)
}

func TestTranslateErrorWithoutConnection(t *testing.T) {
	db := New()
	plain := errors.New("plain")

	assert.Nil(t, db.TranslateError(nil))
	assert.Equal(t, plain, db.TranslateError(plain))
	assert.False(t, db.IsRetryable(plain))
}
