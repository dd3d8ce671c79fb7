package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tandem-db/dbal/v1/observability"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
)

func TestFXModule(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("Connected to database", nil, gomock.Any()).Times(1)
	mockLogger.EXPECT().Info("Disconnected from database", nil, gomock.Any()).Times(1)
	mockLogger.EXPECT().Debug(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	observer := &TestObserver{}

	var (
		db     *DB
		client Client
	)
	app := fxtest.New(t,
		fx.Provide(
			func() Config { return memoryConfig() },
			func() Logger { return mockLogger },
			func() observability.Observer { return observer },
		),
		FXModule,
		fx.Populate(&db, &client),
	)

	app.RequireStart()
	require.NotNil(t, db)
	assert.Same(t, db, client)
	assert.True(t, client.IsConnected())

	row, err := client.FetchRow(context.Background(), "SELECT 1 AS one", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), row["one"])
	assert.Len(t, observer.find(opFetchRow), 1)

	app.RequireStop()
	assert.False(t, db.IsConnected())
}

func TestFXModuleInvalidConfig(t *testing.T) {
	app := fx.New(
		fx.NopLogger,
		fx.Provide(func() Config { return Config{Type: "oracle", Address: "x"} }),
		FXModule,
		fx.Invoke(func(Client) {}),
	)

	err := app.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}
