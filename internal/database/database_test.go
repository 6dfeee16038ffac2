package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_Error(t *testing.T) {
	cfg := Config{
		Driver:             "invalid",
		ConnectionString:   "invalid",
		MaxOpenConnections: 10,
		MaxIdleConnections: 5,
		ConnMaxLifetime:    time.Hour,
	}

	db, err := Connect(cfg)
	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "sql: unknown driver")
}

func TestPing(t *testing.T) {
	t.Run("Error_NilDB", func(t *testing.T) {
		err := Ping(context.Background(), nil, time.Second)
		assert.EqualError(t, err, "database not configured")
	})

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectPing()

		assert.NoError(t, Ping(context.Background(), db, time.Second))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_PingFails", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectPing().WillReturnError(assert.AnError)

		assert.ErrorIs(t, Ping(context.Background(), db, time.Second), assert.AnError)
	})
}
