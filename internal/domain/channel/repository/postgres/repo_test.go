package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestUpsert_ExistingRowIsLockedForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewChannelRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "channels" WHERE tg_chat_id = .+ FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tg_chat_id", "title", "settings_json"}).
			AddRow(1, int64(-100500), "Old Title", `{"tz":"UTC","footer":"kept"}`))
	mock.ExpectExec(`UPDATE "channels" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	channel, created, err := repo.Upsert(context.Background(), -100500, "New Title", nil, map[string]any{
		"tz": "Asia/Tashkent",
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "New Title", channel.Title)

	settings, err := channel.Settings()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tashkent", settings["tz"])
	assert.Equal(t, "kept", settings["footer"])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_MissingRowIsCreated(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewChannelRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "channels" WHERE tg_chat_id = .+ FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "channels"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	channel, created, err := repo.Upsert(context.Background(), -100500, "My Channel", nil, nil)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, uint(7), channel.ID)
	assert.Equal(t, "{}", channel.SettingsJSON)

	require.NoError(t, mock.ExpectationsWereMet())
}
