package controllers

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ErthaLabs/ErthaExchange/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func TestDebitWallet(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "wallet_balance"}).AddRow(1, 70.0))

		before, after, err := debitWallet(db, 1, 30)
		assert.NoError(t, err)
		assert.Equal(t, 100.0, before)
		assert.Equal(t, 70.0, after)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsufficientBalance", func(t *testing.T) {
		db, mock := setupMockDB(t)

		// Guarded update matches no row, follow-up read finds the user
		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "wallet_balance"}).AddRow(1, 10.0))

		_, _, err := debitWallet(db, 1, 30)
		assert.Error(t, err)
		assert.True(t, utils.IsKind(err, utils.KindInsufficientBalance))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UserNotFound", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "wallet_balance"}))

		_, _, err := debitWallet(db, 99, 30)
		assert.Error(t, err)
		assert.True(t, utils.IsKind(err, utils.KindNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreditWallet(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "wallet_balance"}).AddRow(1, 150.0))

		before, after, err := creditWallet(db, 1, 50)
		assert.NoError(t, err)
		assert.Equal(t, 100.0, before)
		assert.Equal(t, 150.0, after)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UserNotFound", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, _, err := creditWallet(db, 99, 50)
		assert.Error(t, err)
		assert.True(t, utils.IsKind(err, utils.KindNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
