package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockStoreCreditRepository(t *testing.T) (*GormStoreCreditRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormStoreCreditRepository(gormDB), mock, mockDB
}

func TestGormStoreCreditRepository_Save(t *testing.T) {
	t.Run("updates an issued credit including redemption columns", func(t *testing.T) {
		repo, mock, mockDB := newMockStoreCreditRepository(t)
		defer mockDB.Close()

		credit, err := finance.NewReturnCredit(
			uuid.New(),
			valueobject.NewMoneyUSD(decimal.NewFromFloat(160.00)),
			"Walk-in",
			"Return against order ORD-2026-00001",
		)
		require.NoError(t, err)

		// credits table carries consumed_at/consumed_by even while NULL
		mock.ExpectExec(`UPDATE "store_credits" SET .*"consumed_at".*"consumed_by".*WHERE "id" = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Save(context.Background(), credit)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("persists the consumption timestamp after redemption", func(t *testing.T) {
		repo, mock, mockDB := newMockStoreCreditRepository(t)
		defer mockDB.Close()

		credit, err := finance.NewReturnCredit(
			uuid.New(),
			valueobject.NewMoneyUSD(decimal.NewFromFloat(50.00)),
			"", "",
		)
		require.NoError(t, err)
		require.NoError(t, credit.Consume(uuid.New()))
		require.NotNil(t, credit.ConsumedAt)

		mock.ExpectExec(`UPDATE "store_credits" SET .*"consumed_at".*"consumed_by".*WHERE "id" = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Save(context.Background(), credit)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
