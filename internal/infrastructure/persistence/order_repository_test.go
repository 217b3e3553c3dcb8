package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockOrderRepository creates a GormOrderRepository with a mocked SQL connection
func newMockOrderRepository(t *testing.T) (*GormOrderRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormOrderRepository(gormDB), mock, mockDB
}

func TestGormOrderRepository_FindByID(t *testing.T) {
	t.Run("returns not found for missing order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(orderID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		order, err := repo.FindByID(context.Background(), orderID)

		assert.Error(t, err)
		assert.Nil(t, order)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("loads order with items", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		employeeID := uuid.New()
		branchID := uuid.New()
		now := time.Now()

		orderRows := sqlmock.NewRows([]string{
			"id", "order_number", "order_date", "customer_name",
			"employee_id", "branch_id", "total_amount", "credit_used", "status",
		}).AddRow(orderID, "ORD-2026-00001", now, "Walk-in",
			employeeID, branchID, decimal.NewFromInt(160), decimal.Zero, "paid")

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE order_number = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("ORD-2026-00001", 1).
			WillReturnRows(orderRows)

		itemRows := sqlmock.NewRows([]string{
			"id", "order_id", "product_id", "sku", "product_name",
			"quantity", "unit_price", "discount_pct", "unit_price_deducted", "status", "employee_id",
		}).AddRow(uuid.New(), orderID, uuid.New(), "SKU-1", "Widget",
			decimal.NewFromInt(2), decimal.NewFromInt(100), decimal.NewFromInt(20),
			decimal.NewFromInt(80), "paid", employeeID)

		mock.ExpectQuery(`SELECT \* FROM "order_items" WHERE "order_items"."order_id" = \$1 ORDER BY created_at ASC`).
			WithArgs(orderID).
			WillReturnRows(itemRows)

		order, err := repo.FindByOrderNumber(context.Background(), "ORD-2026-00001")

		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, "ORD-2026-00001", order.OrderNumber)
		require.Len(t, order.Items, 1)
		assert.Equal(t, "SKU-1", order.Items[0].SKU)
		assert.True(t, order.Items[0].UnitPriceDeducted.Equal(decimal.NewFromInt(80)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_AppendItems(t *testing.T) {
	t.Run("inserts only the appended rows", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		item := trade.OrderItem{
			BaseEntity:        shared.NewBaseEntity(),
			ProductID:         uuid.New(),
			SKU:               "SKU-1",
			ProductName:       "Widget",
			Quantity:          decimal.NewFromInt(2),
			UnitPrice:         decimal.NewFromInt(100),
			DiscountPct:       decimal.NewFromInt(20),
			UnitPriceDeducted: decimal.NewFromInt(80),
			Status:            trade.ItemStatusReturned,
			EmployeeID:        uuid.New(),
		}

		mock.ExpectQuery(`INSERT INTO "order_items"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(item.ID))

		err := repo.AppendItems(context.Background(), orderID, []trade.OrderItem{item})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no-op for empty slice", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		err := repo.AppendItems(context.Background(), uuid.New(), nil)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_GenerateOrderNumber(t *testing.T) {
	t.Run("starts at one for a fresh year", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE order_number LIKE \$1 ORDER BY order_number DESC,.* LIMIT .*`).
			WillReturnError(gorm.ErrRecordNotFound)

		number, err := repo.GenerateOrderNumber(context.Background())

		require.NoError(t, err)
		assert.Contains(t, number, "ORD-")
		assert.Contains(t, number, "-00001")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("increments the last sequence", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		year := time.Now().Year()
		lastNumber := "ORD-" + decimal.NewFromInt(int64(year)).String() + "-00041"

		rows := sqlmock.NewRows([]string{"id", "order_number"}).
			AddRow(uuid.New(), lastNumber)

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE order_number LIKE \$1 ORDER BY order_number DESC,.* LIMIT .*`).
			WillReturnRows(rows)

		number, err := repo.GenerateOrderNumber(context.Background())

		require.NoError(t, err)
		assert.Contains(t, number, "-00042")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
