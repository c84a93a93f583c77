package orders

import (
	"context"
	"fmt"
	"testing"

	"github.com/novamart/orderhub-backend/pkg/db/models"
	"github.com/novamart/orderhub-backend/pkg/envelope"
	"github.com/novamart/orderhub-backend/pkg/proc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const ordersDDL = `
CREATE TABLE orders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	customer_id INTEGER NOT NULL,
	status TEXT NOT NULL DEFAULT 'NEW',
	total_amount NUMERIC NOT NULL DEFAULT 0,
	row_version INTEGER NOT NULL DEFAULT 1,
	created_by TEXT NOT NULL,
	created_date DATETIME,
	updated_by TEXT,
	updated_date DATETIME,
	is_active BOOLEAN NOT NULL DEFAULT 1,
	is_deleted BOOLEAN NOT NULL DEFAULT 0
);
CREATE TABLE order_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	order_id INTEGER NOT NULL,
	product_id INTEGER NOT NULL,
	qty INTEGER NOT NULL,
	unit_price NUMERIC NOT NULL,
	line_total NUMERIC GENERATED ALWAYS AS (qty * unit_price) STORED,
	created_by TEXT NOT NULL,
	created_date DATETIME,
	updated_by TEXT,
	updated_date DATETIME,
	is_active BOOLEAN NOT NULL DEFAULT 1,
	is_deleted BOOLEAN NOT NULL DEFAULT 0
);
`

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	require.NoError(t, conn.Exec(ordersDDL).Error)
	return conn
}

func seedOrder(t *testing.T, conn *gorm.DB, order *models.Order) *models.Order {
	t.Helper()
	require.NoError(t, conn.Create(order).Error)
	return order
}

func testOrder(customerID int64) *models.Order {
	return &models.Order{
		CustomerID:  customerID,
		Status:      "NEW",
		TotalAmount: decimal.NewFromFloat(25.50),
		RowVersion:  1,
		CreatedBy:   "tester",
		IsActive:    true,
		Items: []models.OrderItem{
			{ProductID: 10, Qty: 2, UnitPrice: decimal.NewFromFloat(10.00), CreatedBy: "tester", IsActive: true},
			{ProductID: 11, Qty: 1, UnitPrice: decimal.NewFromFloat(5.50), CreatedBy: "tester", IsActive: true},
		},
	}
}

func TestAddAndGetByID(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn, proc.New())
	ctx := context.Background()

	order := testOrder(100)
	require.NoError(t, repo.Add(ctx, order))
	require.NotZero(t, order.ID)

	loaded, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, int64(100), loaded.CustomerID)
	assert.Len(t, loaded.Items, 2)
	assert.True(t, loaded.Items[0].LineTotal.Equal(decimal.NewFromFloat(20.00)))
}

func TestGetByIDAbsentAndSoftDeleted(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn, proc.New())
	ctx := context.Background()

	missing, err := repo.GetByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	order := seedOrder(t, conn, testOrder(100))
	require.NoError(t, conn.Model(&models.Order{}).Where("id = ?", order.ID).Update("is_deleted", true).Error)

	gone, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestGetByIDFiltersDeletedItems(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn, proc.New())
	ctx := context.Background()

	order := seedOrder(t, conn, testOrder(100))
	require.NoError(t, conn.Model(&models.OrderItem{}).
		Where("order_id = ? AND product_id = ?", order.ID, 11).
		Update("is_deleted", true).Error)

	loaded, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, int64(10), loaded.Items[0].ProductID)
}

func TestUpdateGuardsRowVersion(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn, proc.New())
	ctx := context.Background()

	order := seedOrder(t, conn, testOrder(100))

	affected, err := repo.Update(ctx, order.ID, map[string]any{"status": "CONFIRMED"}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	loaded, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", loaded.Status)
	assert.Equal(t, int64(2), loaded.RowVersion)

	// stale version matches nothing
	affected, err = repo.Update(ctx, order.ID, map[string]any{"status": "SHIPPED"}, 1)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestSoftDeleteCascadesToItems(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn, proc.New())
	ctx := context.Background()

	order := seedOrder(t, conn, testOrder(100))

	affected, err := repo.SoftDelete(ctx, order, "tester")
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected)

	gone, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	var liveItems int64
	require.NoError(t, conn.Model(&models.OrderItem{}).
		Where("order_id = ? AND is_deleted = ?", order.ID, false).
		Count(&liveItems).Error)
	assert.Zero(t, liveItems)

	// second delete is a no-op
	affected, err = repo.SoftDelete(ctx, order, "tester")
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestDeleteViaProcSoftDeletesAndKeepsRow(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn, proc.New())
	ctx := context.Background()

	order := seedOrder(t, conn, testOrder(100))

	env := envelope.Parse(repo.DeleteViaProc(ctx, order.ID, "tester"))
	require.Equal(t, 0, env.ErrorCode)
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(order.ID), data["orderId"])

	// the row is still there, only flagged
	var remaining int64
	require.NoError(t, conn.Model(&models.Order{}).Where("id = ?", order.ID).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)

	var flagged models.Order
	require.NoError(t, conn.Where("id = ?", order.ID).First(&flagged).Error)
	assert.True(t, flagged.IsDeleted)
	assert.False(t, flagged.IsActive)
	require.NotNil(t, flagged.UpdatedBy)
	assert.Equal(t, "tester", *flagged.UpdatedBy)

	// a second delete matches no live row
	env = envelope.Parse(repo.DeleteViaProc(ctx, order.ID, "tester"))
	assert.Equal(t, 1, env.ErrorCode)
}

func TestProcPathSynthesizesFailureWhenProcedureMissing(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn, proc.New())
	ctx := context.Background()

	env := envelope.Parse(repo.GetViaProc(ctx, 1))
	assert.Equal(t, 500, env.ErrorCode)
	assert.Contains(t, env.Message, "GetOrder failed")
}
