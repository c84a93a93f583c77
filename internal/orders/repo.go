package orders

import (
	"context"
	"errors"
	"time"

	"github.com/novamart/orderhub-backend/pkg/db/models"
	"github.com/novamart/orderhub-backend/pkg/proc"
	"gorm.io/gorm"
)

const (
	createOrderProc  = `SELECT orders.sp_create_order(@payload, @actor)`
	getOrderProc     = `SELECT orders.sp_get_order(@id)`
	updateStatusProc = `SELECT orders.sp_update_order_status(@id, @status, @actor)`

	// deleteOrderProc flips the soft-delete flags; rows are never
	// physically removed. The envelope is built in SQL so the statement
	// returns the same contract as the stored procedures.
	deleteOrderProc = `
UPDATE orders
SET is_deleted = TRUE,
    is_active = FALSE,
    updated_by = @actor,
    updated_date = CURRENT_TIMESTAMP
WHERE id = @id AND is_deleted = FALSE
RETURNING '{"errorCode":0,"message":"Order deleted","data":{"orderId":' || id || '}}'`
)

type repository struct {
	db    *gorm.DB
	procs *proc.Gateway
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB, procs *proc.Gateway) Repository {
	return &repository{db: db, procs: procs}
}

func (r *repository) WithConn(conn *gorm.DB) Repository {
	if conn == nil {
		return r
	}
	return &repository{db: conn, procs: r.procs}
}

func (r *repository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Scopes(models.ActiveOnly).
		Preload("Items", "is_deleted = ?", false).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repository) Add(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// Update touches only the supplied columns and bumps row_version. A stale
// expectedVersion matches no rows, which callers report as a conflict.
func (r *repository) Update(ctx context.Context, id int64, fields map[string]any, expectedVersion int64) (int64, error) {
	patch := make(map[string]any, len(fields)+1)
	for column, value := range fields {
		patch[column] = value
	}
	patch["row_version"] = expectedVersion + 1

	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND row_version = ? AND is_deleted = ?", id, expectedVersion, false).
		Updates(patch)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repository) SoftDelete(ctx context.Context, order *models.Order, actor string) (int64, error) {
	if order == nil {
		return 0, nil
	}
	now := time.Now().UTC()
	patch := map[string]any{
		"is_deleted":   true,
		"is_active":    false,
		"updated_by":   actor,
		"updated_date": now,
	}

	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND is_deleted = ?", order.ID, false).
		Updates(patch)
	if res.Error != nil {
		return 0, res.Error
	}
	affected := res.RowsAffected
	if affected == 0 {
		return 0, nil
	}

	itemRes := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("order_id = ? AND is_deleted = ?", order.ID, false).
		Updates(patch)
	if itemRes.Error != nil {
		return 0, itemRes.Error
	}
	return affected + itemRes.RowsAffected, nil
}

func (r *repository) CreateViaProc(ctx context.Context, payload string, actor string) string {
	return r.procs.Call(ctx, r.db, "CreateOrder", createOrderProc, map[string]any{
		"payload": payload,
		"actor":   actor,
	})
}

func (r *repository) GetViaProc(ctx context.Context, id int64) string {
	return r.procs.Call(ctx, r.db, "GetOrder", getOrderProc, map[string]any{"id": id})
}

func (r *repository) UpdateStatusViaProc(ctx context.Context, id int64, status, actor string) string {
	return r.procs.Call(ctx, r.db, "UpdateOrderStatus", updateStatusProc, map[string]any{
		"id":     id,
		"status": status,
		"actor":  actor,
	})
}

// DeleteViaProc soft-deletes the order in one statement and returns the
// envelope text. A miss (absent or already deleted) yields no row, which
// the gateway reports as a null result.
func (r *repository) DeleteViaProc(ctx context.Context, id int64, actor string) string {
	return r.procs.Call(ctx, r.db, "DeleteOrder", deleteOrderProc, map[string]any{
		"id":    id,
		"actor": actor,
	})
}
