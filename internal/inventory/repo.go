package inventory

import (
	"context"

	"github.com/novamart/orderhub-backend/pkg/proc"
	"gorm.io/gorm"
)

const (
	itemCreateProc = `SELECT inventory.sp_item_create(@name, @price, @actor)`
	itemUpdateProc = `SELECT inventory.sp_item_update(@id, @name, @price, @actor)`
	itemDeleteProc = `SELECT inventory.sp_item_delete(@id, @actor)`
	itemGetProc    = `SELECT inventory.sp_item_get(@id)`
	itemGetAllProc = `SELECT inventory.sp_item_get_all()`

	stockCreateProc = `SELECT inventory.sp_stock_create(@itemId, @location, @quantity, @actor)`
	stockUpdateProc = `SELECT inventory.sp_stock_update(@id, @quantity, @actor)`
	stockDeleteProc = `SELECT inventory.sp_stock_delete(@id, @actor)`
	stockGetProc    = `SELECT inventory.sp_stock_get(@id)`
	stockGetAllProc = `SELECT inventory.sp_stock_get_all()`
)

type repository struct {
	db    *gorm.DB
	procs *proc.Gateway
}

// NewRepository builds an inventory repository bound to the provided DB.
func NewRepository(db *gorm.DB, procs *proc.Gateway) Repository {
	return &repository{db: db, procs: procs}
}

func (r *repository) WithConn(conn *gorm.DB) Repository {
	if conn == nil {
		return r
	}
	return &repository{db: conn, procs: r.procs}
}

func (r *repository) ItemCreate(ctx context.Context, name, price, actor string) string {
	return r.procs.Call(ctx, r.db, "ItemCreate", itemCreateProc, map[string]any{
		"name":  name,
		"price": price,
		"actor": actor,
	})
}

func (r *repository) ItemUpdate(ctx context.Context, id int64, name, price, actor string) string {
	return r.procs.Call(ctx, r.db, "ItemUpdate", itemUpdateProc, map[string]any{
		"id":    id,
		"name":  name,
		"price": price,
		"actor": actor,
	})
}

func (r *repository) ItemDelete(ctx context.Context, id int64, actor string) string {
	return r.procs.Call(ctx, r.db, "ItemDelete", itemDeleteProc, map[string]any{
		"id":    id,
		"actor": actor,
	})
}

func (r *repository) ItemGet(ctx context.Context, id int64) string {
	return r.procs.Call(ctx, r.db, "ItemGet", itemGetProc, map[string]any{"id": id})
}

func (r *repository) ItemGetAll(ctx context.Context) string {
	return r.procs.Call(ctx, r.db, "ItemGetAll", itemGetAllProc, nil)
}

func (r *repository) StockCreate(ctx context.Context, itemID int64, location string, qty int, actor string) string {
	return r.procs.Call(ctx, r.db, "StockCreate", stockCreateProc, map[string]any{
		"itemId":   itemID,
		"location": location,
		"quantity": qty,
		"actor":    actor,
	})
}

func (r *repository) StockUpdate(ctx context.Context, id int64, qty int, actor string) string {
	return r.procs.Call(ctx, r.db, "StockUpdate", stockUpdateProc, map[string]any{
		"id":       id,
		"quantity": qty,
		"actor":    actor,
	})
}

func (r *repository) StockDelete(ctx context.Context, id int64, actor string) string {
	return r.procs.Call(ctx, r.db, "StockDelete", stockDeleteProc, map[string]any{
		"id":    id,
		"actor": actor,
	})
}

func (r *repository) StockGet(ctx context.Context, id int64) string {
	return r.procs.Call(ctx, r.db, "StockGet", stockGetProc, map[string]any{"id": id})
}

func (r *repository) StockGetAll(ctx context.Context) string {
	return r.procs.Call(ctx, r.db, "StockGetAll", stockGetAllProc, nil)
}
