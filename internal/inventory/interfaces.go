package inventory

import (
	"context"

	"gorm.io/gorm"
)

// Repository is a pure stored-procedure gateway: every call returns raw
// envelope text and never an error. Failures arrive already encoded.
type Repository interface {
	WithConn(conn *gorm.DB) Repository

	ItemCreate(ctx context.Context, name, price, actor string) string
	ItemUpdate(ctx context.Context, id int64, name, price, actor string) string
	ItemDelete(ctx context.Context, id int64, actor string) string
	ItemGet(ctx context.Context, id int64) string
	ItemGetAll(ctx context.Context) string

	StockCreate(ctx context.Context, itemID int64, location string, qty int, actor string) string
	StockUpdate(ctx context.Context, id int64, qty int, actor string) string
	StockDelete(ctx context.Context, id int64, actor string) string
	StockGet(ctx context.Context, id int64) string
	StockGetAll(ctx context.Context) string
}
