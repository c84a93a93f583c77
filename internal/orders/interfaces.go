package orders

import (
	"context"

	"github.com/novamart/orderhub-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes both halves of the order persistence surface: tracked
// aggregate mutation through the ORM and raw stored-procedure invocation.
// Both halves run on whatever connection the repository is bound to, so a
// unit-of-work scope can mix them inside one transaction.
type Repository interface {
	// WithConn rebinds the repository to a borrowed connection, typically
	// a unit-of-work scope's transaction.
	WithConn(conn *gorm.DB) Repository

	// GetByID loads an order with its active items. Soft-deleted orders
	// are invisible; absence is (nil, nil).
	GetByID(ctx context.Context, id int64) (*models.Order, error)

	// Add inserts the order together with its items.
	Add(ctx context.Context, order *models.Order) error

	// Update writes only the provided columns, guarded by the expected
	// row version. Returns the number of rows touched; zero means the
	// order is gone or the version is stale.
	Update(ctx context.Context, id int64, fields map[string]any, expectedVersion int64) (int64, error)

	// SoftDelete marks the order and all of its items deleted and
	// inactive. Returns the number of rows touched.
	SoftDelete(ctx context.Context, order *models.Order, actor string) (int64, error)

	// Stored-procedure path. Each call returns raw envelope text.
	// DeleteViaProc is a soft delete like SoftDelete; no operation on
	// this surface removes rows physically.
	CreateViaProc(ctx context.Context, payload string, actor string) string
	GetViaProc(ctx context.Context, id int64) string
	UpdateStatusViaProc(ctx context.Context, id int64, status, actor string) string
	DeleteViaProc(ctx context.Context, id int64, actor string) string
}
