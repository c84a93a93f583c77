package search

import (
	"context"

	"github.com/novamart/orderhub-backend/pkg/proc"
	"gorm.io/gorm"
)

// itemSearchSQL builds the whole response envelope inside the database so
// the gateway can hand the text straight to the parser. The pattern is a
// bound parameter; the query text never changes.
const itemSearchSQL = `
SELECT json_build_object(
	'errorCode', 0,
	'message', 'Search completed',
	'data', COALESCE(json_agg(json_build_object(
		'id', i.id,
		'name', i.name,
		'price', i.unit_price
	) ORDER BY i.id), '[]'::json)
)::text
FROM inventory_items i
WHERE i.name ILIKE @pattern
  AND i.is_deleted = FALSE
  AND i.is_active = TRUE`

// Repository runs the item substring search.
type Repository interface {
	WithConn(conn *gorm.DB) Repository
	SearchItems(ctx context.Context, pattern string) string
}

type repository struct {
	db    *gorm.DB
	procs *proc.Gateway
}

// NewRepository builds a search repository bound to the provided DB.
func NewRepository(db *gorm.DB, procs *proc.Gateway) Repository {
	return &repository{db: db, procs: procs}
}

func (r *repository) WithConn(conn *gorm.DB) Repository {
	if conn == nil {
		return r
	}
	return &repository{db: conn, procs: r.procs}
}

func (r *repository) SearchItems(ctx context.Context, pattern string) string {
	return r.procs.Call(ctx, r.db, "ItemSearch", itemSearchSQL, map[string]any{"pattern": pattern})
}
