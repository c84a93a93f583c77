package inventory

import "github.com/shopspring/decimal"

// ItemCreateRequest creates a catalog item.
type ItemCreateRequest struct {
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price" validate:"required"`
}

// ItemUpdateRequest replaces the mutable fields of an item.
type ItemUpdateRequest struct {
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price" validate:"required"`
}

// StockCreateRequest records quantity for an item at a location.
type StockCreateRequest struct {
	ItemID   int64  `json:"itemId" validate:"required,gt=0"`
	Location string `json:"location"`
	Qty      int    `json:"qty" validate:"required,gte=0"`
}

// StockUpdateRequest adjusts the quantity of a stock row.
type StockUpdateRequest struct {
	Qty int `json:"qty" validate:"gte=0"`
}

const defaultLocation = "Main"

func normalizeLocation(location string) string {
	if location == "" {
		return defaultLocation
	}
	return location
}
