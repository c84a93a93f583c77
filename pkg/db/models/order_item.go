package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a line within an order. LineTotal is computed by the
// database (qty * unit_price) and never written by the application.
type OrderItem struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"column:order_id;not null"`
	ProductID int64           `gorm:"column:product_id;not null"`
	Qty       int             `gorm:"column:qty;not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(18,2);not null"`
	LineTotal decimal.Decimal `gorm:"column:line_total;type:numeric(18,2);->"`

	CreatedBy   string     `gorm:"column:created_by;not null"`
	CreatedDate time.Time  `gorm:"column:created_date;autoCreateTime"`
	UpdatedBy   *string    `gorm:"column:updated_by"`
	UpdatedDate *time.Time `gorm:"column:updated_date"`

	IsActive  bool `gorm:"column:is_active;not null;default:true"`
	IsDeleted bool `gorm:"column:is_deleted;not null;default:false"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
