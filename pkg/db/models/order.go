package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the aggregate root owning its line items. Deletion is a flag
// flip cascaded to every child; rows are never physically removed.
type Order struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID  int64           `gorm:"column:customer_id;not null"`
	Status      string          `gorm:"column:status;not null;default:'NEW'"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:numeric(18,2);not null"`
	RowVersion  int64           `gorm:"column:row_version;not null;default:1"`

	CreatedBy   string     `gorm:"column:created_by;not null"`
	CreatedDate time.Time  `gorm:"column:created_date;autoCreateTime"`
	UpdatedBy   *string    `gorm:"column:updated_by"`
	UpdatedDate *time.Time `gorm:"column:updated_date"`

	IsActive  bool `gorm:"column:is_active;not null;default:true"`
	IsDeleted bool `gorm:"column:is_deleted;not null;default:false"`

	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string {
	return "orders"
}
