package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is a catalog entry. All writes go through stored
// procedures; the model exists for reads and test fixtures.
type InventoryItem struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string          `gorm:"column:name;not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(18,2);not null"`

	CreatedBy   string     `gorm:"column:created_by;not null;default:'system'"`
	CreatedDate time.Time  `gorm:"column:created_date;autoCreateTime"`
	UpdatedBy   *string    `gorm:"column:updated_by"`
	UpdatedDate *time.Time `gorm:"column:updated_date"`

	IsActive  bool `gorm:"column:is_active;not null;default:true"`
	IsDeleted bool `gorm:"column:is_deleted;not null;default:false"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}
