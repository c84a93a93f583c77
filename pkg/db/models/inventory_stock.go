package models

import "time"

// InventoryStock tracks quantity of an item at a location.
type InventoryStock struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	ItemID   int64  `gorm:"column:item_id;not null"`
	Location string `gorm:"column:location;not null;default:'Main'"`
	Qty      int    `gorm:"column:qty;not null"`

	CreatedBy   string     `gorm:"column:created_by;not null;default:'system'"`
	CreatedDate time.Time  `gorm:"column:created_date;autoCreateTime"`
	UpdatedBy   *string    `gorm:"column:updated_by"`
	UpdatedDate *time.Time `gorm:"column:updated_date"`

	IsActive  bool `gorm:"column:is_active;not null;default:true"`
	IsDeleted bool `gorm:"column:is_deleted;not null;default:false"`
}

func (InventoryStock) TableName() string {
	return "inventory_stocks"
}
