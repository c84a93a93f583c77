package models

import "time"

// Login holds credentials. The application only ever reads it; account
// provisioning happens out of band.
type Login struct {
	ID           int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Username     string `gorm:"column:username;not null;uniqueIndex"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	Role         string `gorm:"column:role;not null"`

	CreatedDate time.Time `gorm:"column:created_date;autoCreateTime"`

	IsActive  bool `gorm:"column:is_active;not null;default:true"`
	IsDeleted bool `gorm:"column:is_deleted;not null;default:false"`
}

func (Login) TableName() string {
	return "logins"
}
