package models

import "gorm.io/gorm"

// ActiveOnly hides soft-deleted rows. Every normal read applies it so
// deletion semantics stay uniform across repositories.
func ActiveOnly(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}
